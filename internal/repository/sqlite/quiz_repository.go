package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"battleacademy/internal/logger"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
)

type quizRepository struct {
	db *sql.DB
}

// NewQuizRepository creates a new QuizRepository implementation
func NewQuizRepository(db *sql.DB) repository.QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Get(ctx context.Context, id int64) (*models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("getting quiz: id=%d", id)

	var q models.Quiz
	err := r.db.QueryRowContext(ctx, `
SELECT id, subject_id, title, difficulty, created_at
FROM quizzes
WHERE id = ?
`, id).Scan(&q.ID, &q.SubjectID, &q.Title, &q.Difficulty, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("quiz not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get quiz: %v", err)
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) ListBySubject(ctx context.Context, subjectID int64) ([]models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("listing quizzes: subject_id=%d", subjectID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, subject_id, title, difficulty, created_at
FROM quizzes
WHERE subject_id = ?
ORDER BY created_at ASC
`, subjectID)
	if err != nil {
		log.Error("failed to list quizzes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		var q models.Quiz
		if err := rows.Scan(&q.ID, &q.SubjectID, &q.Title, &q.Difficulty, &q.CreatedAt); err != nil {
			log.Error("failed to scan quiz row: %v", err)
			return nil, err
		}
		quizzes = append(quizzes, q)
	}

	log.Debug("found %d quizzes", len(quizzes))
	return quizzes, rows.Err()
}

func (r *quizRepository) Insert(ctx context.Context, quiz models.Quiz) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("inserting quiz: subject_id=%d, title=%s", quiz.SubjectID, quiz.Title)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO quizzes (subject_id, title, difficulty)
VALUES (?, ?, ?)
`, quiz.SubjectID, quiz.Title, quiz.Difficulty)
	if err != nil {
		log.Error("failed to insert quiz: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get quiz id: %v", err)
		return 0, err
	}
	log.Debug("quiz inserted: id=%d", id)
	return id, nil
}
