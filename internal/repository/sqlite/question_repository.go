package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"battleacademy/internal/logger"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
)

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Get(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("getting question: id=%d", id)

	var q models.Question
	var rawOptions string
	err := r.db.QueryRowContext(ctx, `
SELECT id, quiz_id, content, options, base_points, explanation, created_at
FROM questions
WHERE id = ?
`, id).Scan(&q.ID, &q.QuizID, &q.Content, &rawOptions, &q.BasePoints, &q.Explanation, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("question not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, err
	}
	if q.Options, err = decodeOptions(rawOptions); err != nil {
		log.Error("failed to decode options for question %d: %v", id, err)
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) ListByQuiz(ctx context.Context, quizID int64) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing questions: quiz_id=%d", quizID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, quiz_id, content, options, base_points, explanation, created_at
FROM questions
WHERE quiz_id = ?
ORDER BY id ASC
`, quizID)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var rawOptions string
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Content, &rawOptions, &q.BasePoints, &q.Explanation, &q.CreatedAt); err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		if q.Options, err = decodeOptions(rawOptions); err != nil {
			log.Error("failed to decode options for question %d: %v", q.ID, err)
			return nil, err
		}
		questions = append(questions, q)
	}

	log.Debug("found %d questions", len(questions))
	return questions, rows.Err()
}

func (r *questionRepository) InsertBatch(ctx context.Context, questions []models.Question) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("inserting %d questions", len(questions))

	ids := make([]int64, 0, len(questions))
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO questions (quiz_id, content, options, base_points, explanation)
VALUES (?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, q := range questions {
			rawOptions, err := encodeOptions(q.Options)
			if err != nil {
				return err
			}
			res, err := stmt.ExecContext(ctx, q.QuizID, q.Content, rawOptions, q.BasePoints, q.Explanation)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert question batch: %v", err)
		return nil, err
	}

	log.Debug("question batch inserted: %d rows", len(ids))
	return ids, nil
}
