package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"battleacademy/internal/logger"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) FindBySession(ctx context.Context, userID, questionID int64, sessionID string) (*models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("looking up attempt: user_id=%d, question_id=%d, session_id=%s", userID, questionID, sessionID)

	var a models.Attempt
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, question_id, session_id, choice_id, is_correct, created_at
FROM attempts
WHERE user_id = ? AND question_id = ? AND session_id = ?
ORDER BY created_at ASC
LIMIT 1
`, userID, questionID, sessionID).Scan(&a.ID, &a.UserID, &a.QuestionID, &a.SessionID, &a.ChoiceID, &a.IsCorrect, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no prior attempt in session")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to look up attempt: %v", err)
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) RecordSubmission(ctx context.Context, attempt models.Attempt, stats models.UserStats) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("recording submission: user_id=%d, question_id=%d, correct=%t", attempt.UserID, attempt.QuestionID, attempt.IsCorrect)

	var id int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO attempts (user_id, question_id, session_id, choice_id, is_correct, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, attempt.UserID, attempt.QuestionID, attempt.SessionID, attempt.ChoiceID, attempt.IsCorrect, attempt.CreatedAt)
		if err != nil {
			log.Error("failed to insert attempt: %v", err)
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		// totalXP, currentStreak and lastAttemptDate move as one unit.
		if _, err := tx.ExecContext(ctx, `
UPDATE users
SET total_xp = ?, current_streak = ?, last_attempt_date = ?
WHERE id = ?
`, stats.TotalXP, stats.CurrentStreak, stats.LastAttemptDate, attempt.UserID); err != nil {
			log.Error("failed to update user stats: %v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Debug("submission recorded: attempt_id=%d", id)
	return id, nil
}

func (r *attemptRepository) IncorrectAttempts(ctx context.Context, filter models.MistakeFilter) ([]models.MistakeEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing incorrect attempts: user_id=%d, quiz_id=%d, subject_id=%d", filter.UserID, filter.QuizID, filter.SubjectID)

	query := sqlBuilder.Select(
		"a.choice_id",
		"q.id", "q.quiz_id", "q.content", "q.options", "q.base_points", "q.explanation", "q.created_at",
	).From("attempts a").
		Join("questions q ON q.id = a.question_id").
		Where(squirrel.Eq{"a.user_id": filter.UserID}).
		Where(squirrel.Eq{"a.is_correct": false})

	// Dynamic WHERE clauses
	if filter.QuizID != 0 {
		query = query.Where(squirrel.Eq{"q.quiz_id": filter.QuizID})
	}
	if filter.SubjectID != 0 {
		query = query.Join("quizzes z ON z.id = q.quiz_id").
			Where(squirrel.Eq{"z.subject_id": filter.SubjectID})
	}

	// Newest first; id breaks ties within the same timestamp.
	query = query.OrderBy("a.created_at DESC", "a.id DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build mistakes query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query incorrect attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.MistakeEntry
	for rows.Next() {
		var e models.MistakeEntry
		var rawOptions string
		if err := rows.Scan(&e.UserChoiceID,
			&e.Question.ID, &e.Question.QuizID, &e.Question.Content, &rawOptions,
			&e.Question.BasePoints, &e.Question.Explanation, &e.Question.CreatedAt); err != nil {
			log.Error("failed to scan incorrect attempt row: %v", err)
			return nil, err
		}
		if e.Question.Options, err = decodeOptions(rawOptions); err != nil {
			log.Error("failed to decode options for question %d: %v", e.Question.ID, err)
			return nil, err
		}
		entries = append(entries, e)
	}

	log.Debug("found %d incorrect attempts", len(entries))
	return entries, rows.Err()
}
