package repository

import (
	"context"

	"battleacademy/internal/models"
)

// AttemptRepository handles the append-only submission log
type AttemptRepository interface {
	// FindBySession returns any prior attempt for the exact
	// (user, question, session) triple, or nil. Correctness and choice of
	// the prior attempt are irrelevant to the lookup.
	FindBySession(ctx context.Context, userID, questionID int64, sessionID string) (*models.Attempt, error)

	// RecordSubmission appends the attempt row and applies the user's new
	// stats in a single transaction, so the log entry and the XP/streak
	// mutation commit or roll back together.
	RecordSubmission(ctx context.Context, attempt models.Attempt, stats models.UserStats) (int64, error)

	// IncorrectAttempts returns the user's incorrect attempts joined with
	// their questions, newest first, optionally filtered by quiz or subject.
	// Entries are not deduplicated per question; callers keep the first
	// occurrence they see.
	IncorrectAttempts(ctx context.Context, filter models.MistakeFilter) ([]models.MistakeEntry, error)
}
