package services

import (
	"context"

	"battleacademy/internal/errors"
	"battleacademy/internal/logger"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
)

// MistakeService builds the review view of questions a user got wrong
type MistakeService interface {
	// ListMistakes returns one entry per question the user answered
	// incorrectly, newest mistake first, optionally filtered by quiz or
	// subject.
	ListMistakes(ctx context.Context, filter models.MistakeFilter) ([]models.MistakeEntry, error)
}

type mistakeService struct {
	attempts repository.AttemptRepository
}

// NewMistakeService creates a new MistakeService
func NewMistakeService(attempts repository.AttemptRepository) MistakeService {
	return &mistakeService{attempts: attempts}
}

func (s *mistakeService) ListMistakes(ctx context.Context, filter models.MistakeFilter) ([]models.MistakeEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing mistakes: user_id=%d, quiz_id=%d, subject_id=%d", filter.UserID, filter.QuizID, filter.SubjectID)

	entries, err := s.attempts.IncorrectAttempts(ctx, filter)
	if err != nil {
		log.Error("failed to load incorrect attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// The log may hold several misses for the same question; keep only the
	// most recent one, which the repository returns first.
	seen := make(map[int64]bool, len(entries))
	mistakes := make([]models.MistakeEntry, 0, len(entries))
	for _, e := range entries {
		if seen[e.Question.ID] {
			continue
		}
		seen[e.Question.ID] = true
		mistakes = append(mistakes, e)
	}

	return mistakes, nil
}
