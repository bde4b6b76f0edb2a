package services

import (
	"context"
	"sync"
	"time"

	"battleacademy/internal/cache"
	"battleacademy/internal/errors"
	"battleacademy/internal/logger"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
	"battleacademy/internal/scoring"
)

// AnswerService handles answer submission and scoring
type AnswerService interface {
	// SubmitAnswer scores a single answer, appends it to the attempt log and
	// updates the user's XP and streak. Duplicate submissions for the same
	// (user, question, session) triple are still logged but earn no XP.
	SubmitAnswer(ctx context.Context, userID, questionID int64, choiceID, sessionID string) (*models.AnswerResult, error)
}

type answerService struct {
	users     repository.UserRepository
	attempts  repository.AttemptRepository
	questions cache.QuestionCache
	policy    scoring.Policy
	now       func() time.Time

	// locks serializes submissions per user so the read-score-write cycle
	// never interleaves and XP can't be granted twice for the same triple.
	locks sync.Map // int64 -> *sync.Mutex
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(users repository.UserRepository, attempts repository.AttemptRepository, questions cache.QuestionCache, policy scoring.Policy) AnswerService {
	return &answerService{
		users:     users,
		attempts:  attempts,
		questions: questions,
		policy:    policy,
		now:       time.Now,
	}
}

// NewAnswerServiceWithClock is test-only.
func NewAnswerServiceWithClock(users repository.UserRepository, attempts repository.AttemptRepository, questions cache.QuestionCache, policy scoring.Policy, now func() time.Time) AnswerService {
	s := NewAnswerService(users, attempts, questions, policy).(*answerService)
	s.now = now
	return s
}

func (s *answerService) SubmitAnswer(ctx context.Context, userID, questionID int64, choiceID, sessionID string) (*models.AnswerResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: user_id=%d, question_id=%d, session_id=%s", userID, questionID, sessionID)

	if sessionID == "" {
		return nil, errors.NewValidationError("sessionId is required")
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		log.Error("failed to load question %d: %v", questionID, err)
		return nil, errors.NewInternalError(err)
	}
	if question == nil {
		return nil, errors.NewNotFoundError("Question")
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user %d: %v", userID, err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User")
	}

	selected := question.Option(choiceID)
	if selected == nil {
		return nil, errors.NewValidationError("Invalid choice")
	}

	correct := question.CorrectOption()
	if correct == nil {
		log.Error("question %d has no correct option", question.ID)
		return nil, errors.NewDataIntegrityError("question has no correct option")
	}

	existing, err := s.attempts.FindBySession(ctx, userID, questionID, sessionID)
	if err != nil {
		log.Error("failed to look up prior attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := s.now()
	outcome := s.policy.Evaluate(user.Stats, scoring.Submission{
		IsCorrect:        selected.IsCorrect,
		AlreadyAttempted: existing != nil,
		BasePoints:       question.BasePoints,
	}, now)
	newStats := scoring.Apply(user.Stats, outcome, now)

	attempt := models.Attempt{
		UserID:     userID,
		QuestionID: questionID,
		SessionID:  sessionID,
		ChoiceID:   choiceID,
		IsCorrect:  selected.IsCorrect,
		CreatedAt:  now,
	}
	if _, err := s.attempts.RecordSubmission(ctx, attempt, newStats); err != nil {
		log.Error("failed to record submission: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("answer recorded: user_id=%d, question_id=%d, correct=%t, xp=%d, streak=%d",
		userID, questionID, selected.IsCorrect, outcome.XPGained, outcome.NewStreak)

	return &models.AnswerResult{
		IsCorrect:       selected.IsCorrect,
		CorrectChoiceID: correct.ID,
		XPGained:        outcome.XPGained,
		NewStreak:       outcome.NewStreak,
		Multiplier:      outcome.Multiplier,
		Stats:           models.AnswerStats{TotalXP: newStats.TotalXP},
	}, nil
}

func (s *answerService) userLock(userID int64) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
