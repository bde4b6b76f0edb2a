package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"battleacademy/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) FindBySession(ctx context.Context, userID, questionID int64, sessionID string) (*models.Attempt, error) {
	args := m.Called(ctx, userID, questionID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) RecordSubmission(ctx context.Context, attempt models.Attempt, stats models.UserStats) (int64, error) {
	args := m.Called(ctx, attempt, stats)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepository) IncorrectAttempts(ctx context.Context, filter models.MistakeFilter) ([]models.MistakeEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MistakeEntry), args.Error(1)
}
