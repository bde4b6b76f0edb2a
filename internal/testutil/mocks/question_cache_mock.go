package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"battleacademy/internal/models"
)

// MockQuestionCache is a mock implementation of cache.QuestionCache
type MockQuestionCache struct {
	mock.Mock
}

func (m *MockQuestionCache) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}
