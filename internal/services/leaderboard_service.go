package services

import (
	"context"

	"battleacademy/internal/errors"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
)

const leaderboardSize = 10

// LeaderboardService ranks students by total XP
type LeaderboardService interface {
	Top(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	users repository.UserRepository
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(users repository.UserRepository) LeaderboardService {
	return &leaderboardService{users: users}
}

func (s *leaderboardService) Top(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries, err := s.users.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}
