package repository

import (
	"context"

	"battleacademy/internal/models"
)

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user models.User) (int64, error)
	UpdateCharacter(ctx context.Context, id int64, character string) error
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}
