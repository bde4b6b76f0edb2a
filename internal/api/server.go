package api

import (
	"database/sql"
	"time"

	"battleacademy/internal/services"
)

type Server struct {
	DB *sql.DB

	AuthService        services.AuthService
	AnswerService      services.AnswerService
	ContentService     services.ContentService
	MistakeService     services.MistakeService
	LeaderboardService services.LeaderboardService

	JWTSecret string
	TokenTTL  time.Duration
}
