package services

import (
	"context"

	"battleacademy/internal/auth"
	"battleacademy/internal/errors"
	"battleacademy/internal/logger"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
)

// AuthService handles account registration and credential checks
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ChooseCharacter(ctx context.Context, userID int64, character string) (*models.User, error)
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Register(ctx context.Context, username, password string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("registering user: username=%s", username)

	if username == "" || password == "" {
		return nil, errors.NewValidationError("username and password are required")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		log.Error("failed to check username: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("Username already taken")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user := models.User{
		Username: username,
		Password: hash,
		Role:     models.RoleStudent,
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	user.ID = id

	log.Info("user registered: id=%d, username=%s", id, username)
	return &user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("login attempt: username=%s", username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		// Same answer for unknown user and bad password.
		return nil, errors.NewUnauthorizedError("Invalid username or password")
	}

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User")
	}
	return user, nil
}

func (s *authService) ChooseCharacter(ctx context.Context, userID int64, character string) (*models.User, error) {
	log := logger.FromContext(ctx)

	if character == "" {
		return nil, errors.NewValidationError("character is required")
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateCharacter(ctx, userID, character); err != nil {
		log.Error("failed to update character: %v", err)
		return nil, errors.NewInternalError(err)
	}
	user.Character = character

	log.Info("character chosen: user_id=%d, character=%s", userID, character)
	return user, nil
}
