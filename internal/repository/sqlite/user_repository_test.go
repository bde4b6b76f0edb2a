package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"battleacademy/internal/models"
	"battleacademy/internal/repository"
	"battleacademy/internal/repository/sqlite"
	"battleacademy/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	lastAttempt := time.Now().UTC().Truncate(time.Second)
	id, err := s.repo.Insert(ctx, models.User{
		Username:  "ash",
		Password:  "hash",
		Role:      models.RoleStudent,
		Character: "mage",
		Stats:     models.UserStats{TotalXP: 42, CurrentStreak: 3, LastAttemptDate: &lastAttempt},
	})
	s.Require().NoError(err)

	user, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal("ash", user.Username)
	s.Equal("mage", user.Character)
	s.Equal(42, user.Stats.TotalXP)
	s.Equal(3, user.Stats.CurrentStreak)
	s.Require().NotNil(user.Stats.LastAttemptDate)
	s.True(lastAttempt.Equal(*user.Stats.LastAttemptDate))
}

func (s *UserRepositorySuite) TestGetMissingReturnsNil() {
	user, err := s.repo.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Nil(user)

	user, err = s.repo.GetByUsername(context.Background(), "nobody")
	s.Require().NoError(err)
	s.Nil(user)
}

func (s *UserRepositorySuite) TestGetByUsername() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.User{Username: "ash", Password: "hash", Role: models.RoleStudent})
	s.Require().NoError(err)

	user, err := s.repo.GetByUsername(ctx, "ash")
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal(id, user.ID)
	s.Nil(user.Stats.LastAttemptDate, "a fresh account has never attempted anything")
}

func (s *UserRepositorySuite) TestDuplicateUsernameRejected() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, models.User{Username: "ash", Password: "hash", Role: models.RoleStudent})
	s.Require().NoError(err)

	_, err = s.repo.Insert(ctx, models.User{Username: "ash", Password: "other", Role: models.RoleStudent})
	s.Error(err)
}

func (s *UserRepositorySuite) TestUpdateCharacter() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.User{Username: "ash", Password: "hash", Role: models.RoleStudent})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.UpdateCharacter(ctx, id, "knight"))

	user, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal("knight", user.Character)
}

func (s *UserRepositorySuite) TestLeaderboard() {
	ctx := context.Background()

	insert := func(username, role string, xp int) {
		_, err := s.repo.Insert(ctx, models.User{
			Username: username,
			Password: "hash",
			Role:     role,
			Stats:    models.UserStats{TotalXP: xp},
		})
		s.Require().NoError(err)
	}

	insert("ash", models.RoleStudent, 120)
	insert("misty", models.RoleStudent, 200)
	insert("brock", models.RoleStudent, 120)
	insert("oak", models.RoleAdmin, 999)

	entries, err := s.repo.Leaderboard(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3, "admins stay off the board")

	s.Equal("misty", entries[0].Username)
	// Ties resolve alphabetically.
	s.Equal("ash", entries[1].Username)
	s.Equal("brock", entries[2].Username)

	top2, err := s.repo.Leaderboard(ctx, 2)
	s.Require().NoError(err)
	s.Len(top2, 2)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
