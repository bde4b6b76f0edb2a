package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"battleacademy/internal/logger"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, password, role, character, total_xp, current_streak, last_attempt_date, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var lastAttempt sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.Character,
		&u.Stats.TotalXP, &u.Stats.CurrentStreak, &lastAttempt, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lastAttempt.Valid {
		t := lastAttempt.Time
		u.Stats.LastAttemptDate = &t
	}
	return &u, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	row := r.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id = ?
`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by username: %s", username)

	row := r.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE username = ?
`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: username=%s", username)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by username: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Insert(ctx context.Context, user models.User) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: username=%s, role=%s", user.Username, user.Role)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, password, role, character, total_xp, current_streak, last_attempt_date)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, user.Username, user.Password, user.Role, user.Character,
		user.Stats.TotalXP, user.Stats.CurrentStreak, user.Stats.LastAttemptDate)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return 0, err
	}
	log.Debug("user inserted: id=%d", id)
	return id, nil
}

func (r *userRepository) UpdateCharacter(ctx context.Context, id int64, character string) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating user character: id=%d", id)

	_, err := r.db.ExecContext(ctx, `UPDATE users SET character = ? WHERE id = ?`, character, id)
	if err != nil {
		log.Error("failed to update character: %v", err)
	}
	return err
}

func (r *userRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("loading leaderboard: limit=%d", limit)

	query := sqlBuilder.Select("username", "character", "total_xp").
		From("users").
		Where(squirrel.Eq{"role": models.RoleStudent}).
		OrderBy("total_xp DESC", "username ASC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build leaderboard query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Character, &e.TotalXP); err != nil {
			log.Error("failed to scan leaderboard row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}

	log.Debug("leaderboard loaded: %d entries", len(entries))
	return entries, rows.Err()
}
