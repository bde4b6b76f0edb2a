package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"battleacademy/internal/logger"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
)

type subjectRepository struct {
	db *sql.DB
}

// NewSubjectRepository creates a new SubjectRepository implementation
func NewSubjectRepository(db *sql.DB) repository.SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("listing subjects")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, icon, created_at
FROM subjects
ORDER BY name ASC
`)
	if err != nil {
		log.Error("failed to list subjects: %v", err)
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Icon, &s.CreatedAt); err != nil {
			log.Error("failed to scan subject row: %v", err)
			return nil, err
		}
		subjects = append(subjects, s)
	}

	log.Debug("found %d subjects", len(subjects))
	return subjects, rows.Err()
}

func (r *subjectRepository) Get(ctx context.Context, id int64) (*models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("getting subject: id=%d", id)

	var s models.Subject
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, icon, created_at
FROM subjects
WHERE id = ?
`, id).Scan(&s.ID, &s.Name, &s.Description, &s.Icon, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("subject not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get subject: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *subjectRepository) Insert(ctx context.Context, subject models.Subject) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("inserting subject: name=%s", subject.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO subjects (name, description, icon)
VALUES (?, ?, ?)
`, subject.Name, subject.Description, subject.Icon)
	if err != nil {
		log.Error("failed to insert subject: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get subject id: %v", err)
		return 0, err
	}
	log.Debug("subject inserted: id=%d", id)
	return id, nil
}
