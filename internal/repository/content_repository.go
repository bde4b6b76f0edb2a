package repository

import (
	"context"

	"battleacademy/internal/models"
)

// SubjectRepository handles subject data access
type SubjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	Get(ctx context.Context, id int64) (*models.Subject, error)
	Insert(ctx context.Context, subject models.Subject) (int64, error)
}

// QuizRepository handles quiz data access
type QuizRepository interface {
	Get(ctx context.Context, id int64) (*models.Quiz, error)
	ListBySubject(ctx context.Context, subjectID int64) ([]models.Quiz, error)
	Insert(ctx context.Context, quiz models.Quiz) (int64, error)
}

// QuestionRepository handles question data access
type QuestionRepository interface {
	Get(ctx context.Context, id int64) (*models.Question, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]models.Question, error)
	InsertBatch(ctx context.Context, questions []models.Question) ([]int64, error)
}
