package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"battleacademy/internal/errors"
	"battleacademy/internal/logger"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
	"battleacademy/internal/scoring"
)

// ContentService handles subject, quiz and question management
type ContentService interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	CreateSubject(ctx context.Context, subject models.Subject) (*models.Subject, error)
	ListQuizzes(ctx context.Context, subjectID int64) ([]models.Quiz, error)
	CreateQuiz(ctx context.Context, quiz models.Quiz) (*models.Quiz, error)
	ListQuestions(ctx context.Context, quizID int64) ([]models.Question, error)
	AddQuestions(ctx context.Context, quizID int64, questions []models.Question) ([]models.Question, error)
}

type contentService struct {
	subjects  repository.SubjectRepository
	quizzes   repository.QuizRepository
	questions repository.QuestionRepository
}

// NewContentService creates a new ContentService
func NewContentService(subjects repository.SubjectRepository, quizzes repository.QuizRepository, questions repository.QuestionRepository) ContentService {
	return &contentService{subjects: subjects, quizzes: quizzes, questions: questions}
}

func (s *contentService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return subjects, nil
}

func (s *contentService) CreateSubject(ctx context.Context, subject models.Subject) (*models.Subject, error) {
	log := logger.FromContext(ctx)

	if subject.Name == "" {
		return nil, errors.NewValidationError("name is required")
	}

	id, err := s.subjects.Insert(ctx, subject)
	if err != nil {
		log.Error("failed to insert subject: %v", err)
		return nil, errors.NewInternalError(err)
	}
	subject.ID = id

	log.Info("subject created: id=%d, name=%s", id, subject.Name)
	return &subject, nil
}

func (s *contentService) ListQuizzes(ctx context.Context, subjectID int64) ([]models.Quiz, error) {
	subject, err := s.subjects.Get(ctx, subjectID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if subject == nil {
		return nil, errors.NewNotFoundError("Subject")
	}

	quizzes, err := s.quizzes.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return quizzes, nil
}

func (s *contentService) CreateQuiz(ctx context.Context, quiz models.Quiz) (*models.Quiz, error) {
	log := logger.FromContext(ctx)

	if quiz.Title == "" {
		return nil, errors.NewValidationError("title is required")
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = models.DifficultyMedium
	}
	switch quiz.Difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return nil, errors.NewValidationError("difficulty must be Easy, Medium or Hard")
	}

	subject, err := s.subjects.Get(ctx, quiz.SubjectID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if subject == nil {
		return nil, errors.NewNotFoundError("Subject")
	}

	id, err := s.quizzes.Insert(ctx, quiz)
	if err != nil {
		log.Error("failed to insert quiz: %v", err)
		return nil, errors.NewInternalError(err)
	}
	quiz.ID = id

	log.Info("quiz created: id=%d, subject_id=%d, title=%s", id, quiz.SubjectID, quiz.Title)
	return &quiz, nil
}

func (s *contentService) ListQuestions(ctx context.Context, quizID int64) ([]models.Question, error) {
	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if quiz == nil {
		return nil, errors.NewNotFoundError("Quiz")
	}

	questions, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return questions, nil
}

func (s *contentService) AddQuestions(ctx context.Context, quizID int64, questions []models.Question) ([]models.Question, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding questions: quiz_id=%d, count=%d", quizID, len(questions))

	if len(questions) == 0 {
		return nil, errors.NewValidationError("at least one question is required")
	}

	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if quiz == nil {
		return nil, errors.NewNotFoundError("Quiz")
	}

	for i := range questions {
		q := &questions[i]
		q.QuizID = quizID
		if q.Content == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("question %d: content is required", i+1))
		}
		if len(q.Options) < 2 {
			return nil, errors.NewValidationError(fmt.Sprintf("question %d: at least two options are required", i+1))
		}
		correct := 0
		for j := range q.Options {
			if q.Options[j].ID == "" {
				q.Options[j].ID = uuid.NewString()
			}
			if q.Options[j].IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return nil, errors.NewValidationError(fmt.Sprintf("question %d: exactly one option must be correct", i+1))
		}
		if q.BasePoints <= 0 {
			q.BasePoints = scoring.DefaultBasePoints
		}
	}

	ids, err := s.questions.InsertBatch(ctx, questions)
	if err != nil {
		log.Error("failed to insert questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	for i := range questions {
		questions[i].ID = ids[i]
	}

	log.Info("questions added: quiz_id=%d, count=%d", quizID, len(questions))
	return questions, nil
}
