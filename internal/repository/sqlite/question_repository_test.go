package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"battleacademy/internal/models"
	"battleacademy/internal/repository"
	"battleacademy/internal/repository/sqlite"
	"battleacademy/internal/testutil"
)

type QuestionRepositorySuite struct {
	suite.Suite
	db       *sql.DB
	repo     repository.QuestionRepository
	subjects repository.SubjectRepository
	quizzes  repository.QuizRepository
}

func (s *QuestionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewQuestionRepository(s.db)
	s.subjects = sqlite.NewSubjectRepository(s.db)
	s.quizzes = sqlite.NewQuizRepository(s.db)
}

func (s *QuestionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *QuestionRepositorySuite) setupQuiz() int64 {
	ctx := context.Background()

	subjectID, err := s.subjects.Insert(ctx, models.Subject{Name: "Math"})
	s.Require().NoError(err)
	quizID, err := s.quizzes.Insert(ctx, models.Quiz{SubjectID: subjectID, Title: "Fractions", Difficulty: models.DifficultyEasy})
	s.Require().NoError(err)
	return quizID
}

func (s *QuestionRepositorySuite) TestInsertBatchAndGet() {
	ctx := context.Background()
	quizID := s.setupQuiz()

	ids, err := s.repo.InsertBatch(ctx, []models.Question{
		{
			QuizID:  quizID,
			Content: "1/2 + 1/4 = ?",
			Options: []models.Option{
				{ID: "a", Text: "3/4", IsCorrect: true},
				{ID: "b", Text: "2/6"},
			},
			BasePoints:  15,
			Explanation: "1/2 is 2/4.",
		},
		{
			QuizID:  quizID,
			Content: "2 + 2 = ?",
			Options: []models.Option{
				{ID: "a", Text: "4", IsCorrect: true},
				{ID: "b", Text: "5"},
			},
			BasePoints: 10,
		},
	})
	s.Require().NoError(err)
	s.Require().Len(ids, 2)

	question, err := s.repo.Get(ctx, ids[0])
	s.Require().NoError(err)
	s.Require().NotNil(question)
	s.Equal("1/2 + 1/4 = ?", question.Content)
	s.Equal(15, question.BasePoints)
	s.Require().Len(question.Options, 2)
	s.Equal("a", question.CorrectOption().ID)

	questions, err := s.repo.ListByQuiz(ctx, quizID)
	s.Require().NoError(err)
	s.Len(questions, 2)
}

func (s *QuestionRepositorySuite) TestInsertBatchIsAtomic() {
	ctx := context.Background()
	quizID := s.setupQuiz()

	// The second row violates the base_points CHECK constraint.
	_, err := s.repo.InsertBatch(ctx, []models.Question{
		{QuizID: quizID, Content: "ok", Options: []models.Option{{ID: "a", IsCorrect: true}}, BasePoints: 10},
		{QuizID: quizID, Content: "broken", Options: []models.Option{{ID: "a", IsCorrect: true}}, BasePoints: -1},
	})
	s.Require().Error(err)

	questions, err := s.repo.ListByQuiz(ctx, quizID)
	s.Require().NoError(err)
	s.Empty(questions, "a failed batch inserts nothing")
}

func (s *QuestionRepositorySuite) TestGetMissingReturnsNil() {
	question, err := s.repo.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Nil(question)
}

func (s *QuestionRepositorySuite) TestListQuizzesBySubject() {
	ctx := context.Background()

	subjectID, err := s.subjects.Insert(ctx, models.Subject{Name: "History"})
	s.Require().NoError(err)
	otherID, err := s.subjects.Insert(ctx, models.Subject{Name: "Math"})
	s.Require().NoError(err)

	_, err = s.quizzes.Insert(ctx, models.Quiz{SubjectID: subjectID, Title: "Rome", Difficulty: models.DifficultyMedium})
	s.Require().NoError(err)
	_, err = s.quizzes.Insert(ctx, models.Quiz{SubjectID: otherID, Title: "Algebra", Difficulty: models.DifficultyHard})
	s.Require().NoError(err)

	quizzes, err := s.quizzes.ListBySubject(ctx, subjectID)
	s.Require().NoError(err)
	s.Require().Len(quizzes, 1)
	s.Equal("Rome", quizzes[0].Title)

	subjects, err := s.subjects.List(ctx)
	s.Require().NoError(err)
	s.Len(subjects, 2)
}

func TestQuestionRepositorySuite(t *testing.T) {
	suite.Run(t, new(QuestionRepositorySuite))
}
