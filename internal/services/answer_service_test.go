package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"battleacademy/internal/errors"
	"battleacademy/internal/models"
	"battleacademy/internal/scoring"
	"battleacademy/internal/services"
	"battleacademy/internal/testutil/mocks"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testQuestion() *models.Question {
	return &models.Question{
		ID:     42,
		QuizID: 7,
		Options: []models.Option{
			{ID: "a", Text: "wrong", IsCorrect: false},
			{ID: "b", Text: "right", IsCorrect: true},
		},
		BasePoints: 10,
	}
}

func testUser() *models.User {
	return &models.User{ID: 1, Username: "ash", Role: models.RoleStudent}
}

func newAnswerService(users *mocks.MockUserRepository, attempts *mocks.MockAttemptRepository, questions *mocks.MockQuestionCache) services.AnswerService {
	return services.NewAnswerServiceWithClock(users, attempts, questions, scoring.DefaultPolicy, fixedClock)
}

func TestSubmitAnswer_FirstCorrect(t *testing.T) {
	users := new(mocks.MockUserRepository)
	attempts := new(mocks.MockAttemptRepository)
	questions := new(mocks.MockQuestionCache)

	questions.On("GetQuestion", mock.Anything, int64(42)).Return(testQuestion(), nil)
	users.On("Get", mock.Anything, int64(1)).Return(testUser(), nil)
	attempts.On("FindBySession", mock.Anything, int64(1), int64(42), "sess-1").Return(nil, nil)
	attempts.On("RecordSubmission", mock.Anything, mock.MatchedBy(func(a models.Attempt) bool {
		return a.UserID == 1 && a.QuestionID == 42 && a.SessionID == "sess-1" && a.ChoiceID == "b" && a.IsCorrect
	}), models.UserStats{TotalXP: 10, CurrentStreak: 1, LastAttemptDate: &testNow}).Return(int64(100), nil)

	svc := newAnswerService(users, attempts, questions)
	result, err := svc.SubmitAnswer(context.Background(), 1, 42, "b", "sess-1")

	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, "b", result.CorrectChoiceID)
	assert.Equal(t, 10, result.XPGained)
	assert.Equal(t, 1, result.NewStreak)
	assert.Equal(t, 1.0, result.Multiplier)
	assert.Equal(t, 10, result.Stats.TotalXP)
	attempts.AssertExpectations(t)
}

func TestSubmitAnswer_StreakContinues(t *testing.T) {
	users := new(mocks.MockUserRepository)
	attempts := new(mocks.MockAttemptRepository)
	questions := new(mocks.MockQuestionCache)

	lastAttempt := testNow.Add(-2 * time.Hour)
	user := testUser()
	user.Stats = models.UserStats{TotalXP: 50, CurrentStreak: 3, LastAttemptDate: &lastAttempt}

	questions.On("GetQuestion", mock.Anything, int64(42)).Return(testQuestion(), nil)
	users.On("Get", mock.Anything, int64(1)).Return(user, nil)
	attempts.On("FindBySession", mock.Anything, int64(1), int64(42), "sess-1").Return(nil, nil)
	attempts.On("RecordSubmission", mock.Anything, mock.Anything, models.UserStats{TotalXP: 63, CurrentStreak: 4, LastAttemptDate: &testNow}).Return(int64(100), nil)

	svc := newAnswerService(users, attempts, questions)
	result, err := svc.SubmitAnswer(context.Background(), 1, 42, "b", "sess-1")

	require.NoError(t, err)
	assert.Equal(t, 4, result.NewStreak)
	assert.InDelta(t, 1.3, result.Multiplier, 1e-9)
	assert.Equal(t, 13, result.XPGained)
	assert.Equal(t, 63, result.Stats.TotalXP)
	attempts.AssertExpectations(t)
}

func TestSubmitAnswer_DuplicateInSessionEarnsNoXP(t *testing.T) {
	users := new(mocks.MockUserRepository)
	attempts := new(mocks.MockAttemptRepository)
	questions := new(mocks.MockQuestionCache)

	lastAttempt := testNow.Add(-time.Minute)
	user := testUser()
	user.Stats = models.UserStats{TotalXP: 63, CurrentStreak: 4, LastAttemptDate: &lastAttempt}

	prior := &models.Attempt{ID: 9, UserID: 1, QuestionID: 42, SessionID: "sess-1", ChoiceID: "a", IsCorrect: false}

	questions.On("GetQuestion", mock.Anything, int64(42)).Return(testQuestion(), nil)
	users.On("Get", mock.Anything, int64(1)).Return(user, nil)
	attempts.On("FindBySession", mock.Anything, int64(1), int64(42), "sess-1").Return(prior, nil)
	// The attempt is still appended and the streak still moves; only XP is withheld.
	attempts.On("RecordSubmission", mock.Anything, mock.Anything, models.UserStats{TotalXP: 63, CurrentStreak: 5, LastAttemptDate: &testNow}).Return(int64(101), nil)

	svc := newAnswerService(users, attempts, questions)
	result, err := svc.SubmitAnswer(context.Background(), 1, 42, "b", "sess-1")

	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 0, result.XPGained)
	assert.Equal(t, 5, result.NewStreak)
	assert.InDelta(t, 1.4, result.Multiplier, 1e-9)
	assert.Equal(t, 63, result.Stats.TotalXP)
	attempts.AssertExpectations(t)
}

func TestSubmitAnswer_WrongAnswerBreaksStreak(t *testing.T) {
	users := new(mocks.MockUserRepository)
	attempts := new(mocks.MockAttemptRepository)
	questions := new(mocks.MockQuestionCache)

	lastAttempt := testNow.Add(-time.Hour)
	user := testUser()
	user.Stats = models.UserStats{TotalXP: 40, CurrentStreak: 6, LastAttemptDate: &lastAttempt}

	questions.On("GetQuestion", mock.Anything, int64(42)).Return(testQuestion(), nil)
	users.On("Get", mock.Anything, int64(1)).Return(user, nil)
	attempts.On("FindBySession", mock.Anything, int64(1), int64(42), "sess-1").Return(nil, nil)
	attempts.On("RecordSubmission", mock.Anything, mock.MatchedBy(func(a models.Attempt) bool {
		return a.ChoiceID == "a" && !a.IsCorrect
	}), models.UserStats{TotalXP: 40, CurrentStreak: 0, LastAttemptDate: &testNow}).Return(int64(102), nil)

	svc := newAnswerService(users, attempts, questions)
	result, err := svc.SubmitAnswer(context.Background(), 1, 42, "a", "sess-1")

	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, "b", result.CorrectChoiceID)
	assert.Equal(t, 0, result.XPGained)
	assert.Equal(t, 0, result.NewStreak)
	assert.Equal(t, 1.0, result.Multiplier)
	attempts.AssertExpectations(t)
}

func TestSubmitAnswer_MissingSessionID(t *testing.T) {
	svc := newAnswerService(new(mocks.MockUserRepository), new(mocks.MockAttemptRepository), new(mocks.MockQuestionCache))

	_, err := svc.SubmitAnswer(context.Background(), 1, 42, "b", "")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestSubmitAnswer_QuestionNotFound(t *testing.T) {
	users := new(mocks.MockUserRepository)
	attempts := new(mocks.MockAttemptRepository)
	questions := new(mocks.MockQuestionCache)

	questions.On("GetQuestion", mock.Anything, int64(42)).Return(nil, nil)

	svc := newAnswerService(users, attempts, questions)
	_, err := svc.SubmitAnswer(context.Background(), 1, 42, "b", "sess-1")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	users.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestSubmitAnswer_UserNotFound(t *testing.T) {
	users := new(mocks.MockUserRepository)
	attempts := new(mocks.MockAttemptRepository)
	questions := new(mocks.MockQuestionCache)

	questions.On("GetQuestion", mock.Anything, int64(42)).Return(testQuestion(), nil)
	users.On("Get", mock.Anything, int64(1)).Return(nil, nil)

	svc := newAnswerService(users, attempts, questions)
	_, err := svc.SubmitAnswer(context.Background(), 1, 42, "b", "sess-1")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestSubmitAnswer_InvalidChoice(t *testing.T) {
	users := new(mocks.MockUserRepository)
	attempts := new(mocks.MockAttemptRepository)
	questions := new(mocks.MockQuestionCache)

	questions.On("GetQuestion", mock.Anything, int64(42)).Return(testQuestion(), nil)
	users.On("Get", mock.Anything, int64(1)).Return(testUser(), nil)

	svc := newAnswerService(users, attempts, questions)
	_, err := svc.SubmitAnswer(context.Background(), 1, 42, "zzz", "sess-1")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	attempts.AssertNotCalled(t, "RecordSubmission", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAnswer_QuestionWithoutCorrectOption(t *testing.T) {
	users := new(mocks.MockUserRepository)
	attempts := new(mocks.MockAttemptRepository)
	questions := new(mocks.MockQuestionCache)

	broken := testQuestion()
	broken.Options[1].IsCorrect = false

	questions.On("GetQuestion", mock.Anything, int64(42)).Return(broken, nil)
	users.On("Get", mock.Anything, int64(1)).Return(testUser(), nil)

	svc := newAnswerService(users, attempts, questions)
	_, err := svc.SubmitAnswer(context.Background(), 1, 42, "a", "sess-1")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeDataIntegrity, appErr.Code)
	attempts.AssertNotCalled(t, "RecordSubmission", mock.Anything, mock.Anything, mock.Anything)
}

// fakeAttemptStore keeps attempts in memory so concurrent submissions see
// each other's writes, with a small delay to widen any race window.
type fakeAttemptStore struct {
	mu       sync.Mutex
	attempts []models.Attempt
}

func (f *fakeAttemptStore) FindBySession(ctx context.Context, userID, questionID int64, sessionID string) (*models.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.attempts {
		a := f.attempts[i]
		if a.UserID == userID && a.QuestionID == questionID && a.SessionID == sessionID {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAttemptStore) RecordSubmission(ctx context.Context, attempt models.Attempt, stats models.UserStats) (int64, error) {
	time.Sleep(time.Millisecond)
	f.mu.Lock()
	defer f.mu.Unlock()
	attempt.ID = int64(len(f.attempts) + 1)
	f.attempts = append(f.attempts, attempt)
	return attempt.ID, nil
}

func (f *fakeAttemptStore) IncorrectAttempts(ctx context.Context, filter models.MistakeFilter) ([]models.MistakeEntry, error) {
	return nil, nil
}

func TestSubmitAnswer_ConcurrentDuplicatesGrantXPOnce(t *testing.T) {
	users := new(mocks.MockUserRepository)
	questions := new(mocks.MockQuestionCache)
	store := &fakeAttemptStore{}

	questions.On("GetQuestion", mock.Anything, int64(42)).Return(testQuestion(), nil)
	users.On("Get", mock.Anything, int64(1)).Return(testUser(), nil)

	svc := services.NewAnswerServiceWithClock(users, store, questions, scoring.DefaultPolicy, fixedClock)

	const workers = 8
	results := make([]*models.AnswerResult, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.SubmitAnswer(context.Background(), 1, 42, "b", "sess-1")
			if !assert.NoError(t, err) {
				return
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, r := range results {
		if r != nil && r.XPGained > 0 {
			granted++
		}
	}
	assert.Equal(t, 1, granted, "only the first submission of the session should earn XP")
	assert.Len(t, store.attempts, workers, "every submission is still logged")
}
