package models

import "time"

// Attempt is an append-only record of a single answer submission. Attempts
// are never updated or deleted; duplicates within a session are still stored.
type Attempt struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	QuestionID int64     `json:"question_id"`
	SessionID  string    `json:"session_id"`
	ChoiceID   string    `json:"choice_id"`
	IsCorrect  bool      `json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}

type MistakeFilter struct {
	UserID    int64
	QuizID    int64
	SubjectID int64
}

// MistakeEntry pairs a question with the choice the user picked on their most
// recent incorrect attempt at it.
type MistakeEntry struct {
	Question     Question `json:"question"`
	UserChoiceID string   `json:"user_choice_id"`
}
