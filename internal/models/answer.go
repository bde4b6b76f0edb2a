package models

// AnswerStats is the slice of user stats echoed back after a submission.
type AnswerStats struct {
	TotalXP int `json:"totalXP"`
}

// AnswerResult summarizes the outcome of a single answer submission.
// CorrectChoiceID is always populated so clients can reveal the right answer.
type AnswerResult struct {
	IsCorrect       bool        `json:"isCorrect"`
	CorrectChoiceID string      `json:"correctChoiceId"`
	XPGained        int         `json:"xpGained"`
	NewStreak       int         `json:"newStreak"`
	Multiplier      float64     `json:"multiplier"`
	Stats           AnswerStats `json:"stats"`
}
