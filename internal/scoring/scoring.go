package scoring

import (
	"math"
	"time"

	"battleacademy/internal/models"
)

// DefaultBasePoints is the point value assumed for questions that carry none.
const DefaultBasePoints = 10

// Policy holds the tunable scoring constants. The streak window and the
// multiplier curve are configuration, not algorithm.
type Policy struct {
	// StreakWindow is how long a streak survives without an attempt.
	StreakWindow time.Duration
	// MultiplierStep is the multiplier gain per streak step beyond the first.
	MultiplierStep float64
	// MultiplierCap bounds the multiplier regardless of streak length.
	MultiplierCap float64
}

// DefaultPolicy mirrors the original game tuning: 24h window, +0.1 per
// streak step, capped at 2.0.
var DefaultPolicy = Policy{
	StreakWindow:   24 * time.Hour,
	MultiplierStep: 0.1,
	MultiplierCap:  2.0,
}

// Submission captures what the engine knows about one answer at scoring time.
type Submission struct {
	IsCorrect bool
	// AlreadyAttempted is true when any attempt exists for the same
	// (user, question, session) triple, correct or not. That prior attempt
	// alone blocks the XP grant; it does not block the streak update.
	AlreadyAttempted bool
	BasePoints       int
}

// Outcome is the computed result of a submission.
type Outcome struct {
	NewStreak  int
	Multiplier float64
	XPGained   int
	GrantXP    bool
}

// Evaluate computes streak progression, multiplier and XP delta for a
// submission against the user's current stats. It never mutates state.
func (p Policy) Evaluate(stats models.UserStats, sub Submission, now time.Time) Outcome {
	if !sub.IsCorrect {
		// A miss breaks the streak unconditionally and earns nothing.
		return Outcome{NewStreak: 0, Multiplier: 1.0}
	}

	newStreak := 1
	if stats.LastAttemptDate != nil && now.Sub(*stats.LastAttemptDate) <= p.StreakWindow {
		newStreak = stats.CurrentStreak + 1
	}

	// The multiplier follows the post-update streak, so it is reported even
	// when the duplicate guard withholds XP.
	multiplier := math.Min(p.MultiplierCap, 1+float64(newStreak-1)*p.MultiplierStep)

	out := Outcome{
		NewStreak:  newStreak,
		Multiplier: multiplier,
		GrantXP:    !sub.AlreadyAttempted,
	}
	if out.GrantXP {
		basePoints := sub.BasePoints
		if basePoints <= 0 {
			basePoints = DefaultBasePoints
		}
		out.XPGained = int(math.Floor(float64(basePoints) * multiplier))
	}
	return out
}

// Apply folds an outcome into the user's stats. All three fields move
// together; callers persist the result as one atomic unit.
func Apply(stats models.UserStats, out Outcome, now time.Time) models.UserStats {
	stats.TotalXP += out.XPGained
	stats.CurrentStreak = out.NewStreak
	stats.LastAttemptDate = &now
	return stats
}
