package models

import "time"

type ChallengeType string

const (
	ChallengeHours        ChallengeType = "HOURS"
	ChallengeSessionCount ChallengeType = "SESSION_COUNT"
	ChallengeStreak       ChallengeType = "STREAK"
)

func (t ChallengeType) Valid() bool {
	switch t {
	case ChallengeHours, ChallengeSessionCount, ChallengeStreak:
		return true
	}
	return false
}

// Challenge is a declared goal. For HOURS challenges the target is measured
// in minutes; TargetMinutes is consulted only when TargetValue is not positive.
type Challenge struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Type          ChallengeType `json:"type"`
	TargetValue   int           `json:"targetValue"`
	TargetMinutes *int          `json:"targetMinutes,omitempty"`
	StartDate     Date          `json:"startDate"`
	EndDate       Date          `json:"endDate"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type ProgressState string

const (
	StateInProgress ProgressState = "IN_PROGRESS"
	StateCompleted  ProgressState = "COMPLETED"
)

// ChallengeProgress is one user's running value toward one challenge.
// Completed only ever moves from false to true.
type ChallengeProgress struct {
	ID           int64 `json:"id"`
	UserID       int64 `json:"userId"`
	ChallengeID  int64 `json:"challengeId"`
	CurrentValue int   `json:"currentValue"`
	Completed    bool  `json:"completed"`
	LastUpdated  Date  `json:"lastUpdated"`
}

func (p ChallengeProgress) State() ProgressState {
	if p.Completed {
		return StateCompleted
	}
	return StateInProgress
}

// ProgressWithChallenge is the shape returned to clients listing progress.
type ProgressWithChallenge struct {
	ChallengeProgress
	State     ProgressState `json:"state"`
	Challenge Challenge     `json:"challenge"`
}
