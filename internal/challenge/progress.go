// Package challenge holds the progress rules for study challenges.
package challenge

import (
	"fmt"
	"strings"

	"github.com/vytor/cerebro/internal/models"
)

// EffectiveTarget is the value a progress entry must reach to complete.
// TargetValue wins when positive; HOURS challenges fall back to
// TargetMinutes. A result of 0 means the challenge has no usable target.
func EffectiveTarget(ch models.Challenge) int {
	if ch.TargetValue > 0 {
		return ch.TargetValue
	}
	if ch.Type == models.ChallengeHours && ch.TargetMinutes != nil && *ch.TargetMinutes > 0 {
		return *ch.TargetMinutes
	}
	return 0
}

// ApplySession advances p for one finished session of the given length.
// HOURS adds the minutes, SESSION_COUNT adds one. Any other type leaves p
// untouched and reports false.
func ApplySession(ch models.Challenge, p models.ChallengeProgress, minutes int64, today models.Date) (models.ChallengeProgress, bool) {
	switch ch.Type {
	case models.ChallengeHours:
		p.CurrentValue += int(minutes)
	case models.ChallengeSessionCount:
		p.CurrentValue++
	default:
		return p, false
	}
	return settle(ch, p, today), true
}

// ApplyStreak sets p to the current streak length for STREAK challenges.
func ApplyStreak(ch models.Challenge, p models.ChallengeProgress, days int, today models.Date) (models.ChallengeProgress, bool) {
	if ch.Type != models.ChallengeStreak {
		return p, false
	}
	p.CurrentValue = days
	return settle(ch, p, today), true
}

// settle stamps the update and completes p once the target is reached.
// A completed entry stays completed and its value is not clamped.
func settle(ch models.Challenge, p models.ChallengeProgress, today models.Date) models.ChallengeProgress {
	p.LastUpdated = today
	if p.Completed {
		return p
	}
	if target := EffectiveTarget(ch); target > 0 && p.CurrentValue >= target {
		p.Completed = true
	}
	return p
}

// Validate reports the first problem with a challenge about to be stored,
// as a field name and reason.
func Validate(ch models.Challenge) (field, reason string, ok bool) {
	switch {
	case strings.TrimSpace(ch.Title) == "":
		return "title", "must not be empty", false
	case !ch.Type.Valid():
		return "type", fmt.Sprintf("unknown challenge type %q", ch.Type), false
	case EffectiveTarget(ch) <= 0:
		return "targetValue", "must be positive", false
	case !ch.StartDate.IsZero() && !ch.EndDate.IsZero() && ch.EndDate.Before(ch.StartDate):
		return "endDate", "must not be before startDate", false
	}
	return "", "", true
}
