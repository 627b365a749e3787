package challenge_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/cerebro/internal/challenge"
	"github.com/vytor/cerebro/internal/models"
)

var today = models.NewDate(2026, time.April, 14)

func intPtr(v int) *int { return &v }

func TestEffectiveTarget(t *testing.T) {
	tests := []struct {
		name string
		ch   models.Challenge
		want int
	}{
		{"target value wins", models.Challenge{Type: models.ChallengeHours, TargetValue: 60, TargetMinutes: intPtr(120)}, 60},
		{"hours falls back to minutes", models.Challenge{Type: models.ChallengeHours, TargetMinutes: intPtr(120)}, 120},
		{"negative value falls back", models.Challenge{Type: models.ChallengeHours, TargetValue: -1, TargetMinutes: intPtr(30)}, 30},
		{"session count has no fallback", models.Challenge{Type: models.ChallengeSessionCount, TargetMinutes: intPtr(5)}, 0},
		{"nothing set", models.Challenge{Type: models.ChallengeHours}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, challenge.EffectiveTarget(tt.ch))
		})
	}
}

func TestApplySession_HoursCompletesOnThirdSession(t *testing.T) {
	ch := models.Challenge{Type: models.ChallengeHours, TargetValue: 60}
	p := models.ChallengeProgress{}

	for i := 0; i < 2; i++ {
		var applied bool
		p, applied = challenge.ApplySession(ch, p, 20, today)
		assert.True(t, applied)
		assert.False(t, p.Completed, "should not complete after session %d", i+1)
	}

	p, _ = challenge.ApplySession(ch, p, 20, today)
	assert.True(t, p.Completed, "third session reaches the target")
	assert.Equal(t, 60, p.CurrentValue)
	assert.Equal(t, today, p.LastUpdated)
	assert.Equal(t, models.StateCompleted, p.State())
}

func TestApplySession_HoursUsesMinutesFallback(t *testing.T) {
	ch := models.Challenge{Type: models.ChallengeHours, TargetMinutes: intPtr(45)}

	p, _ := challenge.ApplySession(ch, models.ChallengeProgress{}, 50, today)

	assert.True(t, p.Completed)
}

func TestApplySession_SessionCountIgnoresDuration(t *testing.T) {
	ch := models.Challenge{Type: models.ChallengeSessionCount, TargetValue: 2}

	p, _ := challenge.ApplySession(ch, models.ChallengeProgress{}, 0, today)
	assert.Equal(t, 1, p.CurrentValue)
	assert.False(t, p.Completed)

	p, _ = challenge.ApplySession(ch, p, 500, today)
	assert.Equal(t, 2, p.CurrentValue)
	assert.True(t, p.Completed)
}

func TestApplySession_SkipsStreakChallenges(t *testing.T) {
	ch := models.Challenge{Type: models.ChallengeStreak, TargetValue: 3}
	in := models.ChallengeProgress{CurrentValue: 1}

	out, applied := challenge.ApplySession(ch, in, 30, today)

	assert.False(t, applied)
	assert.Equal(t, in, out)
}

func TestApplySession_ValueKeepsGrowingPastTarget(t *testing.T) {
	ch := models.Challenge{Type: models.ChallengeHours, TargetValue: 30}
	p := models.ChallengeProgress{CurrentValue: 40, Completed: true}

	p, _ = challenge.ApplySession(ch, p, 15, today)

	assert.Equal(t, 55, p.CurrentValue, "progress is not clamped to the target")
	assert.True(t, p.Completed)
}

func TestApplyStreak_SetsValueAndNeverReverts(t *testing.T) {
	ch := models.Challenge{Type: models.ChallengeStreak, TargetValue: 3}

	p, applied := challenge.ApplyStreak(ch, models.ChallengeProgress{CurrentValue: 7}, 2, today)
	assert.True(t, applied)
	assert.Equal(t, 2, p.CurrentValue, "streak value is set, not added")
	assert.False(t, p.Completed)

	p, _ = challenge.ApplyStreak(ch, p, 3, today)
	assert.True(t, p.Completed)

	p, _ = challenge.ApplyStreak(ch, p, 0, today.AddDays(1))
	assert.Equal(t, 0, p.CurrentValue)
	assert.True(t, p.Completed, "completion is one-way")
	assert.Equal(t, today.AddDays(1), p.LastUpdated)
}

func TestApplyStreak_SkipsOtherTypes(t *testing.T) {
	_, applied := challenge.ApplyStreak(models.Challenge{Type: models.ChallengeHours, TargetValue: 1}, models.ChallengeProgress{}, 5, today)
	assert.False(t, applied)
}

func TestApply_ZeroTargetNeverCompletes(t *testing.T) {
	ch := models.Challenge{Type: models.ChallengeSessionCount}

	p, _ := challenge.ApplySession(ch, models.ChallengeProgress{}, 10, today)

	assert.False(t, p.Completed)
}

func TestValidate(t *testing.T) {
	valid := models.Challenge{Title: "Read", Type: models.ChallengeHours, TargetValue: 600}

	_, _, ok := challenge.Validate(valid)
	assert.True(t, ok)

	tests := []struct {
		name  string
		edit  func(*models.Challenge)
		field string
	}{
		{"blank title", func(c *models.Challenge) { c.Title = "  " }, "title"},
		{"unknown type", func(c *models.Challenge) { c.Type = "PAGES" }, "type"},
		{"no target", func(c *models.Challenge) { c.TargetValue = 0 }, "targetValue"},
		{"end before start", func(c *models.Challenge) {
			c.StartDate = models.NewDate(2026, time.May, 2)
			c.EndDate = models.NewDate(2026, time.May, 1)
		}, "endDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := valid
			tt.edit(&ch)
			field, reason, ok := challenge.Validate(ch)
			assert.False(t, ok)
			assert.Equal(t, tt.field, field)
			assert.NotEmpty(t, reason)
		})
	}
}
