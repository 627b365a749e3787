package studytime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/studytime"
)

func ptrTime(t time.Time) *time.Time { return &t }
func ptrInt(v int64) *int64          { return &v }

func session(start time.Time, minutes int64) models.StudySession {
	return models.StudySession{StartTime: ptrTime(start), DurationInMinutes: ptrInt(minutes)}
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  *time.Time
		want *int64
	}{
		{"whole minutes", ptrTime(start.Add(45 * time.Minute)), ptrInt(45)},
		{"floors partial minute", ptrTime(start.Add(45*time.Minute + 59*time.Second)), ptrInt(45)},
		{"under a minute", ptrTime(start.Add(30 * time.Second)), ptrInt(0)},
		{"same instant", ptrTime(start), ptrInt(0)},
		{"missing end", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, studytime.DurationMinutes(&start, tt.end))
		})
	}

	assert.Nil(t, studytime.DurationMinutes(nil, ptrTime(start)))
}

func TestDailySummary_SortedNewestFirstWithoutEmptyDays(t *testing.T) {
	loc := time.UTC
	sessions := []models.StudySession{
		session(time.Date(2026, time.March, 1, 10, 0, 0, 0, loc), 30),
		session(time.Date(2026, time.March, 3, 8, 0, 0, 0, loc), 20),
		session(time.Date(2026, time.March, 1, 18, 0, 0, 0, loc), 15),
		session(time.Date(2026, time.March, 2, 9, 0, 0, 0, loc), 0),
		{StartTime: ptrTime(time.Date(2026, time.March, 4, 9, 0, 0, 0, loc))},
		{DurationInMinutes: ptrInt(90)},
	}

	got := studytime.DailySummary(sessions, loc)

	require.Len(t, got, 2)
	assert.Equal(t, models.NewDate(2026, time.March, 3), got[0].Date)
	assert.Equal(t, int64(20), got[0].TotalStudyTime)
	assert.Equal(t, models.NewDate(2026, time.March, 1), got[1].Date)
	assert.Equal(t, int64(45), got[1].TotalStudyTime)
}

func TestDailySummary_BucketsByConfiguredZone(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 02:00 UTC on the 10th is 23:00 on the 9th in Sao Paulo.
	sessions := []models.StudySession{
		session(time.Date(2026, time.March, 10, 2, 0, 0, 0, time.UTC), 40),
	}

	assert.Equal(t, models.NewDate(2026, time.March, 10), studytime.DailySummary(sessions, time.UTC)[0].Date)
	assert.Equal(t, models.NewDate(2026, time.March, 9), studytime.DailySummary(sessions, saoPaulo)[0].Date)
}

func TestDailySummary_Empty(t *testing.T) {
	got := studytime.DailySummary(nil, time.UTC)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWeekStart(t *testing.T) {
	loc := time.UTC
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, loc)

	assert.Equal(t, monday, studytime.WeekStart(time.Date(2026, time.March, 2, 0, 0, 0, 0, loc), loc))
	assert.Equal(t, monday, studytime.WeekStart(time.Date(2026, time.March, 5, 13, 30, 0, 0, loc), loc))
	assert.Equal(t, monday, studytime.WeekStart(time.Date(2026, time.March, 8, 23, 59, 0, 0, loc), loc))
}

func TestWeeklySummary(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, time.March, 6, 12, 0, 0, 0, loc) // Friday
	sessions := []models.StudySession{
		// Monday 00:00 is inside the window.
		session(time.Date(2026, time.March, 2, 0, 0, 0, 0, loc), 30),
		session(time.Date(2026, time.March, 4, 9, 0, 0, 0, loc), 25),
		session(time.Date(2026, time.March, 4, 20, 0, 0, 0, loc), 5),
		// Previous Sunday.
		session(time.Date(2026, time.March, 1, 23, 59, 0, 0, loc), 60),
		{StartTime: ptrTime(time.Date(2026, time.March, 5, 9, 0, 0, 0, loc))},
	}

	got, skipped := studytime.WeeklySummary(sessions, now, loc)

	assert.Equal(t, 1, skipped)
	assert.Equal(t, int64(30), got.Minutes(time.Monday))
	assert.Equal(t, int64(30), got.Minutes(time.Wednesday))
	assert.Equal(t, int64(0), got.Minutes(time.Sunday))
	assert.Equal(t, int64(60), got.Total())
	assert.Len(t, got, 7)
}

func TestWeeklySummary_NoSessionsIsZeroFilled(t *testing.T) {
	got, skipped := studytime.WeeklySummary(nil, time.Now(), time.UTC)
	assert.Zero(t, skipped)
	assert.Equal(t, models.WeeklySummary{}, got)
}

func TestDistinctStudyDates(t *testing.T) {
	loc := time.UTC
	starts := []time.Time{
		time.Date(2026, time.March, 1, 8, 0, 0, 0, loc),
		time.Date(2026, time.March, 3, 8, 0, 0, 0, loc),
		time.Date(2026, time.March, 1, 22, 0, 0, 0, loc),
		time.Date(2026, time.March, 2, 8, 0, 0, 0, loc),
	}

	assert.Equal(t, []models.Date{
		models.NewDate(2026, time.March, 3),
		models.NewDate(2026, time.March, 2),
		models.NewDate(2026, time.March, 1),
	}, studytime.DistinctStudyDates(starts, loc))
}

func TestCurrentStreak(t *testing.T) {
	today := models.NewDate(2026, time.March, 10)

	tests := []struct {
		name  string
		dates []models.Date
		want  int
	}{
		{"no sessions", nil, 0},
		{"only today", []models.Date{today}, 1},
		{"latest is yesterday", []models.Date{today.AddDays(-1), today.AddDays(-2)}, 0},
		{"breaks at gap", []models.Date{today, today.AddDays(-1), today.AddDays(-2), today.AddDays(-5)}, 3},
		{"stops at first gap after a run", []models.Date{today, today.AddDays(-1), today.AddDays(-9), today.AddDays(-10)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, studytime.CurrentStreak(tt.dates, today))
		})
	}
}
