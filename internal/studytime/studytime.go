// Package studytime turns raw study sessions into durations, calendar
// buckets and streaks. Every function takes the time zone explicitly; nothing
// here reads the process zone or the database session.
package studytime

import (
	"sort"
	"time"

	"github.com/vytor/cerebro/internal/models"
)

// DurationMinutes returns the whole minutes between start and end, or nil
// when either bound is missing.
func DurationMinutes(start, end *time.Time) *int64 {
	if start == nil || end == nil {
		return nil
	}
	d := end.Sub(*start)
	minutes := int64(d / time.Minute)
	if d < 0 && d%time.Minute != 0 {
		minutes--
	}
	return &minutes
}

// DailySummary sums minutes per local calendar day of each session's start.
// Sessions without a start or a duration are ignored and days totalling zero
// or less are dropped. The result is ordered newest day first.
func DailySummary(sessions []models.StudySession, loc *time.Location) []models.DailyStudySummary {
	totals := make(map[models.Date]int64)
	for _, s := range sessions {
		if s.StartTime == nil || s.DurationInMinutes == nil {
			continue
		}
		day := models.DateOf(s.StartTime.In(loc))
		totals[day] += *s.DurationInMinutes
	}

	out := make([]models.DailyStudySummary, 0, len(totals))
	for day, total := range totals {
		if total <= 0 {
			continue
		}
		out = append(out, models.DailyStudySummary{Date: day, TotalStudyTime: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// WeekStart returns Monday 00:00 in loc of the week containing now.
func WeekStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	back := (int(local.Weekday()) + 6) % 7
	return models.DateOf(local).AddDays(-back).In(loc)
}

// WeeklySummary buckets sessions that started on or after this week's Monday
// by local weekday. Sessions with a start but no duration are not counted;
// the number of such sessions is returned so callers can report them.
func WeeklySummary(sessions []models.StudySession, now time.Time, loc *time.Location) (models.WeeklySummary, int) {
	var (
		summary models.WeeklySummary
		skipped int
	)
	monday := WeekStart(now, loc)
	for _, s := range sessions {
		if s.StartTime == nil || s.StartTime.Before(monday) {
			continue
		}
		if s.DurationInMinutes == nil {
			skipped++
			continue
		}
		summary.Add(s.StartTime.In(loc).Weekday(), *s.DurationInMinutes)
	}
	return summary, skipped
}

// DistinctStudyDates collapses session starts into distinct local dates,
// newest first.
func DistinctStudyDates(starts []time.Time, loc *time.Location) []models.Date {
	seen := make(map[models.Date]struct{}, len(starts))
	dates := make([]models.Date, 0, len(starts))
	for _, t := range starts {
		d := models.DateOf(t.In(loc))
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})
	return dates
}

// CurrentStreak counts consecutive study days ending today. datesDesc must be
// distinct and sorted newest first. A missing today yields 0.
func CurrentStreak(datesDesc []models.Date, today models.Date) int {
	streak := 0
	for i, d := range datesDesc {
		if d != today.AddDays(-i) {
			break
		}
		streak++
	}
	return streak
}
