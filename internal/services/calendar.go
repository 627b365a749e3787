package services

import (
	"time"

	"github.com/vytor/cerebro/internal/models"
)

// CalendarConfig fixes the zone used for every calendar-day decision and the
// clock that decides what "now" is.
type CalendarConfig struct {
	Location *time.Location
	Now      func() time.Time
}

func (c CalendarConfig) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c CalendarConfig) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c CalendarConfig) today() models.Date {
	return models.DateOf(c.now().In(c.location()))
}
