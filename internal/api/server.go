package api

import (
	"context"
	"time"

	"github.com/vytor/cerebro/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	Sessions       services.SessionService
	Challenges     services.ChallengeService
	Courses        services.CourseService
	Insights       services.InsightsService
	DB             Pinger
	Location       *time.Location
	DefaultUserID  int64
	AllowedOrigin  string
	RequestTimeout time.Duration
}

func (s *Server) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}
