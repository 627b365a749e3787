package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/cerebro/internal/errors"
	"github.com/vytor/cerebro/internal/logger"
)

const readinessTimeout = 2 * time.Second

// handleHealth is the liveness probe; it only reports that the process serves.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady returns 503 while the database cannot be reached.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := s.DB.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn("readiness check failed - database: %v", err)
		handleError(w, r, &errors.AppError{
			Code:    errors.ErrCodeInternal,
			Message: "database unavailable",
			Status:  http.StatusServiceUnavailable,
			Err:     err,
		})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
