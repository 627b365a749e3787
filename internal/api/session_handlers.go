package api

import (
	"net/http"

	"github.com/vytor/cerebro/internal/logger"
	"github.com/vytor/cerebro/internal/models"
)

type sessionRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	CourseID  *int64 `json:"courseId"`
	TopicID   *int64 `json:"topicId"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req sessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	start, err := parseInstant("startTime", req.StartTime, s.location())
	if err != nil {
		handleError(w, r, err)
		return
	}
	end, err := parseInstant("endTime", req.EndTime, s.location())
	if err != nil {
		handleError(w, r, err)
		return
	}

	stored, err := s.Sessions.RecordSession(ctx, userIDFromContext(ctx), models.StudySession{
		StartTime: start,
		EndTime:   end,
		CourseID:  req.CourseID,
		TopicID:   req.TopicID,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("session recorded: id=%d", stored.ID)
	writeJSON(w, r, http.StatusOK, stored)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.Sessions.ListSessions(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	session, err := s.Sessions.GetSession(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Sessions.DeleteSession(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	daily, err := s.Sessions.DailySummary(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, daily)
}

func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	weekly, err := s.Sessions.WeeklySummary(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, weekly)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.Sessions.CurrentStreak(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, streak)
}

func (s *Server) handleSessionsByCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	sessions, err := s.Sessions.SessionsByCourse(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessions)
}

func (s *Server) handleSessionsByTopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	sessions, err := s.Sessions.SessionsByTopic(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessions)
}

func (s *Server) handleTotalByCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	total, err := s.Sessions.TotalMinutesByCourse(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, total)
}

func (s *Server) handleTotalByTopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	total, err := s.Sessions.TotalMinutesByTopic(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, total)
}

func (s *Server) handleCompletionPercentages(w http.ResponseWriter, r *http.Request) {
	pct, err := s.Insights.CompletionPercentages(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, pct)
}

func (s *Server) handleCourseCompletion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "courseId")
	if err != nil {
		handleError(w, r, err)
		return
	}
	ratio, err := s.Insights.CourseCompletion(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ratio)
}
