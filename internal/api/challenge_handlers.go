package api

import (
	"net/http"
	"strings"

	"github.com/vytor/cerebro/internal/logger"
	"github.com/vytor/cerebro/internal/models"
)

type challengeRequest struct {
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Type          models.ChallengeType `json:"type"`
	TargetValue   int                  `json:"targetValue"`
	TargetMinutes *int                 `json:"targetMinutes"`
	StartDate     models.Date          `json:"startDate"`
	EndDate       models.Date          `json:"endDate"`
}

func (req challengeRequest) toModel() models.Challenge {
	return models.Challenge{
		Title:         req.Title,
		Description:   req.Description,
		Type:          models.ChallengeType(strings.ToUpper(string(req.Type))),
		TargetValue:   req.TargetValue,
		TargetMinutes: req.TargetMinutes,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
}

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	t := models.ChallengeType(strings.ToUpper(r.URL.Query().Get("type")))
	challenges, err := s.Challenges.ListChallenges(r.Context(), t)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, challenges)
}

func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req challengeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	created, err := s.Challenges.CreateChallenge(ctx, userIDFromContext(ctx), req.toModel())
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(ctx).Info("challenge created: id=%d, type=%s", created.ID, created.Type)
	writeJSON(w, r, http.StatusOK, created)
}

func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	ch, err := s.Challenges.GetChallenge(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ch)
}

func (s *Server) handleUpdateChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req challengeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	updated, err := s.Challenges.UpdateChallenge(r.Context(), id, req.toModel())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Challenges.DeleteChallenge(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleProgressForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		handleError(w, r, err)
		return
	}
	progress, err := s.Challenges.ProgressForUser(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progress)
}
