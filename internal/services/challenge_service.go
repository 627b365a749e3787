package services

import (
	"context"

	"github.com/vytor/cerebro/internal/challenge"
	"github.com/vytor/cerebro/internal/errors"
	"github.com/vytor/cerebro/internal/logger"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/repository"
)

// ProgressUpdater advances challenge progress for one user.
type ProgressUpdater interface {
	UpdateFromSession(ctx context.Context, userID int64, minutes int64) (int, error)
	UpdateFromStreak(ctx context.Context, userID int64, days int) (int, error)
}

// ChallengeService handles challenge-related business logic
type ChallengeService interface {
	ProgressUpdater
	CreateChallenge(ctx context.Context, userID int64, ch models.Challenge) (*models.Challenge, error)
	ListChallenges(ctx context.Context, t models.ChallengeType) ([]models.Challenge, error)
	GetChallenge(ctx context.Context, id int64) (*models.Challenge, error)
	UpdateChallenge(ctx context.Context, id int64, ch models.Challenge) (*models.Challenge, error)
	DeleteChallenge(ctx context.Context, id int64) error
	ProgressForUser(ctx context.Context, userID int64) ([]models.ProgressWithChallenge, error)
}

type challengeService struct {
	challengeRepo repository.ChallengeRepository
	progressRepo  repository.ProgressRepository
	calendar      CalendarConfig
}

// NewChallengeService creates a new ChallengeService
func NewChallengeService(challengeRepo repository.ChallengeRepository, progressRepo repository.ProgressRepository, calendar CalendarConfig) ChallengeService {
	return &challengeService{
		challengeRepo: challengeRepo,
		progressRepo:  progressRepo,
		calendar:      calendar,
	}
}

func validateChallenge(ch models.Challenge) error {
	if field, reason, ok := challenge.Validate(ch); !ok {
		return errors.NewValidationError(field, reason)
	}
	return nil
}

func (s *challengeService) CreateChallenge(ctx context.Context, userID int64, ch models.Challenge) (*models.Challenge, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating challenge: type=%s, user_id=%d", ch.Type, userID)

	if err := validateChallenge(ch); err != nil {
		return nil, err
	}

	created, err := s.challengeRepo.Create(ctx, ch, userID, s.calendar.today())
	if err != nil {
		log.Error("failed to create challenge: %v", err)
		return nil, errors.NewStorageError("create challenge", err)
	}
	return created, nil
}

func (s *challengeService) ListChallenges(ctx context.Context, t models.ChallengeType) ([]models.Challenge, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing challenges: type=%s", t)

	var (
		challenges []models.Challenge
		err        error
	)
	switch {
	case t == "":
		challenges, err = s.challengeRepo.List(ctx)
	case !t.Valid():
		return nil, errors.NewValidationError("type", "unknown challenge type")
	default:
		challenges, err = s.challengeRepo.ListByType(ctx, t)
	}
	if err != nil {
		log.Error("failed to list challenges: %v", err)
		return nil, errors.NewStorageError("list challenges", err)
	}
	return challenges, nil
}

func (s *challengeService) GetChallenge(ctx context.Context, id int64) (*models.Challenge, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting challenge: id=%d", id)

	ch, err := s.challengeRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get challenge: %v", err)
		return nil, errors.NewStorageError("get challenge", err)
	}
	if ch == nil {
		return nil, errors.NewNotFoundError("challenge", id)
	}
	return ch, nil
}

// UpdateChallenge replaces the challenge's editable fields. Existing progress
// is left as it is, including completion.
func (s *challengeService) UpdateChallenge(ctx context.Context, id int64, ch models.Challenge) (*models.Challenge, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating challenge: id=%d", id)

	ch.ID = id
	if err := validateChallenge(ch); err != nil {
		return nil, err
	}

	found, err := s.challengeRepo.Update(ctx, ch)
	if err != nil {
		log.Error("failed to update challenge: %v", err)
		return nil, errors.NewStorageError("update challenge", err)
	}
	if !found {
		return nil, errors.NewNotFoundError("challenge", id)
	}
	return s.GetChallenge(ctx, id)
}

func (s *challengeService) DeleteChallenge(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting challenge: id=%d", id)

	found, err := s.challengeRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete challenge: %v", err)
		return errors.NewStorageError("delete challenge", err)
	}
	if !found {
		return errors.NewNotFoundError("challenge", id)
	}
	return nil
}

func (s *challengeService) ProgressForUser(ctx context.Context, userID int64) ([]models.ProgressWithChallenge, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing progress: user_id=%d", userID)

	progress, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, errors.NewStorageError("list progress", err)
	}
	return progress, nil
}

// UpdateFromSession feeds one finished session into every HOURS and
// SESSION_COUNT challenge the user has progress for.
func (s *challengeService) UpdateFromSession(ctx context.Context, userID int64, minutes int64) (int, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)
	log.Debug("updating progress from session: minutes=%d", minutes)

	today := s.calendar.today()
	changed, err := s.progressRepo.Apply(ctx, userID,
		[]models.ChallengeType{models.ChallengeHours, models.ChallengeSessionCount},
		func(ch models.Challenge, p models.ChallengeProgress) (models.ChallengeProgress, bool) {
			next, ok := challenge.ApplySession(ch, p, minutes, today)
			if ok && next.Completed && !p.Completed {
				log.Info("challenge %d completed", ch.ID)
			}
			return next, ok
		})
	if err != nil {
		log.Error("failed to update progress from session: %v", err)
		return 0, errors.NewStorageError("update progress from session", err)
	}
	return changed, nil
}

// UpdateFromStreak sets every STREAK challenge the user has progress for to
// the given streak length.
func (s *challengeService) UpdateFromStreak(ctx context.Context, userID int64, days int) (int, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)
	log.Debug("updating progress from streak: days=%d", days)

	today := s.calendar.today()
	changed, err := s.progressRepo.Apply(ctx, userID,
		[]models.ChallengeType{models.ChallengeStreak},
		func(ch models.Challenge, p models.ChallengeProgress) (models.ChallengeProgress, bool) {
			next, ok := challenge.ApplyStreak(ch, p, days, today)
			if ok && next.Completed && !p.Completed {
				log.Info("challenge %d completed", ch.ID)
			}
			return next, ok
		})
	if err != nil {
		log.Error("failed to update progress from streak: %v", err)
		return 0, errors.NewStorageError("update progress from streak", err)
	}
	return changed, nil
}
