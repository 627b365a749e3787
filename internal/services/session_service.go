package services

import (
	"context"

	"github.com/vytor/cerebro/internal/errors"
	"github.com/vytor/cerebro/internal/logger"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/repository"
	"github.com/vytor/cerebro/internal/studytime"
)

// SessionService handles study session recording and the read-side
// projections built from sessions.
type SessionService interface {
	RecordSession(ctx context.Context, userID int64, s models.StudySession) (*models.StudySession, error)
	GetSession(ctx context.Context, id int64) (*models.StudySession, error)
	ListSessions(ctx context.Context, userID int64) ([]models.StudySession, error)
	DeleteSession(ctx context.Context, id int64) error
	DailySummary(ctx context.Context, userID int64) ([]models.DailyStudySummary, error)
	WeeklySummary(ctx context.Context, userID int64) (models.WeeklySummary, error)
	CurrentStreak(ctx context.Context, userID int64) (int, error)
	SessionsByCourse(ctx context.Context, courseID int64) ([]models.StudySession, error)
	SessionsByTopic(ctx context.Context, topicID int64) ([]models.StudySession, error)
	TotalMinutesByCourse(ctx context.Context, courseID int64) (int64, error)
	TotalMinutesByTopic(ctx context.Context, topicID int64) (int64, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	courseRepo  repository.CourseRepository
	topicRepo   repository.TopicRepository
	progress    ProgressUpdater
	calendar    CalendarConfig
}

// NewSessionService creates a new SessionService. Progress updates triggered
// by a new session or a streak read are best effort: their failures are
// logged and never fail the triggering call.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	courseRepo repository.CourseRepository,
	topicRepo repository.TopicRepository,
	progress ProgressUpdater,
	calendar CalendarConfig,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		courseRepo:  courseRepo,
		topicRepo:   topicRepo,
		progress:    progress,
		calendar:    calendar,
	}
}

func (s *sessionService) RecordSession(ctx context.Context, userID int64, session models.StudySession) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)
	log.Debug("recording session")

	if session.StartTime != nil && session.EndTime != nil && session.EndTime.Before(*session.StartTime) {
		return nil, errors.NewValidationError("endTime", "must not be before startTime")
	}
	if err := s.checkReferences(ctx, session); err != nil {
		return nil, err
	}

	session.ID = 0
	session.UserID = userID
	session.DurationInMinutes = studytime.DurationMinutes(session.StartTime, session.EndTime)

	id, err := s.sessionRepo.Insert(ctx, session)
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return nil, errors.NewStorageError("record session", err)
	}

	if session.DurationInMinutes != nil {
		if _, err := s.progress.UpdateFromSession(ctx, userID, *session.DurationInMinutes); err != nil {
			log.Warn("session %d stored but challenge progress was not updated: %v", id, err)
		}
	}

	stored, err := s.sessionRepo.Get(ctx, id)
	if err != nil || stored == nil {
		log.Warn("could not reload session %d: %v", id, err)
		session.ID = id
		return &session, nil
	}
	return stored, nil
}

func (s *sessionService) checkReferences(ctx context.Context, session models.StudySession) error {
	log := logger.FromContext(ctx)

	if session.CourseID != nil {
		course, err := s.courseRepo.Get(ctx, *session.CourseID)
		if err != nil {
			log.Error("failed to look up course: %v", err)
			return errors.NewStorageError("look up course", err)
		}
		if course == nil {
			return errors.NewValidationError("courseId", "unknown course")
		}
	}
	if session.TopicID != nil {
		topic, err := s.topicRepo.Get(ctx, *session.TopicID)
		if err != nil {
			log.Error("failed to look up topic: %v", err)
			return errors.NewStorageError("look up topic", err)
		}
		if topic == nil {
			return errors.NewValidationError("topicId", "unknown topic")
		}
		if session.CourseID != nil && topic.CourseID != *session.CourseID {
			return errors.NewValidationError("topicId", "topic belongs to another course")
		}
	}
	return nil
}

func (s *sessionService) GetSession(ctx context.Context, id int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting session: id=%d", id)

	session, err := s.sessionRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, errors.NewStorageError("get session", err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("session", id)
	}
	return session, nil
}

func (s *sessionService) ListSessions(ctx context.Context, userID int64) ([]models.StudySession, error) {
	return s.list(ctx, "list sessions", models.SessionFilter{UserID: userID})
}

func (s *sessionService) SessionsByCourse(ctx context.Context, courseID int64) ([]models.StudySession, error) {
	return s.list(ctx, "list sessions by course", models.SessionFilter{CourseID: courseID})
}

func (s *sessionService) SessionsByTopic(ctx context.Context, topicID int64) ([]models.StudySession, error) {
	return s.list(ctx, "list sessions by topic", models.SessionFilter{TopicID: topicID})
}

func (s *sessionService) list(ctx context.Context, op string, filter models.SessionFilter) ([]models.StudySession, error) {
	log := logger.FromContext(ctx)
	log.Debug("%s: user_id=%d, course_id=%d, topic_id=%d", op, filter.UserID, filter.CourseID, filter.TopicID)

	sessions, err := s.sessionRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to %s: %v", op, err)
		return nil, errors.NewStorageError(op, err)
	}
	return sessions, nil
}

// DeleteSession removes the session. Progress it already contributed stays.
func (s *sessionService) DeleteSession(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting session: id=%d", id)

	found, err := s.sessionRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete session: %v", err)
		return errors.NewStorageError("delete session", err)
	}
	if !found {
		return errors.NewNotFoundError("session", id)
	}
	return nil
}

func (s *sessionService) DailySummary(ctx context.Context, userID int64) ([]models.DailyStudySummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("building daily summary: user_id=%d", userID)

	sessions, err := s.sessionRepo.List(ctx, models.SessionFilter{UserID: userID})
	if err != nil {
		log.Error("failed to load sessions for daily summary: %v", err)
		return nil, errors.NewStorageError("daily summary", err)
	}
	return studytime.DailySummary(sessions, s.calendar.location()), nil
}

func (s *sessionService) WeeklySummary(ctx context.Context, userID int64) (models.WeeklySummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("building weekly summary: user_id=%d", userID)

	now := s.calendar.now()
	loc := s.calendar.location()
	monday := studytime.WeekStart(now, loc)

	sessions, err := s.sessionRepo.List(ctx, models.SessionFilter{UserID: userID, Since: &monday})
	if err != nil {
		log.Error("failed to load sessions for weekly summary: %v", err)
		return models.WeeklySummary{}, errors.NewStorageError("weekly summary", err)
	}

	summary, skipped := studytime.WeeklySummary(sessions, now, loc)
	if skipped > 0 {
		log.Warn("weekly summary skipped %d sessions without a duration", skipped)
	}
	return summary, nil
}

// CurrentStreak computes the streak ending today and pushes it into the
// user's STREAK challenges.
func (s *sessionService) CurrentStreak(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)
	log.Debug("computing current streak")

	starts, err := s.sessionRepo.StartTimes(ctx, userID)
	if err != nil {
		log.Error("failed to load study dates: %v", err)
		return 0, errors.NewStorageError("current streak", err)
	}

	dates := studytime.DistinctStudyDates(starts, s.calendar.location())
	streak := studytime.CurrentStreak(dates, s.calendar.today())

	if _, err := s.progress.UpdateFromStreak(ctx, userID, streak); err != nil {
		log.Warn("streak computed but challenge progress was not updated: %v", err)
	}
	return streak, nil
}

func (s *sessionService) TotalMinutesByCourse(ctx context.Context, courseID int64) (int64, error) {
	return s.total(ctx, "total minutes by course", models.SessionFilter{CourseID: courseID})
}

func (s *sessionService) TotalMinutesByTopic(ctx context.Context, topicID int64) (int64, error) {
	return s.total(ctx, "total minutes by topic", models.SessionFilter{TopicID: topicID})
}

func (s *sessionService) total(ctx context.Context, op string, filter models.SessionFilter) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("%s: course_id=%d, topic_id=%d", op, filter.CourseID, filter.TopicID)

	total, err := s.sessionRepo.TotalMinutes(ctx, filter)
	if err != nil {
		log.Error("failed to compute %s: %v", op, err)
		return 0, errors.NewStorageError(op, err)
	}
	return total, nil
}
