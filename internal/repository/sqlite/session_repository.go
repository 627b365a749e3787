package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/cerebro/internal/logger"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/repository"
)

var sessionColumns = []string{
	"id", "user_id", "started_at", "ended_at", "duration_in_minutes",
	"course_id", "topic_id", "created_at",
}

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (models.StudySession, error) {
	var (
		s                 models.StudySession
		started, ended    sql.NullTime
		duration          sql.NullInt64
		courseID, topicID sql.NullInt64
	)
	err := row.Scan(&s.ID, &s.UserID, &started, &ended, &duration, &courseID, &topicID, &s.CreatedAt)
	if err != nil {
		return s, err
	}
	s.StartTime = timePtr(started)
	s.EndTime = timePtr(ended)
	s.DurationInMinutes = int64Ptr(duration)
	s.CourseID = int64Ptr(courseID)
	s.TopicID = int64Ptr(topicID)
	return s, nil
}

func applySessionFilter(q squirrel.SelectBuilder, filter models.SessionFilter) squirrel.SelectBuilder {
	if filter.UserID != 0 {
		q = q.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.CourseID != 0 {
		q = q.Where(squirrel.Eq{"course_id": filter.CourseID})
	}
	if filter.TopicID != 0 {
		q = q.Where(squirrel.Eq{"topic_id": filter.TopicID})
	}
	if filter.Since != nil {
		q = q.Where(squirrel.GtOrEq{"started_at": filter.Since.UTC()})
	}
	return q
}

func (r *sessionRepository) Insert(ctx context.Context, s models.StudySession) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: user_id=%d", s.UserID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO study_sessions (user_id, started_at, ended_at, duration_in_minutes, course_id, topic_id)
VALUES (?, ?, ?, ?, ?, ?)
`, s.UserID, utc(s.StartTime), utc(s.EndTime), nullableInt64(s.DurationInMinutes),
		nullableInt64(s.CourseID), nullableInt64(s.TopicID))
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get session id: %v", err)
		return 0, err
	}
	log.Debug("session inserted: id=%d", id)
	return id, nil
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%d", id)

	query, args, err := sqlBuilder.Select(sessionColumns...).From("study_sessions").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	s, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing sessions with filter: user_id=%d, course_id=%d, topic_id=%d",
		filter.UserID, filter.CourseID, filter.TopicID)

	q := sqlBuilder.Select(sessionColumns...).From("study_sessions")
	q = applySessionFilter(q, filter).OrderBy("started_at DESC", "id DESC")

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	sessions := []models.StudySession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}

	log.Debug("found %d sessions", len(sessions))
	return sessions, rows.Err()
}

func (r *sessionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("deleting session: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete session: %v", err)
		return false, err
	}
	return affected(res)
}

func (r *sessionRepository) StartTimes(ctx context.Context, userID int64) ([]time.Time, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing session start times: user_id=%d", userID)

	query, args, err := sqlBuilder.Select("started_at").From("study_sessions").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"started_at": nil}).
		OrderBy("started_at DESC").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list start times: %v", err)
		return nil, err
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			log.Error("failed to scan start time: %v", err)
			return nil, err
		}
		starts = append(starts, t.UTC())
	}
	return starts, rows.Err()
}

func (r *sessionRepository) TotalMinutes(ctx context.Context, filter models.SessionFilter) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("summing session minutes: course_id=%d, topic_id=%d", filter.CourseID, filter.TopicID)

	q := applySessionFilter(sqlBuilder.Select("COALESCE(SUM(duration_in_minutes), 0)").From("study_sessions"), filter)
	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Error("failed to sum session minutes: %v", err)
		return 0, err
	}
	return total, nil
}
