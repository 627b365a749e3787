package repository

import (
	"context"
	"time"

	"github.com/vytor/cerebro/internal/models"
)

// SessionRepository handles study session data access
type SessionRepository interface {
	Insert(ctx context.Context, s models.StudySession) (int64, error)
	Get(ctx context.Context, id int64) (*models.StudySession, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.StudySession, error)
	Delete(ctx context.Context, id int64) (bool, error)
	StartTimes(ctx context.Context, userID int64) ([]time.Time, error)
	TotalMinutes(ctx context.Context, filter models.SessionFilter) (int64, error)
}

// ChallengeRepository handles challenge data access. Progress rows live and
// die with their challenge.
type ChallengeRepository interface {
	Create(ctx context.Context, ch models.Challenge, userID int64, today models.Date) (*models.Challenge, error)
	Get(ctx context.Context, id int64) (*models.Challenge, error)
	List(ctx context.Context) ([]models.Challenge, error)
	ListByType(ctx context.Context, t models.ChallengeType) ([]models.Challenge, error)
	Update(ctx context.Context, ch models.Challenge) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ProgressFunc computes the next state of one progress row. Returning false
// leaves the row untouched.
type ProgressFunc func(ch models.Challenge, p models.ChallengeProgress) (models.ChallengeProgress, bool)

// ProgressRepository handles challenge progress data access
type ProgressRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.ProgressWithChallenge, error)
	GetForUser(ctx context.Context, userID, challengeID int64) (*models.ChallengeProgress, error)
	ListByChallenge(ctx context.Context, challengeID int64) ([]models.ChallengeProgress, error)
	// Apply runs fn over the user's progress rows for challenges of the given
	// types inside one transaction and returns how many rows changed.
	// Challenges without a row for the user are skipped.
	Apply(ctx context.Context, userID int64, types []models.ChallengeType, fn ProgressFunc) (int, error)
}

// CourseRepository handles course data access
type CourseRepository interface {
	Create(ctx context.Context, c models.Course) (int64, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TopicRepository handles topic data access
type TopicRepository interface {
	Create(ctx context.Context, t models.Topic) (int64, error)
	Get(ctx context.Context, id int64) (*models.Topic, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Topic, error)
	SetCompleted(ctx context.Context, id int64, completed bool) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Completion(ctx context.Context, courseID int64) (*models.CourseCompletion, error)
	CompletionByCourse(ctx context.Context) ([]models.CourseCompletion, error)
}
