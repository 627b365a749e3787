package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/repository"
	"github.com/vytor/cerebro/internal/repository/sqlite"
	"github.com/vytor/cerebro/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

type SessionRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	repo    repository.SessionRepository
	courses repository.CourseRepository
	topics  repository.TopicRepository
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionRepository(s.db)
	s.courses = sqlite.NewCourseRepository(s.db)
	s.topics = sqlite.NewTopicRepository(s.db)
}

func (s *SessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SessionRepositorySuite) insert(userID int64, start time.Time, minutes int64, courseID, topicID *int64) int64 {
	end := start.Add(time.Duration(minutes) * time.Minute)
	id, err := s.repo.Insert(context.Background(), models.StudySession{
		UserID:            userID,
		StartTime:         &start,
		EndTime:           &end,
		DurationInMinutes: &minutes,
		CourseID:          courseID,
		TopicID:           topicID,
	})
	s.Require().NoError(err)
	return id
}

func (s *SessionRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	s.Require().NoError(err)
	start := time.Date(2026, time.March, 9, 21, 15, 0, 0, saoPaulo)

	id := s.insert(7, start, 50, nil, nil)
	s.Assert().Greater(id, int64(0))

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(int64(7), got.UserID)
	s.Assert().True(start.Equal(*got.StartTime), "start instant survives the round trip")
	s.Assert().Equal(time.UTC, got.StartTime.Location())
	s.Assert().Equal(int64(50), *got.DurationInMinutes)
	s.Assert().Nil(got.CourseID)
	s.Assert().False(got.CreatedAt.IsZero())
}

func (s *SessionRepositorySuite) TestInsert_WithoutBounds() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.StudySession{UserID: 1})
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Nil(got.StartTime)
	s.Assert().Nil(got.EndTime)
	s.Assert().Nil(got.DurationInMinutes)
}

func (s *SessionRepositorySuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), 99999)
	s.Assert().NoError(err)
	s.Assert().Nil(got)
}

func (s *SessionRepositorySuite) TestList_WithFilters() {
	ctx := context.Background()
	courseID, err := s.courses.Create(ctx, models.Course{Name: "Algebra"})
	s.Require().NoError(err)
	topicID, err := s.topics.Create(ctx, models.Topic{CourseID: courseID, Name: "Groups"})
	s.Require().NoError(err)

	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	s.insert(1, base, 30, &courseID, &topicID)
	s.insert(1, base.AddDate(0, 0, 1), 20, &courseID, nil)
	s.insert(1, base.AddDate(0, 0, -3), 10, nil, nil)
	s.insert(2, base, 45, &courseID, nil)

	all, err := s.repo.List(ctx, models.SessionFilter{UserID: 1})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Assert().True(all[0].StartTime.After(*all[1].StartTime), "newest first")

	byCourse, err := s.repo.List(ctx, models.SessionFilter{CourseID: courseID})
	s.Require().NoError(err)
	s.Assert().Len(byCourse, 3)

	byTopic, err := s.repo.List(ctx, models.SessionFilter{TopicID: topicID})
	s.Require().NoError(err)
	s.Assert().Len(byTopic, 1)

	since, err := s.repo.List(ctx, models.SessionFilter{UserID: 1, Since: &base})
	s.Require().NoError(err)
	s.Assert().Len(since, 2, "start equal to the bound is included")
}

func (s *SessionRepositorySuite) TestList_SinceComparesInstantsAcrossZones() {
	ctx := context.Background()
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	s.Require().NoError(err)

	// 22:00 in Sao Paulo on the 1st is 01:00 UTC on the 2nd.
	s.insert(1, time.Date(2026, time.March, 1, 22, 0, 0, 0, saoPaulo), 15, nil, nil)

	bound := time.Date(2026, time.March, 2, 0, 30, 0, 0, time.UTC)
	got, err := s.repo.List(ctx, models.SessionFilter{UserID: 1, Since: &bound})
	s.Require().NoError(err)
	s.Assert().Len(got, 1)
}

func (s *SessionRepositorySuite) TestStartTimes() {
	ctx := context.Background()
	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	s.insert(1, base, 30, nil, nil)
	s.insert(1, base.Add(2*time.Hour), 30, nil, nil)
	s.insert(2, base, 30, nil, nil)
	_, err := s.repo.Insert(ctx, models.StudySession{UserID: 1})
	s.Require().NoError(err)

	starts, err := s.repo.StartTimes(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(starts, 2)
	s.Assert().True(starts[0].Equal(base.Add(2 * time.Hour)))
}

func (s *SessionRepositorySuite) TestTotalMinutes() {
	ctx := context.Background()
	courseID, err := s.courses.Create(ctx, models.Course{Name: "Physics"})
	s.Require().NoError(err)

	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	s.insert(1, base, 30, &courseID, nil)
	s.insert(1, base, 25, &courseID, nil)
	s.insert(1, base, 99, nil, nil)

	total, err := s.repo.TotalMinutes(ctx, models.SessionFilter{CourseID: courseID})
	s.Require().NoError(err)
	s.Assert().Equal(int64(55), total)

	empty, err := s.repo.TotalMinutes(ctx, models.SessionFilter{CourseID: courseID + 100})
	s.Require().NoError(err)
	s.Assert().Zero(empty)
}

func (s *SessionRepositorySuite) TestDelete() {
	ctx := context.Background()
	id := s.insert(1, time.Now(), 10, nil, nil)

	found, err := s.repo.Delete(ctx, id)
	s.Require().NoError(err)
	s.Assert().True(found)

	found, err = s.repo.Delete(ctx, id)
	s.Require().NoError(err)
	s.Assert().False(found)
}

func (s *SessionRepositorySuite) TestDeletingCourseClearsSessionReference() {
	ctx := context.Background()
	courseID, err := s.courses.Create(ctx, models.Course{Name: "History"})
	s.Require().NoError(err)
	id := s.insert(1, time.Now(), 10, ptr(courseID), nil)

	_, err = s.courses.Delete(ctx, courseID)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Nil(got.CourseID)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
