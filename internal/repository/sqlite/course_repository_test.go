package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/repository"
	"github.com/vytor/cerebro/internal/repository/sqlite"
	"github.com/vytor/cerebro/internal/testutil"
)

type CourseRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	courses repository.CourseRepository
	topics  repository.TopicRepository
}

func (s *CourseRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.courses = sqlite.NewCourseRepository(s.db)
	s.topics = sqlite.NewTopicRepository(s.db)
}

func (s *CourseRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CourseRepositorySuite) course(name string, topics int, completed int) int64 {
	ctx := context.Background()
	id, err := s.courses.Create(ctx, models.Course{Name: name, Description: name + " basics"})
	s.Require().NoError(err)
	for i := 0; i < topics; i++ {
		_, err := s.topics.Create(ctx, models.Topic{CourseID: id, Name: "t", Completed: i < completed})
		s.Require().NoError(err)
	}
	return id
}

func (s *CourseRepositorySuite) TestCreateGetList() {
	ctx := context.Background()
	id := s.course("Chemistry", 0, 0)

	got, err := s.courses.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("Chemistry", got.Name)
	s.Assert().Equal("Chemistry basics", got.Description)

	missing, err := s.courses.Get(ctx, id+1)
	s.Require().NoError(err)
	s.Assert().Nil(missing)

	s.course("Biology", 0, 0)
	all, err := s.courses.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(all, 2)
}

func (s *CourseRepositorySuite) TestTopics() {
	ctx := context.Background()
	courseID := s.course("Go", 2, 0)

	topics, err := s.topics.ListByCourse(ctx, courseID)
	s.Require().NoError(err)
	s.Require().Len(topics, 2)
	s.Assert().False(topics[0].Completed)

	found, err := s.topics.SetCompleted(ctx, topics[0].ID, true)
	s.Require().NoError(err)
	s.Assert().True(found)

	got, err := s.topics.Get(ctx, topics[0].ID)
	s.Require().NoError(err)
	s.Assert().True(got.Completed)

	found, err = s.topics.SetCompleted(ctx, 9999, true)
	s.Require().NoError(err)
	s.Assert().False(found)

	found, err = s.topics.Delete(ctx, topics[1].ID)
	s.Require().NoError(err)
	s.Assert().True(found)
}

func (s *CourseRepositorySuite) TestCreateTopic_UnknownCourseFails() {
	_, err := s.topics.Create(context.Background(), models.Topic{CourseID: 777, Name: "orphan"})
	s.Assert().Error(err)
}

func (s *CourseRepositorySuite) TestCompletion() {
	ctx := context.Background()
	quarter := s.course("Quarter", 4, 1)
	empty := s.course("Empty", 0, 0)

	c, err := s.topics.Completion(ctx, quarter)
	s.Require().NoError(err)
	s.Assert().Equal(4, c.Total)
	s.Assert().Equal(1, c.Completed)
	s.Assert().InDelta(0.25, c.Ratio(), 1e-9)

	c, err = s.topics.Completion(ctx, empty)
	s.Require().NoError(err)
	s.Require().NotNil(c)
	s.Assert().Zero(c.Total)
	s.Assert().Zero(c.Ratio())

	c, err = s.topics.Completion(ctx, 12345)
	s.Require().NoError(err)
	s.Assert().Nil(c)
}

func (s *CourseRepositorySuite) TestCompletionByCourse() {
	ctx := context.Background()
	s.course("A", 3, 3)
	s.course("B", 0, 0)

	all, err := s.topics.CompletionByCourse(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Assert().Equal("A", all[0].Name)
	s.Assert().Equal(1.0, all[0].Ratio())
	s.Assert().Equal(0.0, all[1].Ratio())
}

func (s *CourseRepositorySuite) TestDeleteCourse_CascadesTopics() {
	ctx := context.Background()
	id := s.course("Gone", 2, 1)

	found, err := s.courses.Delete(ctx, id)
	s.Require().NoError(err)
	s.Assert().True(found)

	topics, err := s.topics.ListByCourse(ctx, id)
	s.Require().NoError(err)
	s.Assert().Empty(topics)
}

func TestCourseRepositorySuite(t *testing.T) {
	suite.Run(t, new(CourseRepositorySuite))
}
