package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/cerebro/internal/models"
)

// MockCourseRepository is a mock implementation of repository.CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, c models.Course) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepository) Get(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepository) List(ctx context.Context) ([]models.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTopicRepository is a mock implementation of repository.TopicRepository
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) Create(ctx context.Context, t models.Topic) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTopicRepository) Get(ctx context.Context, id int64) (*models.Topic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Topic), args.Error(1)
}

func (m *MockTopicRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Topic, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Topic), args.Error(1)
}

func (m *MockTopicRepository) SetCompleted(ctx context.Context, id int64, completed bool) (bool, error) {
	args := m.Called(ctx, id, completed)
	return args.Bool(0), args.Error(1)
}

func (m *MockTopicRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTopicRepository) Completion(ctx context.Context, courseID int64) (*models.CourseCompletion, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CourseCompletion), args.Error(1)
}

func (m *MockTopicRepository) CompletionByCourse(ctx context.Context) ([]models.CourseCompletion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CourseCompletion), args.Error(1)
}
