package services

import (
	"context"
	"strings"

	"github.com/vytor/cerebro/internal/errors"
	"github.com/vytor/cerebro/internal/logger"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/repository"
)

// CourseService handles courses and their topics
type CourseService interface {
	CreateCourse(ctx context.Context, c models.Course) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	CreateTopic(ctx context.Context, t models.Topic) (*models.Topic, error)
	TopicsByCourse(ctx context.Context, courseID int64) ([]models.Topic, error)
	ToggleTopicComplete(ctx context.Context, id int64, completed bool) (*models.Topic, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
	topicRepo  repository.TopicRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repository.CourseRepository, topicRepo repository.TopicRepository) CourseService {
	return &courseService{courseRepo: courseRepo, topicRepo: topicRepo}
}

func (s *courseService) CreateCourse(ctx context.Context, c models.Course) (*models.Course, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating course: name=%s", c.Name)

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	id, err := s.courseRepo.Create(ctx, c)
	if err != nil {
		log.Error("failed to create course: %v", err)
		return nil, errors.NewStorageError("create course", err)
	}
	c.ID = id
	return &c, nil
}

func (s *courseService) ListCourses(ctx context.Context) ([]models.Course, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing courses")

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		log.Error("failed to list courses: %v", err)
		return nil, errors.NewStorageError("list courses", err)
	}
	return courses, nil
}

func (s *courseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting course: id=%d", id)

	course, err := s.courseRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get course: %v", err)
		return nil, errors.NewStorageError("get course", err)
	}
	if course == nil {
		return nil, errors.NewNotFoundError("course", id)
	}
	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting course: id=%d", id)

	found, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete course: %v", err)
		return errors.NewStorageError("delete course", err)
	}
	if !found {
		return errors.NewNotFoundError("course", id)
	}
	return nil
}

func (s *courseService) CreateTopic(ctx context.Context, t models.Topic) (*models.Topic, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating topic: course_id=%d", t.CourseID)

	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if _, err := s.GetCourse(ctx, t.CourseID); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewValidationError("courseId", "unknown course")
		}
		return nil, err
	}

	id, err := s.topicRepo.Create(ctx, t)
	if err != nil {
		log.Error("failed to create topic: %v", err)
		return nil, errors.NewStorageError("create topic", err)
	}
	t.ID = id
	return &t, nil
}

func (s *courseService) TopicsByCourse(ctx context.Context, courseID int64) ([]models.Topic, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing topics: course_id=%d", courseID)

	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	topics, err := s.topicRepo.ListByCourse(ctx, courseID)
	if err != nil {
		log.Error("failed to list topics: %v", err)
		return nil, errors.NewStorageError("list topics", err)
	}
	return topics, nil
}

// ToggleTopicComplete sets the topic's manual completion flag.
func (s *courseService) ToggleTopicComplete(ctx context.Context, id int64, completed bool) (*models.Topic, error) {
	log := logger.FromContext(ctx)
	log.Debug("setting topic completion: id=%d, completed=%t", id, completed)

	found, err := s.topicRepo.SetCompleted(ctx, id, completed)
	if err != nil {
		log.Error("failed to update topic: %v", err)
		return nil, errors.NewStorageError("update topic", err)
	}
	if !found {
		return nil, errors.NewNotFoundError("topic", id)
	}

	topic, err := s.topicRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to reload topic: %v", err)
		return nil, errors.NewStorageError("get topic", err)
	}
	if topic == nil {
		return nil, errors.NewNotFoundError("topic", id)
	}
	return topic, nil
}
