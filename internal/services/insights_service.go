package services

import (
	"context"
	"math"

	"github.com/vytor/cerebro/internal/errors"
	"github.com/vytor/cerebro/internal/logger"
	"github.com/vytor/cerebro/internal/repository"
)

// InsightsService derives course completion from manually completed topics.
type InsightsService interface {
	CourseCompletion(ctx context.Context, courseID int64) (float64, error)
	CompletionPercentages(ctx context.Context) (map[string]float64, error)
}

type insightsService struct {
	topicRepo repository.TopicRepository
}

// NewInsightsService creates a new InsightsService
func NewInsightsService(topicRepo repository.TopicRepository) InsightsService {
	return &insightsService{topicRepo: topicRepo}
}

// CourseCompletion returns completed/total topics in [0,1]; a course with no
// topics is 0.
func (s *insightsService) CourseCompletion(ctx context.Context, courseID int64) (float64, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing course completion: course_id=%d", courseID)

	c, err := s.topicRepo.Completion(ctx, courseID)
	if err != nil {
		log.Error("failed to compute course completion: %v", err)
		return 0, errors.NewStorageError("course completion", err)
	}
	if c == nil {
		return 0, errors.NewNotFoundError("course", courseID)
	}
	return c.Ratio(), nil
}

// CompletionPercentages maps course name to completion in percent, rounded
// to two decimals. Courses sharing a name collapse to the last one listed.
func (s *insightsService) CompletionPercentages(ctx context.Context) (map[string]float64, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing completion percentages")

	all, err := s.topicRepo.CompletionByCourse(ctx)
	if err != nil {
		log.Error("failed to compute completion percentages: %v", err)
		return nil, errors.NewStorageError("completion percentages", err)
	}

	out := make(map[string]float64, len(all))
	for _, c := range all {
		out[c.Name] = math.Round(c.Ratio()*100*100) / 100
	}
	return out, nil
}
