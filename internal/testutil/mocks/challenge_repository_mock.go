package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/repository"
)

// MockChallengeRepository is a mock implementation of repository.ChallengeRepository
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Create(ctx context.Context, ch models.Challenge, userID int64, today models.Date) (*models.Challenge, error) {
	args := m.Called(ctx, ch, userID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) Get(ctx context.Context, id int64) (*models.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) List(ctx context.Context) ([]models.Challenge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) ListByType(ctx context.Context, t models.ChallengeType) ([]models.Challenge, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) Update(ctx context.Context, ch models.Challenge) (bool, error) {
	args := m.Called(ctx, ch)
	return args.Bool(0), args.Error(1)
}

func (m *MockChallengeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) ListByUser(ctx context.Context, userID int64) ([]models.ProgressWithChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressWithChallenge), args.Error(1)
}

func (m *MockProgressRepository) GetForUser(ctx context.Context, userID, challengeID int64) (*models.ChallengeProgress, error) {
	args := m.Called(ctx, userID, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeProgress), args.Error(1)
}

func (m *MockProgressRepository) ListByChallenge(ctx context.Context, challengeID int64) ([]models.ChallengeProgress, error) {
	args := m.Called(ctx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChallengeProgress), args.Error(1)
}

func (m *MockProgressRepository) Apply(ctx context.Context, userID int64, types []models.ChallengeType, fn repository.ProgressFunc) (int, error) {
	args := m.Called(ctx, userID, types, fn)
	return args.Int(0), args.Error(1)
}
