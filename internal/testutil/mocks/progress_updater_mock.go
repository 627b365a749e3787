package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProgressUpdater is a mock implementation of services.ProgressUpdater
type MockProgressUpdater struct {
	mock.Mock
}

func (m *MockProgressUpdater) UpdateFromSession(ctx context.Context, userID int64, minutes int64) (int, error) {
	args := m.Called(ctx, userID, minutes)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressUpdater) UpdateFromStreak(ctx context.Context, userID int64, days int) (int, error) {
	args := m.Called(ctx, userID, days)
	return args.Int(0), args.Error(1)
}
