package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ppetrack/internal/domain"
	"ppetrack/internal/port"
)

// MockObjectRepo is a mock implementation of port.ObjectRepository.
type MockObjectRepo struct {
	mock.Mock
}

func (m *MockObjectRepo) SaveBatch(ctx context.Context, batch *domain.ObjectBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockObjectRepo) CountBySource(ctx context.Context, sourceID uuid.UUID) (map[string]int, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockObjectRepo) PurchaseKeysBySource(ctx context.Context, sourceID uuid.UUID) ([]port.PurchaseKey, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.PurchaseKey), args.Error(1)
}

func (m *MockObjectRepo) DeleteBySource(ctx context.Context, sourceID uuid.UUID) error {
	args := m.Called(ctx, sourceID)
	return args.Error(0)
}
