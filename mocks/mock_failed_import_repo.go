package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ppetrack/internal/domain"
)

// MockFailedImportRepo is a mock implementation of port.FailedImportRepository.
type MockFailedImportRepo struct {
	mock.Mock
}

func (m *MockFailedImportRepo) Create(ctx context.Context, f *domain.FailedImport) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFailedImportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FailedImport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FailedImport), args.Error(1)
}

func (m *MockFailedImportRepo) ListUnfixed(ctx context.Context) ([]domain.FailedImport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FailedImport), args.Error(1)
}

func (m *MockFailedImportRepo) MarkFixed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
