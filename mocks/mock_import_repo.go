package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ppetrack/internal/domain"
)

// MockImportRepo is a mock implementation of port.ImportRepository.
type MockImportRepo struct {
	mock.Mock
}

func (m *MockImportRepo) Create(ctx context.Context, imp *domain.DataImport) error {
	args := m.Called(ctx, imp)
	return args.Error(0)
}

func (m *MockImportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DataImport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DataImport), args.Error(1)
}

func (m *MockImportRepo) FindByStatus(ctx context.Context, dataFile domain.DataFile, status domain.ImportStatus) ([]domain.DataImport, error) {
	args := m.Called(ctx, dataFile, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DataImport), args.Error(1)
}

func (m *MockImportRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ImportStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockImportRepo) CountByStatus(ctx context.Context, dataFile domain.DataFile, status domain.ImportStatus) (int, error) {
	args := m.Called(ctx, dataFile, status)
	return args.Int(0), args.Error(1)
}
