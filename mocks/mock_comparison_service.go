package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docintel/internal/domain"
	"docintel/internal/service"
)

// MockComparisonService is a mock implementation of service.ComparisonService.
type MockComparisonService struct {
	mock.Mock
}

func (m *MockComparisonService) Compare(ctx context.Context, documentPath string, opts service.CompareOptions) (*domain.ComparisonRecord, error) {
	args := m.Called(ctx, documentPath, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComparisonRecord), args.Error(1)
}

func (m *MockComparisonService) Batch(ctx context.Context, directory string, opts service.CompareOptions) ([]domain.ComparisonRecord, error) {
	args := m.Called(ctx, directory, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComparisonRecord), args.Error(1)
}

func (m *MockComparisonService) History() []domain.ComparisonRecord {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ComparisonRecord)
}

func (m *MockComparisonService) Summary() domain.RunSummary {
	args := m.Called()
	return args.Get(0).(domain.RunSummary)
}

func (m *MockComparisonService) Report() domain.Report {
	args := m.Called()
	return args.Get(0).(domain.Report)
}

func (m *MockComparisonService) AzureAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockComparisonService) GoogleAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}
