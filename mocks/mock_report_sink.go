package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockReportSink is a mock implementation of port.ReportSink.
type MockReportSink struct {
	mock.Mock
}

func (m *MockReportSink) Write(ctx context.Context, name, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, name, contentType, data)
	return args.String(0), args.Error(1)
}
