package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"etiqo/internal/domain"
)

// MockLabelService is a mock implementation of service.LabelService.
type MockLabelService struct {
	mock.Mock
}

func (m *MockLabelService) GenerateLabels(ctx context.Context, orderRef string, items []domain.OrderItem) (*domain.BatchResult, error) {
	args := m.Called(ctx, orderRef, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

func (m *MockLabelService) DownloadLabel(ctx context.Context, key string) ([]byte, string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
