package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"etiqo/internal/domain"
	"etiqo/internal/service"
)

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) ParseOrder(ctx context.Context, input service.ParseOrderInput) (*domain.ParsedOrder, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedOrder), args.Error(1)
}
