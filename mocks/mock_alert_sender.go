package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAlertSender is a mock implementation of port.AlertSender.
type MockAlertSender struct {
	mock.Mock
}

func (m *MockAlertSender) SendReviewAlert(ctx context.Context, orderRef, notes string) error {
	args := m.Called(ctx, orderRef, notes)
	return args.Error(0)
}
