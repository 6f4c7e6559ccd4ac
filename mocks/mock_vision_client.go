package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockVisionClient is a mock implementation of port.VisionClient.
type MockVisionClient struct {
	mock.Mock
}

func (m *MockVisionClient) RecognizeText(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}
