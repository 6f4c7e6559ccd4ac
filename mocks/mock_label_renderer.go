package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"etiqo/internal/port"
)

// MockLabelRenderer is a mock implementation of port.LabelRenderer.
type MockLabelRenderer struct {
	mock.Mock
}

func (m *MockLabelRenderer) Render(ctx context.Context, input port.RenderInput) ([]port.RenderedLabel, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.RenderedLabel), args.Error(1)
}
