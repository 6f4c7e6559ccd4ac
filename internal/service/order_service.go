package service

import (
	"context"
	"fmt"
	"log"

	"etiqo/internal/domain"
	"etiqo/internal/orderparse"
	"etiqo/internal/port"
)

// ParseOrderInput is the DTO for the parse entry point.
type ParseOrderInput struct {
	Data         []byte
	ContentType  string
	FileNameHint string
}

// OrderService defines the order ingestion contract.
type OrderService interface {
	ParseOrder(ctx context.Context, input ParseOrderInput) (*domain.ParsedOrder, error)
}

type orderService struct {
	parser       *orderparse.Parser
	alerts       port.AlertSender
	maxFileBytes int64
}

// NewOrderService creates a new OrderService implementation.
func NewOrderService(parser *orderparse.Parser, alerts port.AlertSender, maxFileSizeMB int64) OrderService {
	return &orderService{
		parser:       parser,
		alerts:       alerts,
		maxFileBytes: maxFileSizeMB * 1024 * 1024,
	}
}

// ParseOrder validates preconditions and delegates to the parser. Only
// precondition violations surface as errors; everything downstream degrades
// into a ParsedOrder with Notes set. Degraded parses fire a best-effort
// review alert.
func (s *orderService) ParseOrder(ctx context.Context, input ParseOrderInput) (*domain.ParsedOrder, error) {
	if len(input.Data) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	if s.maxFileBytes > 0 && int64(len(input.Data)) > s.maxFileBytes {
		return nil, domain.ErrFileTooLarge
	}
	family, ok := orderparse.DetectFamily(input.ContentType, input.FileNameHint)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, input.ContentType)
	}

	order := s.parser.Parse(ctx, family, input.Data, input.ContentType)

	if order.Notes != "" {
		ref := input.FileNameHint
		if ref == "" {
			ref = "uploaded document"
		}
		log.Printf("orderService.ParseOrder: degraded parse of %s: %s", ref, order.Notes)
		if err := s.alerts.SendReviewAlert(ctx, ref, order.Notes); err != nil {
			log.Printf("orderService.ParseOrder: review alert failed: %v", err)
		}
	}

	return order, nil
}
