package noop

import (
	"context"
	"log"

	"etiqo/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op AlertSender that logs review alerts to stdout.
func NewNoopSender() port.AlertSender {
	return &noopSender{}
}

func (s *noopSender) SendReviewAlert(_ context.Context, orderRef, notes string) error {
	log.Printf("[NOOP ALERT] order %s needs manual review: %s", orderRef, notes)
	return nil
}
