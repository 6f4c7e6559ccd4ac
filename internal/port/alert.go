package port

import "context"

// AlertSender notifies a human that a parsed order needs manual review.
type AlertSender interface {
	SendReviewAlert(ctx context.Context, orderRef, notes string) error
}
