package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/smartpro/consultation-intake/pkg/logging"
)

// AlertService sends operator alerts when webhook delivery fails. All
// sends are best-effort: failures are logged, never propagated to the
// request path.
type AlertService struct {
	sender EmailSender
	to     string
	logger *logging.Logger
}

// NewAlertService creates an alert service. A nil sender or empty
// recipient disables alerting; the service stays safe to call.
func NewAlertService(sender EmailSender, to string, logger *logging.Logger) *AlertService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AlertService{
		sender: sender,
		to:     to,
		logger: logger,
	}
}

// WebhookFailure notifies the operator that a lead could not be relayed.
func (a *AlertService) WebhookFailure(ctx context.Context, leadEmail, requestID string, cause error) {
	if a == nil || a.sender == nil || a.to == "" {
		return
	}
	msg := EmailMessage{
		To:      a.to,
		Subject: "Consultation webhook delivery failed",
		Body: fmt.Sprintf(
			"Webhook relay failed at %s.\n\nLead email: %s\nRequest ID: %s\nError: %v\n\nThe idempotency reservation was rolled back; the lead can retry.",
			time.Now().UTC().Format(time.RFC3339), leadEmail, requestID, cause,
		),
	}
	if err := a.sender.Send(ctx, msg); err != nil {
		a.logger.Error("failed to send webhook failure alert", "error", err, "request_id", requestID)
	}
}
