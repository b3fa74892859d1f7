package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingSender struct {
	sent []EmailMessage
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg EmailMessage) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestWebhookFailureSendsAlert(t *testing.T) {
	sender := &recordingSender{}
	svc := NewAlertService(sender, "ops@smartpro.ae", nil)

	svc.WebhookFailure(context.Background(), "jane@x.com", "req-1", errors.New("status 502"))

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "ops@smartpro.ae" {
		t.Errorf("to: %q", msg.To)
	}
	if !strings.Contains(msg.Body, "jane@x.com") || !strings.Contains(msg.Body, "req-1") {
		t.Errorf("body missing lead context: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "status 502") {
		t.Errorf("body missing cause: %q", msg.Body)
	}
}

func TestWebhookFailureNilSafe(t *testing.T) {
	var svc *AlertService
	svc.WebhookFailure(context.Background(), "jane@x.com", "req-1", errors.New("x"))

	svc = NewAlertService(nil, "", nil)
	svc.WebhookFailure(context.Background(), "jane@x.com", "req-1", errors.New("x"))
}

func TestWebhookFailureSwallowsSendErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewAlertService(sender, "ops@smartpro.ae", nil)

	// Must not panic or propagate.
	svc.WebhookFailure(context.Background(), "jane@x.com", "req-1", errors.New("x"))
}

func TestNewSendGridSenderRequiresKey(t *testing.T) {
	if s := NewSendGridSender(SendGridConfig{}, nil); s != nil {
		t.Error("expected nil sender without API key")
	}
}
