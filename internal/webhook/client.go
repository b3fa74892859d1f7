package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/smartpro/consultation-intake/pkg/logging"
)

var tracer = otel.Tracer("intake/webhook")

// ErrDeliveryFailed wraps any non-2xx or transport failure from the
// workflow engine.
var ErrDeliveryFailed = errors.New("webhook: delivery failed")

// Result is the parsed (best-effort) response from the workflow engine.
type Result struct {
	SubmissionID string
	Message      string
}

// engineResponse mirrors the optional JSON body the engine may return.
// An empty or non-JSON 2xx body is normal and treated as success.
type engineResponse struct {
	Message string `json:"message"`
	Data    struct {
		ExecutionID string `json:"execution_id"`
	} `json:"data"`
}

// Client relays payloads to the configured workflow webhook.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a relay client. The URL must be non-empty; config
// validation enforces that before the server starts.
func NewClient(url string, timeout time.Duration, logger *logging.Logger) *Client {
	if strings.TrimSpace(url) == "" {
		panic("webhook: url required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send POSTs the payload as JSON. Any non-2xx status or transport error is
// a failure; callers roll back their idempotency reservation on error.
func (c *Client) Send(ctx context.Context, payload *Payload) (*Result, error) {
	ctx, span := tracer.Start(ctx, "webhook.send")
	defer span.End()
	span.SetAttributes(
		attribute.String("intake.request_id", payload.RequestID),
		attribute.String("intake.service", payload.ServiceInterested),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetAttributes(attribute.Bool("webhook.failed", true))
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetAttributes(attribute.Int("webhook.status", resp.StatusCode))
		c.logger.Error("webhook request failed",
			"status", resp.StatusCode,
			"request_id", payload.RequestID,
		)
		return nil, fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	// The engine may return an empty or non-JSON 2xx body; both count as
	// success with no execution id.
	result := &Result{}
	var parsed engineResponse
	if err := json.Unmarshal(raw, &parsed); err == nil {
		result.SubmissionID = parsed.Data.ExecutionID
		result.Message = parsed.Message
	}

	c.logger.Info("webhook delivered",
		"request_id", payload.RequestID,
		"execution_id", result.SubmissionID,
	)
	return result, nil
}
