package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/smartpro/consultation-intake/internal/dedupe"
	"github.com/smartpro/consultation-intake/internal/notify"
	"github.com/smartpro/consultation-intake/internal/observability/metrics"
	"github.com/smartpro/consultation-intake/internal/ratelimit"
	"github.com/smartpro/consultation-intake/internal/submissions"
	"github.com/smartpro/consultation-intake/internal/webhook"
	"github.com/smartpro/consultation-intake/pkg/logging"
)

// Relay forwards shaped payloads to the workflow engine.
type Relay interface {
	Send(ctx context.Context, payload *webhook.Payload) (*webhook.Result, error)
}

// Decision is the terminal branch a submission took through the gate
// pipeline.
type Decision int

// maxBodyBytes caps inbound request bodies.
const maxBodyBytes = 10 << 20

const (
	DecisionForwarded Decision = iota
	DecisionDuplicate
	DecisionRejected
	DecisionRateLimited
	DecisionFailed
)

// ProcessResult carries the pipeline outcome for response shaping.
type ProcessResult struct {
	Decision     Decision
	SubmissionID string
	RetryAfter   int
	FieldErrors  []FieldError
}

// HandlerConfig wires the gate pipeline's collaborators.
type HandlerConfig struct {
	Submissions  dedupe.Cache // duplicate-submission window
	WebhookCalls dedupe.Cache // idempotency window
	Limiter      *ratelimit.SlidingWindow
	Relay        Relay
	Store        submissions.Repository // optional persistence
	Alerts       *notify.AlertService   // optional failure alerts
	Metrics      *metrics.IntakeMetrics // optional
	Logger       *logging.Logger
	Source       string
}

// Handler runs the consultation intake gate pipeline: validate, suppress
// duplicates, reserve the idempotency slot, rate-limit, relay, reconcile.
type Handler struct {
	submissions  dedupe.Cache
	webhookCalls dedupe.Cache
	limiter      *ratelimit.SlidingWindow
	relay        Relay
	store        submissions.Repository
	alerts       *notify.AlertService
	metrics      *metrics.IntakeMetrics
	logger       *logging.Logger
	source       string
}

// NewHandler creates the intake handler. Caches, limiter and relay are
// required; store, alerts and metrics may be nil.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Submissions == nil || cfg.WebhookCalls == nil {
		panic("intake: guard caches required")
	}
	if cfg.Limiter == nil {
		panic("intake: rate limiter required")
	}
	if cfg.Relay == nil {
		panic("intake: webhook relay required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Source == "" {
		cfg.Source = "smartpro-consultation-form"
	}
	return &Handler{
		submissions:  cfg.Submissions,
		webhookCalls: cfg.WebhookCalls,
		limiter:      cfg.Limiter,
		relay:        cfg.Relay,
		store:        cfg.Store,
		alerts:       cfg.Alerts,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
		source:       cfg.Source,
	}
}

// HandleSubmit handles POST /api/consultation.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req ConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Validation failed",
			Details: []FieldError{{Field: "body", Message: "Invalid JSON body"}},
		})
		return
	}

	result := h.Process(r.Context(), &req)
	status, body := ResultResponse(&req, result)
	writeJSON(w, status, body)
}

// Process runs the gate pipeline. Each gate can terminate the request;
// side effects happen only after validation passes.
func (h *Handler) Process(ctx context.Context, req *ConsultationRequest) *ProcessResult {
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		h.metrics.ObserveSubmission(metrics.OutcomeValidationError)
		return &ProcessResult{Decision: DecisionRejected, FieldErrors: errs}
	}

	now := time.Now()
	submissionKey := req.SubmissionKey()

	// Duplicate-submission window: absorb double-clicks from the same
	// user without touching downstream systems. Cache errors fail open;
	// duplicate lead emails are a nuisance, not a correctness failure.
	if _, seen, err := h.submissions.Get(ctx, submissionKey); err != nil {
		h.logger.Warn("submission cache unavailable", "error", err)
	} else if seen {
		h.logger.Info("duplicate submission suppressed", "key", submissionKey)
		h.metrics.ObserveSubmission(metrics.OutcomeDuplicate)
		return &ProcessResult{Decision: DecisionDuplicate}
	}

	idempotencyKey := req.IdempotencyKey()
	if _, called, err := h.webhookCalls.Get(ctx, idempotencyKey); err != nil {
		h.logger.Warn("webhook call cache unavailable", "error", err)
	} else if called {
		// Already relayed within the dedup window. Refresh the
		// duplicate window so repeated clicks keep coalescing.
		if err := h.submissions.Set(ctx, submissionKey, now); err != nil {
			h.logger.Warn("failed to refresh submission cache", "error", err)
		}
		h.logger.Info("idempotent replay suppressed", "idempotency_key", idempotencyKey)
		h.metrics.ObserveSubmission(metrics.OutcomeDuplicate)
		return &ProcessResult{Decision: DecisionDuplicate}
	}

	if allowed, retryAfter := h.limiter.Allow(now); !allowed {
		h.logger.Warn("rate limit exceeded", "retry_after", retryAfter)
		h.metrics.ObserveSubmission(metrics.OutcomeRateLimited)
		return &ProcessResult{Decision: DecisionRateLimited, RetryAfter: retryAfter}
	}

	// Reserve the idempotency slot before the outbound call so at most
	// one in-flight relay exists per key even under concurrent requests.
	// Losing the reservation means another request won the race.
	won, err := h.webhookCalls.SetIfAbsent(ctx, idempotencyKey, now)
	if err != nil {
		h.logger.Warn("idempotency reservation unavailable, proceeding", "error", err)
		won = true
	}
	if !won {
		if err := h.submissions.Set(ctx, submissionKey, now); err != nil {
			h.logger.Warn("failed to refresh submission cache", "error", err)
		}
		h.metrics.ObserveSubmission(metrics.OutcomeDuplicate)
		return &ProcessResult{Decision: DecisionDuplicate}
	}

	requestID := uuid.NewString()
	payload := BuildPayload(req, requestID, idempotencyKey, h.source, now)
	storeID := h.persist(ctx, req, now)

	start := time.Now()
	result, err := h.relay.Send(ctx, payload)
	h.metrics.ObserveWebhookLatency(time.Since(start).Seconds())
	if err != nil {
		// Roll back the reservation so a legitimate retry is not
		// blocked for the rest of the dedup window.
		if delErr := h.webhookCalls.Delete(ctx, idempotencyKey); delErr != nil {
			h.logger.Error("failed to roll back idempotency reservation", "error", delErr, "idempotency_key", idempotencyKey)
		}
		h.markDelivered(ctx, storeID, false, now)
		if h.alerts != nil {
			go h.alerts.WebhookFailure(context.Background(), req.Email, requestID, err)
		}
		h.logger.Error("webhook relay failed", "error", err, "request_id", requestID)
		h.metrics.ObserveSubmission(metrics.OutcomeWebhookError)
		return &ProcessResult{Decision: DecisionFailed}
	}

	if err := h.submissions.Set(ctx, submissionKey, now); err != nil {
		h.logger.Warn("failed to record submission timestamp", "error", err)
	}
	h.markDelivered(ctx, storeID, true, now)

	submissionID := result.SubmissionID
	if submissionID == "" {
		submissionID = storeID
	}
	if submissionID == "" {
		submissionID = uuid.NewString()
	}

	h.logger.Info("consultation forwarded",
		"request_id", requestID,
		"submission_id", submissionID,
		"service", payload.ServiceInterested,
		"language", req.Language,
	)
	h.metrics.ObserveSubmission(metrics.OutcomeForwarded)
	return &ProcessResult{Decision: DecisionForwarded, SubmissionID: submissionID}
}

// persist stores the accepted submission. Best-effort: storage problems
// never block the relay.
func (h *Handler) persist(ctx context.Context, req *ConsultationRequest, now time.Time) string {
	if h.store == nil {
		return ""
	}
	id, err := h.store.Create(ctx, &submissions.Submission{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Location:         req.Location,
		Company:          req.Company,
		BusinessType:     req.BusinessType,
		Services:         req.Services,
		PrimaryService:   PrimaryServiceForRouting(req.Services),
		Budget:           req.Budget,
		Timeline:         req.Timeline,
		PreferredContact: req.PreferredContact,
		PreferredTime:    req.PreferredTime,
		Message:          req.Message,
		Language:         req.Language,
		Source:           h.source,
		CreatedAt:        now,
	})
	if err != nil {
		h.logger.Error("failed to persist submission", "error", err, "email", req.Email)
		return ""
	}
	return id
}

func (h *Handler) markDelivered(ctx context.Context, id string, delivered bool, at time.Time) {
	if h.store == nil || id == "" {
		return
	}
	if err := h.store.MarkDelivered(ctx, id, delivered, at); err != nil {
		h.logger.Warn("failed to update delivery status", "error", err, "submission_id", id)
	}
}

type submitResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId,omitempty"`
	Duplicate    bool   `json:"duplicate,omitempty"`
	Language     string `json:"language,omitempty"`
}

type errorResponse struct {
	Error      string       `json:"error"`
	Message    string       `json:"message,omitempty"`
	Details    []FieldError `json:"details,omitempty"`
	RetryAfter *int         `json:"retryAfter,omitempty"`
}

// ResultResponse maps a pipeline outcome to an HTTP status and JSON body.
// Shared by the HTTP handler and the Lambda entrypoint.
func ResultResponse(req *ConsultationRequest, result *ProcessResult) (int, any) {
	switch result.Decision {
	case DecisionForwarded:
		return http.StatusOK, submitResponse{
			Success:      true,
			Message:      "Consultation request submitted successfully",
			SubmissionID: result.SubmissionID,
			Language:     req.Language,
		}
	case DecisionDuplicate:
		return http.StatusOK, submitResponse{
			Success:   true,
			Message:   "Submission already received",
			Duplicate: true,
		}
	case DecisionRejected:
		return http.StatusBadRequest, errorResponse{
			Error:   "Validation failed",
			Details: result.FieldErrors,
		}
	case DecisionRateLimited:
		retryAfter := result.RetryAfter
		return http.StatusTooManyRequests, errorResponse{
			Error:      "Rate limit exceeded",
			Message:    "Too many requests, please try again later",
			RetryAfter: &retryAfter,
		}
	default:
		return http.StatusInternalServerError, errorResponse{
			Error:   "Internal server error",
			Message: "Failed to forward consultation request",
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
