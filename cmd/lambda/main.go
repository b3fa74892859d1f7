package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	appconfig "github.com/smartpro/consultation-intake/internal/config"
	"github.com/smartpro/consultation-intake/internal/dedupe"
	"github.com/smartpro/consultation-intake/internal/intake"
	"github.com/smartpro/consultation-intake/internal/ratelimit"
	"github.com/smartpro/consultation-intake/internal/webhook"
	"github.com/smartpro/consultation-intake/pkg/logging"
)

// Serverless entrypoint. The guard caches live in package scope, so they
// persist across invocations within one warm instance and reset on cold
// start. Duplicate suppression across instances needs the Redis caches
// behind the HTTP deployment instead.
func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		panic(err)
	}

	handler := intake.NewHandler(intake.HandlerConfig{
		Submissions:  dedupe.NewMemory(cfg.DuplicateWindow, cfg.GuardCacheMaxSize),
		WebhookCalls: dedupe.NewMemory(cfg.IdempotencyWindow, cfg.GuardCacheMaxSize),
		Limiter:      ratelimit.NewSlidingWindow(cfg.RateLimitRequests, cfg.RateLimitWindow),
		Relay:        webhook.NewClient(cfg.MakeWebhookURL, cfg.WebhookTimeout, logger),
		Metrics:      nil,
		Logger:       logger,
		Source:       cfg.WebhookSource,
	})

	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return handle(ctx, handler, evt)
	})
}

func handle(ctx context.Context, handler *intake.Handler, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(evt.RequestContext.HTTP.Method))
	if method != http.MethodPost {
		return jsonResponse(http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	}

	body := []byte(evt.Body)
	if evt.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(evt.Body)
		if err != nil {
			return jsonResponse(http.StatusBadRequest, map[string]any{
				"error":   "Validation failed",
				"details": []map[string]string{{"field": "body", "message": "Invalid request encoding"}},
			})
		}
		body = decoded
	}

	var req intake.ConsultationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return jsonResponse(http.StatusBadRequest, map[string]any{
			"error":   "Validation failed",
			"details": []map[string]string{{"field": "body", "message": "Invalid JSON body"}},
		})
	}

	status, responseBody := intake.ResultResponse(&req, handler.Process(ctx, &req))
	return jsonResponse(status, responseBody)
}

func jsonResponse(status int, body any) (events.APIGatewayV2HTTPResponse, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(raw),
	}, nil
}
