package services

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

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"adwiz/internal/models/db_models"
	"adwiz/internal/repositories"
	"adwiz/pkg/logger"
)

const DefaultProviderBaseURL = "https://api.openai.com/v1"

var ErrRelayTransport = errors.New("relay transport failure")

// HTTPDoer is the subset of *http.Client the relay needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type RelayConfig struct {
	BaseURL string
	APIKey  string
}

type RelayServiceInterface interface {
	// Forward POSTs payload to the provider endpoint with the server credential
	// and returns the provider's JSON body as-is, whatever its status.
	Forward(ctx context.Context, endpoint string, payload json.RawMessage) (json.RawMessage, error)
}

type RelayService struct {
	baseURL  string
	apiKey   string
	client   HTTPDoer
	recorder repositories.RelayCallRepository

	tracer  trace.Tracer
	calls   metric.Int64Counter
	latency metric.Float64Histogram
}

func NewRelayService(cfg RelayConfig, client HTTPDoer, recorder repositories.RelayCallRepository) RelayServiceInterface {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultProviderBaseURL
	}

	meter := otel.Meter("adwiz/relay")
	calls, err := meter.Int64Counter("relay.calls", metric.WithDescription("Provider calls forwarded by the relay"))
	if err != nil {
		logger.L().WithError(err).Warn("relay.calls counter unavailable")
	}
	latency, err := meter.Float64Histogram("relay.duration", metric.WithUnit("ms"))
	if err != nil {
		logger.L().WithError(err).Warn("relay.duration histogram unavailable")
	}

	return &RelayService{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   cfg.APIKey,
		client:   client,
		recorder: recorder,
		tracer:   otel.Tracer("adwiz/relay"),
		calls:    calls,
		latency:  latency,
	}
}

func (r *RelayService) Forward(ctx context.Context, endpoint string, payload json.RawMessage) (json.RawMessage, error) {
	ctx, span := r.tracer.Start(ctx, "relay.forward", trace.WithAttributes(attribute.String("relay.endpoint", endpoint)))
	defer span.End()

	start := time.Now()
	status, body, err := r.do(ctx, endpoint, payload)
	took := time.Since(start)

	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	r.measure(ctx, endpoint, status, took, err)
	r.record(ctx, endpoint, status, took, err)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (r *RelayService) do(ctx context.Context, endpoint string, payload json.RawMessage) (int, json.RawMessage, error) {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	// The endpoint is appended as given; callers pick the provider route.
	target := r.baseURL + "/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrRelayTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrRelayTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read provider response: %v", ErrRelayTransport, err)
	}
	if !json.Valid(body) {
		return resp.StatusCode, nil, fmt.Errorf("%w: provider returned non-JSON body (status %d)", ErrRelayTransport, resp.StatusCode)
	}
	return resp.StatusCode, body, nil
}

func (r *RelayService) measure(ctx context.Context, endpoint string, status int, took time.Duration, callErr error) {
	attrs := metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.Int("status", status),
		attribute.Bool("failed", callErr != nil),
	)
	if r.calls != nil {
		r.calls.Add(ctx, 1, attrs)
	}
	if r.latency != nil {
		r.latency.Record(ctx, float64(took.Microseconds())/1000, attrs)
	}
}

func (r *RelayService) record(ctx context.Context, endpoint string, status int, took time.Duration, callErr error) {
	log := logger.WithContext(ctx).WithFields(logrus.Fields{
		"endpoint": endpoint,
		"status":   status,
		"took":     took.String(),
	})
	call := db_models.RelayCall{
		Endpoint:   endpoint,
		StatusCode: status,
		DurationMs: took.Milliseconds(),
		TraceID:    logger.TraceID(ctx),
	}
	if callErr != nil {
		call.Error = callErr.Error()
		log.WithError(callErr).Warn("relay call failed")
	} else {
		log.Info("relay call forwarded")
	}

	if err := r.recorder.Record(context.WithoutCancel(ctx), call); err != nil {
		log.WithError(err).Warn("failed to record relay call")
	}
}
