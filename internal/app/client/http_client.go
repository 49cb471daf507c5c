package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"fitlog/internal/app/client/config"
	"fitlog/internal/domain/aiplan"
)

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func newHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &httpClient{
		client:    client,
		log:       log.With("component", "http_client"),
		baseURL:   cfg.ServerAddress,
		userAgent: "FitLog-Client/1.0",
	}
}

// SetToken installs the bearer token attached to authenticated requests. The
// token is minted by the external auth provider; this client only carries it.
func (h *httpClient) SetToken(token string) {
	h.token = token
}

// HealthCheck probes server availability.
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{Status: resp.StatusCode}
	}
	return nil
}

func (h *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	return h.parseResponse(resp, out)
}

func (h *httpClient) parseResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("received response", "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return &HTTPError{Status: resp.StatusCode, Message: errResp.Error}
		}
		return &HTTPError{Status: resp.StatusCode}
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// Replay re-sends a queued mutating request exactly as it was recorded and
// returns the response body of a successful replay.
func (h *httpClient) Replay(ctx context.Context, e QueueEntry) ([]byte, error) {
	var reqBody io.Reader
	if len(e.Body) > 0 {
		reqBody = bytes.NewReader(e.Body)
	}

	req, err := http.NewRequestWithContext(ctx, e.Method, e.URL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create replay request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	for k, v := range e.Headers {
		req.Header.Set(k, v)
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replay request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read replay response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &HTTPError{Status: resp.StatusCode}
	}
	return body, nil
}

// ==================== Workouts ====================

func (h *httpClient) ListWorkouts(ctx context.Context) ([]workoutWire, error) {
	var out []workoutWire
	if err := h.do(ctx, http.MethodGet, "/workouts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpClient) CreateWorkout(ctx context.Context, payload workoutPayload) (workoutWire, error) {
	var out workoutWire
	if err := h.do(ctx, http.MethodPost, "/workouts", payload, &out); err != nil {
		return workoutWire{}, err
	}
	return out, nil
}

func (h *httpClient) UpdateWorkout(ctx context.Context, id string, payload workoutPayload) (workoutWire, error) {
	var out workoutWire
	if err := h.do(ctx, http.MethodPut, "/workouts/"+id, payload, &out); err != nil {
		return workoutWire{}, err
	}
	return out, nil
}

func (h *httpClient) DeleteWorkout(ctx context.Context, id string) error {
	return h.do(ctx, http.MethodDelete, "/workouts/"+id, nil, nil)
}

// ==================== Exercises ====================

func (h *httpClient) ListExercises(ctx context.Context, workoutID string) ([]exerciseWire, error) {
	path := "/exercises"
	if workoutID != "" {
		path += "?workoutId=" + workoutID
	}
	var out []exerciseWire
	if err := h.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpClient) CreateExercise(ctx context.Context, payload exercisePayload) (exerciseWire, error) {
	var out exerciseWire
	if err := h.do(ctx, http.MethodPost, "/exercises", payload, &out); err != nil {
		return exerciseWire{}, err
	}
	return out, nil
}

// UpdateExercises performs the bulk update the API expects: a single PUT
// carrying every exercise to rewrite.
func (h *httpClient) UpdateExercises(ctx context.Context, payloads []bulkExercisePayload) ([]exerciseWire, error) {
	req := struct {
		Exercises []bulkExercisePayload `json:"exercises"`
	}{Exercises: payloads}

	var out []exerciseWire
	if err := h.do(ctx, http.MethodPut, "/exercises", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpClient) DeleteExercise(ctx context.Context, id string) error {
	return h.do(ctx, http.MethodDelete, "/exercises/"+id, nil, nil)
}

// ==================== Measurements ====================

func measurementPath(entity Entity) string {
	if entity == EntityBodyFat {
		return "/bodyfat"
	}
	return "/weight"
}

func (h *httpClient) ListMeasurements(ctx context.Context, entity Entity) ([]measurementWire, error) {
	var out []measurementWire
	if err := h.do(ctx, http.MethodGet, measurementPath(entity), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpClient) CreateMeasurement(ctx context.Context, entity Entity, payload measurementPayload) (measurementWire, error) {
	var out measurementWire
	if err := h.do(ctx, http.MethodPost, measurementPath(entity), payload, &out); err != nil {
		return measurementWire{}, err
	}
	return out, nil
}

func (h *httpClient) DeleteMeasurement(ctx context.Context, entity Entity, id string) error {
	return h.do(ctx, http.MethodDelete, measurementPath(entity)+"/"+id, nil, nil)
}

// ==================== AI plan ====================

// GeneratePlan requests an AI-generated workout plan. Current servers answer
// with a structured plan object; legacy ones answer with a prose plan that
// is parsed client-side.
func (h *httpClient) GeneratePlan(ctx context.Context, req aiplan.Request) (aiplan.Plan, error) {
	var out struct {
		Workout json.RawMessage `json:"workout"`
	}
	if err := h.do(ctx, http.MethodPost, "/ai/generate-workout", req, &out); err != nil {
		return aiplan.Plan{}, err
	}

	var plan aiplan.Plan
	if err := json.Unmarshal(out.Workout, &plan); err == nil && len(plan.Exercises) > 0 {
		return plan, nil
	}

	var text string
	if err := json.Unmarshal(out.Workout, &text); err != nil {
		return aiplan.Plan{}, fmt.Errorf("unexpected plan response format")
	}
	plan, err := aiplan.ParsePlanText(text)
	if err != nil {
		return aiplan.Plan{}, fmt.Errorf("parse plan text: %w", err)
	}
	return plan, nil
}
