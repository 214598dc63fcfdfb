package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrDispatchNotConfigured = errors.New("ai dispatch is not configured")
	ErrUnknownAgentType      = errors.New("unknown agent type")
	ErrPromptRequired        = errors.New("prompt is required")
	ErrDispatchFailed        = errors.New("ai dispatch failed")
)

// agentModels maps an agent type to the model the inference server should
// run. The table is static; unknown types are rejected before any network
// call.
var agentModels = map[string]string{
	"planner":    "qwen2.5-14b-instruct",
	"summarizer": "qwen2.5-7b-instruct",
	"estimator":  "qwen2.5-7b-instruct",
	"reviewer":   "qwen2.5-14b-instruct",
}

// Dispatcher forwards prompts to the external inference server. Failures are
// surfaced as a generic dispatch failure and never retried.
type Dispatcher struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher. An empty baseURL disables dispatch.
func NewDispatcher(baseURL string, timeout time.Duration, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled reports whether an inference server is configured.
func (d *Dispatcher) Enabled() bool {
	return d.baseURL != ""
}

type dispatchRequest struct {
	Prompt    string `json:"prompt"`
	Model     string `json:"model"`
	AgentType string `json:"agent_type"`
}

type dispatchResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Dispatch resolves the agent type to a model and forwards the prompt.
func (d *Dispatcher) Dispatch(ctx context.Context, agentType, prompt string) (string, error) {
	if !d.Enabled() {
		return "", ErrDispatchNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return "", ErrPromptRequired
	}

	model, ok := agentModels[agentType]
	if !ok {
		return "", ErrUnknownAgentType
	}

	body, err := json.Marshal(dispatchRequest{
		Prompt:    prompt,
		Model:     model,
		AgentType: agentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode dispatch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/v1/dispatch", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Error().Err(err).Str("agent_type", agentType).Msg("inference request failed")
		return "", ErrDispatchFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.log.Error().Int("status", resp.StatusCode).Str("agent_type", agentType).Msg("inference server error")
		return "", ErrDispatchFailed
	}

	var out dispatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		d.log.Error().Err(err).Msg("failed to decode inference response")
		return "", ErrDispatchFailed
	}
	if !out.Success {
		d.log.Error().Str("error", out.Error).Str("agent_type", agentType).Msg("inference dispatch rejected")
		return "", ErrDispatchFailed
	}

	return out.Response, nil
}
