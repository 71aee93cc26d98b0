// internal/providers/llamacpp/provider.go
// Package llamacpp provides a model client backed by llama.cpp's
// OpenAI-compatible HTTP API.
package llamacpp

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

	"github.com/mwiater/studybot/internal/appconfig"
	"github.com/mwiater/studybot/internal/logging"
	"github.com/mwiater/studybot/internal/providers"
)

// Provider implements providers.ModelClient using llama.cpp HTTP APIs.
type Provider struct {
	host    appconfig.Host
	model   string
	client  *http.Client
	timeout time.Duration
	debug   bool
}

var _ providers.ModelClient = (*Provider)(nil)

// New constructs a Provider for the configured host and model, bounded by
// the application's request timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		host:  cfg.Host,
		model: cfg.Model,
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		timeout: timeout,
		debug:   cfg.Debug,
	}
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// EnsureModelReady triggers a load request when the router endpoints are available.
func (p *Provider) EnsureModelReady(ctx context.Context) error {
	payload := map[string]any{"model": p.model}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	endpoint := p.host.URL + "/models/load"
	logging.LogRequest("BOT->LLM", p.hostIdentifier(), p.model, body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	logging.LogRequest("LLM->BOT", p.hostIdentifier(), p.model, respBody)

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusMethodNotAllowed {
		// Router endpoints not available; rely on auto-loading on first request.
		return nil
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("llama.cpp: /models/load returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	return nil
}

// Generate sends a single non-streaming completion request and returns the
// generated text. The call blocks until the model finishes or the request
// timeout expires.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":  p.model,
		"prompt": prompt,
		"stream": false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	logging.LogRequest("BOT->LLM", p.hostIdentifier(), p.model, body)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	endpoint := p.host.URL + "/v1/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	logging.LogRequest("LLM->BOT", p.hostIdentifier(), p.model, respBody)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llama.cpp: /v1/completions returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var completion completionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("llama.cpp: decode completion: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("llama.cpp: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("llama.cpp: completion contained no choices")
	}
	return strings.TrimSpace(completion.Choices[0].Text), nil
}

// Close releases idle connections held by the HTTP client.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// hostIdentifier resolves a display name for the configured host.
func (p *Provider) hostIdentifier() string {
	if name := strings.TrimSpace(p.host.Name); name != "" {
		return name
	}
	return p.host.URL
}
