// Package ollama talks to a local Ollama server over its HTTP API.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

const (
	DefaultBaseURL = "http://localhost:11434"

	defaultKeepAlive    = "5m"
	defaultMaxBodyBytes = 1 * 1024 * 1024 // 1MB
)

type Client struct {
	baseURL      string
	client       *http.Client
	keepAlive    string
	maxBodyBytes int64
}

type Option func(*Client)

func WithKeepAlive(d string) Option {
	return func(c *Client) { c.keepAlive = d }
}

func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) { c.maxBodyBytes = n }
}

func New(baseURL string, client *http.Client, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       client,
		keepAlive:    defaultKeepAlive,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ ports.Generator    = (*Client)(nil)
	_ ports.ModelCatalog = (*Client)(nil)
	_ ports.ModelPuller  = (*Client)(nil)
)

type generateRequest struct {
	Model     string          `json:"model"`
	Prompt    string          `json:"prompt"`
	System    string          `json:"system,omitempty"`
	Stream    bool            `json:"stream"`
	KeepAlive string          `json:"keep_alive,omitempty"`
	Options   generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateResponse struct {
	Response      string `json:"response"`
	Done          bool   `json:"done"`
	TotalDuration int64  `json:"total_duration"`
}

// Generate sends a single non-streaming generation request.
func (c *Client) Generate(ctx context.Context, req domain.GenerateRequest) (domain.GenerateResponse, error) {
	payload := generateRequest{
		Model:     req.Model,
		Prompt:    req.Prompt,
		System:    req.System,
		Stream:    false,
		KeepAlive: c.keepAlive,
		Options: generateOptions{
			Temperature: req.Temperature,
			TopP:        req.TopP,
			NumPredict:  req.MaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.GenerateResponse{}, &domain.OpError{
			Op:   "ollama.generate.marshal",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return domain.GenerateResponse{}, &domain.OpError{
			Op:   "ollama.generate",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return domain.GenerateResponse{}, wrapTransport("ollama.generate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.GenerateResponse{}, httpError("ollama.generate", resp, c.maxBodyBytes)
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxBodyBytes)).Decode(&out); err != nil {
		return domain.GenerateResponse{}, &domain.OpError{
			Op:   "ollama.generate.decode",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	return domain.GenerateResponse{
		Text:       out.Response,
		DurationMS: out.TotalDuration / int64(time.Millisecond),
	}, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
		Size int64  `json:"size"`
	} `json:"models"`
}

// Models lists the models available on the server (GET /api/tags).
func (c *Client) Models(ctx context.Context) ([]domain.ModelInfo, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "ollama.models",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, wrapTransport("ollama.models", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpError("ollama.models", resp, c.maxBodyBytes)
	}

	var out tagsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxBodyBytes)).Decode(&out); err != nil {
		return nil, &domain.OpError{
			Op:   "ollama.models.decode",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	models := make([]domain.ModelInfo, 0, len(out.Models))
	for _, m := range out.Models {
		models = append(models, domain.ModelInfo{Name: m.Name, SizeBytes: m.Size})
	}
	return models, nil
}

type pullRequest struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}

type pullEvent struct {
	Status    string `json:"status"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	Error     string `json:"error"`
}

// Pull downloads a model (POST /api/pull), streaming JSON-line progress events.
// Pulls can run for many minutes; callers should pass a generous context.
func (c *Client) Pull(ctx context.Context, model string, onProgress func(ports.PullProgress)) error {
	body, err := json.Marshal(pullRequest{Name: model, Stream: true})
	if err != nil {
		return &domain.OpError{
			Op:   "ollama.pull.marshal",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return &domain.OpError{
			Op:   "ollama.pull",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return wrapTransport("ollama.pull", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpError("ollama.pull", resp, c.maxBodyBytes)
	}

	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var ev pullEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			// Tolerate malformed progress lines; the final status decides.
			continue
		}
		if ev.Error != "" {
			return &domain.OpError{
				Op:   "ollama.pull",
				Kind: domain.KindExecution,
				Err:  errors.New(ev.Error),
			}
		}
		if onProgress != nil {
			onProgress(ports.PullProgress{
				Status:    ev.Status,
				Total:     ev.Total,
				Completed: ev.Completed,
			})
		}
	}
	if err := sc.Err(); err != nil {
		return &domain.OpError{
			Op:   "ollama.pull.stream",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	return nil
}

func wrapTransport(op string, err error) error {
	kind := domain.KindExecution

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &domain.OpError{
			Op:   op,
			Kind: kind,
			Err:  fmt.Errorf("request timed out; the model might be slow or not loaded: %w", err),
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
		return &domain.OpError{
			Op:   op,
			Kind: domain.KindUnavailable,
			Err:  fmt.Errorf("cannot connect to Ollama; make sure it is running (e.g. `ollama serve`): %w", err),
		}
	}

	return &domain.OpError{Op: op, Kind: kind, Err: err}
}

func httpError(op string, resp *http.Response, maxBytes int64) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindExecution,
		Err:  fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))),
	}
}
