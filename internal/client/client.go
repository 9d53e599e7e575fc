// Package client executes GraphQL operations against the Linear API. It
// owns the retry policy, the local rate gate, and error classification; it
// knows nothing about tools or the MCP protocol.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"linearmcp/internal/auth"
	"linearmcp/internal/gql"
)

const DefaultEndpoint = "https://api.linear.app/graphql"

type Config struct {
	Endpoint       string
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Rate gate: at most MaxRequests started per Window. Zero disables it.
	MaxRequests int
	Window      time.Duration

	// BatchConcurrency caps concurrent requests inside ExecuteBatch.
	BatchConcurrency int
}

func DefaultConfig() Config {
	return Config{
		Endpoint:         DefaultEndpoint,
		Timeout:          30 * time.Second,
		MaxRetries:       3,
		InitialBackoff:   time.Second,
		MaxBackoff:       10 * time.Second,
		BatchConcurrency: 5,
	}
}

type Client struct {
	httpClient     *http.Client
	endpoint       string
	provider       auth.Provider
	limiter        *rate.Limiter
	logger         *slog.Logger
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	batchLimit     int
}

func New(cfg Config, provider auth.Provider, logger *slog.Logger) *Client {
	def := DefaultConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = def.BatchConcurrency
	}

	var limiter *rate.Limiter
	if cfg.MaxRequests > 0 && cfg.Window > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.MaxRequests)/cfg.Window.Seconds()), cfg.MaxRequests)
	}

	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		endpoint:       cfg.Endpoint,
		provider:       provider,
		limiter:        limiter,
		logger:         logger.With("component", "graphql-client"),
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		batchLimit:     cfg.BatchConcurrency,
	}
}

// Response is the unwrapped GraphQL result. Errors is non-empty only when
// the server returned structured GraphQL errors; Execute converts that case
// into an APIError, so callers normally see Data alone.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ResponseError `json:"errors,omitempty"`
}

type ResponseError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Execute sends one operation, retrying timeouts, network failures, rate
// limiting, and 5xx responses with exponential backoff. GraphQL errors and
// 4xx responses fail on the first attempt.
func (c *Client) Execute(ctx context.Context, op *gql.Operation) (*Response, error) {
	if op == nil {
		return nil, errors.New("nil operation")
	}

	var lastErr error
	delay := c.initialBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		resp, err := c.do(ctx, op)
		if err == nil {
			c.logger.Debug("operation succeeded",
				"operation", op.Name,
				"attempt", attempt+1,
				"document", op.Document,
				"variables", op.Variables)
			return resp, nil
		}
		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Kind.Retryable() || attempt == c.maxRetries {
			c.logger.Debug("operation failed",
				"operation", op.Name,
				"attempt", attempt+1,
				"error", err,
				"document", op.Document,
				"variables", op.Variables)
			return nil, err
		}

		c.logger.Debug("operation failed, retrying",
			"operation", op.Name,
			"attempt", attempt+1,
			"backoff", delay,
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-timer.C:
		}

		delay *= 2
		if delay > c.maxBackoff {
			delay = c.maxBackoff
		}
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, op *gql.Operation) (*Response, error) {
	header, err := c.provider.Authorization(ctx)
	if err != nil {
		return nil, &APIError{Kind: KindClient, Operation: op.Name, Message: "authorization", Err: err}
	}

	payload := struct {
		Query         string         `json:"query"`
		Variables     map[string]any `json:"variables,omitempty"`
		OperationName string         `json:"operationName"`
	}{
		Query:         op.Document,
		Variables:     op.Variables,
		OperationName: op.Name,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &APIError{Kind: KindClient, Operation: op.Name, Message: "encoding request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Kind: KindClient, Operation: op.Name, Message: "building request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", header)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: classifyTransport(err), Operation: op.Name, Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 8<<20))
	if err != nil {
		return nil, &APIError{Kind: classifyTransport(err), Operation: op.Name, Message: "reading response", Err: err}
	}

	if httpResp.StatusCode >= 400 {
		return nil, &APIError{
			Kind:      classifyStatus(httpResp.StatusCode),
			Status:    httpResp.StatusCode,
			Operation: op.Name,
			Message:   strings.TrimSpace(string(raw)),
		}
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &APIError{Kind: KindUnknown, Operation: op.Name, Message: "decoding response", Err: err}
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			messages = append(messages, e.Message)
		}
		return nil, &APIError{Kind: KindGraphQL, Operation: op.Name, Message: strings.Join(messages, "; ")}
	}

	return &resp, nil
}

// BatchItem is the outcome of one operation in a batch, in input order.
type BatchItem struct {
	Response *Response
	Err      error
}

type BatchResult struct {
	Results []BatchItem
	Success bool
}

// ExecuteBatch runs all operations concurrently, bounded by the configured
// batch concurrency. Per-operation failures are captured in the result and
// never abort the batch; the returned error is non-nil only when the batch
// cannot start at all.
func (c *Client) ExecuteBatch(ctx context.Context, ops []*gql.Operation) (*BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch not started: %w", err)
	}

	result := &BatchResult{Results: make([]BatchItem, len(ops)), Success: true}
	if len(ops) == 0 {
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.batchLimit)
	for i, op := range ops {
		g.Go(func() error {
			if op == nil {
				result.Results[i] = BatchItem{Err: errors.New("nil operation")}
				return nil
			}
			resp, err := c.Execute(gctx, op)
			result.Results[i] = BatchItem{Response: resp, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	for _, item := range result.Results {
		if item.Err != nil {
			result.Success = false
			break
		}
	}
	return result, nil
}
