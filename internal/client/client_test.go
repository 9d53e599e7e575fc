package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linearmcp/internal/auth"
	"linearmcp/internal/gql"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOperation(t *testing.T) *gql.Operation {
	t.Helper()
	op, err := gql.Query("GetViewer").Select(gql.Selection{"viewer": gql.Selection{"id": true}}).Build()
	require.NoError(t, err)
	return op
}

func newTestClient(t *testing.T, endpoint string, cfg Config) *Client {
	t.Helper()
	cfg.Endpoint = endpoint
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = 5 * time.Millisecond
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 50 * time.Millisecond
	}
	return New(cfg, auth.NewAPIKey("lin_api_test"), testLogger())
}

func TestExecuteSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, `{"data":{"viewer":{"id":"u1"}}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Config{})
	resp, err := c.Execute(context.Background(), testOperation(t))
	require.NoError(t, err)

	assert.Equal(t, "lin_api_test", gotAuth)
	assert.Equal(t, "GetViewer", gotBody["operationName"])
	assert.JSONEq(t, `{"viewer":{"id":"u1"}}`, string(resp.Data))
}

func TestExecuteRetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"data":{"viewer":{"id":"u1"}}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Config{MaxRetries: 3, InitialBackoff: 10 * time.Millisecond})

	start := time.Now()
	resp, err := c.Execute(context.Background(), testOperation(t))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, int32(3), attempts.Load())
	// Two backoffs: ~10ms then ~20ms.
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestExecuteRetriesExhausted(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Config{MaxRetries: 2})
	_, err := c.Execute(context.Background(), testOperation(t))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestExecuteClientErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Config{MaxRetries: 3})
	_, err := c.Execute(context.Background(), testOperation(t))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindClient, apiErr.Kind)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestExecuteGraphQLErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		fmt.Fprint(w, `{"errors":[{"message":"Entity not found"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Config{MaxRetries: 3})
	_, err := c.Execute(context.Background(), testOperation(t))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindGraphQL, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "Entity not found")
	assert.Equal(t, int32(1), attempts.Load())
}

type flakyTransport struct {
	failures atomic.Int32
	failFor  int32
	next     http.RoundTripper
}

func (f *flakyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if f.failures.Add(1) <= f.failFor {
		return nil, errors.New("request timeout while awaiting headers")
	}
	return f.next.RoundTrip(r)
}

func TestExecuteTimeoutErrorRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"viewer":{"id":"u1"}}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Config{MaxRetries: 3})
	transport := &flakyTransport{failFor: 2, next: http.DefaultTransport}
	c.httpClient.Transport = transport

	resp, err := c.Execute(context.Background(), testOperation(t))
	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, int32(3), transport.failures.Load())
}

func TestExecuteContextCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Config{MaxRetries: 3, InitialBackoff: time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Execute(ctx, testOperation(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecuteBatchCapturesPerOperationFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var payload struct {
			OperationName string `json:"operationName"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload.OperationName == "GetTeam" {
			fmt.Fprint(w, `{"errors":[{"message":"team not found"}]}`)
			return
		}
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Config{})

	okOp := testOperation(t)
	failOp, err := gql.Query("GetTeam").Select(gql.Selection{"team": gql.Selection{"id": true}}).Build()
	require.NoError(t, err)

	result, err := c.ExecuteBatch(context.Background(), []*gql.Operation{okOp, failOp, okOp})
	require.NoError(t, err)

	require.Len(t, result.Results, 3)
	assert.False(t, result.Success)
	assert.NoError(t, result.Results[0].Err)
	require.Error(t, result.Results[1].Err)
	assert.Contains(t, result.Results[1].Err.Error(), "team not found")
	assert.NoError(t, result.Results[2].Err)
}

func TestExecuteBatchNilOperationCaptured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Config{})
	result, err := c.ExecuteBatch(context.Background(), []*gql.Operation{testOperation(t), nil})
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.False(t, result.Success)
	assert.Error(t, result.Results[1].Err)
}

func TestExecuteBatchEmpty(t *testing.T) {
	c := newTestClient(t, "http://unused.invalid", Config{})
	result, err := c.ExecuteBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Results)
}

func TestExecuteBatchCancelledBeforeStart(t *testing.T) {
	c := newTestClient(t, "http://unused.invalid", Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ExecuteBatch(ctx, []*gql.Operation{testOperation(t)})
	require.Error(t, err)
}

func TestRateLimiterDelaysRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Config{MaxRequests: 1, Window: 40 * time.Millisecond})
	// Burn the initial burst.
	_, err := c.Execute(context.Background(), testOperation(t))
	require.NoError(t, err)

	start := time.Now()
	_, err = c.Execute(context.Background(), testOperation(t))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, KindRateLimited, classifyStatus(429))
	assert.Equal(t, KindServer, classifyStatus(500))
	assert.Equal(t, KindServer, classifyStatus(503))
	assert.Equal(t, KindClient, classifyStatus(400))
	assert.Equal(t, KindClient, classifyStatus(404))
}

func TestRetryableTable(t *testing.T) {
	assert.True(t, KindTimeout.Retryable())
	assert.True(t, KindNetwork.Retryable())
	assert.True(t, KindRateLimited.Retryable())
	assert.True(t, KindServer.Retryable())
	assert.False(t, KindClient.Retryable())
	assert.False(t, KindGraphQL.Retryable())
	assert.False(t, KindUnknown.Retryable())
}

func TestClassifyTransportFallback(t *testing.T) {
	assert.Equal(t, KindTimeout, classifyTransport(errors.New("request timeout")))
	assert.Equal(t, KindNetwork, classifyTransport(errors.New("connection refused")))
	assert.Equal(t, KindNetwork, classifyTransport(errors.New("unexpected EOF")))
	assert.Equal(t, KindUnknown, classifyTransport(errors.New("something else")))
}
