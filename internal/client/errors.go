package client

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorKind classifies a failed execution. Kinds are assigned once at the
// HTTP boundary; retry eligibility is a static property of the kind, not of
// the error text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTimeout
	KindNetwork
	KindRateLimited
	KindServer
	KindClient
	KindGraphQL
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	case KindGraphQL:
		return "graphql"
	default:
		return "unknown"
	}
}

var retryable = map[ErrorKind]bool{
	KindTimeout:     true,
	KindNetwork:     true,
	KindRateLimited: true,
	KindServer:      true,
}

func (k ErrorKind) Retryable() bool {
	return retryable[k]
}

// APIError is the single error type produced by the execution client.
type APIError struct {
	Kind      ErrorKind
	Status    int
	Operation string
	Message   string
	Err       error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Operation, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Operation, e.Kind, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func classifyStatus(status int) ErrorKind {
	switch {
	case status == 429:
		return KindRateLimited
	case status >= 500:
		return KindServer
	case status >= 400:
		return KindClient
	default:
		return KindUnknown
	}
}

// classifyTransport maps an error from the HTTP round trip to a kind.
// Typed checks come first; the message substring fallback covers wrapped
// transport errors that expose no type at all.
func classifyTransport(err error) ErrorKind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return KindTimeout
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "broken pipe"),
		strings.Contains(msg, "eof"):
		return KindNetwork
	}
	return KindUnknown
}
