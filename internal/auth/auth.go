// Package auth supplies credentials to the execution client. The client
// treats providers as opaque; whether a credential is a personal API key or
// an OAuth access token is decided here.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrNoCredentials = errors.New("no credentials configured")
	ErrTokenExpired  = errors.New("access token expired")
)

// Provider yields the Authorization header value for outbound requests.
type Provider interface {
	Authorization(ctx context.Context) (string, error)
	Authenticated() bool
}

// APIKey authenticates with a long-lived personal API key. Linear expects
// the raw key in the Authorization header, without a Bearer scheme.
type APIKey struct {
	key string
}

func NewAPIKey(key string) *APIKey {
	return &APIKey{key: key}
}

func (p *APIKey) Authorization(ctx context.Context) (string, error) {
	if p.key == "" {
		return "", ErrNoCredentials
	}
	return p.key, nil
}

func (p *APIKey) Authenticated() bool {
	return p.key != ""
}

// BearerToken holds an OAuth-style access token with an expiry. The token is
// cached until replaced via SetToken; refresh flows live outside this
// package.
type BearerToken struct {
	mu     sync.RWMutex
	token  string
	expiry time.Time
	now    func() time.Time
}

func NewBearerToken(token string, expiry time.Time) *BearerToken {
	return &BearerToken{token: token, expiry: expiry, now: time.Now}
}

func (p *BearerToken) SetToken(token string, expiry time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
	p.expiry = expiry
}

func (p *BearerToken) Authorization(ctx context.Context) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.token == "" {
		return "", ErrNoCredentials
	}
	if !p.expiry.IsZero() && !p.now().Before(p.expiry) {
		return "", ErrTokenExpired
	}
	return "Bearer " + p.token, nil
}

func (p *BearerToken) Authenticated() bool {
	_, err := p.Authorization(context.Background())
	return err == nil
}
