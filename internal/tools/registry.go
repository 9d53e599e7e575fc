package tools

import (
	"context"
	"fmt"
	"log/slog"

	"linearmcp/internal/auth"
)

// Handler executes one tool call against the domain services. A returned
// error is reported to the caller as an IsError result, not propagated.
type Handler func(ctx context.Context, args map[string]any) (Result, error)

type binding struct {
	action   string
	required []string
	handler  Handler
}

// Registry pairs the descriptor table with handlers and routes calls by
// prefixed tool name.
type Registry struct {
	provider    auth.Provider
	logger      *slog.Logger
	descriptors []Descriptor
	bindings    map[string]binding
}

// NewRegistry wires every tool in the table to its handler. It fails if a
// tool has no handler or a handler has no tool, so a mismatch between the
// table and the service wiring is caught at startup rather than on first call.
func NewRegistry(prefix string, services Services, provider auth.Provider, logger *slog.Logger) (*Registry, error) {
	handlers := serviceHandlers(services)
	bindings := make(map[string]binding, len(defs))
	for _, d := range defs {
		h, ok := handlers[d.name]
		if !ok {
			return nil, fmt.Errorf("tool %s has no handler", d.name)
		}
		bindings[prefixName(prefix, d.name)] = binding{
			action:   d.action,
			required: d.required,
			handler:  h,
		}
	}
	if len(handlers) != len(defs) {
		for name := range handlers {
			found := false
			for _, d := range defs {
				if d.name == name {
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("handler %s has no tool definition", name)
			}
		}
	}
	return &Registry{
		provider:    provider,
		logger:      logger.With("component", "tool-registry"),
		descriptors: BuildToolTable(prefix),
		bindings:    bindings,
	}, nil
}

// Descriptors returns the table announced to MCP clients.
func (r *Registry) Descriptors() []Descriptor {
	return r.descriptors
}

// Dispatch runs the named tool. Every failure mode comes back as an IsError
// result so the transport never sees a protocol fault for a bad call.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) Result {
	b, ok := r.bindings[name]
	if !ok {
		return Errorf("unknown tool: %s", name)
	}
	if !r.provider.Authenticated() {
		return Errorf("not authenticated: a Linear API key is required")
	}
	if args == nil {
		args = map[string]any{}
	}
	for _, key := range b.required {
		if v, present := args[key]; !present || v == nil {
			return Errorf("missing required argument %q", key)
		}
	}
	result, err := b.handler(ctx, args)
	if err != nil {
		r.logger.Warn("tool call failed", "tool", name, "error", err)
		return Errorf("Failed to %s: %v", b.action, err)
	}
	return result
}
