package gql

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrFragmentExists   = errors.New("fragment already registered with a different body")
	ErrFragmentNotFound = errors.New("fragment not found")
)

// Fragment is a named, reusable field selection tied to a GraphQL type.
type Fragment struct {
	Name          string
	TypeCondition string
	Body          string
}

func (f Fragment) render() string {
	return fmt.Sprintf("fragment %s on %s {\n%s\n}", f.Name, f.TypeCondition, indent(strings.TrimSpace(f.Body), 1))
}

// Registry holds fragments registered at startup. It is append-only:
// fragments are never removed or replaced for the life of the process.
type Registry struct {
	mu        sync.RWMutex
	fragments map[string]Fragment
}

func NewRegistry() *Registry {
	return &Registry{fragments: make(map[string]Fragment)}
}

// Register adds a fragment under a globally unique name. Re-registering an
// identical fragment is a no-op; registering a different body under an
// existing name is an error.
func (r *Registry) Register(name, typeCondition, body string) error {
	if name == "" {
		return errors.New("fragment name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := Fragment{Name: name, TypeCondition: typeCondition, Body: strings.TrimSpace(body)}
	if existing, ok := r.fragments[name]; ok {
		if existing == next {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrFragmentExists, name)
	}

	r.fragments[name] = next
	return nil
}

func (r *Registry) Resolve(name string) (Fragment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fragments[name]
	if !ok {
		return Fragment{}, fmt.Errorf("%w: %s", ErrFragmentNotFound, name)
	}
	return f, nil
}

func indent(s string, depth int) string {
	pad := strings.Repeat("  ", depth)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
