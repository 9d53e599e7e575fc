// Package gql assembles GraphQL documents from declarative selection trees
// and named fragments. It performs no schema validation: a syntactically
// valid document that references unknown fields fails at execution time,
// from the server.
package gql

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// Selection maps a field name to its selection. Values:
//
//	true              leaf field
//	Selection         nested selection
//	Field             argument-decorated nested selection
//
// A key prefixed with "..." is a fragment spread; its value is ignored.
type Selection map[string]any

// Field is a selection node carrying arguments. Argument values are raw
// GraphQL text, typically a variable reference such as "$id".
type Field struct {
	Args      map[string]string
	Selection Selection
}

// Variable is a declared operation variable. Required variables render with
// a trailing "!" unless the type already carries one.
type Variable struct {
	Name     string
	Type     string
	Required bool
}

// Operation is a finished document plus its bound variables, consumed
// exactly once by the execution client.
type Operation struct {
	Kind      Kind
	Name      string
	Document  string
	Variables map[string]any
}

// Builder accumulates an operation. Methods chain; errors are collected and
// surfaced from Build.
type Builder struct {
	kind      Kind
	name      string
	vars      []Variable
	bound     map[string]any
	fragments []Fragment
	selection Selection
	errs      []error
}

func Query(name string) *Builder {
	return newBuilder(KindQuery, name)
}

func Mutation(name string) *Builder {
	return newBuilder(KindMutation, name)
}

func newBuilder(kind Kind, name string) *Builder {
	b := &Builder{
		kind:      kind,
		name:      name,
		bound:     make(map[string]any),
		selection: make(Selection),
	}
	if name == "" {
		b.errs = append(b.errs, errors.New("operation name is required"))
	}
	return b
}

// DeclareVariable appends a variable to the operation header. Declaring the
// same name again overwrites the earlier declaration in place.
func (b *Builder) DeclareVariable(name, typ string, required bool) *Builder {
	for i := range b.vars {
		if b.vars[i].Name == name {
			b.vars[i].Type = typ
			b.vars[i].Required = required
			return b
		}
	}
	b.vars = append(b.vars, Variable{Name: name, Type: typ, Required: required})
	return b
}

// BindVariable sets a variable value. Binding a name that was never declared
// is a silent no-op: the catalog declares every variable an operation can
// take and binds only those the caller provided, leaving the rest to server
// defaults.
func (b *Builder) BindVariable(name string, value any) *Builder {
	for _, v := range b.vars {
		if v.Name == name {
			b.bound[name] = value
			return b
		}
	}
	return b
}

// AttachFragment adds a fragment definition to the build. Attaching an
// identical fragment twice is a no-op; attaching a different body under the
// same name is a build error.
func (b *Builder) AttachFragment(f Fragment) *Builder {
	f.Body = strings.TrimSpace(f.Body)
	for _, existing := range b.fragments {
		if existing.Name != f.Name {
			continue
		}
		if existing == f {
			return b
		}
		b.errs = append(b.errs, fmt.Errorf("conflicting fragment attached: %s", f.Name))
		return b
	}
	b.fragments = append(b.fragments, f)
	return b
}

// Attach resolves fragments from a registry and attaches them.
func (b *Builder) Attach(r *Registry, names ...string) *Builder {
	for _, name := range names {
		f, err := r.Resolve(name)
		if err != nil {
			b.errs = append(b.errs, err)
			continue
		}
		b.AttachFragment(f)
	}
	return b
}

// Select merges a selection tree into the current one. Colliding nested
// selections merge recursively; colliding leaves are last-write-wins.
func (b *Builder) Select(tree Selection) *Builder {
	mergeSelection(b.selection, tree)
	return b
}

func mergeSelection(dst, src Selection) {
	for key, value := range src {
		if sub, ok := value.(Selection); ok {
			if existing, ok := dst[key].(Selection); ok {
				mergeSelection(existing, sub)
				continue
			}
			copied := make(Selection, len(sub))
			mergeSelection(copied, sub)
			dst[key] = copied
			continue
		}
		if field, ok := value.(Field); ok {
			copied := make(Selection, len(field.Selection))
			mergeSelection(copied, field.Selection)
			dst[key] = Field{Args: field.Args, Selection: copied}
			continue
		}
		dst[key] = value
	}
}

// Build renders the document and validates its structure. A variable that
// was declared but never bound still appears in the header; if the server
// requires it, the server rejects the call.
func (b *Builder) Build() (*Operation, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if len(b.selection) == 0 {
		return nil, fmt.Errorf("operation %s has no selection", b.name)
	}

	var sb strings.Builder
	sb.WriteString(string(b.kind))
	sb.WriteString(" ")
	sb.WriteString(b.name)
	if len(b.vars) > 0 {
		sb.WriteString("(")
		for i, v := range b.vars {
			if i > 0 {
				sb.WriteString(", ")
			}
			typ := v.Type
			if v.Required && !strings.HasSuffix(typ, "!") {
				typ += "!"
			}
			fmt.Fprintf(&sb, "$%s: %s", v.Name, typ)
		}
		sb.WriteString(")")
	}
	sb.WriteString(" {\n")
	renderSelection(&sb, b.selection, 1)
	sb.WriteString("}")

	fragments, err := b.referencedFragments(sb.String())
	if err != nil {
		return nil, err
	}
	for _, f := range fragments {
		sb.WriteString("\n\n")
		sb.WriteString(f.render())
	}

	document := sb.String()
	if err := validateDocument(document); err != nil {
		return nil, fmt.Errorf("building operation %s: %w", b.name, err)
	}

	var variables map[string]any
	if len(b.bound) > 0 {
		variables = b.bound
	}

	return &Operation{
		Kind:      b.kind,
		Name:      b.name,
		Document:  document,
		Variables: variables,
	}, nil
}

func renderSelection(sb *strings.Builder, sel Selection, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, key := range sortedKeys(sel) {
		if strings.HasPrefix(key, "...") {
			sb.WriteString(pad + key + "\n")
			continue
		}
		switch value := sel[key].(type) {
		case Selection:
			sb.WriteString(pad + key + " {\n")
			renderSelection(sb, value, depth+1)
			sb.WriteString(pad + "}\n")
		case Field:
			sb.WriteString(pad + key)
			if len(value.Args) > 0 {
				sb.WriteString("(")
				for i, arg := range sortedKeys(value.Args) {
					if i > 0 {
						sb.WriteString(", ")
					}
					sb.WriteString(arg + ": " + value.Args[arg])
				}
				sb.WriteString(")")
			}
			if len(value.Selection) > 0 {
				sb.WriteString(" {\n")
				renderSelection(sb, value.Selection, depth+1)
				sb.WriteString(pad + "}\n")
			} else {
				sb.WriteString("\n")
			}
		default:
			sb.WriteString(pad + key + "\n")
		}
	}
}

// referencedFragments returns attached fragments reachable from the
// operation body through spreads, in attachment order. A spread with no
// attached definition is a build error.
func (b *Builder) referencedFragments(body string) ([]Fragment, error) {
	attached := make(map[string]Fragment, len(b.fragments))
	for _, f := range b.fragments {
		attached[f.Name] = f
	}

	needed := make(map[string]bool)
	pending := spreadNames(body)
	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]
		if needed[name] {
			continue
		}
		f, ok := attached[name]
		if !ok {
			return nil, fmt.Errorf("fragment spread %s has no attached definition", name)
		}
		needed[name] = true
		pending = append(pending, spreadNames(f.Body)...)
	}

	result := make([]Fragment, 0, len(needed))
	for _, f := range b.fragments {
		if needed[f.Name] {
			result = append(result, f)
		}
	}
	return result, nil
}

func spreadNames(s string) []string {
	var names []string
	for {
		i := strings.Index(s, "...")
		if i == -1 {
			return names
		}
		s = s[i+3:]
		end := 0
		for end < len(s) && isNameRune(s[end]) {
			end++
		}
		if end > 0 && s[:end] != "on" {
			names = append(names, s[:end])
		}
		s = s[end:]
	}
}

func isNameRune(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
