// Package tools defines the MCP tool surface: the static descriptor table,
// name prefixing, and dispatch from tool name to service method.
package tools

import "github.com/google/jsonschema-go/jsonschema"

// Descriptor describes one callable tool. Descriptors are built once at
// startup and never mutated.
type Descriptor struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	// Required lists argument keys checked for presence before dispatch,
	// in the order they are reported when missing.
	Required []string
}

// BuildToolTable returns the full descriptor table. A non-empty prefix is
// applied to every name and description, so several workspace connections
// can coexist without colliding tool names.
func BuildToolTable(prefix string) []Descriptor {
	table := make([]Descriptor, 0, len(defs))
	for _, d := range defs {
		table = append(table, Descriptor{
			Name:        prefixName(prefix, d.name),
			Description: prefixDescription(prefix, d.description),
			InputSchema: d.schema(),
			Required:    d.required,
		})
	}
	return table
}

func prefixName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

func prefixDescription(prefix, description string) string {
	if prefix == "" {
		return description
	}
	return "[" + prefix + "] " + description
}

func str(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func integer(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: description}
}

func number(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Description: description}
}

func array(items *jsonschema.Schema, description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: items, Description: description}
}

func object(properties map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: properties, Required: required}
}
