package tools

import (
	"encoding/json"
	"fmt"
)

// Content is one block of a tool response. Only text blocks are produced.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the envelope returned to the MCP caller. Business failures come
// back as IsError results, never as protocol-level faults.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

func TextResult(text string) Result {
	return Result{Content: []Content{{Type: "text", Text: text}}}
}

func JSONResult(v any) Result {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Errorf("encoding response: %v", err)
	}
	return TextResult(string(data))
}

func Errorf(format string, args ...any) Result {
	return Result{
		Content: []Content{{Type: "text", Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
