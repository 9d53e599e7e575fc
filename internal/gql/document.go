package gql

import (
	"fmt"
	"strings"
)

// validateDocument runs a structural pass over rendered text: balanced
// braces and parentheses, no empty selection sets. It stands in for a full
// parse; anything it misses is rejected by the server.
func validateDocument(doc string) error {
	var depth, parens int
	prev := byte(0)
	for i := 0; i < len(doc); i++ {
		switch doc[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("unbalanced braces at offset %d", i)
			}
			if prev == '{' {
				return fmt.Errorf("empty selection set at offset %d", i)
			}
		case '(':
			parens++
		case ')':
			parens--
			if parens < 0 {
				return fmt.Errorf("unbalanced parentheses at offset %d", i)
			}
			if prev == '(' {
				return fmt.Errorf("empty argument list at offset %d", i)
			}
		}
		if !isSpace(doc[i]) {
			prev = doc[i]
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced braces: %d unclosed", depth)
	}
	if parens != 0 {
		return fmt.Errorf("unbalanced parentheses: %d unclosed", parens)
	}
	if !strings.Contains(doc, "{") {
		return fmt.Errorf("document has no selection")
	}
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}
