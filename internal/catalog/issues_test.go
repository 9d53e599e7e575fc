package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linearmcp/internal/gql"
)

func TestGetIssue(t *testing.T) {
	op, err := GetIssue("abc-id")
	require.NoError(t, err)

	assert.Equal(t, gql.KindQuery, op.Kind)
	assert.Contains(t, op.Document, "issue(id: $id)")
	assert.Contains(t, op.Document, "fragment IssueFields on Issue")
	assert.Equal(t, "abc-id", op.Variables["id"])
}

func TestListIssuesUnboundPagination(t *testing.T) {
	op, err := ListIssues(nil, Page{})
	require.NoError(t, err)

	// Pagination variables are declared but not bound.
	assert.Contains(t, op.Document, "$first: Int")
	assert.Contains(t, op.Document, "$after: String")
	assert.Nil(t, op.Variables)
}

func TestListIssuesBoundPagination(t *testing.T) {
	op, err := ListIssues(map[string]any{"team": map[string]any{"id": map[string]any{"eq": "t1"}}}, Page{First: 25, After: "cursor"})
	require.NoError(t, err)

	assert.Equal(t, 25, op.Variables["first"])
	assert.Equal(t, "cursor", op.Variables["after"])
	assert.NotNil(t, op.Variables["filter"])
}

func TestSearchIssuesByIdentifiers(t *testing.T) {
	op, err := SearchIssuesByIdentifiers([]string{"ENG-78", "ENG-79"})
	require.NoError(t, err)

	assert.Equal(t, []float64{78, 79}, op.Variables["numbers"])
	assert.Contains(t, op.Document, "number: { in: $numbers }")
}

func TestSearchIssuesByIdentifiersMalformed(t *testing.T) {
	for _, identifier := range []string{"ENG78", "ENG-", "ENG-ab", ""} {
		_, err := SearchIssuesByIdentifiers([]string{identifier})
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("identifier %q: expected ErrInvalidIdentifier, got %v", identifier, err)
		}
	}
}

func TestCreateIssue(t *testing.T) {
	input := map[string]any{"title": "Fix login", "teamId": "t1"}
	op, err := CreateIssue(input)
	require.NoError(t, err)

	assert.Equal(t, gql.KindMutation, op.Kind)
	assert.Contains(t, op.Document, "mutation CreateIssue($input: IssueCreateInput!)")
	assert.Contains(t, op.Document, "issueCreate(input: $input)")
	assert.Equal(t, input, op.Variables["input"])
}

func TestUpdateIssue(t *testing.T) {
	op, err := UpdateIssue("i1", map[string]any{"title": "New title"})
	require.NoError(t, err)

	assert.Contains(t, op.Document, "issueUpdate(id: $id, input: $input)")
	assert.Equal(t, "i1", op.Variables["id"])
}

func TestDeleteIssue(t *testing.T) {
	op, err := DeleteIssue("i1")
	require.NoError(t, err)

	assert.Contains(t, op.Document, "issueDelete(id: $id)")
	assert.Contains(t, op.Document, "success")
	assert.NotContains(t, op.Document, "fragment")
}
