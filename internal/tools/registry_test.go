package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linearmcp/internal/client"
	"linearmcp/internal/gql"
	"linearmcp/internal/linear"
)

type stubExecutor struct {
	responses map[string]string
	executed  []string
	batchOps  []*gql.Operation
}

func (m *stubExecutor) Execute(ctx context.Context, op *gql.Operation) (*client.Response, error) {
	m.executed = append(m.executed, op.Name)
	data, ok := m.responses[op.Name]
	if !ok {
		data = "{}"
	}
	return &client.Response{Data: json.RawMessage(data)}, nil
}

func (m *stubExecutor) ExecuteBatch(ctx context.Context, ops []*gql.Operation) (*client.BatchResult, error) {
	m.batchOps = ops
	result := &client.BatchResult{Success: true}
	for _, op := range ops {
		resp, err := m.Execute(ctx, op)
		result.Results = append(result.Results, client.BatchItem{Response: resp, Err: err})
	}
	return result, nil
}

type stubProvider struct {
	authenticated bool
}

func (p *stubProvider) Authorization(ctx context.Context) (string, error) {
	return "lin_api_test", nil
}

func (p *stubProvider) Authenticated() bool { return p.authenticated }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServices(exec linear.Executor) Services {
	logger := testLogger()
	issues := linear.NewIssueService(exec, logger)
	return Services{
		Issues:   issues,
		Projects: linear.NewProjectService(exec, issues, logger),
		Teams:    linear.NewTeamService(exec, logger),
		Users:    linear.NewUserService(exec, logger),
		Comments: linear.NewCommentService(exec, logger),
	}
}

func newTestRegistry(t *testing.T, prefix string, exec linear.Executor) *Registry {
	t.Helper()
	reg, err := NewRegistry(prefix, testServices(exec), &stubProvider{authenticated: true}, testLogger())
	require.NoError(t, err)
	return reg
}

func resultText(t *testing.T, res Result) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	return res.Content[0].Text
}

func TestRegistryEveryToolHasHandler(t *testing.T) {
	reg := newTestRegistry(t, "", &stubExecutor{})
	assert.Len(t, reg.Descriptors(), len(defs))
	for _, d := range reg.Descriptors() {
		_, ok := reg.bindings[d.Name]
		assert.True(t, ok, "tool %s has no binding", d.Name)
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	reg := newTestRegistry(t, "", &stubExecutor{})

	res := reg.Dispatch(context.Background(), "linear_frobnicate", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "unknown tool: linear_frobnicate")
}

func TestDispatchUnauthenticated(t *testing.T) {
	exec := &stubExecutor{}
	reg, err := NewRegistry("", testServices(exec), &stubProvider{}, testLogger())
	require.NoError(t, err)

	res := reg.Dispatch(context.Background(), "linear_list_teams", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "not authenticated")
	assert.Empty(t, exec.executed)
}

func TestDispatchMissingRequiredArgument(t *testing.T) {
	exec := &stubExecutor{}
	reg := newTestRegistry(t, "", exec)

	res := reg.Dispatch(context.Background(), "linear_delete_issue", map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), `missing required argument "id"`)
	assert.Empty(t, exec.executed)
}

func TestDispatchNilRequiredArgumentCountsMissing(t *testing.T) {
	exec := &stubExecutor{}
	reg := newTestRegistry(t, "", exec)

	res := reg.Dispatch(context.Background(), "linear_get_issue", map[string]any{"id": nil})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), `missing required argument "id"`)
	assert.Empty(t, exec.executed)
}

func TestDispatchGetIssue(t *testing.T) {
	exec := &stubExecutor{responses: map[string]string{
		"GetIssue": `{"issue": {"id": "issue-1", "identifier": "ENG-42", "title": "Fix login"}}`,
	}}
	reg := newTestRegistry(t, "", exec)

	res := reg.Dispatch(context.Background(), "linear_get_issue", map[string]any{"id": "issue-1"})
	assert.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, `"identifier": "ENG-42"`)
	assert.Equal(t, []string{"GetIssue"}, exec.executed)
}

func TestDispatchCreateIssue(t *testing.T) {
	exec := &stubExecutor{responses: map[string]string{
		"CreateIssue": `{"issueCreate": {"success": true, "issue": {"id": "issue-9", "title": "New"}}}`,
	}}
	reg := newTestRegistry(t, "", exec)

	res := reg.Dispatch(context.Background(), "linear_create_issue", map[string]any{
		"title":    "New",
		"teamId":   "team-1",
		"priority": float64(2),
	})
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"id": "issue-9"`)
}

func TestDispatchServiceErrorBecomesResult(t *testing.T) {
	exec := &stubExecutor{responses: map[string]string{
		"DeleteIssue": `{"issueDelete": {"success": false}}`,
	}}
	reg := newTestRegistry(t, "", exec)

	res := reg.Dispatch(context.Background(), "linear_delete_issue", map[string]any{"id": "issue-1"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Failed to delete issue")
}

func TestDispatchBulkDeleteIssues(t *testing.T) {
	exec := &stubExecutor{responses: map[string]string{
		"DeleteIssue": `{"issueDelete": {"success": true}}`,
	}}
	reg := newTestRegistry(t, "", exec)

	res := reg.Dispatch(context.Background(), "linear_bulk_delete_issues", map[string]any{
		"ids": []any{"issue-1", "issue-2"},
	})
	assert.False(t, res.IsError)
	assert.Len(t, exec.batchOps, 2)
	assert.Contains(t, resultText(t, res), `"succeeded": 2`)
}

func TestDispatchCreateProjectWithIssues(t *testing.T) {
	exec := &stubExecutor{responses: map[string]string{
		"CreateProject": `{"projectCreate": {"success": true, "project": {"id": "proj-1", "name": "Launch"}}}`,
		"CreateIssue":   `{"issueCreate": {"success": true, "issue": {"id": "issue-1"}}}`,
	}}
	reg := newTestRegistry(t, "", exec)

	res := reg.Dispatch(context.Background(), "linear_create_project", map[string]any{
		"name":    "Launch",
		"teamIds": []any{"team-1"},
		"issues": []any{
			map[string]any{"title": "First task", "teamId": "team-1"},
		},
	})
	assert.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, `"id": "proj-1"`)
	assert.Contains(t, exec.executed, "CreateProject")
	assert.Len(t, exec.batchOps, 1)
}

func TestDispatchListCommentsPagination(t *testing.T) {
	exec := &stubExecutor{responses: map[string]string{
		"ListComments": `{"issue": {"comments": {"nodes": [], "pageInfo": {"hasNextPage": false}}}}`,
	}}
	reg := newTestRegistry(t, "", exec)

	res := reg.Dispatch(context.Background(), "linear_list_comments", map[string]any{
		"issueId": "issue-1",
		"first":   float64(25),
	})
	assert.False(t, res.IsError)
	assert.Equal(t, []string{"ListComments"}, exec.executed)
}

func TestDispatchPrefixedNames(t *testing.T) {
	exec := &stubExecutor{responses: map[string]string{
		"GetViewer": `{"viewer": {"id": "user-1", "name": "Ada"}}`,
	}}
	reg := newTestRegistry(t, "acme", exec)

	res := reg.Dispatch(context.Background(), "linear_get_viewer", nil)
	assert.True(t, res.IsError, "unprefixed name should not resolve")

	res = reg.Dispatch(context.Background(), "acme_linear_get_viewer", nil)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"name": "Ada"`)
}

func TestBuildToolTablePrefix(t *testing.T) {
	table := BuildToolTable("acme")
	require.NotEmpty(t, table)
	for _, d := range table {
		assert.True(t, len(d.Name) > len("acme_"), d.Name)
		assert.Equal(t, "acme_", d.Name[:len("acme_")])
		assert.Equal(t, "[acme] ", d.Description[:len("[acme] ")])
	}
}

func TestBuildToolTableSchemas(t *testing.T) {
	for _, d := range BuildToolTable("") {
		require.NotNil(t, d.InputSchema, d.Name)
		assert.Equal(t, "object", d.InputSchema.Type, d.Name)
		for _, key := range d.Required {
			_, ok := d.InputSchema.Properties[key]
			assert.True(t, ok, "%s: required key %s not in schema", d.Name, key)
		}
	}
}
