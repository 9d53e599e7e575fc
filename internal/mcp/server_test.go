package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linearmcp/internal/auth"
	"linearmcp/internal/client"
	"linearmcp/internal/gql"
	"linearmcp/internal/linear"
	"linearmcp/internal/tools"
)

type stubExecutor struct {
	responses map[string]string
	executed  []string
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
	result := &client.BatchResult{Success: true}
	for _, op := range ops {
		resp, err := m.Execute(ctx, op)
		result.Results = append(result.Results, client.BatchItem{Response: resp, Err: err})
	}
	return result, nil
}

func newTestServer(t *testing.T, exec linear.Executor) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issues := linear.NewIssueService(exec, logger)
	registry, err := tools.NewRegistry("", tools.Services{
		Issues:   issues,
		Projects: linear.NewProjectService(exec, issues, logger),
		Teams:    linear.NewTeamService(exec, logger),
		Users:    linear.NewUserService(exec, logger),
		Comments: linear.NewCommentService(exec, logger),
	}, auth.NewAPIKey("lin_api_test"), logger)
	require.NoError(t, err)
	return NewServer(registry, "test", logger)
}

func callTool(t *testing.T, s *Server, name, args string) *sdk.CallToolResult {
	t.Helper()
	handler := s.handleCall(name)
	result, err := handler(context.Background(), &sdk.CallToolRequest{
		Params: &sdk.CallToolParamsRaw{
			Name:      name,
			Arguments: json.RawMessage(args),
		},
	})
	require.NoError(t, err)
	return result
}

func resultText(t *testing.T, result *sdk.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*sdk.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServerToolCall(t *testing.T) {
	exec := &stubExecutor{responses: map[string]string{
		"GetTeam": `{"team": {"id": "team-1", "key": "ENG", "name": "Engineering"}}`,
	}}
	server := newTestServer(t, exec)

	result := callTool(t, server, "linear_get_team", `{"id": "team-1"}`)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"key": "ENG"`)
	assert.Equal(t, []string{"GetTeam"}, exec.executed)
}

func TestServerToolCallEmptyArguments(t *testing.T) {
	exec := &stubExecutor{responses: map[string]string{
		"ListTeams": `{"teams": {"nodes": [], "pageInfo": {"hasNextPage": false}}}`,
	}}
	server := newTestServer(t, exec)

	result := callTool(t, server, "linear_list_teams", "")
	assert.False(t, result.IsError)
}

func TestServerToolCallMissingArgument(t *testing.T) {
	exec := &stubExecutor{}
	server := newTestServer(t, exec)

	result := callTool(t, server, "linear_delete_issue", `{}`)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"id"`)
	assert.Empty(t, exec.executed)
}

func TestServerToolCallMalformedArguments(t *testing.T) {
	server := newTestServer(t, &stubExecutor{})

	handler := server.handleCall("linear_get_issue")
	_, err := handler(context.Background(), &sdk.CallToolRequest{
		Params: &sdk.CallToolParamsRaw{
			Name:      "linear_get_issue",
			Arguments: json.RawMessage(`{"id":`),
		},
	})
	require.Error(t, err)
}
