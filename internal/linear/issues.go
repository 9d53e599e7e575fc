package linear

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"linearmcp/internal/catalog"
	"linearmcp/internal/gql"
)

type IssueService struct {
	exec   Executor
	logger *slog.Logger
}

func NewIssueService(exec Executor, logger *slog.Logger) *IssueService {
	return &IssueService{exec: exec, logger: logger.With("component", "issue-service")}
}

type IssueCreateInput struct {
	Title       string   `json:"title"`
	TeamID      string   `json:"teamId"`
	Description string   `json:"description,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	Estimate    *float64 `json:"estimate,omitempty"`
	StateID     string   `json:"stateId,omitempty"`
	AssigneeID  string   `json:"assigneeId,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty"`
}

func (in IssueCreateInput) validate() error {
	if in.Title == "" {
		return errors.New("title is required")
	}
	if in.TeamID == "" {
		return errors.New("teamId is required")
	}
	return nil
}

type IssueUpdateInput struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	Estimate    *float64 `json:"estimate,omitempty"`
	StateID     string   `json:"stateId,omitempty"`
	AssigneeID  string   `json:"assigneeId,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty"`
}

// IssueUpdate pairs an issue id with the fields to change, for bulk updates.
type IssueUpdate struct {
	ID    string           `json:"id"`
	Input IssueUpdateInput `json:"input"`
}

type ListIssuesOptions struct {
	TeamID     string
	AssigneeID string
	StateID    string
	Page       catalog.Page
}

func (opts ListIssuesOptions) filter() map[string]any {
	filter := map[string]any{}
	if opts.TeamID != "" {
		filter["team"] = map[string]any{"id": map[string]any{"eq": opts.TeamID}}
	}
	if opts.AssigneeID != "" {
		filter["assignee"] = map[string]any{"id": map[string]any{"eq": opts.AssigneeID}}
	}
	if opts.StateID != "" {
		filter["state"] = map[string]any{"id": map[string]any{"eq": opts.StateID}}
	}
	if len(filter) == 0 {
		return nil
	}
	return filter
}

func (s *IssueService) Get(ctx context.Context, id string) (*Issue, error) {
	op, err := catalog.GetIssue(id)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("get issue failed", "id", id, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Issue *Issue `json:"issue"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if data.Issue == nil {
		return nil, fmt.Errorf("issue %s: %w", id, ErrNotFound)
	}
	return data.Issue, nil
}

func (s *IssueService) List(ctx context.Context, opts ListIssuesOptions) (*Connection[Issue], error) {
	op, err := catalog.ListIssues(opts.filter(), opts.Page)
	if err != nil {
		return nil, err
	}
	return s.issueConnection(ctx, op)
}

func (s *IssueService) Search(ctx context.Context, query string, page catalog.Page) (*Connection[Issue], error) {
	if query == "" {
		return nil, errors.New("query is required")
	}
	op, err := catalog.SearchIssues(query, page)
	if err != nil {
		return nil, err
	}
	return s.issueConnection(ctx, op)
}

// SearchByIdentifiers resolves human-facing identifiers such as "ENG-78".
func (s *IssueService) SearchByIdentifiers(ctx context.Context, identifiers []string) ([]Issue, error) {
	if len(identifiers) == 0 {
		return nil, errors.New("at least one identifier is required")
	}
	op, err := catalog.SearchIssuesByIdentifiers(identifiers)
	if err != nil {
		return nil, err
	}
	conn, err := s.issueConnection(ctx, op)
	if err != nil {
		return nil, err
	}
	return conn.Nodes, nil
}

func (s *IssueService) issueConnection(ctx context.Context, op *gql.Operation) (*Connection[Issue], error) {
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("issue query failed", "operation", op.Name, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Issues Connection[Issue] `json:"issues"`
	}](resp)
	if err != nil {
		return nil, err
	}
	return &data.Issues, nil
}

type issueMutationPayload struct {
	Success bool   `json:"success"`
	Issue   *Issue `json:"issue"`
}

func (s *IssueService) Create(ctx context.Context, input IssueCreateInput) (*Issue, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	op, err := catalog.CreateIssue(input)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("create issue failed", "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		IssueCreate issueMutationPayload `json:"issueCreate"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if err := checkSuccess(data.IssueCreate.Success, "issue create"); err != nil {
		return nil, err
	}
	return data.IssueCreate.Issue, nil
}

func (s *IssueService) Update(ctx context.Context, id string, input IssueUpdateInput) (*Issue, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}
	op, err := catalog.UpdateIssue(id, input)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("update issue failed", "id", id, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		IssueUpdate issueMutationPayload `json:"issueUpdate"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if err := checkSuccess(data.IssueUpdate.Success, "issue update"); err != nil {
		return nil, err
	}
	return data.IssueUpdate.Issue, nil
}

func (s *IssueService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id is required")
	}
	op, err := catalog.DeleteIssue(id)
	if err != nil {
		return err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("delete issue failed", "id", id, "error", err)
		return err
	}
	data, err := unmarshalData[struct {
		IssueDelete struct {
			Success bool `json:"success"`
		} `json:"issueDelete"`
	}](resp)
	if err != nil {
		return err
	}
	return checkSuccess(data.IssueDelete.Success, "issue delete")
}

// BulkCreate creates all issues through the client's bounded batch executor.
// Every input is validated before any request is sent; after that, failures
// are reported per item and already-created issues are not rolled back.
func (s *IssueService) BulkCreate(ctx context.Context, inputs []IssueCreateInput) (*BulkResult, error) {
	if len(inputs) == 0 {
		return nil, errors.New("at least one issue is required")
	}
	ops := make([]*gql.Operation, len(inputs))
	for i, input := range inputs {
		if err := input.validate(); err != nil {
			return nil, fmt.Errorf("issue %d: %w", i, err)
		}
		op, err := catalog.CreateIssue(input)
		if err != nil {
			return nil, fmt.Errorf("issue %d: %w", i, err)
		}
		ops[i] = op
	}
	return s.runBulk(ctx, ops, "issueCreate")
}

func (s *IssueService) BulkUpdate(ctx context.Context, updates []IssueUpdate) (*BulkResult, error) {
	if len(updates) == 0 {
		return nil, errors.New("at least one update is required")
	}
	ops := make([]*gql.Operation, len(updates))
	for i, update := range updates {
		if update.ID == "" {
			return nil, fmt.Errorf("update %d: id is required", i)
		}
		op, err := catalog.UpdateIssue(update.ID, update.Input)
		if err != nil {
			return nil, fmt.Errorf("update %d: %w", i, err)
		}
		ops[i] = op
	}
	return s.runBulk(ctx, ops, "issueUpdate")
}

func (s *IssueService) BulkDelete(ctx context.Context, ids []string) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, errors.New("at least one id is required")
	}
	ops := make([]*gql.Operation, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("id %d is empty", i)
		}
		op, err := catalog.DeleteIssue(id)
		if err != nil {
			return nil, fmt.Errorf("id %d: %w", i, err)
		}
		ops[i] = op
	}
	return s.runBulk(ctx, ops, "issueDelete")
}

func (s *IssueService) runBulk(ctx context.Context, ops []*gql.Operation, payloadKey string) (*BulkResult, error) {
	batch, err := s.exec.ExecuteBatch(ctx, ops)
	if err != nil {
		s.logger.Error("bulk issue operation failed to start", "error", err)
		return nil, err
	}

	result := &BulkResult{Items: make([]BulkItem, len(batch.Results))}
	for i, item := range batch.Results {
		out := BulkItem{Index: i}
		if item.Err != nil {
			out.Error = item.Err.Error()
			result.Failed++
			result.Items[i] = out
			continue
		}
		payload, err := unmarshalData[map[string]issueMutationPayload](item.Response)
		if err != nil {
			out.Error = err.Error()
			result.Failed++
			result.Items[i] = out
			continue
		}
		if p, ok := (*payload)[payloadKey]; ok {
			if !p.Success {
				out.Error = payloadKey + " reported failure"
				result.Failed++
				result.Items[i] = out
				continue
			}
			out.Issue = p.Issue
		}
		result.Succeeded++
		result.Items[i] = out
	}

	if result.Failed > 0 {
		s.logger.Warn("bulk issue operation had failures", "failed", result.Failed, "succeeded", result.Succeeded)
	}
	return result, nil
}
