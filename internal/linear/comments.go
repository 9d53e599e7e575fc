package linear

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"linearmcp/internal/catalog"
	"linearmcp/internal/gql"
)

type CommentService struct {
	exec   Executor
	logger *slog.Logger
}

func NewCommentService(exec Executor, logger *slog.Logger) *CommentService {
	return &CommentService{exec: exec, logger: logger.With("component", "comment-service")}
}

type CommentCreateInput struct {
	IssueID string `json:"issueId"`
	Body    string `json:"body"`
	// ParentID threads the comment under another comment.
	ParentID string `json:"parentId,omitempty"`
}

func (s *CommentService) Get(ctx context.Context, id string) (*Comment, error) {
	op, err := catalog.GetComment(id)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("get comment failed", "id", id, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Comment *Comment `json:"comment"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if data.Comment == nil {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	return data.Comment, nil
}

func (s *CommentService) ListForIssue(ctx context.Context, issueID string, page catalog.Page) (*Connection[Comment], error) {
	if issueID == "" {
		return nil, errors.New("issueId is required")
	}
	op, err := catalog.ListComments(issueID, page)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("list comments failed", "issueId", issueID, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Issue *struct {
			Comments Connection[Comment] `json:"comments"`
		} `json:"issue"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if data.Issue == nil {
		return nil, fmt.Errorf("issue %s: %w", issueID, ErrNotFound)
	}
	return &data.Issue.Comments, nil
}

type commentMutationPayload struct {
	Success bool     `json:"success"`
	Comment *Comment `json:"comment"`
}

func (s *CommentService) Create(ctx context.Context, input CommentCreateInput) (*Comment, error) {
	if input.IssueID == "" {
		return nil, errors.New("issueId is required")
	}
	if input.Body == "" {
		return nil, errors.New("body is required")
	}
	op, err := catalog.CreateComment(input)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, op, "commentCreate")
}

func (s *CommentService) Update(ctx context.Context, id, body string) (*Comment, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}
	if body == "" {
		return nil, errors.New("body is required")
	}
	op, err := catalog.UpdateComment(id, map[string]any{"body": body})
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, op, "commentUpdate")
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id is required")
	}
	op, err := catalog.DeleteComment(id)
	if err != nil {
		return err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("delete comment failed", "id", id, "error", err)
		return err
	}
	data, err := unmarshalData[struct {
		CommentDelete struct {
			Success bool `json:"success"`
		} `json:"commentDelete"`
	}](resp)
	if err != nil {
		return err
	}
	return checkSuccess(data.CommentDelete.Success, "comment delete")
}

func (s *CommentService) Resolve(ctx context.Context, id string) (*Comment, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}
	op, err := catalog.ResolveComment(id)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, op, "commentResolve")
}

func (s *CommentService) Unresolve(ctx context.Context, id string) (*Comment, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}
	op, err := catalog.UnresolveComment(id)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, op, "commentUnresolve")
}

func (s *CommentService) mutate(ctx context.Context, op *gql.Operation, payloadKey string) (*Comment, error) {
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("comment mutation failed", "operation", op.Name, "error", err)
		return nil, err
	}
	data, err := unmarshalData[map[string]commentMutationPayload](resp)
	if err != nil {
		return nil, err
	}
	payload, ok := (*data)[payloadKey]
	if !ok {
		return nil, fmt.Errorf("response missing %s payload", payloadKey)
	}
	if err := checkSuccess(payload.Success, payloadKey); err != nil {
		return nil, err
	}
	return payload.Comment, nil
}
