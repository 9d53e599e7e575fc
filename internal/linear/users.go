package linear

import (
	"context"
	"fmt"
	"log/slog"

	"linearmcp/internal/catalog"
)

type UserService struct {
	exec   Executor
	logger *slog.Logger
}

func NewUserService(exec Executor, logger *slog.Logger) *UserService {
	return &UserService{exec: exec, logger: logger.With("component", "user-service")}
}

func (s *UserService) Get(ctx context.Context, id string) (*User, error) {
	op, err := catalog.GetUser(id)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("get user failed", "id", id, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		User *User `json:"user"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return data.User, nil
}

func (s *UserService) List(ctx context.Context, page catalog.Page) (*Connection[User], error) {
	op, err := catalog.ListUsers(page)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("list users failed", "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Users Connection[User] `json:"users"`
	}](resp)
	if err != nil {
		return nil, err
	}
	return &data.Users, nil
}

// Viewer returns the user the configured credential belongs to.
func (s *UserService) Viewer(ctx context.Context) (*User, error) {
	op, err := catalog.Viewer()
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("get viewer failed", "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Viewer *User `json:"viewer"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if data.Viewer == nil {
		return nil, fmt.Errorf("viewer: %w", ErrNotFound)
	}
	return data.Viewer, nil
}
