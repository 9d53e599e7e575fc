package linear

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"linearmcp/internal/catalog"
)

type TeamService struct {
	exec   Executor
	logger *slog.Logger
}

func NewTeamService(exec Executor, logger *slog.Logger) *TeamService {
	return &TeamService{exec: exec, logger: logger.With("component", "team-service")}
}

func (s *TeamService) Get(ctx context.Context, id string) (*Team, error) {
	op, err := catalog.GetTeam(id)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("get team failed", "id", id, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Team *Team `json:"team"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if data.Team == nil {
		return nil, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	return data.Team, nil
}

func (s *TeamService) List(ctx context.Context, page catalog.Page) (*Connection[Team], error) {
	op, err := catalog.ListTeams(page)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("list teams failed", "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Teams Connection[Team] `json:"teams"`
	}](resp)
	if err != nil {
		return nil, err
	}
	return &data.Teams, nil
}

// States lists a team's workflow states.
func (s *TeamService) States(ctx context.Context, teamID string, page catalog.Page) (*Connection[WorkflowState], error) {
	if teamID == "" {
		return nil, errors.New("teamId is required")
	}
	op, err := catalog.GetTeamStates(teamID, page)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("get team states failed", "teamId", teamID, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Team *struct {
			States Connection[WorkflowState] `json:"states"`
		} `json:"team"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if data.Team == nil {
		return nil, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}
	return &data.Team.States, nil
}
