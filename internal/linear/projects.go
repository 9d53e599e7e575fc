package linear

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"linearmcp/internal/catalog"
)

type ProjectService struct {
	exec   Executor
	issues *IssueService
	logger *slog.Logger
}

func NewProjectService(exec Executor, issues *IssueService, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		exec:   exec,
		issues: issues,
		logger: logger.With("component", "project-service"),
	}
}

type ProjectCreateInput struct {
	Name        string   `json:"name"`
	TeamIDs     []string `json:"teamIds"`
	Description string   `json:"description,omitempty"`
	State       string   `json:"state,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	TargetDate  string   `json:"targetDate,omitempty"`
	LeadID      string   `json:"leadId,omitempty"`
}

func (in ProjectCreateInput) validate() error {
	if in.Name == "" {
		return errors.New("name is required")
	}
	if len(in.TeamIDs) == 0 {
		return errors.New("at least one teamId is required")
	}
	return nil
}

type ProjectUpdateInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	State       string  `json:"state,omitempty"`
	StartDate   string  `json:"startDate,omitempty"`
	TargetDate  string  `json:"targetDate,omitempty"`
	LeadID      string  `json:"leadId,omitempty"`
}

type MilestoneCreateInput struct {
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TargetDate  string `json:"targetDate,omitempty"`
}

type MilestoneUpdateInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	TargetDate  string  `json:"targetDate,omitempty"`
}

// ProjectWithIssuesResult reports a combined project-plus-issues creation.
type ProjectWithIssuesResult struct {
	Project *Project    `json:"project"`
	Issues  *BulkResult `json:"issues,omitempty"`
}

func (s *ProjectService) Get(ctx context.Context, id string) (*Project, error) {
	op, err := catalog.GetProject(id)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("get project failed", "id", id, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Project *Project `json:"project"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if data.Project == nil {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return data.Project, nil
}

func (s *ProjectService) List(ctx context.Context, page catalog.Page) (*Connection[Project], error) {
	op, err := catalog.ListProjects(page)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("list projects failed", "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Projects Connection[Project] `json:"projects"`
	}](resp)
	if err != nil {
		return nil, err
	}
	return &data.Projects, nil
}

type projectMutationPayload struct {
	Success bool     `json:"success"`
	Project *Project `json:"project"`
}

func (s *ProjectService) Create(ctx context.Context, input ProjectCreateInput) (*Project, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	op, err := catalog.CreateProject(input)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("create project failed", "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		ProjectCreate projectMutationPayload `json:"projectCreate"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if err := checkSuccess(data.ProjectCreate.Success, "project create"); err != nil {
		return nil, err
	}
	return data.ProjectCreate.Project, nil
}

// CreateWithIssues creates a project and then its initial issues. All issue
// inputs are validated before the project call, so a bad issue costs no
// network round trip. Each issue must carry its own teamId; nothing is
// defaulted from the project's teams.
func (s *ProjectService) CreateWithIssues(ctx context.Context, input ProjectCreateInput, issues []IssueCreateInput) (*ProjectWithIssuesResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	for i, issue := range issues {
		if err := issue.validate(); err != nil {
			return nil, fmt.Errorf("issue %d: %w", i, err)
		}
	}

	project, err := s.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &ProjectWithIssuesResult{Project: project}
	if len(issues) > 0 {
		withProject := make([]IssueCreateInput, len(issues))
		for i, issue := range issues {
			issue.ProjectID = project.ID
			withProject[i] = issue
		}
		bulk, err := s.issues.BulkCreate(ctx, withProject)
		if err != nil {
			return nil, err
		}
		result.Issues = bulk
	}
	return result, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, input ProjectUpdateInput) (*Project, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}
	op, err := catalog.UpdateProject(id, input)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("update project failed", "id", id, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		ProjectUpdate projectMutationPayload `json:"projectUpdate"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if err := checkSuccess(data.ProjectUpdate.Success, "project update"); err != nil {
		return nil, err
	}
	return data.ProjectUpdate.Project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id is required")
	}
	op, err := catalog.DeleteProject(id)
	if err != nil {
		return err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("delete project failed", "id", id, "error", err)
		return err
	}
	data, err := unmarshalData[struct {
		ProjectDelete struct {
			Success bool `json:"success"`
		} `json:"projectDelete"`
	}](resp)
	if err != nil {
		return err
	}
	return checkSuccess(data.ProjectDelete.Success, "project delete")
}

type milestoneMutationPayload struct {
	Success          bool              `json:"success"`
	ProjectMilestone *ProjectMilestone `json:"projectMilestone"`
}

func (s *ProjectService) CreateMilestone(ctx context.Context, input MilestoneCreateInput) (*ProjectMilestone, error) {
	if input.ProjectID == "" {
		return nil, errors.New("projectId is required")
	}
	if input.Name == "" {
		return nil, errors.New("name is required")
	}
	op, err := catalog.CreateProjectMilestone(input)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("create milestone failed", "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		ProjectMilestoneCreate milestoneMutationPayload `json:"projectMilestoneCreate"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if err := checkSuccess(data.ProjectMilestoneCreate.Success, "milestone create"); err != nil {
		return nil, err
	}
	return data.ProjectMilestoneCreate.ProjectMilestone, nil
}

func (s *ProjectService) UpdateMilestone(ctx context.Context, id string, input MilestoneUpdateInput) (*ProjectMilestone, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}
	op, err := catalog.UpdateProjectMilestone(id, input)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("update milestone failed", "id", id, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		ProjectMilestoneUpdate milestoneMutationPayload `json:"projectMilestoneUpdate"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if err := checkSuccess(data.ProjectMilestoneUpdate.Success, "milestone update"); err != nil {
		return nil, err
	}
	return data.ProjectMilestoneUpdate.ProjectMilestone, nil
}

func (s *ProjectService) ListMilestones(ctx context.Context, projectID string, page catalog.Page) (*Connection[ProjectMilestone], error) {
	if projectID == "" {
		return nil, errors.New("projectId is required")
	}
	op, err := catalog.ListProjectMilestones(projectID, page)
	if err != nil {
		return nil, err
	}
	resp, err := s.exec.Execute(ctx, op)
	if err != nil {
		s.logger.Error("list milestones failed", "projectId", projectID, "error", err)
		return nil, err
	}
	data, err := unmarshalData[struct {
		Project *struct {
			ProjectMilestones Connection[ProjectMilestone] `json:"projectMilestones"`
		} `json:"project"`
	}](resp)
	if err != nil {
		return nil, err
	}
	if data.Project == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	return &data.Project.ProjectMilestones, nil
}
