// Package linear wraps the execution client with typed services for the
// Linear domain: issues, projects, teams, users, and comments.
package linear

import (
	"context"

	"linearmcp/internal/client"
	"linearmcp/internal/gql"
)

// Executor is the slice of the execution client the services consume.
type Executor interface {
	Execute(ctx context.Context, op *gql.Operation) (*client.Response, error)
	ExecuteBatch(ctx context.Context, ops []*gql.Operation) (*client.BatchResult, error)
}

type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type Connection[T any] struct {
	Nodes    []T      `json:"nodes"`
	PageInfo PageInfo `json:"pageInfo"`
}

type WorkflowState struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type TeamRef struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type IssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
}

type Issue struct {
	ID          string             `json:"id"`
	Identifier  string             `json:"identifier"`
	Number      float64            `json:"number"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Priority    float64            `json:"priority"`
	Estimate    *float64           `json:"estimate,omitempty"`
	URL         string             `json:"url"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
	State       *WorkflowState     `json:"state,omitempty"`
	Assignee    *UserRef           `json:"assignee,omitempty"`
	Team        *TeamRef           `json:"team,omitempty"`
	Project     *ProjectRef        `json:"project,omitempty"`
	Labels      *Connection[Label] `json:"labels,omitempty"`
}

type Team struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Private     bool   `json:"private"`
	IssueCount  int    `json:"issueCount"`
	CreatedAt   string `json:"createdAt"`
}

type Project struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	State       string               `json:"state"`
	Progress    float64              `json:"progress"`
	StartDate   string               `json:"startDate,omitempty"`
	TargetDate  string               `json:"targetDate,omitempty"`
	URL         string               `json:"url"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
	Lead        *UserRef             `json:"lead,omitempty"`
	Teams       *Connection[TeamRef] `json:"teams,omitempty"`
}

type ProjectMilestone struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	TargetDate  string  `json:"targetDate,omitempty"`
	SortOrder   float64 `json:"sortOrder"`
	CreatedAt   string  `json:"createdAt"`
}

type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Active      bool   `json:"active"`
	Admin       bool   `json:"admin"`
	CreatedAt   string `json:"createdAt"`
}

type Comment struct {
	ID         string    `json:"id"`
	Body       string    `json:"body"`
	URL        string    `json:"url"`
	CreatedAt  string    `json:"createdAt"`
	UpdatedAt  string    `json:"updatedAt"`
	ResolvedAt string    `json:"resolvedAt,omitempty"`
	User       *UserRef  `json:"user,omitempty"`
	Issue      *IssueRef `json:"issue,omitempty"`
}

// BulkItem reports the outcome of one item in a bulk operation. There is no
// rollback: items that succeeded stay applied when later items fail.
type BulkItem struct {
	Index int    `json:"index"`
	Error string `json:"error,omitempty"`
	Issue *Issue `json:"issue,omitempty"`
}

type BulkResult struct {
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Items     []BulkItem `json:"items"`
}
