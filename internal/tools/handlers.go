package tools

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"linearmcp/internal/catalog"
	"linearmcp/internal/linear"
)

// Services collects the domain services the handlers call into.
type Services struct {
	Issues   *linear.IssueService
	Projects *linear.ProjectService
	Teams    *linear.TeamService
	Users    *linear.UserService
	Comments *linear.CommentService
}

// decodeArgs maps raw tool arguments onto a typed struct using the struct's
// json tags. Decoding is weakly typed because JSON numbers arrive as float64.
func decodeArgs[T any](args map[string]any) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(args); err != nil {
		return out, fmt.Errorf("invalid arguments: %w", err)
	}
	return out, nil
}

// stringArg reads a string argument. Presence of required keys is checked
// before dispatch, so a missing or mistyped key decodes to "".
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

type pageArgs struct {
	First int    `json:"first"`
	After string `json:"after"`
}

func pageFromArgs(args map[string]any) (catalog.Page, error) {
	p, err := decodeArgs[pageArgs](args)
	if err != nil {
		return catalog.Page{}, err
	}
	return catalog.Page{First: p.First, After: p.After}, nil
}

func serviceHandlers(s Services) map[string]Handler {
	return map[string]Handler{
		// Issues.
		"linear_create_issue": func(ctx context.Context, args map[string]any) (Result, error) {
			input, err := decodeArgs[linear.IssueCreateInput](args)
			if err != nil {
				return Result{}, err
			}
			issue, err := s.Issues.Create(ctx, input)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(issue), nil
		},
		"linear_get_issue": func(ctx context.Context, args map[string]any) (Result, error) {
			issue, err := s.Issues.Get(ctx, stringArg(args, "id"))
			if err != nil {
				return Result{}, err
			}
			return JSONResult(issue), nil
		},
		"linear_update_issue": func(ctx context.Context, args map[string]any) (Result, error) {
			input, err := decodeArgs[linear.IssueUpdateInput](args)
			if err != nil {
				return Result{}, err
			}
			issue, err := s.Issues.Update(ctx, stringArg(args, "id"), input)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(issue), nil
		},
		"linear_delete_issue": func(ctx context.Context, args map[string]any) (Result, error) {
			id := stringArg(args, "id")
			if err := s.Issues.Delete(ctx, id); err != nil {
				return Result{}, err
			}
			return TextResult(fmt.Sprintf("Issue %s deleted", id)), nil
		},
		"linear_list_issues": func(ctx context.Context, args map[string]any) (Result, error) {
			opts, err := decodeArgs[struct {
				TeamID     string `json:"teamId"`
				AssigneeID string `json:"assigneeId"`
				StateID    string `json:"stateId"`
				First      int    `json:"first"`
				After      string `json:"after"`
			}](args)
			if err != nil {
				return Result{}, err
			}
			conn, err := s.Issues.List(ctx, linear.ListIssuesOptions{
				TeamID:     opts.TeamID,
				AssigneeID: opts.AssigneeID,
				StateID:    opts.StateID,
				Page:       catalog.Page{First: opts.First, After: opts.After},
			})
			if err != nil {
				return Result{}, err
			}
			return JSONResult(conn), nil
		},
		"linear_search_issues": func(ctx context.Context, args map[string]any) (Result, error) {
			page, err := pageFromArgs(args)
			if err != nil {
				return Result{}, err
			}
			conn, err := s.Issues.Search(ctx, stringArg(args, "query"), page)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(conn), nil
		},
		"linear_get_issues_by_identifier": func(ctx context.Context, args map[string]any) (Result, error) {
			in, err := decodeArgs[struct {
				Identifiers []string `json:"identifiers"`
			}](args)
			if err != nil {
				return Result{}, err
			}
			issues, err := s.Issues.SearchByIdentifiers(ctx, in.Identifiers)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(issues), nil
		},
		"linear_bulk_create_issues": func(ctx context.Context, args map[string]any) (Result, error) {
			in, err := decodeArgs[struct {
				Issues []linear.IssueCreateInput `json:"issues"`
			}](args)
			if err != nil {
				return Result{}, err
			}
			res, err := s.Issues.BulkCreate(ctx, in.Issues)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(res), nil
		},
		"linear_bulk_update_issues": func(ctx context.Context, args map[string]any) (Result, error) {
			in, err := decodeArgs[struct {
				Updates []linear.IssueUpdate `json:"updates"`
			}](args)
			if err != nil {
				return Result{}, err
			}
			res, err := s.Issues.BulkUpdate(ctx, in.Updates)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(res), nil
		},
		"linear_bulk_delete_issues": func(ctx context.Context, args map[string]any) (Result, error) {
			in, err := decodeArgs[struct {
				IDs []string `json:"ids"`
			}](args)
			if err != nil {
				return Result{}, err
			}
			res, err := s.Issues.BulkDelete(ctx, in.IDs)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(res), nil
		},

		// Projects.
		"linear_create_project": func(ctx context.Context, args map[string]any) (Result, error) {
			input, err := decodeArgs[linear.ProjectCreateInput](args)
			if err != nil {
				return Result{}, err
			}
			extra, err := decodeArgs[struct {
				Issues []linear.IssueCreateInput `json:"issues"`
			}](args)
			if err != nil {
				return Result{}, err
			}
			if len(extra.Issues) > 0 {
				res, err := s.Projects.CreateWithIssues(ctx, input, extra.Issues)
				if err != nil {
					return Result{}, err
				}
				return JSONResult(res), nil
			}
			project, err := s.Projects.Create(ctx, input)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(project), nil
		},
		"linear_get_project": func(ctx context.Context, args map[string]any) (Result, error) {
			project, err := s.Projects.Get(ctx, stringArg(args, "id"))
			if err != nil {
				return Result{}, err
			}
			return JSONResult(project), nil
		},
		"linear_update_project": func(ctx context.Context, args map[string]any) (Result, error) {
			input, err := decodeArgs[linear.ProjectUpdateInput](args)
			if err != nil {
				return Result{}, err
			}
			project, err := s.Projects.Update(ctx, stringArg(args, "id"), input)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(project), nil
		},
		"linear_delete_project": func(ctx context.Context, args map[string]any) (Result, error) {
			id := stringArg(args, "id")
			if err := s.Projects.Delete(ctx, id); err != nil {
				return Result{}, err
			}
			return TextResult(fmt.Sprintf("Project %s deleted", id)), nil
		},
		"linear_list_projects": func(ctx context.Context, args map[string]any) (Result, error) {
			page, err := pageFromArgs(args)
			if err != nil {
				return Result{}, err
			}
			conn, err := s.Projects.List(ctx, page)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(conn), nil
		},
		"linear_create_project_milestone": func(ctx context.Context, args map[string]any) (Result, error) {
			input, err := decodeArgs[linear.MilestoneCreateInput](args)
			if err != nil {
				return Result{}, err
			}
			milestone, err := s.Projects.CreateMilestone(ctx, input)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(milestone), nil
		},
		"linear_update_project_milestone": func(ctx context.Context, args map[string]any) (Result, error) {
			input, err := decodeArgs[linear.MilestoneUpdateInput](args)
			if err != nil {
				return Result{}, err
			}
			milestone, err := s.Projects.UpdateMilestone(ctx, stringArg(args, "id"), input)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(milestone), nil
		},
		"linear_list_project_milestones": func(ctx context.Context, args map[string]any) (Result, error) {
			page, err := pageFromArgs(args)
			if err != nil {
				return Result{}, err
			}
			conn, err := s.Projects.ListMilestones(ctx, stringArg(args, "projectId"), page)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(conn), nil
		},

		// Teams.
		"linear_get_team": func(ctx context.Context, args map[string]any) (Result, error) {
			team, err := s.Teams.Get(ctx, stringArg(args, "id"))
			if err != nil {
				return Result{}, err
			}
			return JSONResult(team), nil
		},
		"linear_list_teams": func(ctx context.Context, args map[string]any) (Result, error) {
			page, err := pageFromArgs(args)
			if err != nil {
				return Result{}, err
			}
			conn, err := s.Teams.List(ctx, page)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(conn), nil
		},
		"linear_get_team_states": func(ctx context.Context, args map[string]any) (Result, error) {
			page, err := pageFromArgs(args)
			if err != nil {
				return Result{}, err
			}
			conn, err := s.Teams.States(ctx, stringArg(args, "teamId"), page)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(conn), nil
		},

		// Users.
		"linear_get_user": func(ctx context.Context, args map[string]any) (Result, error) {
			user, err := s.Users.Get(ctx, stringArg(args, "id"))
			if err != nil {
				return Result{}, err
			}
			return JSONResult(user), nil
		},
		"linear_list_users": func(ctx context.Context, args map[string]any) (Result, error) {
			page, err := pageFromArgs(args)
			if err != nil {
				return Result{}, err
			}
			conn, err := s.Users.List(ctx, page)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(conn), nil
		},
		"linear_get_viewer": func(ctx context.Context, args map[string]any) (Result, error) {
			user, err := s.Users.Viewer(ctx)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(user), nil
		},

		// Comments.
		"linear_create_comment": func(ctx context.Context, args map[string]any) (Result, error) {
			input, err := decodeArgs[linear.CommentCreateInput](args)
			if err != nil {
				return Result{}, err
			}
			comment, err := s.Comments.Create(ctx, input)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(comment), nil
		},
		"linear_get_comment": func(ctx context.Context, args map[string]any) (Result, error) {
			comment, err := s.Comments.Get(ctx, stringArg(args, "id"))
			if err != nil {
				return Result{}, err
			}
			return JSONResult(comment), nil
		},
		"linear_update_comment": func(ctx context.Context, args map[string]any) (Result, error) {
			comment, err := s.Comments.Update(ctx, stringArg(args, "id"), stringArg(args, "body"))
			if err != nil {
				return Result{}, err
			}
			return JSONResult(comment), nil
		},
		"linear_delete_comment": func(ctx context.Context, args map[string]any) (Result, error) {
			id := stringArg(args, "id")
			if err := s.Comments.Delete(ctx, id); err != nil {
				return Result{}, err
			}
			return TextResult(fmt.Sprintf("Comment %s deleted", id)), nil
		},
		"linear_list_comments": func(ctx context.Context, args map[string]any) (Result, error) {
			page, err := pageFromArgs(args)
			if err != nil {
				return Result{}, err
			}
			conn, err := s.Comments.ListForIssue(ctx, stringArg(args, "issueId"), page)
			if err != nil {
				return Result{}, err
			}
			return JSONResult(conn), nil
		},
		"linear_resolve_comment": func(ctx context.Context, args map[string]any) (Result, error) {
			comment, err := s.Comments.Resolve(ctx, stringArg(args, "id"))
			if err != nil {
				return Result{}, err
			}
			return JSONResult(comment), nil
		},
		"linear_unresolve_comment": func(ctx context.Context, args map[string]any) (Result, error) {
			comment, err := s.Comments.Unresolve(ctx, stringArg(args, "id"))
			if err != nil {
				return Result{}, err
			}
			return JSONResult(comment), nil
		},
	}
}
