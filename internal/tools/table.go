package tools

import "github.com/google/jsonschema-go/jsonschema"

type def struct {
	name        string
	description string
	// action names the operation in failure messages: "Failed to <action>: ...".
	action   string
	required []string
	schema   func() *jsonschema.Schema
}

func pageProps() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"first": integer("Number of items to return"),
		"after": str("Cursor to continue a previous page"),
	}
}

func withPageProps(props map[string]*jsonschema.Schema) map[string]*jsonschema.Schema {
	for k, v := range pageProps() {
		props[k] = v
	}
	return props
}

func issueInputProps() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"title":       str("Issue title"),
		"teamId":      str("Team the issue belongs to"),
		"description": str("Issue description (markdown)"),
		"priority":    integer("Priority, 0 (none) to 4 (low)"),
		"estimate":    number("Point estimate"),
		"stateId":     str("Workflow state"),
		"assigneeId":  str("Assigned user"),
		"projectId":   str("Project the issue belongs to"),
		"labelIds":    array(str(""), "Label ids"),
	}
}

var defs = []def{
	// Issues.
	{
		name:        "linear_create_issue",
		description: "Create a new issue",
		action:      "create issue",
		required:    []string{"title", "teamId"},
		schema: func() *jsonschema.Schema {
			return object(issueInputProps(), "title", "teamId")
		},
	},
	{
		name:        "linear_get_issue",
		description: "Get an issue by id",
		action:      "get issue",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{"id": str("Issue id")}, "id")
		},
	},
	{
		name:        "linear_update_issue",
		description: "Update fields of an existing issue",
		action:      "update issue",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			props := issueInputProps()
			delete(props, "teamId")
			props["id"] = str("Issue id")
			return object(props, "id")
		},
	},
	{
		name:        "linear_delete_issue",
		description: "Delete an issue",
		action:      "delete issue",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{"id": str("Issue id")}, "id")
		},
	},
	{
		name:        "linear_list_issues",
		description: "List issues with optional team, assignee, and state filters",
		action:      "list issues",
		schema: func() *jsonschema.Schema {
			return object(withPageProps(map[string]*jsonschema.Schema{
				"teamId":     str("Filter by team"),
				"assigneeId": str("Filter by assignee"),
				"stateId":    str("Filter by workflow state"),
			}))
		},
	},
	{
		name:        "linear_search_issues",
		description: "Search issues by title and description text",
		action:      "search issues",
		required:    []string{"query"},
		schema: func() *jsonschema.Schema {
			return object(withPageProps(map[string]*jsonschema.Schema{
				"query": str("Search text"),
			}), "query")
		},
	},
	{
		name:        "linear_get_issues_by_identifier",
		description: "Look up issues by human identifiers such as ENG-123",
		action:      "get issues by identifier",
		required:    []string{"identifiers"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{
				"identifiers": array(str(""), "Issue identifiers, e.g. [\"ENG-78\", \"ENG-79\"]"),
			}, "identifiers")
		},
	},
	{
		name:        "linear_bulk_create_issues",
		description: "Create several issues in one call",
		action:      "bulk create issues",
		required:    []string{"issues"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{
				"issues": array(object(issueInputProps(), "title", "teamId"), "Issues to create"),
			}, "issues")
		},
	},
	{
		name:        "linear_bulk_update_issues",
		description: "Update several issues in one call",
		action:      "bulk update issues",
		required:    []string{"updates"},
		schema: func() *jsonschema.Schema {
			updateProps := issueInputProps()
			delete(updateProps, "teamId")
			return object(map[string]*jsonschema.Schema{
				"updates": array(object(map[string]*jsonschema.Schema{
					"id":    str("Issue id"),
					"input": object(updateProps),
				}, "id"), "Updates to apply"),
			}, "updates")
		},
	},
	{
		name:        "linear_bulk_delete_issues",
		description: "Delete several issues in one call",
		action:      "bulk delete issues",
		required:    []string{"ids"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{
				"ids": array(str(""), "Issue ids to delete"),
			}, "ids")
		},
	},

	// Projects.
	{
		name:        "linear_create_project",
		description: "Create a project, optionally with initial issues",
		action:      "create project",
		required:    []string{"name", "teamIds"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{
				"name":        str("Project name"),
				"teamIds":     array(str(""), "Teams the project belongs to"),
				"description": str("Project description"),
				"state":       str("Project state"),
				"startDate":   str("Start date (YYYY-MM-DD)"),
				"targetDate":  str("Target date (YYYY-MM-DD)"),
				"leadId":      str("Project lead user id"),
				"issues":      array(object(issueInputProps(), "title", "teamId"), "Initial issues; each needs its own teamId"),
			}, "name", "teamIds")
		},
	},
	{
		name:        "linear_get_project",
		description: "Get a project by id",
		action:      "get project",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{"id": str("Project id")}, "id")
		},
	},
	{
		name:        "linear_update_project",
		description: "Update fields of an existing project",
		action:      "update project",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{
				"id":          str("Project id"),
				"name":        str("Project name"),
				"description": str("Project description"),
				"state":       str("Project state"),
				"startDate":   str("Start date (YYYY-MM-DD)"),
				"targetDate":  str("Target date (YYYY-MM-DD)"),
				"leadId":      str("Project lead user id"),
			}, "id")
		},
	},
	{
		name:        "linear_delete_project",
		description: "Delete a project",
		action:      "delete project",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{"id": str("Project id")}, "id")
		},
	},
	{
		name:        "linear_list_projects",
		description: "List projects",
		action:      "list projects",
		schema: func() *jsonschema.Schema {
			return object(withPageProps(map[string]*jsonschema.Schema{}))
		},
	},
	{
		name:        "linear_create_project_milestone",
		description: "Create a milestone within a project",
		action:      "create project milestone",
		required:    []string{"projectId", "name"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{
				"projectId":   str("Project the milestone belongs to"),
				"name":        str("Milestone name"),
				"description": str("Milestone description"),
				"targetDate":  str("Target date (YYYY-MM-DD)"),
			}, "projectId", "name")
		},
	},
	{
		name:        "linear_update_project_milestone",
		description: "Update a project milestone",
		action:      "update project milestone",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{
				"id":          str("Milestone id"),
				"name":        str("Milestone name"),
				"description": str("Milestone description"),
				"targetDate":  str("Target date (YYYY-MM-DD)"),
			}, "id")
		},
	},
	{
		name:        "linear_list_project_milestones",
		description: "List milestones of a project",
		action:      "list project milestones",
		required:    []string{"projectId"},
		schema: func() *jsonschema.Schema {
			return object(withPageProps(map[string]*jsonschema.Schema{
				"projectId": str("Project id"),
			}), "projectId")
		},
	},

	// Teams.
	{
		name:        "linear_get_team",
		description: "Get a team by id",
		action:      "get team",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{"id": str("Team id")}, "id")
		},
	},
	{
		name:        "linear_list_teams",
		description: "List teams in the workspace",
		action:      "list teams",
		schema: func() *jsonschema.Schema {
			return object(withPageProps(map[string]*jsonschema.Schema{}))
		},
	},
	{
		name:        "linear_get_team_states",
		description: "List a team's workflow states",
		action:      "get team states",
		required:    []string{"teamId"},
		schema: func() *jsonschema.Schema {
			return object(withPageProps(map[string]*jsonschema.Schema{
				"teamId": str("Team id"),
			}), "teamId")
		},
	},

	// Users.
	{
		name:        "linear_get_user",
		description: "Get a user by id",
		action:      "get user",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{"id": str("User id")}, "id")
		},
	},
	{
		name:        "linear_list_users",
		description: "List users in the workspace",
		action:      "list users",
		schema: func() *jsonschema.Schema {
			return object(withPageProps(map[string]*jsonschema.Schema{}))
		},
	},
	{
		name:        "linear_get_viewer",
		description: "Get the user the configured credential belongs to",
		action:      "get viewer",
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{})
		},
	},

	// Comments.
	{
		name:        "linear_create_comment",
		description: "Add a comment to an issue",
		action:      "create comment",
		required:    []string{"issueId", "body"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{
				"issueId":  str("Issue to comment on"),
				"body":     str("Comment body (markdown)"),
				"parentId": str("Parent comment id, to reply in a thread"),
			}, "issueId", "body")
		},
	},
	{
		name:        "linear_get_comment",
		description: "Get a comment by id",
		action:      "get comment",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{"id": str("Comment id")}, "id")
		},
	},
	{
		name:        "linear_update_comment",
		description: "Edit a comment's body",
		action:      "update comment",
		required:    []string{"id", "body"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{
				"id":   str("Comment id"),
				"body": str("New comment body"),
			}, "id", "body")
		},
	},
	{
		name:        "linear_delete_comment",
		description: "Delete a comment",
		action:      "delete comment",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{"id": str("Comment id")}, "id")
		},
	},
	{
		name:        "linear_list_comments",
		description: "List comments on an issue",
		action:      "list comments",
		required:    []string{"issueId"},
		schema: func() *jsonschema.Schema {
			return object(withPageProps(map[string]*jsonschema.Schema{
				"issueId": str("Issue id"),
			}), "issueId")
		},
	},
	{
		name:        "linear_resolve_comment",
		description: "Mark a comment thread as resolved",
		action:      "resolve comment",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{"id": str("Comment id")}, "id")
		},
	},
	{
		name:        "linear_unresolve_comment",
		description: "Reopen a resolved comment thread",
		action:      "unresolve comment",
		required:    []string{"id"},
		schema: func() *jsonschema.Schema {
			return object(map[string]*jsonschema.Schema{"id": str("Comment id")}, "id")
		},
	},
}
