package catalog

import "linearmcp/internal/gql"

func GetProject(id string) (*gql.Operation, error) {
	return gql.Query("GetProject").
		DeclareVariable("id", "String", true).
		BindVariable("id", id).
		Attach(registry, "ProjectFields").
		Select(gql.Selection{
			"project": gql.Field{
				Args:      map[string]string{"id": "$id"},
				Selection: gql.Selection{"...ProjectFields": true},
			},
		}).
		Build()
}

func ListProjects(page Page) (*gql.Operation, error) {
	b := gql.Query("ListProjects")
	declarePage(b, page)
	return b.
		Attach(registry, "ProjectFields", "PageInfoFields").
		Select(gql.Selection{
			"projects": gql.Field{
				Args:      pageArgs(nil),
				Selection: connection("ProjectFields"),
			},
		}).
		Build()
}

func CreateProject(input any) (*gql.Operation, error) {
	return gql.Mutation("CreateProject").
		DeclareVariable("input", "ProjectCreateInput", true).
		BindVariable("input", input).
		Attach(registry, "ProjectFields").
		Select(gql.Selection{
			"projectCreate": gql.Field{
				Args: map[string]string{"input": "$input"},
				Selection: gql.Selection{
					"success": true,
					"project": gql.Selection{"...ProjectFields": true},
				},
			},
		}).
		Build()
}

func UpdateProject(id string, input any) (*gql.Operation, error) {
	return gql.Mutation("UpdateProject").
		DeclareVariable("id", "String", true).
		DeclareVariable("input", "ProjectUpdateInput", true).
		BindVariable("id", id).
		BindVariable("input", input).
		Attach(registry, "ProjectFields").
		Select(gql.Selection{
			"projectUpdate": gql.Field{
				Args: map[string]string{"id": "$id", "input": "$input"},
				Selection: gql.Selection{
					"success": true,
					"project": gql.Selection{"...ProjectFields": true},
				},
			},
		}).
		Build()
}

func DeleteProject(id string) (*gql.Operation, error) {
	return gql.Mutation("DeleteProject").
		DeclareVariable("id", "String", true).
		BindVariable("id", id).
		Select(gql.Selection{
			"projectDelete": gql.Field{
				Args:      map[string]string{"id": "$id"},
				Selection: gql.Selection{"success": true},
			},
		}).
		Build()
}

func CreateProjectMilestone(input any) (*gql.Operation, error) {
	return gql.Mutation("CreateProjectMilestone").
		DeclareVariable("input", "ProjectMilestoneCreateInput", true).
		BindVariable("input", input).
		Attach(registry, "ProjectMilestoneFields").
		Select(gql.Selection{
			"projectMilestoneCreate": gql.Field{
				Args: map[string]string{"input": "$input"},
				Selection: gql.Selection{
					"success":          true,
					"projectMilestone": gql.Selection{"...ProjectMilestoneFields": true},
				},
			},
		}).
		Build()
}

func UpdateProjectMilestone(id string, input any) (*gql.Operation, error) {
	return gql.Mutation("UpdateProjectMilestone").
		DeclareVariable("id", "String", true).
		DeclareVariable("input", "ProjectMilestoneUpdateInput", true).
		BindVariable("id", id).
		BindVariable("input", input).
		Attach(registry, "ProjectMilestoneFields").
		Select(gql.Selection{
			"projectMilestoneUpdate": gql.Field{
				Args: map[string]string{"id": "$id", "input": "$input"},
				Selection: gql.Selection{
					"success":          true,
					"projectMilestone": gql.Selection{"...ProjectMilestoneFields": true},
				},
			},
		}).
		Build()
}

func ListProjectMilestones(projectID string, page Page) (*gql.Operation, error) {
	b := gql.Query("ListProjectMilestones").
		DeclareVariable("projectId", "String", true).
		BindVariable("projectId", projectID)
	declarePage(b, page)
	return b.
		Attach(registry, "ProjectMilestoneFields", "PageInfoFields").
		Select(gql.Selection{
			"project": gql.Field{
				Args: map[string]string{"id": "$projectId"},
				Selection: gql.Selection{
					"projectMilestones": gql.Field{
						Args:      pageArgs(nil),
						Selection: connection("ProjectMilestoneFields"),
					},
				},
			},
		}).
		Build()
}
