package catalog

import "linearmcp/internal/gql"

func GetTeam(id string) (*gql.Operation, error) {
	return gql.Query("GetTeam").
		DeclareVariable("id", "String", true).
		BindVariable("id", id).
		Attach(registry, "TeamFields").
		Select(gql.Selection{
			"team": gql.Field{
				Args:      map[string]string{"id": "$id"},
				Selection: gql.Selection{"...TeamFields": true},
			},
		}).
		Build()
}

func ListTeams(page Page) (*gql.Operation, error) {
	b := gql.Query("ListTeams")
	declarePage(b, page)
	return b.
		Attach(registry, "TeamFields", "PageInfoFields").
		Select(gql.Selection{
			"teams": gql.Field{
				Args:      pageArgs(nil),
				Selection: connection("TeamFields"),
			},
		}).
		Build()
}

// GetTeamStates reads a team's workflow states, ordered by position.
func GetTeamStates(teamID string, page Page) (*gql.Operation, error) {
	b := gql.Query("GetTeamStates").
		DeclareVariable("teamId", "String", true).
		BindVariable("teamId", teamID)
	declarePage(b, page)
	return b.
		Attach(registry, "WorkflowStateFields", "PageInfoFields").
		Select(gql.Selection{
			"team": gql.Field{
				Args: map[string]string{"id": "$teamId"},
				Selection: gql.Selection{
					"states": gql.Field{
						Args:      pageArgs(nil),
						Selection: connection("WorkflowStateFields"),
					},
				},
			},
		}).
		Build()
}
