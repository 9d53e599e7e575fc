package catalog

import "linearmcp/internal/gql"

func GetUser(id string) (*gql.Operation, error) {
	return gql.Query("GetUser").
		DeclareVariable("id", "String", true).
		BindVariable("id", id).
		Attach(registry, "UserFields").
		Select(gql.Selection{
			"user": gql.Field{
				Args:      map[string]string{"id": "$id"},
				Selection: gql.Selection{"...UserFields": true},
			},
		}).
		Build()
}

func ListUsers(page Page) (*gql.Operation, error) {
	b := gql.Query("ListUsers")
	declarePage(b, page)
	return b.
		Attach(registry, "UserFields", "PageInfoFields").
		Select(gql.Selection{
			"users": gql.Field{
				Args:      pageArgs(nil),
				Selection: connection("UserFields"),
			},
		}).
		Build()
}

// Viewer resolves the user the current credential belongs to.
func Viewer() (*gql.Operation, error) {
	return gql.Query("GetViewer").
		Attach(registry, "UserFields").
		Select(gql.Selection{
			"viewer": gql.Selection{"...UserFields": true},
		}).
		Build()
}
