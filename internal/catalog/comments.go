package catalog

import "linearmcp/internal/gql"

func GetComment(id string) (*gql.Operation, error) {
	return gql.Query("GetComment").
		DeclareVariable("id", "String", true).
		BindVariable("id", id).
		Attach(registry, "CommentFields").
		Select(gql.Selection{
			"comment": gql.Field{
				Args:      map[string]string{"id": "$id"},
				Selection: gql.Selection{"...CommentFields": true},
			},
		}).
		Build()
}

func ListComments(issueID string, page Page) (*gql.Operation, error) {
	b := gql.Query("ListComments").
		DeclareVariable("issueId", "String", true).
		BindVariable("issueId", issueID)
	declarePage(b, page)
	return b.
		Attach(registry, "CommentFields", "PageInfoFields").
		Select(gql.Selection{
			"issue": gql.Field{
				Args: map[string]string{"id": "$issueId"},
				Selection: gql.Selection{
					"comments": gql.Field{
						Args:      pageArgs(nil),
						Selection: connection("CommentFields"),
					},
				},
			},
		}).
		Build()
}

func CreateComment(input any) (*gql.Operation, error) {
	return gql.Mutation("CreateComment").
		DeclareVariable("input", "CommentCreateInput", true).
		BindVariable("input", input).
		Attach(registry, "CommentFields").
		Select(gql.Selection{
			"commentCreate": gql.Field{
				Args: map[string]string{"input": "$input"},
				Selection: gql.Selection{
					"success": true,
					"comment": gql.Selection{"...CommentFields": true},
				},
			},
		}).
		Build()
}

func UpdateComment(id string, input any) (*gql.Operation, error) {
	return gql.Mutation("UpdateComment").
		DeclareVariable("id", "String", true).
		DeclareVariable("input", "CommentUpdateInput", true).
		BindVariable("id", id).
		BindVariable("input", input).
		Attach(registry, "CommentFields").
		Select(gql.Selection{
			"commentUpdate": gql.Field{
				Args: map[string]string{"id": "$id", "input": "$input"},
				Selection: gql.Selection{
					"success": true,
					"comment": gql.Selection{"...CommentFields": true},
				},
			},
		}).
		Build()
}

func DeleteComment(id string) (*gql.Operation, error) {
	return gql.Mutation("DeleteComment").
		DeclareVariable("id", "String", true).
		BindVariable("id", id).
		Select(gql.Selection{
			"commentDelete": gql.Field{
				Args:      map[string]string{"id": "$id"},
				Selection: gql.Selection{"success": true},
			},
		}).
		Build()
}

func ResolveComment(id string) (*gql.Operation, error) {
	return resolveCommentOp("ResolveComment", "commentResolve", id)
}

func UnresolveComment(id string) (*gql.Operation, error) {
	return resolveCommentOp("UnresolveComment", "commentUnresolve", id)
}

func resolveCommentOp(opName, field, id string) (*gql.Operation, error) {
	return gql.Mutation(opName).
		DeclareVariable("id", "String", true).
		BindVariable("id", id).
		Attach(registry, "CommentFields").
		Select(gql.Selection{
			field: gql.Field{
				Args: map[string]string{"id": "$id"},
				Selection: gql.Selection{
					"success": true,
					"comment": gql.Selection{"...CommentFields": true},
				},
			},
		}).
		Build()
}
