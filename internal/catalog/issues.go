package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"linearmcp/internal/gql"
)

var ErrInvalidIdentifier = errors.New("invalid issue identifier")

func GetIssue(id string) (*gql.Operation, error) {
	return gql.Query("GetIssue").
		DeclareVariable("id", "String", true).
		BindVariable("id", id).
		Attach(registry, "IssueFields").
		Select(gql.Selection{
			"issue": gql.Field{
				Args:      map[string]string{"id": "$id"},
				Selection: gql.Selection{"...IssueFields": true},
			},
		}).
		Build()
}

func ListIssues(filter map[string]any, page Page) (*gql.Operation, error) {
	b := gql.Query("ListIssues").
		DeclareVariable("filter", "IssueFilter", false)
	declarePage(b, page)
	if len(filter) > 0 {
		b.BindVariable("filter", filter)
	}
	return b.
		Attach(registry, "IssueFields", "PageInfoFields").
		Select(gql.Selection{
			"issues": gql.Field{
				Args:      pageArgs(map[string]string{"filter": "$filter"}),
				Selection: connection("IssueFields"),
			},
		}).
		Build()
}

// SearchIssues matches the query text against issue titles and descriptions.
func SearchIssues(query string, page Page) (*gql.Operation, error) {
	filter := map[string]any{
		"or": []map[string]any{
			{"title": map[string]any{"containsIgnoreCase": query}},
			{"description": map[string]any{"containsIgnoreCase": query}},
		},
	}
	b := gql.Query("SearchIssues").
		DeclareVariable("filter", "IssueFilter", true).
		BindVariable("filter", filter)
	declarePage(b, page)
	return b.
		Attach(registry, "IssueFields", "PageInfoFields").
		Select(gql.Selection{
			"issues": gql.Field{
				Args:      pageArgs(map[string]string{"filter": "$filter"}),
				Selection: connection("IssueFields"),
			},
		}).
		Build()
}

// SearchIssuesByIdentifiers looks up issues such as "ENG-78" through the
// server's numeric number filter; the identifier itself is not a filterable
// field. Malformed identifiers are rejected locally instead of shipping NaN
// to the server.
func SearchIssuesByIdentifiers(identifiers []string) (*gql.Operation, error) {
	numbers := make([]float64, 0, len(identifiers))
	for _, identifier := range identifiers {
		n, err := parseIdentifierNumber(identifier)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}

	return gql.Query("SearchIssuesByIdentifiers").
		DeclareVariable("numbers", "[Float!]", true).
		BindVariable("numbers", numbers).
		Attach(registry, "IssueFields", "PageInfoFields").
		Select(gql.Selection{
			"issues": gql.Field{
				Args:      map[string]string{"filter": "{ number: { in: $numbers } }"},
				Selection: connection("IssueFields"),
			},
		}).
		Build()
}

func parseIdentifierNumber(identifier string) (float64, error) {
	i := strings.LastIndex(identifier, "-")
	if i == -1 || i == len(identifier)-1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier)
	}
	n, err := strconv.ParseFloat(identifier[i+1:], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier)
	}
	return n, nil
}

func CreateIssue(input any) (*gql.Operation, error) {
	return gql.Mutation("CreateIssue").
		DeclareVariable("input", "IssueCreateInput", true).
		BindVariable("input", input).
		Attach(registry, "IssueFields").
		Select(gql.Selection{
			"issueCreate": gql.Field{
				Args: map[string]string{"input": "$input"},
				Selection: gql.Selection{
					"success": true,
					"issue":   gql.Selection{"...IssueFields": true},
				},
			},
		}).
		Build()
}

func UpdateIssue(id string, input any) (*gql.Operation, error) {
	return gql.Mutation("UpdateIssue").
		DeclareVariable("id", "String", true).
		DeclareVariable("input", "IssueUpdateInput", true).
		BindVariable("id", id).
		BindVariable("input", input).
		Attach(registry, "IssueFields").
		Select(gql.Selection{
			"issueUpdate": gql.Field{
				Args: map[string]string{"id": "$id", "input": "$input"},
				Selection: gql.Selection{
					"success": true,
					"issue":   gql.Selection{"...IssueFields": true},
				},
			},
		}).
		Build()
}

func DeleteIssue(id string) (*gql.Operation, error) {
	return gql.Mutation("DeleteIssue").
		DeclareVariable("id", "String", true).
		BindVariable("id", id).
		Select(gql.Selection{
			"issueDelete": gql.Field{
				Args:      map[string]string{"id": "$id"},
				Selection: gql.Selection{"success": true},
			},
		}).
		Build()
}
