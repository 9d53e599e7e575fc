package catalog

import "linearmcp/internal/gql"

// Page carries cursor pagination arguments. Zero values are left unbound so
// the server applies its own defaults.
type Page struct {
	First int
	After string
}

func declarePage(b *gql.Builder, page Page) *gql.Builder {
	b.DeclareVariable("first", "Int", false)
	b.DeclareVariable("after", "String", false)
	if page.First > 0 {
		b.BindVariable("first", page.First)
	}
	if page.After != "" {
		b.BindVariable("after", page.After)
	}
	return b
}

func pageArgs(args map[string]string) map[string]string {
	merged := map[string]string{"first": "$first", "after": "$after"}
	for k, v := range args {
		merged[k] = v
	}
	return merged
}

func connection(fragment string) gql.Selection {
	return gql.Selection{
		"nodes":    gql.Selection{"..." + fragment: true},
		"pageInfo": gql.Selection{"...PageInfoFields": true},
	}
}
