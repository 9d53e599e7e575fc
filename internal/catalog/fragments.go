// Package catalog produces ready-to-send GraphQL operations for the Linear
// API. Factories are pure: they declare the variables the remote operation
// expects, select fields through shared fragments, and perform no I/O.
package catalog

import "linearmcp/internal/gql"

var registry = gql.NewRegistry()

func init() {
	register("IssueFields", "Issue", issueFields)
	register("TeamFields", "Team", teamFields)
	register("ProjectFields", "Project", projectFields)
	register("ProjectMilestoneFields", "ProjectMilestone", projectMilestoneFields)
	register("UserFields", "User", userFields)
	register("CommentFields", "Comment", commentFields)
	register("WorkflowStateFields", "WorkflowState", workflowStateFields)
	register("PageInfoFields", "PageInfo", pageInfoFields)
}

func register(name, typeCondition, body string) {
	if err := registry.Register(name, typeCondition, body); err != nil {
		panic(err)
	}
}

const issueFields = `id
identifier
number
title
description
priority
estimate
url
createdAt
updatedAt
state {
  id
  name
  type
  color
}
assignee {
  id
  name
  email
}
team {
  id
  key
  name
}
project {
  id
  name
}
labels {
  nodes {
    id
    name
    color
  }
}`

const teamFields = `id
key
name
description
private
issueCount
createdAt`

const projectFields = `id
name
description
state
progress
startDate
targetDate
url
createdAt
updatedAt
lead {
  id
  name
}
teams {
  nodes {
    id
    key
    name
  }
}`

const projectMilestoneFields = `id
name
description
targetDate
sortOrder
createdAt`

const userFields = `id
name
displayName
email
active
admin
createdAt`

const commentFields = `id
body
url
createdAt
updatedAt
resolvedAt
user {
  id
  name
}
issue {
  id
  identifier
}`

const workflowStateFields = `id
name
type
color
position`

const pageInfoFields = `hasNextPage
endCursor`
