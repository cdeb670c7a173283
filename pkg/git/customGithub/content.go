package customGithub

import (
	"context"
	"fmt"

	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

const DefaultGraphQLURL = "https://api.github.com/graphql"

// ContentResolver looks up project item content through the Github GraphQL API
type ContentResolver struct {
	tokens     TokenProvider
	graphQLURL string
}

func NewContentResolver(tokens TokenProvider, graphQLURL string) *ContentResolver {
	if graphQLURL == "" {
		graphQLURL = DefaultGraphQLURL
	}
	return &ContentResolver{
		tokens:     tokens,
		graphQLURL: graphQLURL,
	}
}

type contentFields struct {
	Title githubv4.String
	URL   githubv4.String
}

/*
	query($itemId: ID!) {
	  node(id: $itemId) {
	    ... on ProjectV2Item {
	      content {
	        __typename
	        ... on Issue { title url }
	        ... on PullRequest { title url }
	        ... on DraftIssue { title }
	      }
	    }
	  }
	}
*/
type projectItemQuery struct {
	Node struct {
		ProjectV2Item struct {
			Content struct {
				Typename    githubv4.String `graphql:"__typename"`
				Issue       contentFields   `graphql:"... on Issue"`
				PullRequest contentFields   `graphql:"... on PullRequest"`
				DraftIssue  struct {
					Title githubv4.String
				} `graphql:"... on DraftIssue"`
			}
		} `graphql:"... on ProjectV2Item"`
	} `graphql:"node(id: $itemId)"`
}

// ResolveContent returns nil content for items that are gone or have no content
func (r *ContentResolver) ResolveContent(ctx context.Context, installationID int64, itemNodeID string) (*notifier.Content, error) {
	token, err := r.tokens.Token(ctx, installationID)
	if err != nil {
		return nil, err
	}

	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(ctx, src)
	graphQLClient := githubv4.NewEnterpriseClient(r.graphQLURL, httpClient)

	variables := map[string]interface{}{
		"itemId": githubv4.ID(itemNodeID),
	}

	var query projectItemQuery
	err = graphQLClient.Query(ctx, &query, variables)
	if err != nil {
		return nil, fmt.Errorf("could not query project item %s: %w", itemNodeID, err)
	}

	content := query.Node.ProjectV2Item.Content
	switch string(content.Typename) {
	case notifier.ContentIssue:
		return &notifier.Content{
			Kind:  notifier.ContentIssue,
			Title: string(content.Issue.Title),
			URL:   string(content.Issue.URL),
		}, nil
	case notifier.ContentPullRequest:
		return &notifier.Content{
			Kind:  notifier.ContentPullRequest,
			Title: string(content.PullRequest.Title),
			URL:   string(content.PullRequest.URL),
		}, nil
	case notifier.ContentDraftIssue:
		return &notifier.Content{
			Kind:  notifier.ContentDraftIssue,
			Title: string(content.DraftIssue.Title),
		}, nil
	}

	return nil, nil
}
