package issues

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/go-github/v39/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"issuegrip/internal/domain"
)

// GitHubClient searches GitHub's issue search API directly
type GitHubClient struct {
	client *github.Client
	repo   string
}

// NewGitHubClient creates a GitHub search client. An empty baseURL uses
// api.github.com; token may be empty for unauthenticated access.
func NewGitHubClient(httpClient *http.Client, baseURL, token, repo string) (*GitHubClient, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := client.BaseURL.Parse(baseURL)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid github api url %q", baseURL)
		}
		client.BaseURL = u
	}
	return &GitHubClient{client: client, repo: repo}, nil
}

func (c *GitHubClient) Backend() string { return "github" }

func (c *GitHubClient) Search(ctx context.Context, q Query) ([]domain.Issue, error) {
	opts := &github.SearchOptions{}
	if q.Limit > 0 {
		opts.ListOptions.PerPage = q.Limit
	}
	result, _, err := c.client.Search.Issues(ctx, q.GitHubQuery(c.repo), opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search github issues")
	}
	return fromGitHubList(result.Issues), nil
}
