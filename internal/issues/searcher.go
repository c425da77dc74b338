// Package issues talks to the issue tracker: the search proxy endpoint or
// GitHub's search API directly.
package issues

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"

	"issuegrip/internal/domain"
)

//go:generate mockgen -destination=mocks/searcher_mock.go -package=mocks issuegrip/internal/issues Searcher

// Searcher finds issues matching a query
type Searcher interface {
	Search(ctx context.Context, q Query) ([]domain.Issue, error)
	// Backend names the implementation for logs and metrics
	Backend() string
}

// Query is one search request built from the term and the filter panel
type Query struct {
	Term   string
	Labels []string
	State  domain.IssueState
	Limit  int
}

// NewQuery combines a term with the current filters
func NewQuery(term string, filters domain.FilterState) Query {
	return Query{
		Term:   term,
		Labels: filters.LabelNames(),
		State:  filters.State,
		Limit:  filters.Limit,
	}
}

// Text returns the free-text part: the term followed by one quoted label
// qualifier per label. Labels are AND-ed by the tracker.
func (q Query) Text() string {
	parts := make([]string, 0, len(q.Labels)+1)
	if q.Term != "" {
		parts = append(parts, q.Term)
	}
	for _, l := range q.Labels {
		parts = append(parts, fmt.Sprintf("label:%q", l))
	}
	return strings.Join(parts, " ")
}

type proxyParams struct {
	Q       string `url:"q"`
	State   string `url:"state,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
}

// ProxyParams encodes the query for GET {endpoint}/issues
func (q Query) ProxyParams() (url.Values, error) {
	return query.Values(proxyParams{
		Q:       q.Text(),
		State:   string(q.State),
		PerPage: q.Limit,
	})
}

// GitHubQuery renders the query in GitHub search syntax scoped to repo
func (q Query) GitHubQuery(repo string) string {
	parts := []string{}
	if text := q.Text(); text != "" {
		parts = append(parts, text)
	}
	if repo != "" {
		parts = append(parts, "repo:"+repo)
	}
	parts = append(parts, "is:issue")
	if q.State != "" {
		parts = append(parts, "state:"+string(q.State))
	}
	return strings.Join(parts, " ")
}
