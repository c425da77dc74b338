package issues

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-github/v39/github"
	"github.com/pkg/errors"

	"issuegrip/internal/domain"
)

const maxErrorBody = 512

// ProxyClient queries a search proxy that answers GET /issues with a JSON
// array of GitHub-shaped issues
type ProxyClient struct {
	endpoint string
	client   *http.Client
}

// NewProxyClient creates a client for the proxy at endpoint
func NewProxyClient(endpoint string, client *http.Client) *ProxyClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &ProxyClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
	}
}

func (c *ProxyClient) Backend() string { return "proxy" }

func (c *ProxyClient) Search(ctx context.Context, q Query) ([]domain.Issue, error) {
	params, err := q.ProxyParams()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/issues?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query issues")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errors.Errorf("issue search returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var list []*github.Issue
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, errors.Wrap(err, "failed to decode issues")
	}
	return fromGitHubList(list), nil
}
