//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// issueServer stands in for the issue search proxy
type issueServer struct {
	*httptest.Server

	mu      sync.Mutex
	queries []url.Values
}

func newIssueServer(t *testing.T) *issueServer {
	t.Helper()
	s := &issueServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *issueServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/issues" {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	s.queries = append(s.queries, r.URL.Query())
	s.mu.Unlock()

	found := []map[string]any{}
	if !strings.Contains(r.URL.Query().Get("q"), "nothing") {
		found = fixtureIssues(r.URL.Query().Get("state"))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(found)
}

// Queries returns every query string received so far
func (s *issueServer) Queries() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.queries...)
}

// WaitForQuery waits until a received query satisfies pred
func (s *issueServer) WaitForQuery(pred func(url.Values) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, q := range s.Queries() {
			if pred(q) {
				return true
			}
		}
		time.Sleep(25 * time.Millisecond)
	}
	return false
}

func fixtureIssues(state string) []map[string]any {
	if state == "" {
		state = "open"
	}
	created := time.Now().Add(-73 * time.Hour).UTC().Format(time.RFC3339)
	updated := time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339)
	issue := func(n int, title string) map[string]any {
		return map[string]any{
			"id":         1000 + n,
			"number":     n,
			"title":      title,
			"html_url":   "https://github.com/acme/widgets/issues/" + strconv.Itoa(n),
			"state":      state,
			"user":       map[string]any{"login": "octocat"},
			"created_at": created,
			"updated_at": updated,
			"comments":   n,
			"labels": []map[string]any{
				{"id": 1, "name": "bug", "color": "d73a4a"},
			},
			"body": "Steps to reproduce " + title,
		}
	}
	if state == "closed" {
		return []map[string]any{issue(7, "Crash on exit")}
	}
	return []map[string]any{issue(11, "Crash on save"), issue(12, "Crash on load")}
}

// CreateTestWorkspace creates an isolated $HOME for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "issuegrip-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = dir
	return dir, nil
}

// WriteConfig writes a config file into the workspace and returns its path
func (tf *TUITestFramework) WriteConfig(name, content string) (string, error) {
	path := filepath.Join(tf.workspace, name)
	return path, os.WriteFile(path, []byte(content), 0600)
}
