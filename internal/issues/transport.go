package issues

import (
	"net/http"
	"time"

	"github.com/die-net/lrucache"
	"github.com/gregjones/httpcache"
	"golang.org/x/time/rate"

	"issuegrip/internal/config"
	"issuegrip/internal/metrics"
)

// RateLimitTransport delays requests to stay within the configured rate
type RateLimitTransport struct {
	limiter *rate.Limiter
	base    http.RoundTripper
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// NewRateLimitTransport returns a transport allowing limit requests per second
// with bursts of tokens
func NewRateLimitTransport(limit rate.Limit, tokens int, base http.RoundTripper) *RateLimitTransport {
	limiter := rate.NewLimiter(limit, tokens)
	return &RateLimitTransport{limiter, base}
}

// NewHTTPClient builds the client shared by both backends:
// metrics -> response cache -> rate limit -> base. A nil base uses
// http.DefaultTransport.
func NewHTTPClient(cfg config.HTTPConfig, timeout time.Duration, provider metrics.Provider, base http.RoundTripper) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	if provider == nil {
		provider = metrics.NoopProvider{}
	}

	var rt http.RoundTripper = NewRateLimitTransport(rate.Limit(cfg.RateLimit), cfg.RateBurst, base)
	if cfg.CacheSizeBytes > 0 {
		cache := lrucache.New(cfg.CacheSizeBytes, int64(cfg.CacheMaxAge/time.Second))
		ct := httpcache.NewTransport(cache)
		ct.Transport = rt
		rt = ct
	}
	rt = metrics.NewTransport(rt, provider)

	return &http.Client{Transport: rt, Timeout: timeout}
}

// NewSearcher builds the backend selected in cfg
func NewSearcher(cfg *config.Config, client *http.Client) (Searcher, error) {
	switch cfg.Backend {
	case config.BackendGitHub:
		return NewGitHubClient(client, cfg.Endpoint, cfg.GitHubToken(), cfg.GitHub.Repo)
	default:
		return NewProxyClient(cfg.Endpoint, client), nil
	}
}
