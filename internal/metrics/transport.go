package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Transport observes every outgoing request. It sits above the HTTP cache so
// the X-From-Cache marker is visible.
type Transport struct {
	Base    http.RoundTripper
	metrics Provider
}

func NewTransport(base http.RoundTripper, metrics Provider) *Transport {
	return &Transport{base, metrics}
}

func (t *Transport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	start := time.Now()
	resp, err = t.Base.RoundTrip(req)
	elapsed := float64(time.Since(start)) / float64(time.Second)
	// rate limit wait cancelled or transport error
	if resp == nil && err != nil {
		return resp, err
	}
	statusCode := strconv.Itoa(resp.StatusCode)
	t.metrics.ObserveHTTPRequestDuration(req.Method, req.URL.Path, statusCode, elapsed)

	if resp.Header.Get("X-From-Cache") == "1" {
		t.metrics.IncreaseCacheHits(req.Method, req.URL.Path)
	} else {
		t.metrics.IncreaseCacheMisses(req.Method, req.URL.Path)
	}

	return resp, err
}
