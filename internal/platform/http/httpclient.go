// Package http provides shared HTTP client construction for outbound calls.
package http

import (
	"net"
	"net/http"
	"time"
)

// Timeouts bounds the phases of an outbound request. Zero values fall back
// to the defaults noted on each field.
type Timeouts struct {
	Connect        time.Duration // TCP dial timeout (default 5s)
	ResponseHeader time.Duration // Wait for response headers after the request is written (default 30s)
	Total          time.Duration // Whole request including body read (default 60s)
}

// NewHTTPClient builds one reusable client for an external service.
//
//   - Proxy: honours HTTP_PROXY and friends
//   - Dialer.Timeout: Timeouts.Connect
//   - Dialer.KeepAlive: keeps pooled TCP connections alive for reuse
//   - MaxIdleConns / MaxIdleConnsPerHost: connection pool sizing
//   - ResponseHeaderTimeout: Timeouts.ResponseHeader
//   - Client.Timeout: Timeouts.Total
//
// http.DefaultClient has no timeout; outbound calls must go through a client built here.
func NewHTTPClient(t Timeouts) *http.Client {
	if t.Connect <= 0 {
		t.Connect = 5 * time.Second
	}
	if t.ResponseHeader <= 0 {
		t.ResponseHeader = 30 * time.Second
	}
	if t.Total <= 0 {
		t.Total = 60 * time.Second
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   t.Connect,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: t.ResponseHeader,
	}
	return &http.Client{Timeout: t.Total, Transport: tr}
}
