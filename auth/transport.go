// Package auth provides HTTP transports that attach upstream Catalog
// Service credentials to outgoing requests. The bridge itself performs no
// authentication; credentials only pass through toward the upstream.
package auth

import "net/http"

// BearerTokenTransport injects a bearer token into every outgoing
// request. An empty token leaves requests untouched, so the transport can
// be installed unconditionally.
type BearerTokenTransport struct {
	Token string
	Base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *BearerTokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Token == "" {
		return t.base().RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.Token)
	return t.base().RoundTrip(clone)
}

func (t *BearerTokenTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
