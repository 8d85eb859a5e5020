package auth

import (
	"encoding/base64"
	"net/http"
)

// BasicAuth implements HTTP Basic authentication.
type BasicAuth struct {
	creds Credentials
}

// NewBasicAuth creates a new Basic authentication handler.
func NewBasicAuth(creds Credentials) *BasicAuth {
	return &BasicAuth{creds: creds}
}

// Name returns the authentication scheme name.
func (a *BasicAuth) Name() string {
	return "Basic"
}

// Transport wraps an http.RoundTripper with Basic authentication.
func (a *BasicAuth) Transport(base http.RoundTripper) http.RoundTripper {
	return &basicTransport{
		base:  base,
		value: "Basic " + base64.StdEncoding.EncodeToString([]byte(BasicCredential(a.creds))),
	}
}

// BasicCredential formats creds as "username:password", or just "username"
// when no password was supplied.
func BasicCredential(creds Credentials) string {
	if !creds.HasPassword {
		return creds.Username
	}
	return creds.Username + ":" + creds.Password
}

// basicTransport adds Basic auth header to requests.
type basicTransport struct {
	base  http.RoundTripper
	value string
}

// RoundTrip implements http.RoundTripper.
func (t *basicTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid mutating the original
	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set("Authorization", t.value)

	return t.base.RoundTrip(reqCopy)
}
