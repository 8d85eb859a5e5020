package auth

import (
	"net/http"

	"github.com/Azure/go-ntlmssp"
)

// NTLMAuth implements NTLM authentication.
type NTLMAuth struct {
	creds Credentials
}

// NewNTLMAuth creates a new NTLM authentication handler.
func NewNTLMAuth(creds Credentials) *NTLMAuth {
	return &NTLMAuth{creds: creds}
}

// Name returns the authentication scheme name.
func (a *NTLMAuth) Name() string {
	return "NTLM"
}

// Transport wraps an http.RoundTripper with NTLM authentication.
// Uses github.com/Azure/go-ntlmssp for the NTLM handshake. The handshake
// needs the connection kept alive between its legs, so base must not
// disable keep-alives.
func (a *NTLMAuth) Transport(base http.RoundTripper) http.RoundTripper {
	return &credentialsRoundTripper{
		creds: a.creds,
		base: ntlmssp.Negotiator{
			RoundTripper: base,
		},
	}
}

// credentialsRoundTripper hands the credentials to the negotiator, which
// reads them from the request's Basic auth fields.
type credentialsRoundTripper struct {
	creds Credentials
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *credentialsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	user := t.creds.Username
	if t.creds.Domain != "" {
		user = t.creds.Domain + `\` + user
	}
	reqCopy.SetBasicAuth(user, t.creds.Password)

	return t.base.RoundTrip(reqCopy)
}
