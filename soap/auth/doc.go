// Package auth provides authentication handlers for SOAP transport connections.
//
// # Supported Authentication Methods
//
//   - Basic: HTTP Basic authentication (use only over TLS)
//   - NTLM: NT LAN Manager authentication (via github.com/Azure/go-ntlmssp)
//
// # Basic credential format
//
// The Basic credential is the username followed by ":password" only when a
// password was supplied. A username without a password is sent bare, with no
// trailing colon. Servers that rely on this form keep working; callers that
// need "user:" must supply an empty password explicitly.
//
// # Usage
//
//	a := auth.NewBasicAuth(auth.Credentials{
//	    Username:    "svc-user",
//	    Password:    "secret",
//	    HasPassword: true,
//	})
//	client := &http.Client{Transport: a.Transport(http.DefaultTransport)}
package auth
