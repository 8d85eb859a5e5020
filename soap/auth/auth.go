package auth

import (
	"errors"
	"log/slog"
	"net/http"
)

// Authenticator defines the interface for authentication handlers.
type Authenticator interface {
	// Transport wraps an http.RoundTripper with authentication.
	Transport(base http.RoundTripper) http.RoundTripper

	// Name returns the authentication scheme name.
	Name() string
}

// Credentials holds authentication credentials.
type Credentials struct {
	// Username is the user name (login) for authentication.
	Username string

	// Password is the password for authentication.
	Password string

	// HasPassword reports whether Password was supplied. An empty Password
	// with HasPassword set is a present-but-empty password.
	HasPassword bool

	// Domain is the optional domain for NTLM authentication.
	Domain string
}

// NewCredentials builds Credentials from a login and an optional password.
func NewCredentials(login string, password *string) Credentials {
	c := Credentials{Username: login}
	if password != nil {
		c.Password = *password
		c.HasPassword = true
	}
	return c
}

// Validate checks that required credential fields are populated.
// The password is optional for Basic authentication.
func (c *Credentials) Validate() error {
	if c.Username == "" {
		return errors.New("username is required")
	}
	return nil
}

// ValidateForNTLM checks credentials for NTLM, which always needs a password.
func (c *Credentials) ValidateForNTLM() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.HasPassword {
		return errors.New("password is required")
	}
	return nil
}

// LogValue implements slog.LogValuer so credentials never leak into logs.
func (c Credentials) LogValue() slog.Value {
	pass := ""
	if c.HasPassword {
		pass = "[REDACTED]"
	}
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("password", pass),
		slog.String("domain", c.Domain),
	)
}
