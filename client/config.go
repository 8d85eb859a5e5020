package client

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSocketTimeoutEnv names the environment variable holding the
// process-wide default read timeout in seconds. It is consulted only when
// Options.PersistanceTimeout is nil.
const DefaultSocketTimeoutEnv = "DEFAULT_SOCKET_TIMEOUT"

// AuthScheme specifies the authentication mechanism.
type AuthScheme int

const (
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic AuthScheme = iota
	// AuthNTLM uses NTLM authentication.
	AuthNTLM
)

// String returns the scheme name.
func (s AuthScheme) String() string {
	switch s {
	case AuthBasic:
		return "basic"
	case AuthNTLM:
		return "ntlm"
	default:
		return fmt.Sprintf("AuthScheme(%d)", int(s))
	}
}

// ParseAuthScheme parses "basic" or "ntlm". The empty string is basic.
func ParseAuthScheme(s string) (AuthScheme, error) {
	switch strings.ToLower(s) {
	case "", "basic":
		return AuthBasic, nil
	case "ntlm":
		return AuthNTLM, nil
	default:
		return 0, configErrorf("auth scheme", "unknown scheme %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *AuthScheme) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseAuthScheme(value.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Header is a single custom HTTP header.
type Header struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Options is the option bag accepted by New.
type Options struct {
	// Login enables authentication when non-empty.
	Login string `yaml:"login"`

	// Password is optional. nil sends the Basic credential as the bare login.
	Password *string `yaml:"password"`

	// Domain is used by NTLM only.
	Domain string `yaml:"domain"`

	// AuthScheme selects Basic (default) or NTLM.
	AuthScheme AuthScheme `yaml:"auth_scheme"`

	// NegotiationTimeout is the connect timeout in seconds. 0 disables it.
	NegotiationTimeout int `yaml:"negotiation_timeout"`

	// PersistanceFactor is the total number of attempts per call.
	// 0 means 1.
	PersistanceFactor int `yaml:"persistance_factor"`

	// PersistanceTimeout is the read timeout in seconds. nil falls back to
	// DefaultSocketTimeoutEnv, then to 0 (disabled).
	PersistanceTimeout *int `yaml:"persistance_timeout"`

	// ContentType overrides the version default Content-Type.
	ContentType string `yaml:"content_type"`

	// Headers are sent with every request, in order.
	Headers []Header `yaml:"headers"`

	// IgnoreCertVerify disables TLS peer certificate verification.
	IgnoreCertVerify bool `yaml:"ignore_cert_verify"`

	// Proxy is "" for the environment proxy, "direct" for none, or a URL.
	Proxy string `yaml:"proxy"`

	// Logger receives transport logs. nil discards them.
	Logger *slog.Logger `yaml:"-"`
}

// LogValue implements slog.LogValuer so the password never reaches logs.
func (o Options) LogValue() slog.Value {
	pass := ""
	if o.Password != nil {
		pass = "[REDACTED]"
	}
	return slog.GroupValue(
		slog.String("login", o.Login),
		slog.String("password", pass),
		slog.String("auth_scheme", o.AuthScheme.String()),
		slog.Int("negotiation_timeout", o.NegotiationTimeout),
		slog.Int("persistance_factor", o.PersistanceFactor),
		slog.Int("headers", len(o.Headers)),
		slog.Bool("ignore_cert_verify", o.IgnoreCertVerify),
	)
}

// resolvePersistanceTimeout returns the explicit timeout, or the environment
// default, or 0.
func resolvePersistanceTimeout(explicit *int) int {
	if explicit != nil {
		return *explicit
	}
	return defaultSocketTimeout()
}

// defaultSocketTimeout reads DefaultSocketTimeoutEnv. Missing, unparsable and
// negative values all resolve to 0.
func defaultSocketTimeout() int {
	raw, ok := os.LookupEnv(DefaultSocketTimeoutEnv)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
