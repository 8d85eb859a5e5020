package client

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/smnsjas/go-soaptransport/internal/log"
	"github.com/smnsjas/go-soaptransport/soap"
	"github.com/smnsjas/go-soaptransport/soap/auth"
	"github.com/smnsjas/go-soaptransport/soap/transport"
)

// Client holds the transport configuration and executes SOAP calls.
//
// Configuration changes go through validating setters. The last connection
// error is written only by the transport during Call.
type Client struct {
	location string

	creds       *auth.Credentials
	authScheme  AuthScheme
	contentType string
	headers     *soap.HeaderSet

	ignoreCertVerify   bool
	negotiationTimeout int
	persistanceFactor  int
	persistanceTimeout int
	proxy              string

	logger *slog.Logger

	// lastConnErrNo is nil until the first attempt of the first call.
	lastConnErrNo *transport.ErrorCode
}

// New creates a client for the service at location (typically the WSDL or
// endpoint URL) from opts.
func New(location string, opts Options) (*Client, error) {
	c := &Client{
		location:          location,
		headers:           soap.NewHeaderSet(),
		persistanceFactor: 1,
		logger:            opts.Logger,
	}
	if c.logger == nil {
		c.logger = log.Discard()
	}

	if opts.Login != "" {
		if err := c.SetAuth(opts.Login, opts.Password); err != nil {
			return nil, err
		}
		c.creds.Domain = opts.Domain
	}
	if err := c.SetAuthScheme(opts.AuthScheme); err != nil {
		return nil, err
	}
	if err := c.SetNegotiationTimeout(opts.NegotiationTimeout); err != nil {
		return nil, err
	}
	if opts.PersistanceFactor != 0 {
		if err := c.SetPersistanceFactor(opts.PersistanceFactor); err != nil {
			return nil, err
		}
	}
	if err := c.SetPersistanceTimeout(resolvePersistanceTimeout(opts.PersistanceTimeout)); err != nil {
		return nil, err
	}
	for _, h := range opts.Headers {
		if err := c.SetHeader(h.Name, h.Value); err != nil {
			return nil, err
		}
	}

	c.contentType = opts.ContentType
	c.ignoreCertVerify = opts.IgnoreCertVerify
	c.proxy = opts.Proxy

	return c, nil
}

// Location returns the service location the client was created with.
func (c *Client) Location() string {
	return c.location
}

// Call sends request to location and returns the raw, sanitized response.
// An empty location uses the client's own location.
//
// Call makes up to PersistanceFactor attempts. Only exhaustion is reported:
// the error is then the *transport.TransportError itself, with the fixed
// transport.MaxAttemptsMessage as its message, and LastConnErrNo holds the
// last attempt's code.
func (c *Client) Call(ctx context.Context, request, location, action string, version soap.Version, oneWay bool) (string, error) {
	if location == "" {
		location = c.location
	}

	sec := NewSecurityLogger(c.logger, c.login(), location, action)
	if c.ignoreCertVerify {
		sec.LogConnection(SubtypeCertVerifyDisabled, OutcomeAttempt, SeverityWarning, nil)
	}
	if c.creds != nil {
		sec.LogAuthentication(SubtypeAuthAttempt, OutcomeAttempt, SeverityInfo, map[string]any{
			"scheme": c.authScheme.String(),
		})
	}
	sec.LogCall(SubtypeCallExecute, OutcomeAttempt, SeverityInfo, map[string]any{
		"version": version.String(),
		"one_way": oneWay,
	})

	resp, err := c.newTransport().Execute(ctx, transport.Request{
		Body:     request,
		Location: location,
		Action:   action,
		Version:  version,
		OneWay:   oneWay,
	})
	if err != nil {
		var te *transport.TransportError
		if errors.As(err, &te) {
			sec.LogConnection(SubtypeConnFailed, OutcomeFailure, SeverityError, map[string]any{
				"attempts": te.Attempts,
				"code":     int(te.Code),
				"reason":   te.Code.String(),
			})
		}
		sec.LogCall(SubtypeCallFailed, OutcomeFailure, SeverityError, nil)
		return "", err
	}

	sec.LogCall(SubtypeCallComplete, OutcomeSuccess, SeverityInfo, map[string]any{"bytes": len(resp)})
	return resp, nil
}

func (c *Client) login() string {
	if c.creds == nil {
		return ""
	}
	return c.creds.Username
}

// newTransport builds a transport from the current configuration.
func (c *Client) newTransport() *transport.HTTPTransport {
	opts := []transport.HTTPTransportOption{
		transport.WithLogger(c.logger),
		transport.WithConnectTimeout(seconds(c.negotiationTimeout)),
		transport.WithReadTimeout(seconds(c.persistanceTimeout)),
		transport.WithAttempts(c.persistanceFactor),
		transport.WithInsecureSkipVerify(c.ignoreCertVerify),
		transport.WithContentType(c.contentType),
		transport.WithHeaders(c.headers),
		transport.WithProxy(c.proxy),
		transport.WithErrorRecorder(c.recordConnErr),
	}
	if a := c.authenticator(); a != nil {
		opts = append(opts, transport.WithAuthenticator(a))
	}
	return transport.NewHTTPTransport(opts...)
}

func (c *Client) authenticator() auth.Authenticator {
	if c.creds == nil {
		return nil
	}
	if c.authScheme == AuthNTLM {
		return auth.NewNTLMAuth(*c.creds)
	}
	return auth.NewBasicAuth(*c.creds)
}

func (c *Client) recordConnErr(code transport.ErrorCode) {
	c.lastConnErrNo = &code
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// LastConnErrNo returns the error code of the most recent attempt, and false
// if no call has been made yet. Zero means the attempt had no transport error.
func (c *Client) LastConnErrNo() (int, bool) {
	if c.lastConnErrNo == nil {
		return 0, false
	}
	return int(*c.lastConnErrNo), true
}

// LastConnErrText returns the text for LastConnErrNo, or "" when there was no
// error or no call yet.
func (c *Client) LastConnErrText() string {
	if c.lastConnErrNo == nil || *c.lastConnErrNo == transport.CodeOK {
		return ""
	}
	return c.lastConnErrNo.String()
}

// SetAuth enables authentication with login and a password. The password is
// optional for Basic and required for NTLM.
func (c *Client) SetAuth(login string, password *string) error {
	if login == "" {
		return configErrorf("login", "must not be empty")
	}
	creds := auth.NewCredentials(login, password)
	if c.creds != nil {
		creds.Domain = c.creds.Domain
	}
	if err := validateCreds(&creds, c.authScheme); err != nil {
		return err
	}
	c.creds = &creds
	return nil
}

// validateCreds checks creds against the requirements of scheme.
func validateCreds(creds *auth.Credentials, scheme AuthScheme) error {
	if creds == nil {
		return nil
	}
	if scheme == AuthNTLM {
		if err := creds.ValidateForNTLM(); err != nil {
			return configErrorf("credentials", "ntlm: %v", err)
		}
		return nil
	}
	if err := creds.Validate(); err != nil {
		return configErrorf("credentials", "%v", err)
	}
	return nil
}

// ClearAuth disables authentication.
func (c *Client) ClearAuth() {
	c.creds = nil
}

// Auth returns the login, the password (nil if none was given), and whether
// authentication is enabled.
func (c *Client) Auth() (login string, password *string, ok bool) {
	if c.creds == nil {
		return "", nil, false
	}
	if c.creds.HasPassword {
		p := c.creds.Password
		password = &p
	}
	return c.creds.Username, password, true
}

// SetDomain sets the NTLM domain. Authentication must be enabled first.
func (c *Client) SetDomain(domain string) error {
	if c.creds == nil {
		return configErrorf("domain", "authentication is not enabled")
	}
	c.creds.Domain = domain
	return nil
}

// SetAuthScheme selects the authentication scheme. NTLM requires the current
// credentials, if any, to carry a password.
func (c *Client) SetAuthScheme(s AuthScheme) error {
	if s != AuthBasic && s != AuthNTLM {
		return configErrorf("auth scheme", "unknown scheme %d", int(s))
	}
	if err := validateCreds(c.creds, s); err != nil {
		return err
	}
	c.authScheme = s
	return nil
}

// AuthScheme returns the authentication scheme.
func (c *Client) AuthScheme() AuthScheme {
	return c.authScheme
}

// SetContentType overrides the version default Content-Type. "" restores the default.
func (c *Client) SetContentType(ct string) {
	c.contentType = ct
}

// ContentType returns the Content-Type override, or "" if none is set.
func (c *Client) ContentType() string {
	return c.contentType
}

// SetHeader adds or replaces a custom header.
func (c *Client) SetHeader(name, value string) error {
	if name == "" {
		return configErrorf("header name", "must not be empty")
	}
	c.headers.Set(name, value)
	return nil
}

// SetHeaders replaces all custom headers with h.
func (c *Client) SetHeaders(h *soap.HeaderSet) error {
	if h == nil {
		return configErrorf("headers", "collection must not be nil")
	}
	for _, name := range h.Names() {
		if name == "" {
			return configErrorf("header name", "must not be empty")
		}
	}
	c.headers = h.Clone()
	return nil
}

// RemoveHeader removes a custom header.
func (c *Client) RemoveHeader(name string) {
	c.headers.Del(name)
}

// Headers returns a copy of the custom headers.
func (c *Client) Headers() *soap.HeaderSet {
	return c.headers.Clone()
}

// SetIgnoreCertVerify disables (true) or enforces (false) TLS peer
// certificate verification.
func (c *Client) SetIgnoreCertVerify(ignore bool) {
	c.ignoreCertVerify = ignore
}

// IgnoreCertVerify reports whether certificate verification is disabled.
func (c *Client) IgnoreCertVerify() bool {
	return c.ignoreCertVerify
}

// SetNegotiationTimeout sets the connect timeout in seconds. 0 disables it.
func (c *Client) SetNegotiationTimeout(secs int) error {
	if secs < 0 {
		return configErrorf("negotiation timeout", "must not be negative, got %d", secs)
	}
	c.negotiationTimeout = secs
	return nil
}

// NegotiationTimeout returns the connect timeout in seconds.
func (c *Client) NegotiationTimeout() int {
	return c.negotiationTimeout
}

// SetPersistanceFactor sets the total number of attempts per call.
func (c *Client) SetPersistanceFactor(attempts int) error {
	if attempts < 1 {
		return configErrorf("persistance factor", "must be at least 1, got %d", attempts)
	}
	c.persistanceFactor = attempts
	return nil
}

// PersistanceFactor returns the total number of attempts per call.
func (c *Client) PersistanceFactor() int {
	return c.persistanceFactor
}

// SetPersistanceTimeout sets the read timeout in seconds. 0 disables it.
func (c *Client) SetPersistanceTimeout(secs int) error {
	if secs < 0 {
		return configErrorf("persistance timeout", "must not be negative, got %d", secs)
	}
	c.persistanceTimeout = secs
	return nil
}

// PersistanceTimeout returns the read timeout in seconds.
func (c *Client) PersistanceTimeout() int {
	return c.persistanceTimeout
}

// SetProxy sets the proxy: "" for the environment proxy, "direct" for none,
// or a proxy URL.
func (c *Client) SetProxy(proxy string) {
	c.proxy = proxy
}

// Proxy returns the proxy setting.
func (c *Client) Proxy() string {
	return c.proxy
}

// SetLogger sets the logger for subsequent calls. nil discards logs.
func (c *Client) SetLogger(l *slog.Logger) {
	if l == nil {
		l = log.Discard()
	}
	c.logger = l
}
