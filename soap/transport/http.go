package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smnsjas/go-soaptransport/soap"
	"github.com/smnsjas/go-soaptransport/soap/auth"
)

const (
	// DefaultAttempts is the number of attempts when none is configured.
	DefaultAttempts = 1

	// defaultBufferSize is the initial size for pooled buffers.
	defaultBufferSize = 32 * 1024 // 32KB
)

// bufferPool is a pool of reusable bytes.Buffer to reduce allocations.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
	},
}

// readAllPooled reads from r using a pooled buffer and returns the data as a string.
func readAllPooled(r io.Reader) (string, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if _, err := buf.ReadFrom(r); err != nil {
		return "", err
	}
	// String copies, so buf can be reused.
	return buf.String(), nil
}

// Request is one outbound SOAP call as handed over by the envelope layer.
type Request struct {
	// Body is the serialized SOAP envelope.
	Body string

	// Location is the endpoint URL.
	Location string

	// Action is the SOAP action; may be empty.
	Action string

	// Version selects the header rules.
	Version soap.Version

	// OneWay marks a call that expects no response body.
	OneWay bool
}

// ErrorRecorder receives the error code of every attempt, in order.
type ErrorRecorder func(code ErrorCode)

// HTTPTransport sends SOAP requests over HTTP/HTTPS with bounded retry.
//
// Every attempt uses a fresh connection which is closed before the next
// attempt starts or Execute returns. Attempts follow each other immediately.
type HTTPTransport struct {
	connectTimeout time.Duration
	readTimeout    time.Duration
	attempts       int

	tlsConfig   *tls.Config
	proxy       func(*http.Request) (*url.URL, error)
	contentType string
	headers     *soap.HeaderSet
	auth        auth.Authenticator

	logger *slog.Logger
	record ErrorRecorder
}

// HTTPTransportOption configures an HTTPTransport.
type HTTPTransportOption func(*HTTPTransport)

// NewHTTPTransport creates a new HTTP transport with the given options.
func NewHTTPTransport(opts ...HTTPTransportOption) *HTTPTransport {
	t := &HTTPTransport{
		attempts: DefaultAttempts,
		tlsConfig: &tls.Config{
			// MinVersion: TLS 1.2 for compatibility with older servers
			MinVersion: tls.VersionTLS12,
		},
		proxy:  http.ProxyFromEnvironment,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithConnectTimeout bounds connection setup, including the TLS handshake.
// Zero disables the limit.
func WithConnectTimeout(d time.Duration) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.connectTimeout = d
	}
}

// WithReadTimeout bounds a whole attempt, from sending the request to
// reading the last byte of the response. Zero disables the limit.
func WithReadTimeout(d time.Duration) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.readTimeout = d
	}
}

// WithAttempts sets the total number of attempts. Values below 1 mean 1.
func WithAttempts(n int) HTTPTransportOption {
	return func(t *HTTPTransport) {
		if n < 1 {
			n = 1
		}
		t.attempts = n
	}
}

// WithInsecureSkipVerify configures TLS to skip certificate verification.
// WARNING: Only use this for testing. Never use in production.
func WithInsecureSkipVerify(skip bool) HTTPTransportOption {
	return func(t *HTTPTransport) {
		if t.tlsConfig == nil {
			t.tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		t.tlsConfig.InsecureSkipVerify = skip
	}
}

// WithTLSConfig sets a custom TLS configuration.
// NOTE: MinVersion is enforced to be at least TLS 1.2 for security.
func WithTLSConfig(cfg *tls.Config) HTTPTransportOption {
	return func(t *HTTPTransport) {
		// Enforce minimum TLS 1.2 regardless of user config
		if cfg.MinVersion < tls.VersionTLS12 {
			cfg.MinVersion = tls.VersionTLS12
		}
		t.tlsConfig = cfg
	}
}

// WithProxy sets the proxy used for requests.
// "" keeps the environment proxy settings, "direct" disables proxying and
// any other value is used as the proxy URL.
func WithProxy(proxyURL string) HTTPTransportOption {
	return func(t *HTTPTransport) {
		switch proxyURL {
		case "":
			t.proxy = http.ProxyFromEnvironment
		case "direct":
			t.proxy = nil
		default:
			u, err := url.Parse(proxyURL)
			if err != nil {
				t.logger.Warn("ignoring invalid proxy URL", "proxy", proxyURL, "error", err)
				return
			}
			t.proxy = http.ProxyURL(u)
		}
	}
}

// WithContentType overrides the version default Content-Type.
func WithContentType(ct string) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.contentType = ct
	}
}

// WithHeaders sets custom headers sent with every request. The set is copied.
func WithHeaders(h *soap.HeaderSet) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.headers = h.Clone()
	}
}

// WithAuthenticator sets the authentication handler. nil disables authentication.
func WithAuthenticator(a auth.Authenticator) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.auth = a
	}
}

// WithLogger sets the logger. nil keeps the discard logger.
func WithLogger(l *slog.Logger) HTTPTransportOption {
	return func(t *HTTPTransport) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithErrorRecorder registers a callback that receives the error code of
// every attempt.
func WithErrorRecorder(r ErrorRecorder) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.record = r
	}
}

// Attempts returns the configured number of attempts.
func (t *HTTPTransport) Attempts() int {
	return t.attempts
}

// Execute sends req and returns the sanitized response body.
//
// Any HTTP status counts as a delivered response; SOAP faults arrive in the
// body. An attempt fails only on a transport error or a failed body read.
// After the last failed attempt Execute returns a *TransportError.
// A cancelled ctx ends the loop early with the context's error.
func (t *HTTPTransport) Execute(ctx context.Context, req Request) (string, error) {
	headers := soap.BuildHeaders(req.Version, req.Action, t.headers, t.contentType)

	logger := t.logger.With(
		"call_id", uuid.New().String(),
		"location", req.Location,
		"action", req.Action,
		"version", req.Version.String(),
	)
	if t.tlsConfig != nil && t.tlsConfig.InsecureSkipVerify {
		logger.Warn("TLS certificate verification disabled")
	}
	if _, basic := t.auth.(*auth.BasicAuth); basic && !isHTTPS(req.Location) {
		logger.Warn("Basic authentication over non-HTTPS connection, credentials are not encrypted")
	}
	if !req.Version.Valid() {
		logger.Warn("unrecognized SOAP version, using fallback content type",
			"content_type", soap.ContentTypeFallback)
	}

	var (
		lastCode ErrorCode
		lastErr  error
	)
	for attempt := 0; attempt < t.attempts; attempt++ {
		body, code, err := t.attempt(ctx, req, headers)
		if t.record != nil {
			t.record(code)
		}

		if err == nil {
			logger.Debug("request succeeded", "attempt", attempt+1, "bytes", len(body))
			return body, nil
		}

		lastCode, lastErr = code, err
		logger.Warn("request attempt failed",
			"attempt", attempt+1,
			"max_attempts", t.attempts,
			"code", int(code),
			"error", err)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("transport: %w", ctxErr)
		}
	}

	logger.Error("request failed", "attempts", t.attempts, "code", int(lastCode))
	return "", &TransportError{Attempts: t.attempts, Code: lastCode, Err: lastErr}
}

// attempt performs one connect-send-read cycle on its own connection.
func (t *HTTPTransport) attempt(ctx context.Context, req Request, headers []string) (string, ErrorCode, error) {
	client, base := t.newClient()
	defer base.CloseIdleConnections()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Location, strings.NewReader(req.Body))
	if err != nil {
		return "", CodeURLMalformat, fmt.Errorf("transport: failed to create request: %w", err)
	}
	for _, line := range headers {
		name, value, _ := strings.Cut(line, ": ")
		// Direct assignment keeps the name exactly as built (e.g. "SOAPAction").
		httpReq.Header[name] = []string{value}
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", Classify(err), fmt.Errorf("transport: request failed: %w", err)
	}
	defer resp.Body.Close()

	if req.OneWay {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return "", readErrorCode(err), fmt.Errorf("transport: failed to read response: %w", err)
		}
		return "", CodeOK, nil
	}

	body, err := readAllPooled(resp.Body)
	if err != nil {
		return "", readErrorCode(err), fmt.Errorf("transport: failed to read response: %w", err)
	}

	return soap.SanitizeResponse(body), CodeOK, nil
}

// newClient builds the client for a single attempt. The returned
// *http.Transport owns the attempt's connections.
func (t *HTTPTransport) newClient() (*http.Client, *http.Transport) {
	dialer := &net.Dialer{Timeout: t.connectTimeout}

	var tlsCfg *tls.Config
	if t.tlsConfig != nil {
		tlsCfg = t.tlsConfig.Clone()
	}

	base := &http.Transport{
		Proxy:               t.proxy,
		DialContext:         dialer.DialContext,
		TLSClientConfig:     tlsCfg,
		TLSHandshakeTimeout: t.connectTimeout,
		// NTLM needs the connection kept alive across its handshake legs;
		// the attempt closes it afterwards.
		MaxIdleConnsPerHost: 1,
	}

	var rt http.RoundTripper = base
	if t.auth != nil {
		rt = t.auth.Transport(base)
	}

	return &http.Client{
		Transport: rt,
		Timeout:   t.readTimeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, base
}

// isHTTPS reports whether location uses the https scheme.
func isHTTPS(location string) bool {
	u, err := url.Parse(location)
	return err == nil && strings.EqualFold(u.Scheme, "https")
}

// readErrorCode classifies a body read failure. A read failure is never CodeOK.
func readErrorCode(err error) ErrorCode {
	if code := Classify(err); code != CodeOK {
		return code
	}
	return CodeRecvError
}
