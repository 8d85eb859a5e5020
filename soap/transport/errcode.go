package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// ErrorCode is a numeric transport error code. The values follow the libcurl
// error numbering so codes stay stable and recognizable across clients.
// Zero means no transport-level error.
type ErrorCode int

// Transport error codes.
const (
	CodeOK                     ErrorCode = 0
	CodeUnsupportedProtocol    ErrorCode = 1
	CodeURLMalformat           ErrorCode = 3
	CodeCouldntResolveHost     ErrorCode = 6
	CodeCouldntConnect         ErrorCode = 7
	CodeOperationTimedOut      ErrorCode = 28
	CodeSSLConnectError        ErrorCode = 35
	CodeAbortedByCallback      ErrorCode = 42
	CodeGotNothing             ErrorCode = 52
	CodeSendError              ErrorCode = 55
	CodeRecvError              ErrorCode = 56
	CodePeerFailedVerification ErrorCode = 60
)

var codeText = map[ErrorCode]string{
	CodeOK:                     "No error",
	CodeUnsupportedProtocol:    "Unsupported protocol",
	CodeURLMalformat:           "URL using bad/illegal format or missing URL",
	CodeCouldntResolveHost:     "Couldn't resolve host name",
	CodeCouldntConnect:         "Couldn't connect to server",
	CodeOperationTimedOut:      "Timeout was reached",
	CodeSSLConnectError:        "SSL connect error",
	CodeAbortedByCallback:      "Operation was aborted by an application callback",
	CodeGotNothing:             "Server returned nothing (no headers, no data)",
	CodeSendError:              "Failed sending data to the peer",
	CodeRecvError:              "Failure when receiving data from the peer",
	CodePeerFailedVerification: "SSL peer certificate or SSH remote key was not OK",
}

// String returns the human-readable text for the code.
func (c ErrorCode) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return fmt.Sprintf("Unknown error (%d)", int(c))
}

// Classify maps an error from net/http to an ErrorCode.
// A nil error is CodeOK. Errors that match no known class are CodeRecvError.
func Classify(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}

	if errors.Is(err, context.Canceled) {
		return CodeAbortedByCallback
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeOperationTimedOut
	}

	// Certificate failures before generic TLS and network checks: they are
	// wrapped in net.OpError on the dial path.
	var verifyErr *tls.CertificateVerificationError
	var unknownAuth x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError
	if errors.As(err, &verifyErr) || errors.As(err, &unknownAuth) ||
		errors.As(err, &hostErr) || errors.As(err, &invalidErr) {
		return CodePeerFailedVerification
	}

	var recordErr tls.RecordHeaderError
	var alertErr tls.AlertError
	if errors.As(err, &recordErr) || errors.As(err, &alertErr) {
		return CodeSSLConnectError
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeOperationTimedOut
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CodeCouldntResolveHost
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return CodeCouldntConnect
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch opErr.Op {
		case "dial":
			return CodeCouldntConnect
		case "write":
			return CodeSendError
		case "read":
			return CodeRecvError
		}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return CodeGotNothing
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && strings.Contains(urlErr.Err.Error(), "unsupported protocol scheme") {
		return CodeUnsupportedProtocol
	}

	// Fallback: String matching for stdlib network errors
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "network is unreachable"),
		strings.Contains(errStr, "no route to host"):
		return CodeCouldntConnect
	case strings.Contains(errStr, "broken pipe"):
		return CodeSendError
	case strings.Contains(errStr, "tls:"):
		return CodeSSLConnectError
	}
	return CodeRecvError
}
