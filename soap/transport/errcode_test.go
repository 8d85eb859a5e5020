package transport

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"
)

// TestClassify verifies error-to-code mapping.
func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, CodeOK},
		{"canceled", context.Canceled, CodeAbortedByCallback},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), CodeOperationTimedOut},
		{"dns", &url.Error{Op: "Post", URL: "http://x", Err: &net.DNSError{Err: "no such host", Name: "x"}}, CodeCouldntResolveHost},
		{"refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, CodeCouldntConnect},
		{"write", &net.OpError{Op: "write", Net: "tcp", Err: errors.New("boom")}, CodeSendError},
		{"read", &net.OpError{Op: "read", Net: "tcp", Err: errors.New("boom")}, CodeRecvError},
		{"eof", &url.Error{Op: "Post", URL: "http://x", Err: io.EOF}, CodeGotNothing},
		{"unknown authority", &url.Error{Op: "Post", URL: "https://x", Err: x509.UnknownAuthorityError{}}, CodePeerFailedVerification},
		{"scheme", &url.Error{Op: "Post", URL: "ftp://x", Err: errors.New(`unsupported protocol scheme "ftp"`)}, CodeUnsupportedProtocol},
		{"broken pipe text", errors.New("write: broken pipe"), CodeSendError},
		{"unknown", errors.New("something went wrong"), CodeRecvError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %d, want %d", int(got), int(tt.want))
			}
		})
	}
}

// TestErrorCode_String verifies code text.
func TestErrorCode_String(t *testing.T) {
	if got := CodeCouldntConnect.String(); got != "Couldn't connect to server" {
		t.Errorf("String() = %q", got)
	}
	if got := ErrorCode(999).String(); got != "Unknown error (999)" {
		t.Errorf("String() = %q", got)
	}
}

// TestTransportError verifies error matching.
func TestTransportError(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("call: %w", &TransportError{Attempts: 2, Code: CodeRecvError, Err: cause})

	if !errors.Is(err, ErrMaxAttempts) {
		t.Error("expected ErrMaxAttempts")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause in chain")
	}
	if !IsTransportError(err) {
		t.Error("expected IsTransportError")
	}
	if IsTransportError(cause) {
		t.Error("plain error reported as TransportError")
	}
	if (&TransportError{}).Error() != MaxAttemptsMessage {
		t.Error("unexpected message")
	}
}
