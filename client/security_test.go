package client

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smnsjas/go-soaptransport/soap"
)

func TestSecurityLogger_LogEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sec := NewSecurityLogger(logger, "svc", "https://svc:pw@host/soap", "urn:A")
	sec.LogConnection(SubtypeConnFailed, OutcomeFailure, SeverityError, map[string]any{"code": 7})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `\"event_type\":\"connection\"`)
	assert.Contains(t, out, `\"action\":\"urn:A\"`)
	assert.Contains(t, out, `\"code\":7`)
	assert.NotContains(t, out, "pw@")
}

func TestSecurityLogger_NilSafe(t *testing.T) {
	var sec *SecurityLogger
	sec.LogCall(SubtypeCallExecute, OutcomeAttempt, SeverityInfo, nil)

	sec = NewSecurityLogger(nil, "", "http://host", "")
	sec.LogCall(SubtypeCallExecute, OutcomeAttempt, SeverityInfo, nil)
}

func TestSecurityEvent_String(t *testing.T) {
	e := &SecurityEvent{EventType: EventCall, Subtype: SubtypeCallComplete, Outcome: OutcomeSuccess}
	s := e.String()
	assert.True(t, strings.HasPrefix(s, "{"))
	assert.Contains(t, s, `"event_type":"call"`)
	assert.Contains(t, s, `"outcome":"success"`)
}

// TestCall_SecurityEvents verifies the events a call emits.
func TestCall_SecurityEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<ok/>"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c, err := New(server.URL, Options{
		Login:            "svc",
		Password:         strPtr("pw"),
		IgnoreCertVerify: true,
		Logger:           logger,
	})
	require.NoError(t, err)

	_, err = c.Call(context.Background(), "<req/>", "", "urn:A", soap.V1, false)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `\"subtype\":\"cert_verify_disabled\"`)
	assert.Contains(t, out, `\"event_type\":\"authentication\"`)
	assert.Contains(t, out, `\"subtype\":\"execute\"`)
	assert.Contains(t, out, `\"subtype\":\"complete\"`)
}
