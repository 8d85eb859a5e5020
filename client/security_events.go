package client

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smnsjas/go-soaptransport/internal/log"
)

// NIST SP 800-92 compliant event types
const (
	EventAuthentication = "authentication"
	EventConnection     = "connection"
	EventCall           = "call"
)

// Security event subtypes
const (
	SubtypeConnFailed         = "failed"
	SubtypeCertVerifyDisabled = "cert_verify_disabled"
	SubtypeAuthAttempt        = "attempt"
	SubtypeCallExecute        = "execute"
	SubtypeCallComplete       = "complete"
	SubtypeCallFailed         = "failed"
)

// Security event outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeAttempt = "attempt"
)

// Security event severities
const (
	SeverityInfo     = "INFO"
	SeverityWarning  = "WARNING"
	SeverityError    = "ERROR"
	SeverityCritical = "CRITICAL"
)

// SecurityEvent represents a structured security log event compliant with NIST SP 800-92.
type SecurityEvent struct {
	// NIST Required Fields
	Timestamp string `json:"timestamp"`  // ISO 8601 UTC
	EventType string `json:"event_type"` // authentication, connection, call
	Subtype   string `json:"subtype"`
	Severity  string `json:"severity"`

	// Identity & Context
	User          string `json:"user,omitempty"`
	Source        string `json:"source"`
	Target        string `json:"target"`         // endpoint, credentials stripped
	CorrelationID string `json:"correlation_id"` // Call-scoped UUID

	// Operation Details
	Action  string         `json:"action"` // SOAP action
	Outcome string         `json:"outcome"`
	Details map[string]any `json:"details,omitempty"`
}

// SecurityLogger writes security events for a single call.
type SecurityLogger struct {
	logger        *slog.Logger
	user          string
	target        string
	action        string
	correlationID string
}

// NewSecurityLogger creates a logger for one call to target.
// It generates a new CorrelationID (UUID) for this logger instance.
func NewSecurityLogger(logger *slog.Logger, user, target, action string) *SecurityLogger {
	return &SecurityLogger{
		logger:        logger,
		user:          user,
		target:        log.RedactURL(target),
		action:        action,
		correlationID: uuid.New().String(),
	}
}

// LogEvent constructs and logs a security event.
func (l *SecurityLogger) LogEvent(eventType, subtype, severity, outcome string, details map[string]any) {
	if l == nil || l.logger == nil {
		return
	}

	event := &SecurityEvent{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EventType:     eventType,
		Subtype:       subtype,
		Severity:      severity,
		User:          l.user,
		Source:        "go-soaptransport",
		Target:        l.target,
		CorrelationID: l.correlationID,
		Action:        l.action,
		Outcome:       outcome,
		Details:       details,
	}
	if details == nil {
		event.Details = make(map[string]any)
	}

	switch severity {
	case SeverityWarning:
		l.logger.Warn("SecurityEvent", "event", event)
	case SeverityError, SeverityCritical:
		l.logger.Error("SecurityEvent", "event", event)
	default:
		l.logger.Info("SecurityEvent", "event", event)
	}
}

// LogConnection logs connection events.
func (l *SecurityLogger) LogConnection(subtype, outcome, severity string, details map[string]any) {
	l.LogEvent(EventConnection, subtype, severity, outcome, details)
}

// LogAuthentication logs authentication events.
func (l *SecurityLogger) LogAuthentication(subtype, outcome, severity string, details map[string]any) {
	l.LogEvent(EventAuthentication, subtype, severity, outcome, details)
}

// LogCall logs call lifecycle events.
func (l *SecurityLogger) LogCall(subtype, outcome, severity string, details map[string]any) {
	l.LogEvent(EventCall, subtype, severity, outcome, details)
}

// String returns the JSON representation of the event.
func (e *SecurityEvent) String() string {
	b, _ := json.Marshal(e)
	return string(b)
}
