package domain

import "time"

// Audit actions recorded by the async audit pipeline.
const (
	AuditLoginSuccess  = "login_success"
	AuditLoginFailure  = "login_failure"
	AuditRegistered    = "registered"
	AuditLeaveDecision = "leave_decision"
)

// AuditEvent is an append-only record of a security-relevant action.
// ActorID may be empty for failed logins against unknown accounts.
type AuditEvent struct {
	ActorID   string    `json:"actor_id,omitempty"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
