// Package audit records the voter activity log: code sends, voter creation,
// logins and removals. Events fan out to pluggable sinks (memory, postgres,
// kafka) through an asynchronous recorder so domain flows never block on the
// log.
package audit

import "time"

// Action classifies an activity log entry.
type Action string

const (
	ActionSendEmail    Action = "send_email"
	ActionSendSMS      Action = "send_sms"
	ActionVoterCreated Action = "voter_created"
	ActionVoterLogin   Action = "voter_login"
	ActionVoterRemoved Action = "voter_removed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`

	VoterID string `json:"voter_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`

	// Method records the credential path for login events.
	Method string `json:"method,omitempty"`

	RequesterIP          string `json:"requester_ip,omitempty"`
	RequesterFingerprint string `json:"requester_fingerprint,omitempty"`
}
