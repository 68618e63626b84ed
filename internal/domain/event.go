package domain

import "time"

// Subjects of the member lifecycle events.
const (
	EventMemberRegistered = "member.registered"
	EventMemberCreated    = "member.created"
	EventMemberLogin      = "member.login"
	EventMemberVerified   = "member.verified"
)

// MemberEvent is the payload published after a successful member write.
type MemberEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UID        string    `json:"uid"`
	OccurredAt time.Time `json:"occurred_at"`
}
