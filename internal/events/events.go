// Package events defines roster-change event payloads and publishers.
package events

import "time"

// Roster actions carried in the event payload.
const (
	ActionSignup     = "signup"
	ActionUnregister = "unregister"
)

// RosterChanged is emitted after an activity roster mutation commits.
type RosterChanged struct {
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	Action     string    `json:"action"`
	SlotsLeft  int       `json:"slots_left"`
	OccurredAt time.Time `json:"occurred_at"`
}
