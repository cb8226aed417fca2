package domain

import (
	"errors"
	"fmt"
)

// Activity is a named extracurricular offering with a fixed capacity and an
// ordered roster of participant emails. The name doubles as the registry key.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// SlotsLeft reports how many signups the activity can still accept.
func (a Activity) SlotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Sentinel errors for the roster taxonomy. Callers match on these with
// errors.Is; the typed errors below carry the activity/email context.
var (
	ErrActivityNotFound  = errors.New("activity not found")
	ErrAlreadyRegistered = errors.New("student already signed up")
	ErrActivityFull      = errors.New("activity full")
	ErrNotRegistered     = errors.New("student not registered")
)

// NotFoundError is returned when no activity matches the requested name.
type NotFoundError struct {
	Activity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Activity %q not found", e.Activity)
}

func (e *NotFoundError) Unwrap() error { return ErrActivityNotFound }

// AlreadyRegisteredError is returned when the email is already on the roster.
type AlreadyRegisteredError struct {
	Activity string
	Email    string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("Student %s is already signed up for %s", e.Email, e.Activity)
}

func (e *AlreadyRegisteredError) Unwrap() error { return ErrAlreadyRegistered }

// FullError is returned when the roster has reached max participants.
type FullError struct {
	Activity        string
	MaxParticipants int
}

func (e *FullError) Error() string {
	return fmt.Sprintf("Activity %s is full (%d participants max)", e.Activity, e.MaxParticipants)
}

func (e *FullError) Unwrap() error { return ErrActivityFull }

// NotRegisteredError is returned when withdrawing an email that is not on the
// roster.
type NotRegisteredError struct {
	Activity string
	Email    string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("Student %s is not registered for %s", e.Email, e.Activity)
}

func (e *NotRegisteredError) Unwrap() error { return ErrNotRegistered }
