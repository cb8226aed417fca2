// Package registry holds the in-memory activity roster state.
package registry

import (
	"context"
	"slices"
	"sync"

	"example.com/activities/internal/domain"
)

// Store keeps every activity in memory behind one RWMutex. Request handlers
// run on separate goroutines, so mutations must be serialized here to uphold
// the capacity and uniqueness invariants. State lives for the process only.
type Store struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
}

// NewStore constructs a Store populated with the seed dataset.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset restores the registry to its seed state. Tests rely on this for
// isolation between cases.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activities = make(map[string]*domain.Activity)
	for _, act := range seedActivities() {
		copied := act
		copied.Participants = slices.Clone(act.Participants)
		s.activities[act.Name] = &copied
	}
}

// Snapshot returns a deep copy of the full registry keyed by activity name.
// Participant order is signup order.
func (s *Store) Snapshot(ctx context.Context) map[string]domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Activity, len(s.activities))
	for name, act := range s.activities {
		copied := *act
		copied.Participants = slices.Clone(act.Participants)
		out[name] = copied
	}
	return out
}

// Enroll appends the email to the activity roster. Checks run in a fixed
// order: unknown activity, then duplicate email, then capacity, so a full
// roster that already contains the email still reports AlreadyRegistered.
func (s *Store) Enroll(ctx context.Context, activity, email string) (domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	act, ok := s.activities[activity]
	if !ok {
		return domain.Activity{}, &domain.NotFoundError{Activity: activity}
	}
	if slices.Contains(act.Participants, email) {
		return domain.Activity{}, &domain.AlreadyRegisteredError{Activity: activity, Email: email}
	}
	if len(act.Participants) >= act.MaxParticipants {
		return domain.Activity{}, &domain.FullError{Activity: activity, MaxParticipants: act.MaxParticipants}
	}

	act.Participants = append(act.Participants, email)

	copied := *act
	copied.Participants = slices.Clone(act.Participants)
	return copied, nil
}

// Withdraw removes the email from the activity roster, preserving the order
// of the remaining participants.
func (s *Store) Withdraw(ctx context.Context, activity, email string) (domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	act, ok := s.activities[activity]
	if !ok {
		return domain.Activity{}, &domain.NotFoundError{Activity: activity}
	}

	idx := slices.Index(act.Participants, email)
	if idx < 0 {
		return domain.Activity{}, &domain.NotRegisteredError{Activity: activity, Email: email}
	}

	act.Participants = slices.Delete(act.Participants, idx, idx+1)

	copied := *act
	copied.Participants = slices.Clone(act.Participants)
	return copied, nil
}
