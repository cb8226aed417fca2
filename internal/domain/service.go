// Package domain defines the business logic for the activities service.
package domain

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"example.com/activities/internal/events"
	"example.com/activities/internal/observability"
)

// Registry captures the roster state operations. The one implementation keeps
// everything in memory; the interface exists so handlers can be tested against
// stubs.
type Registry interface {
	Snapshot(ctx context.Context) map[string]Activity
	Enroll(ctx context.Context, activity, email string) (Activity, error)
	Withdraw(ctx context.Context, activity, email string) (Activity, error)
}

// Publisher emits roster-change events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event events.RosterChanged) error
}

// Service orchestrates signup workflows against the registry.
type Service struct {
	registry  Registry
	publisher Publisher
	logger    *zap.Logger
}

// NewService constructs a Service.
func NewService(registry Registry, publisher Publisher, logger *zap.Logger) *Service {
	return &Service{registry: registry, publisher: publisher, logger: logger}
}

// ListActivities returns the full registry snapshot keyed by activity name.
func (s *Service) ListActivities(ctx context.Context) map[string]Activity {
	return s.registry.Snapshot(ctx)
}

// SignUp adds the email to the activity roster. On success the mutation is
// already committed; the roster event is best-effort and never rolls it back.
func (s *Service) SignUp(ctx context.Context, activity, email string) (Activity, error) {
	act, err := s.registry.Enroll(ctx, activity, email)
	if err != nil {
		observability.RecordRejection(rejectionReason(err))
		return Activity{}, err
	}

	observability.RecordSignup(act.Name, len(act.Participants))
	s.publish(ctx, events.RosterChanged{
		Activity:   act.Name,
		Email:      email,
		Action:     events.ActionSignup,
		SlotsLeft:  act.SlotsLeft(),
		OccurredAt: time.Now().UTC(),
	})
	return act, nil
}

// Unregister removes the email from the activity roster.
func (s *Service) Unregister(ctx context.Context, activity, email string) (Activity, error) {
	act, err := s.registry.Withdraw(ctx, activity, email)
	if err != nil {
		observability.RecordRejection(rejectionReason(err))
		return Activity{}, err
	}

	observability.RecordUnregister(act.Name, len(act.Participants))
	s.publish(ctx, events.RosterChanged{
		Activity:   act.Name,
		Email:      email,
		Action:     events.ActionUnregister,
		SlotsLeft:  act.SlotsLeft(),
		OccurredAt: time.Now().UTC(),
	})
	return act, nil
}

func (s *Service) publish(ctx context.Context, event events.RosterChanged) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("roster event publish failed",
			zap.String("activity", event.Activity),
			zap.String("action", event.Action),
			zap.Error(err),
		)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_signed_up"
	case errors.Is(err, ErrActivityFull):
		return "full"
	case errors.Is(err, ErrNotRegistered):
		return "not_registered"
	default:
		return "unknown"
	}
}
