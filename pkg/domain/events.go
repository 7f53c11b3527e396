package domain

import (
	"context"
	"time"
)

// EndReason explains why a session left the store.
type EndReason string

const (
	EndSubmitted EndReason = "submitted"
	EndCancelled EndReason = "cancelled"
	EndExpired   EndReason = "expired"
	EndRestarted EndReason = "restarted"
)

// StepEvent is emitted when a session enters a step after an accepted input.
type StepEvent struct {
	Timestamp time.Time
	UserID    string
	From      Step
	To        Step
}

// SessionEvent is emitted when a session is created or removed.
type SessionEvent struct {
	Timestamp time.Time
	UserID    string
	Reason    EndReason
}

// Hooks are optional engine callbacks for observability. Nil members are
// skipped.
type Hooks struct {
	OnStepEnter     func(context.Context, *StepEvent)
	OnSessionStart  func(context.Context, *SessionEvent)
	OnSessionEnd    func(context.Context, *SessionEvent)
	OnInputRejected func(context.Context, *StepEvent)
	OnNotifyFailed  func(context.Context, *SessionEvent)
}
