package ports

import (
	"context"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

// Notifier delivers a finished submission to the operator destination.
// A failure is surfaced to the end user as a delivery notice; it never
// prevents the session from terminating.
type Notifier interface {
	Notify(ctx context.Context, submission domain.Submission) error
}

// Sender delivers prompts to a user outside the request/response cycle of
// Handle, e.g. the inactivity notice emitted by the timeout sweep.
type Sender interface {
	Send(ctx context.Context, userID string, prompts ...domain.Prompt) error
}
