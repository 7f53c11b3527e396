// Package runtime orchestrates the intake conversation: it owns session
// lifecycle, delegates each inbound message to the flow machine, and
// dispatches finished submissions to the operator channel.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/blocksecure/tradedesk/internal/logging"
	"github.com/blocksecure/tradedesk/pkg/domain"
	"github.com/blocksecure/tradedesk/pkg/flow"
	"github.com/blocksecure/tradedesk/pkg/ports"
	"github.com/blocksecure/tradedesk/pkg/session"
)

// DefaultIdleTimeout is the inactivity window after which a session is
// evicted by the sweep.
const DefaultIdleTimeout = 600 * time.Second

const (
	startCommand  = "/start"
	cancelCommand = "/cancel"
	startButton   = "start trade request"
)

// Engine is the conversation orchestrator. All state handling for one user
// runs under that user's session lock, so transitions never interleave.
type Engine struct {
	sessions *session.Manager
	flow     *flow.Machine
	notifier ports.Notifier
	sender   ports.Sender
	logger   *slog.Logger
	hooks    domain.Hooks

	idleTimeout time.Duration
	now         func() time.Time
}

// Option configures the Engine.
type Option func(*Engine)

// WithNotifier sets the operator notification sink.
func WithNotifier(n ports.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithSender sets the outbound channel used for asynchronous notices
// (currently only the inactivity timeout).
func WithSender(s ports.Sender) Option {
	return func(e *Engine) { e.sender = s }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithHooks sets observability callbacks.
func WithHooks(h domain.Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithIdleTimeout overrides the inactivity window.
func WithIdleTimeout(d time.Duration) Option {
	return func(e *Engine) { e.idleTimeout = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates a conversation engine.
func New(sessions *session.Manager, machine *flow.Machine, opts ...Option) *Engine {
	e := &Engine{
		sessions:    sessions,
		flow:        machine,
		logger:      logging.NewNop(),
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetSender wires the outbound channel after construction. Transports need
// the engine to exist before they can be built, so the sender is attached
// last; call it before RunSweeper starts.
func (e *Engine) SetSender(s ports.Sender) {
	e.sender = s
}

// Handle processes one inbound message for a user and returns the prompts to
// send back. It is the single entry point for every transport. The returned
// error reports infrastructure failures only; validation problems are
// answered with re-prompts.
func (e *Engine) Handle(ctx context.Context, userID, text string) ([]domain.Prompt, error) {
	input := strings.TrimSpace(text)

	var prompts []domain.Prompt
	err := e.sessions.WithLock(ctx, userID, func(ctx context.Context) error {
		var err error
		prompts, err = e.handleLocked(ctx, userID, input)
		return err
	})
	return prompts, err
}

func (e *Engine) handleLocked(ctx context.Context, userID, input string) ([]domain.Prompt, error) {
	store := e.sessions.Store()
	now := e.now()

	current, err := store.Load(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	// Lazy expiry: the sweep normally evicts idle sessions, but a message
	// can arrive before the next sweep tick.
	if current != nil && current.Expired(now, e.idleTimeout) {
		if err := e.endSession(ctx, current, domain.EndExpired); err != nil {
			return nil, err
		}
		current = nil
		if !isStartSignal(input) {
			return []domain.Prompt{timeoutNotice()}, nil
		}
	}

	// Global signals work regardless of the current step.
	switch {
	case isStartSignal(input):
		return e.restart(ctx, current, userID, input, now)
	case strings.EqualFold(input, cancelCommand):
		if current == nil {
			return []domain.Prompt{domain.TextPrompt("You have no active trade request. Use /start to begin.")}, nil
		}
		if err := e.endSession(ctx, current, domain.EndCancelled); err != nil {
			return nil, err
		}
		return []domain.Prompt{domain.TextPrompt("❌ Request cancelled. Use /start to create a new trade request.")}, nil
	}

	if current == nil {
		return []domain.Prompt{domain.TextPrompt("Use /start to begin a new trade request.")}, nil
	}

	return e.transition(ctx, current, input, now)
}

// restart resets the user to a fresh session at the first step. Issuing the
// start signal is idempotent: prior progress is discarded.
func (e *Engine) restart(ctx context.Context, current *domain.Session, userID, input string, now time.Time) ([]domain.Prompt, error) {
	store := e.sessions.Store()

	if current != nil {
		if err := e.endSession(ctx, current, domain.EndRestarted); err != nil {
			return nil, err
		}
	}

	fresh := domain.NewSession(userID, now)
	if err := store.Save(ctx, fresh); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	e.emitSession(ctx, e.hooks.OnSessionStart, userID, "", now)
	e.logger.Info("session started", "user_id", userID)

	// The /start command greets and offers the start button; pressing the
	// button (or sending its text) goes straight to the first question.
	if strings.EqualFold(input, startButton) {
		return []domain.Prompt{e.flow.Question(domain.StepName)}, nil
	}
	return []domain.Prompt{e.flow.Welcome()}, nil
}

// transition runs the flow machine for one accepted or rejected answer.
func (e *Engine) transition(ctx context.Context, s *domain.Session, input string, now time.Time) ([]domain.Prompt, error) {
	store := e.sessions.Store()
	res := e.flow.Transition(s.Step, input, s.Trade)

	switch res.Outcome {
	case flow.Rejected:
		// Invalid input still counts as activity.
		s.Touch(now)
		if err := store.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		if e.hooks.OnInputRejected != nil {
			e.hooks.OnInputRejected(ctx, &domain.StepEvent{Timestamp: now, UserID: s.UserID, From: s.Step, To: s.Step})
		}
		return res.Prompts, nil

	case flow.Accepted:
		from := s.Step
		s.Trade = res.Trade
		s.Step = res.Next
		s.Touch(now)
		if err := store.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		if e.hooks.OnStepEnter != nil {
			e.hooks.OnStepEnter(ctx, &domain.StepEvent{Timestamp: now, UserID: s.UserID, From: from, To: s.Step})
		}
		e.logger.Debug("step accepted", "user_id", s.UserID, "from", from, "to", s.Step)
		return res.Prompts, nil

	case flow.Cancelled:
		if err := e.endSession(ctx, s, domain.EndCancelled); err != nil {
			return nil, err
		}
		return res.Prompts, nil

	case flow.Completed:
		s.Trade = res.Trade
		s.Step = domain.StepSubmitted
		return e.submit(ctx, s, now)
	}

	return res.Prompts, nil
}

// submit builds the submission, dispatches it once, and terminates the
// session. Delivery failure is reported to the user but never retried and
// never keeps the session alive.
func (e *Engine) submit(ctx context.Context, s *domain.Session, now time.Time) ([]domain.Prompt, error) {
	sub := domain.NewSubmission(s, e.flow.MinimumUSD(), now)

	var notifyErr error
	if e.notifier == nil {
		notifyErr = errors.New("no notifier configured")
	} else {
		notifyErr = e.notifier.Notify(ctx, sub)
	}

	if err := e.endSession(ctx, s, domain.EndSubmitted); err != nil {
		return nil, err
	}

	if notifyErr != nil {
		e.logger.Warn("failed to deliver submission", "user_id", s.UserID, "submission_id", sub.ID, "err", notifyErr)
		if e.hooks.OnNotifyFailed != nil {
			e.hooks.OnNotifyFailed(ctx, &domain.SessionEvent{Timestamp: now, UserID: s.UserID, Reason: domain.EndSubmitted})
		}
		return []domain.Prompt{domain.TextPrompt(
			"⚠️ Your request was recorded but could not be forwarded to the trade desk. Please contact support.")}, nil
	}

	e.logger.Info("submission delivered", "user_id", s.UserID, "submission_id", sub.ID, "usd_equiv", sub.Trade.USDEquiv)
	return []domain.Prompt{domain.TextPrompt(
		"✅ Request submitted. Our trade desk will review and contact you shortly.\nThank you!")}, nil
}

// endSession removes the session from the store and emits the end hook.
// Must be called under the user's lock.
func (e *Engine) endSession(ctx context.Context, s *domain.Session, reason domain.EndReason) error {
	if err := e.sessions.Store().Delete(ctx, s.UserID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	e.emitSession(ctx, e.hooks.OnSessionEnd, s.UserID, reason, e.now())
	e.logger.Info("session ended", "user_id", s.UserID, "reason", reason)
	return nil
}

func (e *Engine) emitSession(ctx context.Context, fn func(context.Context, *domain.SessionEvent), userID string, reason domain.EndReason, now time.Time) {
	if fn != nil {
		fn(ctx, &domain.SessionEvent{Timestamp: now, UserID: userID, Reason: reason})
	}
}

// ActiveSessions lists the user IDs with live sessions.
func (e *Engine) ActiveSessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

func isStartSignal(input string) bool {
	return strings.EqualFold(input, startCommand) || strings.EqualFold(input, startButton)
}

func timeoutNotice() domain.Prompt {
	return domain.TextPrompt("⏱️ Your trade request expired due to inactivity. Use /start to begin a new one.")
}
