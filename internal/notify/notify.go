// Package notify delivers finished submissions to the operator destination.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

// ErrUnconfigured is returned when no operator destination is set. The engine
// surfaces it to the user exactly like any other delivery failure.
var ErrUnconfigured = errors.New("operator destination not configured")

// Log records submissions on the application log instead of forwarding
// them. Used by the local console mode, where no operator chat exists.
type Log struct {
	logger *slog.Logger
}

// NewLog creates the logging notifier.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Notify logs the rendered submission.
func (l *Log) Notify(ctx context.Context, submission domain.Submission) error {
	l.logger.Info("submission received",
		"submission_id", submission.ID,
		"user_id", submission.UserID,
		"usd_equiv", submission.Trade.USDEquiv,
	)
	l.logger.Info("\n" + submission.Render())
	return nil
}

// Telegram forwards submissions to a fixed operator chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates the operator notifier. A zero chatID is allowed at
// construction time; Notify will fail with ErrUnconfigured.
func NewTelegram(api *tgbotapi.BotAPI, chatID int64) *Telegram {
	return &Telegram{api: api, chatID: chatID}
}

// Notify sends the rendered submission to the operator chat.
func (t *Telegram) Notify(ctx context.Context, submission domain.Submission) error {
	if t.chatID == 0 {
		return ErrUnconfigured
	}
	msg := tgbotapi.NewMessage(t.chatID, submission.Render())
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to forward submission %s: %w", submission.ID, err)
	}
	return nil
}
