// Package telegram is the production transport: it long-polls the Bot API
// for messages and renders prompts as reply keyboards.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/blocksecure/tradedesk/internal/logging"
	"github.com/blocksecure/tradedesk/pkg/domain"
)

// Engine is the conversation entry point the transport feeds.
type Engine interface {
	Handle(ctx context.Context, userID, text string) ([]domain.Prompt, error)
}

// Bot bridges Telegram updates to the conversation engine.
type Bot struct {
	api         *tgbotapi.BotAPI
	engine      Engine
	logger      *slog.Logger
	pollTimeout int
}

// Option configures the Bot.
type Option func(*Bot)

// WithLogger sets the transport logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bot) { b.logger = l }
}

// WithPollTimeout sets the long-poll timeout in seconds.
func WithPollTimeout(seconds int) Option {
	return func(b *Bot) { b.pollTimeout = seconds }
}

// Connect dials the Bot API with the given token.
func Connect(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	return api, nil
}

// New connects to the Bot API and wraps it in a transport.
func New(token string, engine Engine, opts ...Option) (*Bot, error) {
	api, err := Connect(token)
	if err != nil {
		return nil, err
	}
	return NewFromAPI(api, engine, opts...), nil
}

// NewFromAPI wraps an existing Bot API client.
func NewFromAPI(api *tgbotapi.BotAPI, engine Engine, opts ...Option) *Bot {
	b := &Bot{
		api:         api,
		engine:      engine,
		logger:      logging.NewNop(),
		pollTimeout: 30,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// API exposes the underlying client so the operator notifier can share the
// same connection.
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

// Run polls for updates until the context is canceled. Each update is
// handled in its own goroutine; ordering per user is enforced by the
// engine's session lock, and different users proceed in parallel.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram transport started", "bot", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go b.dispatch(ctx, update.Message)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.Chat.ID, 10)

	prompts, err := b.engine.Handle(ctx, userID, msg.Text)
	if err != nil {
		b.logger.Error("failed to handle message", "user_id", userID, "err", err)
		return
	}
	if err := b.Send(ctx, userID, prompts...); err != nil {
		b.logger.Error("failed to send prompts", "user_id", userID, "err", err)
	}
}

// Send implements ports.Sender.
func (b *Bot) Send(ctx context.Context, userID string, prompts ...domain.Prompt) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram user id %q: %w", userID, err)
	}

	for _, prompt := range prompts {
		msg := tgbotapi.NewMessage(chatID, prompt.Text)
		msg.ReplyMarkup = replyMarkup(prompt)
		if _, err := b.api.Send(msg); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	}
	return nil
}

// replyMarkup maps prompt options to a one-time keyboard; a prompt without
// options clears any previous keyboard so free text is expected.
func replyMarkup(prompt domain.Prompt) any {
	if len(prompt.Options) == 0 {
		return tgbotapi.NewRemoveKeyboard(false)
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(prompt.Options))
	for _, row := range prompt.Options {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, buttons)
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true
	return keyboard
}
