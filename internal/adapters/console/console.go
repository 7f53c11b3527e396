// Package console is a line-based local transport for exercising the intake
// flow without Telegram credentials.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

// Engine is the conversation entry point the transport feeds.
type Engine interface {
	Handle(ctx context.Context, userID, text string) ([]domain.Prompt, error)
}

// Console runs the conversation on stdin/stdout for a single local user.
type Console struct {
	engine Engine
	reader *bufio.Reader
	out    *termenv.Output
	userID string
}

// New creates a console transport. Nil reader/writer default to stdin/stdout.
func New(engine Engine, r io.Reader, w io.Writer) *Console {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &Console{
		engine: engine,
		reader: bufio.NewReader(r),
		out:    termenv.NewOutput(w),
		userID: "console",
	}
}

// Run starts the conversation with the start signal and loops until EOF,
// "exit", or context cancellation.
func (c *Console) Run(ctx context.Context) error {
	c.banner()

	prompts, err := c.engine.Handle(ctx, c.userID, "/start")
	if err != nil {
		return err
	}
	c.print(prompts)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, "> ")
		line, err := c.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out, "Bye!")
				return nil
			}
			return err
		}

		input := strings.TrimSpace(line)
		if input == "exit" || input == "quit" {
			fmt.Fprintln(c.out, "Bye!")
			return nil
		}
		if input == "" {
			continue
		}

		prompts, err := c.engine.Handle(ctx, c.userID, input)
		if err != nil {
			return err
		}
		c.print(prompts)
	}
}

// Send implements ports.Sender for timeout notices.
func (c *Console) Send(ctx context.Context, userID string, prompts ...domain.Prompt) error {
	c.print(prompts)
	return nil
}

func (c *Console) print(prompts []domain.Prompt) {
	for _, prompt := range prompts {
		fmt.Fprintln(c.out, c.out.String(prompt.Text).Foreground(c.out.Color("#34d399")))
		if len(prompt.Options) > 0 {
			for _, row := range prompt.Options {
				labels := make([]string, len(row))
				for i, label := range row {
					labels[i] = "[" + label + "]"
				}
				fmt.Fprintln(c.out, c.out.String("  "+strings.Join(labels, " ")).Faint())
			}
		}
	}
}

func (c *Console) banner() {
	title := c.out.String("BlockSecure Trade Desk — local console").Bold().Foreground(c.out.Color("#818cf8"))
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, title)
	fmt.Fprintln(c.out, c.out.String("type 'exit' to leave").Faint())
	fmt.Fprintln(c.out)
}
