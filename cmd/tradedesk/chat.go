package main

import (
	"github.com/spf13/cobra"

	"github.com/blocksecure/tradedesk/internal/adapters/console"
	"github.com/blocksecure/tradedesk/internal/notify"
	"github.com/blocksecure/tradedesk/internal/runtime"
	"github.com/blocksecure/tradedesk/pkg/adapters/memory"
	"github.com/blocksecure/tradedesk/pkg/flow"
	"github.com/blocksecure/tradedesk/pkg/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run the intake questionnaire locally on the terminal",
	Long:  `Runs the full conversation against an in-memory session store. Submissions are logged instead of forwarded, so no Telegram credentials are needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := buildLogger(cfg.Log)

		manager := session.NewManager(memory.NewStore(), session.WithLogger(logger))
		machine := flow.New(flow.WithMinimumUSD(cfg.Flow.MinimumUSD))
		engine := runtime.New(manager, machine,
			runtime.WithLogger(logger),
			runtime.WithNotifier(notify.NewLog(logger)),
			runtime.WithIdleTimeout(cfg.Flow.IdleTimeout),
		)

		c := console.New(engine, cmd.InOrStdin(), cmd.OutOrStdout())
		return c.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
