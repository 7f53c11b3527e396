package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/blocksecure/tradedesk/internal/config"
	"github.com/blocksecure/tradedesk/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tradedesk",
	Short: "tradedesk is the BlockSecure P2P trade request intake bot",
	Long:  `tradedesk guides users through a trade request questionnaire over chat, validates each answer, enforces the minimum trade size, and forwards finished requests to the operator desk.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to an optional YAML config file")
}

// loadConfig reads .env, the environment, and the optional config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	_ = godotenv.Load() // a missing .env is fine
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func buildLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}
