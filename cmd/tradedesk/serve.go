package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpadapter "github.com/blocksecure/tradedesk/internal/adapters/http"
	"github.com/blocksecure/tradedesk/internal/adapters/telegram"
	"github.com/blocksecure/tradedesk/internal/config"
	"github.com/blocksecure/tradedesk/internal/metrics"
	"github.com/blocksecure/tradedesk/internal/notify"
	"github.com/blocksecure/tradedesk/internal/runtime"
	"github.com/blocksecure/tradedesk/pkg/adapters/memory"
	redisadapter "github.com/blocksecure/tradedesk/pkg/adapters/redis"
	"github.com/blocksecure/tradedesk/pkg/flow"
	"github.com/blocksecure/tradedesk/pkg/ports"
	"github.com/blocksecure/tradedesk/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Telegram transport, sweep and operational HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := buildLogger(cfg.Log)

		// Session backend: Redis when configured, memory otherwise. The
		// Redis TTL is a backstop at twice the idle timeout; the sweep is
		// what actually notifies and evicts.
		var (
			store       ports.SessionStore
			managerOpts = []session.Option{session.WithLogger(logger)}
		)
		if cfg.Redis.Enabled() {
			rstore := redisadapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
				redisadapter.WithTTL(2*cfg.Flow.IdleTimeout))
			defer rstore.Close()
			store = rstore
			managerOpts = append(managerOpts,
				session.WithLocker(redisadapter.NewLocker(rstore.Client(), "tradedesk:")))
			logger.Info("using redis session store", "addr", cfg.Redis.Addr)
		} else {
			store = memory.NewStore()
			logger.Info("using in-memory session store")
		}

		manager := session.NewManager(store, managerOpts...)
		machine := flow.New(flow.WithMinimumUSD(cfg.Flow.MinimumUSD))
		m := metrics.New(prometheus.DefaultRegisterer)

		engineOpts := []runtime.Option{
			runtime.WithLogger(logger),
			runtime.WithHooks(m.Hooks()),
			runtime.WithIdleTimeout(cfg.Flow.IdleTimeout),
		}

		var bot *telegram.Bot
		if cfg.Telegram.Enabled() {
			api, err := telegram.Connect(cfg.Telegram.Token)
			if err != nil {
				return err
			}
			engineOpts = append(engineOpts,
				runtime.WithNotifier(notify.NewTelegram(api, cfg.Telegram.AdminChatID)))
			if cfg.Telegram.AdminChatID == 0 {
				logger.Warn("ADMIN_ID not set; submissions cannot be forwarded")
			}

			engine := runtime.New(manager, machine, engineOpts...)
			bot = telegram.NewFromAPI(api, engine, telegram.WithLogger(logger))
			engine.SetSender(bot)
			return run(cmd.Context(), cfg, logger, engine, bot)
		}

		logger.Warn("BOT_TOKEN not set; running with HTTP transport only")
		engine := runtime.New(manager, machine, engineOpts...)
		return run(cmd.Context(), cfg, logger, engine, nil)
	},
}

func run(parent context.Context, cfg *config.Config, logger *slog.Logger, engine *runtime.Engine, bot *telegram.Bot) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: httpadapter.NewHandler(engine, logger),
	}

	serverErrors := make(chan error, 2)

	go func() {
		logger.Info("starting http server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	go engine.RunSweeper(ctx, cfg.Flow.SweepInterval)

	if bot != nil {
		go func() {
			if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
				serverErrors <- fmt.Errorf("telegram transport: %w", err)
			}
		}()
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())
		cancel()

		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return err
			}
		}
		logger.Info("stopped")
		return nil
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
