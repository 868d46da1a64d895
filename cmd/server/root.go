package main

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/di"
	groupService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/service"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/config"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/scheduler"
	httpServer "github.com/reshetovitsme/tg-keyword-monitor/internal/transport/http"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/transport/mtproto"
	telegramHandler "github.com/reshetovitsme/tg-keyword-monitor/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tg-keyword-monitor",
		Short:         "Forward Telegram group messages that match your keywords",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := run(cmd.Context()); err != nil {
				slog.Error("Monitor stopped with error", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.AddCommand(newMigrateCmd(), newClassifyCmd())
	return cmd
}

func run(parent context.Context) error {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Setup dependency injection
	injector, err := di.Setup()
	if err != nil {
		return err
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return err
	}
	logLevel.Set(cfg.LogLevel())

	// Get services from DI container
	b := do.MustInvoke[*bot.Bot](injector)
	_ = do.MustInvoke[*telegramHandler.Handler](injector) // registers bot commands
	notifier := do.MustInvoke[*telegramHandler.Notifier](injector)
	client := do.MustInvoke[*mtproto.Client](injector)
	groups := do.MustInvoke[*groupService.Service](injector)
	server := do.MustInvoke[*httpServer.Server](injector)
	sched := do.MustInvoke[*scheduler.Scheduler](injector)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.Start(gctx)
		return nil
	})

	// Start HTTP server
	g.Go(func() error {
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		err := client.Run(gctx, func(ctx context.Context) {
			if _, err := groups.Sync(ctx); err != nil {
				slog.Error("Startup reconciliation failed", "error", err)
			}
			startReconcileSchedule(cfg, sched, groups)
		})
		if stdErrors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := notifier.NotifyAdmin(ctx, "Monitor started"); err != nil {
		slog.Warn("Failed to send startup notice", "error", err)
	}
	slog.Info("Application started", "port", cfg.HTTPPort, "env", cfg.AppEnv)

	runErr := g.Wait()
	slog.Info("Shutting down...")

	noticeCtx, cancelNotice := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelNotice()
	if err := notifier.NotifyAdmin(noticeCtx, "Monitor stopped"); err != nil {
		slog.Warn("Failed to send shutdown notice", "error", err)
	}

	return runErr
}

func startReconcileSchedule(cfg *config.Config, sched *scheduler.Scheduler, groups *groupService.Service) {
	if cfg.ReconcileInterval == 0 {
		slog.Info("Scheduled reconciliation disabled")
		return
	}

	interval := time.Duration(cfg.ReconcileInterval) * time.Second
	err := sched.Every("reconcile-groups", interval, func(ctx context.Context) error {
		_, err := groups.Sync(ctx)
		return err
	})
	if err != nil {
		slog.Error("Failed to schedule reconciliation", "error", err)
		return
	}
	sched.Start()
}
