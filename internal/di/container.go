package di

import (
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/jmoiron/sqlx"
	classifierService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/classifier/service"
	feedService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/feed/service"
	groupRepo "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/repository"
	groupService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/service"
	hitRepo "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/hit/repository"
	hitService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/hit/service"
	keywordRepo "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/repository"
	keywordService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/service"
	monitorService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/monitor/service"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/config"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/database"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/scheduler"
	httpServer "github.com/reshetovitsme/tg-keyword-monitor/internal/transport/http"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/transport/mtproto"
	telegramHandler "github.com/reshetovitsme/tg-keyword-monitor/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container.
// The bot, the user session and the HTTP server are built but not started.
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Database
	do.Provide(injector, func(i do.Injector) (*sqlx.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		db, err := database.Open(cfg.DatabasePath)
		if err != nil {
			return nil, oops.With("database_path", cfg.DatabasePath, "context", "failed to open database").Wrap(err)
		}
		return db, nil
	})

	// Register Repositories
	do.Provide(injector, func(i do.Injector) (keywordRepo.Repository, error) {
		return keywordRepo.NewSQLiteStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (groupRepo.Repository, error) {
		return groupRepo.NewSQLiteStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (hitRepo.Repository, error) {
		return hitRepo.NewSQLiteStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})

	// Register Keyword Service
	do.Provide(injector, func(i do.Injector) (*keywordService.Service, error) {
		return keywordService.New(do.MustInvoke[keywordRepo.Repository](i)), nil
	})

	// Register Classifier Service
	do.Provide(injector, func(i do.Injector) (*classifierService.Service, error) {
		return classifierService.New(do.MustInvoke[*keywordService.Service](i)), nil
	})

	// Register Group Service (membership provider is attached with the user session)
	do.Provide(injector, func(i do.Injector) (*groupService.Service, error) {
		svc := groupService.New(do.MustInvoke[groupRepo.Repository](i))
		svc.SetLogger(slog.Default())
		return svc, nil
	})

	// Register Hit Service
	do.Provide(injector, func(i do.Injector) (*hitService.Service, error) {
		return hitService.New(do.MustInvoke[hitRepo.Repository](i)), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		return feedService.New(do.MustInvoke[*hitService.Service](i)), nil
	})

	// Register Stats Collector
	do.Provide(injector, func(i do.Injector) (*monitorService.StatsCollector, error) {
		return monitorService.NewStatsCollector(
			do.MustInvoke[*groupService.Service](i),
			do.MustInvoke[*keywordService.Service](i),
			do.MustInvoke[*hitService.Service](i),
		), nil
	})

	// Register Bot
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		b, err := bot.New(cfg.TelegramBotToken)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}
		return b, nil
	})

	// Register Notifier
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Notifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return telegramHandler.NewNotifier(do.MustInvoke[*bot.Bot](i), cfg.AdminID), nil
	})

	// Register Monitor Service
	do.Provide(injector, func(i do.Injector) (*monitorService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		svc := monitorService.New(
			do.MustInvoke[*classifierService.Service](i),
			do.MustInvoke[*groupService.Service](i),
			do.MustInvoke[*hitService.Service](i),
			do.MustInvoke[*telegramHandler.Notifier](i),
			cfg.NotifyChatID,
		)
		svc.SetLogger(slog.Default())
		return svc, nil
	})

	// Register MTProto Client and attach it to the group service
	do.Provide(injector, func(i do.Injector) (*mtproto.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := mtproto.New(cfg, do.MustInvoke[*monitorService.Service](i))
		client.SetLogger(slog.Default())

		do.MustInvoke[*groupService.Service](i).SetProvider(client)
		return client, nil
	})

	// Register Telegram Handler and its commands
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		h := telegramHandler.New(
			cfg,
			do.MustInvoke[*groupService.Service](i),
			do.MustInvoke[*keywordService.Service](i),
			do.MustInvoke[*mtproto.Client](i),
			do.MustInvoke[*monitorService.StatsCollector](i),
		)
		h.SetLogger(slog.Default())
		h.RegisterCommands(do.MustInvoke[*bot.Bot](i))
		return h, nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		server := httpServer.New(cfg, do.MustInvoke[*feedService.Service](i), do.MustInvoke[*monitorService.StatsCollector](i))
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Scheduler
	do.Provide(injector, func(i do.Injector) (*scheduler.Scheduler, error) {
		return scheduler.New(slog.Default())
	})

	return injector, nil
}

// Shutdown stops the scheduler and closes the database. Transports stop
// when the run context is cancelled.
func Shutdown(injector do.Injector) error {
	if sched, err := do.Invoke[*scheduler.Scheduler](injector); err == nil && sched != nil {
		if err := sched.Shutdown(); err != nil {
			slog.Error("Failed to stop scheduler", "error", err)
		}
	}

	if db, err := do.Invoke[*sqlx.DB](injector); err == nil {
		database.Close(db)
	}

	return nil
}
