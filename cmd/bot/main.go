// Package main contains the entrypoint for the Yve statistics bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/pandarinos/yve/internal/bot"
	"github.com/pandarinos/yve/internal/bot/handlers"
	"github.com/pandarinos/yve/internal/bot/tasks"
	"github.com/pandarinos/yve/internal/config"
	"github.com/pandarinos/yve/internal/database"
	"github.com/pandarinos/yve/internal/logger"
	"github.com/pandarinos/yve/internal/pager"
	"github.com/pandarinos/yve/internal/stats"
	"github.com/pandarinos/yve/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires config, logger, database, report engine and Telegram bot
// together, runs the orchestrator until shutdown, and returns the
// process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	if err := store.Ping(ctx); err != nil {
		log.Error("Database health check failed", "error", err)
		return 1
	}

	// Seed the allow-listed groups so message inserts can resolve them.
	for _, groupID := range cfg.Telegram.GroupIDs {
		if err := store.AddGroup(ctx, groupID, ""); err != nil {
			log.Error("Failed to seed group", "group_id", groupID, "error", err)
			return 1
		}
	}
	log.Info("Seeded configured groups", "count", len(cfg.Telegram.GroupIDs))

	reporter := stats.NewReporter(store, cfg.Stats.TopPostersLimit, cfg.Messages.NoMessages)
	pages := pager.New()

	hDeps := handlers.HandlerDeps{
		Logger:   log,
		Config:   cfg,
		Store:    store,
		Reporter: reporter,
		Pager:    pages,
		Debug:    &handlers.DebugFlag{},
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Config: cfg,
		Store:  store,
		Pager:  pages,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewMessageHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	if _, err := tg.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "help", Description: "Zeigt die Hilfe an"},
			{Command: "me", Description: "Deine persönliche Statistik"},
			{Command: "stats", Description: "Statistik dieser Gruppe"},
			{Command: "networkstats", Description: "Gesamtstatistik aller Gruppen"},
		},
	}); err != nil {
		log.Warn("Failed to set bot commands", "error", err)
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
