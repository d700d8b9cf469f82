package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brmcgames/leaderboard-bot/internal/bot"
	"github.com/brmcgames/leaderboard-bot/internal/config"
	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/locale"
	"github.com/brmcgames/leaderboard-bot/internal/logger"
	"github.com/brmcgames/leaderboard-bot/internal/storage"

	tgbot "github.com/go-telegram/bot"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

func main() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logLevel := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(logLevel)
	log.Info("Starting Leaderboard Bot", "log_level", cfg.LogLevel, "storage", cfg.StorageBackend)

	// Initialize storage backend
	var store domain.Store
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		db, err := sql.Open("sqlite", cfg.DatabasePath)
		if err != nil {
			log.Error("Failed to open database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		// Enable WAL mode for better concurrency
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			log.Error("Failed to enable WAL mode", "error", err)
			os.Exit(1)
		}

		dbQueue := storage.NewDBQueue(db)
		defer dbQueue.Close()

		store, err = storage.NewDocumentStore(dbQueue, log)
		if err != nil {
			log.Error("Failed to initialize document store", "error", err)
			os.Exit(1)
		}
		log.Info("Document store opened", "path", cfg.DatabasePath)

	case config.BackendFile:
		store, err = storage.NewFileStore(cfg.DataDir, log)
		if err != nil {
			log.Error("Failed to initialize file store", "error", err)
			os.Exit(1)
		}
		log.Info("File store opened", "dir", cfg.DataDir)

	default:
		log.Error("Unknown storage backend", "backend", cfg.StorageBackend)
		os.Exit(1)
	}

	// Create domain services
	registry := domain.NewRegistry(store, log)
	service := domain.NewService(store, registry, log)

	// Seed the master credential from configuration
	if err := registry.SeedMaster(context.Background(), cfg.MasterPasswordDigest); err != nil {
		log.Error("Failed to seed master credential", "error", err)
		os.Exit(1)
	}
	log.Info("Master credential seeded")

	// Create localizer
	localizer, err := locale.NewLocalizer(locale.NewLocale(locale.En))
	if err != nil {
		log.Error("Failed to create localizer", "error", err)
		os.Exit(1)
	}

	// Create pending prompt tracker
	prompts := bot.NewPromptTracker()

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize Telegram bot
	b, err := tgbot.New(cfg.TelegramToken)
	if err != nil {
		log.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}
	log.Info("Telegram bot created")

	// Create bot handler
	handler := bot.NewBotHandler(b, service, registry, store, cfg, log, localizer, prompts)
	log.Info("Bot handler created")

	// Register command handlers
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypePrefix, handler.HandleStart)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/help", tgbot.MatchTypeExact, handler.HandleHelp)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/admin", tgbot.MatchTypePrefix, handler.HandleAdmin)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/newleaderboard", tgbot.MatchTypeExact, handler.HandleNewLeaderboard)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/deleteleaderboard", tgbot.MatchTypeExact, handler.HandleDeleteLeaderboard)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/newgroup", tgbot.MatchTypePrefix, handler.HandleNewGroup)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/setscore", tgbot.MatchTypePrefix, handler.HandleSetScore)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/update", tgbot.MatchTypeExact, handler.HandleUpdate)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/score", tgbot.MatchTypeExact, handler.HandleScore)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/scores", tgbot.MatchTypeExact, handler.HandleScore)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/show", tgbot.MatchTypeExact, handler.HandleScore)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/debug", tgbot.MatchTypeExact, handler.HandleDebug)

	// Register callback query handler
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "", tgbot.MatchTypePrefix, handler.HandleCallback)

	// Register message handler for pending prompts
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "", tgbot.MatchTypePrefix, handler.HandleMessage)

	log.Info("Command handlers registered")

	// Start bot polling in a goroutine
	go func() {
		log.Info("Starting bot polling")
		b.Start(ctx)
	}()

	log.Info("Bot is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("Shutdown signal received, stopping bot...")
	log.Info("Bot stopped successfully")
}
