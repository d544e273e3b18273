package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/TomKxxx/sreality-tracker/internal/bot"
	"github.com/TomKxxx/sreality-tracker/internal/config"
	"github.com/TomKxxx/sreality-tracker/internal/fetcher"
	"github.com/TomKxxx/sreality-tracker/internal/renderer"
	"github.com/TomKxxx/sreality-tracker/internal/repository/sqlite"
	"github.com/TomKxxx/sreality-tracker/internal/scheduler"
	"github.com/TomKxxx/sreality-tracker/internal/services/checker"
	"github.com/TomKxxx/sreality-tracker/internal/storage"
	"github.com/TomKxxx/sreality-tracker/internal/uploader"

	_ "github.com/mattn/go-sqlite3"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	store, err := storage.NewFileStore(logger, cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to init state store: %v", err)
	}

	images, err := renderer.NewImageDownloader(logger, &http.Client{Timeout: cfg.HTTPTimeout}, cfg.ImagesDir)
	if err != nil {
		log.Fatalf("Failed to init image downloader: %v", err)
	}

	reports, err := renderer.New(logger, cfg.ReportDir, images)
	if err != nil {
		log.Fatalf("Failed to init renderer: %v", err)
	}

	client := fetcher.NewClient(logger, cfg.APIURL, cfg.Criteria, cfg.PageDelay, cfg.HTTPTimeout)
	cycleChecker := checker.NewChecker(logger, client, store, reports)

	// The Telegram bot and the git uploader are both optional collaborators.
	var notifier scheduler.Notifier
	var alertBot *bot.Bot
	if cfg.Tg.Token != "" {
		repo, repoErr := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
		if repoErr != nil {
			log.Fatalf("Failed to init subscription repository: %v", repoErr)
		}
		defer repo.Close()

		alertBot, err = bot.NewBot(logger, repo, cfg.Tg.Token, cfg.Tg.Timeout)
		if err != nil {
			log.Fatalf("Failed to init bot: %v", err)
		}

		// Start the bot in a goroutine to allow main to run the scheduler.
		go alertBot.Start()
		notifier = alertBot
	}

	var up scheduler.Uploader
	if cfg.GitRepoPath != "" {
		up = uploader.NewGitUploader(logger, cfg.GitRepoPath)
	}

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.",
		"interval", cfg.Interval.String(), "cron", cfg.Cron)

	sched := scheduler.New(logger, cycleChecker, notifier, up, cfg.Interval, cfg.Cooldown, cfg.Cron)
	if err = sched.Run(ctx); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	if alertBot != nil {
		alertBot.Stop()
	}

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"Unknown env value, falling back to minimal logging",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
