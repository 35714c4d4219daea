package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openfooty/league-browser/external/sportsdb"
	"github.com/openfooty/league-browser/internal/config"
	"github.com/openfooty/league-browser/internal/i18n"
	"github.com/openfooty/league-browser/internal/interfaces/tui"
	"github.com/openfooty/league-browser/internal/observability"
	"github.com/openfooty/league-browser/internal/platform/logging"
	"github.com/openfooty/league-browser/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logger, err := logging.NewJSONFile(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logging.SetDefault(logger)

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	client := sportsdb.NewClient(sportsdb.ClientConfig{
		BaseURL:        cfg.SportsDBBaseURL,
		APIKey:         cfg.SportsDBAPIKey,
		Timeout:        cfg.SportsDBTimeout,
		MaxRetries:     cfg.SportsDBMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.CircuitBreakerConfig(),
	})

	translator := i18n.NewStaticTranslator(cfg.Language)

	service, err := usecase.NewSearchService(client, client, translator, logger, usecase.SearchServiceConfig{
		SportTag:     cfg.SportTag,
		BadgeWorkers: cfg.BadgeWorkers,
	})
	if err != nil {
		return fmt.Errorf("build search service: %w", err)
	}
	defer service.Close()

	notifier := tui.NewNotifier()
	service.AttachView(notifier)
	defer service.DetachView()

	model := tui.NewModel(tui.Dependencies{
		Service:    service,
		Images:     client,
		Translator: translator,
		Logger:     logger,
		Notifier:   notifier,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	notifier.Bind(program.Send)

	logger.Info("browser starting",
		"env", cfg.AppEnv,
		"sport", cfg.SportTag,
		"language", cfg.Language,
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}

	logger.Info("browser stopped")
	return nil
}
