package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/popcorn/internal/tmdb"
	"github.com/tinytelemetry/popcorn/internal/tui"
)

func runTUI(cfg appConfig) error {
	logOut, closeLog := openLogFile(cfg.LogFile)
	defer closeLog()
	logger := newLogger(cfg, logOut)

	if home, err := os.UserHomeDir(); err == nil {
		if err := tui.InitializeSkin(cfg.Skin, configDir(home)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load skin '%s': %v (using default)\n", cfg.Skin, err)
			logger.Warn().Err(err).Str("skin", cfg.Skin).Msg("Falling back to default skin")
		}
	}

	client := tmdb.NewClient(tmdb.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
	}, logger, tmdb.WithTimeout(cfg.RequestTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	search := tui.NewSearchPage(client, tui.Options{
		Context:      ctx,
		Debounce:     cfg.Debounce,
		ImageBaseURL: cfg.ImageBaseURL,
		Logger:       logger,
	})
	ratings := tui.NewRatingsPage(search.Movies)
	app := tui.NewApp(search, ratings)

	logger.Info().
		Str("base_url", cfg.BaseURL).
		Dur("debounce", cfg.Debounce).
		Bool("api_key_set", cfg.APIKey != "").
		Msg("Starting popcorn")

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
