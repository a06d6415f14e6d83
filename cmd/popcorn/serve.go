package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/popcorn/internal/httpserver"
	"github.com/tinytelemetry/popcorn/internal/tmdb"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the movie listing as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.APIAddr = addr
			}
			return runServer(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default 127.0.0.1:3000)")
	return cmd
}

// runServer serves the HTTP API until SIGINT or SIGTERM.
func runServer(parent context.Context, cfg appConfig) error {
	if parent == nil {
		parent = context.Background()
	}

	logOut, closeLog := openLogFile(cfg.LogFile)
	defer closeLog()
	logger := newLogger(cfg, zerolog.MultiLevelWriter(logOut, os.Stderr))

	client := tmdb.NewClient(tmdb.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
	}, logger, tmdb.WithTimeout(cfg.RequestTimeout))

	apiServer := httpserver.NewServer(cfg.APIAddr, client, logger)
	if err := apiServer.Listen(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printStartupBanner(apiServer.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(apiServer.Serve)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down")
		return apiServer.Stop()
	})

	return g.Wait()
}

func printStartupBanner(addr string) {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AB8BFF"))
	fmt.Println(title.Render("Popcorn API"))
	fmt.Printf("  Listening:  http://%s\n", addr)
	fmt.Printf("  Endpoints:  /api/health, /api/movies?query=\n")
	fmt.Println("  Press Ctrl+C to stop.")
}
