package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tinytelemetry/popcorn/internal/model"
	"github.com/tinytelemetry/popcorn/internal/tmdb"
)

// Server provides a JSON API over the same fetch cycle the TUI runs.
type Server struct {
	addr      string
	fetcher   model.MovieFetcher
	logger    zerolog.Logger
	group     singleflight.Group
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

type moviesResponse struct {
	Term    string               `json:"term"`
	Results []model.MovieSummary `json:"results"`
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, fetcher model.MovieFetcher, logger zerolog.Logger) *Server {
	if addr == "" {
		addr = model.DefaultAPIAddr
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:    addr,
		fetcher: fetcher,
		logger:  logger.With().Str("component", "httpserver").Logger(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/movies", s.handleMovies)
	return r
}

// Start listens and serves HTTP requests in the background.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	go func() {
		if err := s.Serve(); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server stopped")
		}
	}()
	return nil
}

// Listen binds the listen address. Addr reports the bound address afterwards.
func (s *Server) Listen() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.addr = listener.Addr().String()
	s.startTime = time.Now()

	s.logger.Info().Str("addr", s.addr).Msg("HTTP API listening")
	return nil
}

// Serve handles requests on the bound listener until Stop. It returns nil
// after a graceful shutdown.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("httpserver: Serve called before Listen")
	}
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) handleMovies(c *gin.Context) {
	term := c.Query("query")

	// Identical concurrent queries share one upstream request, detached from
	// any single client's cancellation.
	v, err, shared := s.group.Do(term, func() (interface{}, error) {
		return s.fetcher.FetchMovies(context.WithoutCancel(c.Request.Context()), term)
	})
	if err != nil {
		event := s.logger.Error()
		if tmdb.IsAPIError(err) {
			event = s.logger.Warn()
		}
		event.Err(err).Str("term", term).Msg("Movie request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": tmdb.FailureMessage(err)})
		return
	}

	movies, _ := v.([]model.MovieSummary)
	if movies == nil {
		movies = []model.MovieSummary{}
	}
	s.logger.Debug().
		Str("term", term).
		Int("count", len(movies)).
		Bool("shared", shared).
		Msg("Served movies")

	c.JSON(http.StatusOK, moviesResponse{Term: term, Results: movies})
}
