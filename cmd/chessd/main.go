package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lokesh185/rusty-chess/internal/config"
	"github.com/lokesh185/rusty-chess/internal/store"
	"github.com/lokesh185/rusty-chess/internal/web"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Parse command line flags
	var showHelp bool
	var configPath string
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&showHelp, "h", false, "Show help information")
	flag.StringVar(&configPath, "config", "", "Path to a config file")
	flag.Parse()

	if showHelp {
		showHelpMessage()
		return
	}

	// Setup logging
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load config
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.Development.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.Development.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	if cfg.Development.Debug {
		level = zerolog.DebugLevel
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// run serves the API until ctx is done or the listener fails. The store is
// closed before run returns in either case.
func run(ctx context.Context, cfg *config.Config) (err error) {
	// Open storage
	var st *store.Store
	if cfg.Storage.InMemory {
		st, err = store.OpenInMemory()
	} else {
		st, err = store.Open(cfg.Storage.Path)
	}
	if err != nil {
		return fmt.Errorf("opening game store at %s: %w", cfg.Storage.Path, err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("Failed to close game store")
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Spectator hub
	hub := web.NewHub()
	go hub.Run(ctx)

	// Create service
	service := web.NewService(cfg, st, hub)

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      web.NewRouter(service),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("time_control", cfg.Game.TimeControl).
			Bool("in_memory", cfg.Storage.InMemory).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal or a failed listener
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server...")
	case err := <-serveErr:
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}

func showHelpMessage() {
	fmt.Println(`chessd

DESCRIPTION:
    Chess rules service. Validates and plays moves, detects check,
    checkmate and draws, runs per-game clocks and keeps every game
    in an embedded database so games survive a restart. Spectators
    can follow a game over a websocket.

USAGE:
    chessd [OPTIONS]

OPTIONS:
    -h, --help       Show this help message
    -config PATH     Read configuration from PATH instead of config.yaml

CONFIGURATION:
    chessd reads config.yaml from the current directory or ./config.
    Every key can be overridden with a CHESSD_ environment variable,
    e.g. CHESSD_SERVER_PORT=9000.

    Example config.yaml:
        server:
          host: localhost
          port: 8080

        game:
          time_control: blitz     # bullet, blitz, rapid or classical
          start_fen: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

        storage:
          path: ./data
          in_memory: false

        development:
          debug: false
          log_level: info

API ENDPOINTS:
    GET    /api/health               - Service health check
    GET    /api/games                - List stored games
    POST   /api/games                - Create a game (optional fen, timeControl)
    GET    /api/games/{id}           - Current game state
    DELETE /api/games/{id}           - Delete a game
    GET    /api/games/{id}/moves     - Legal moves (optional ?from=e2)
    POST   /api/games/{id}/moves     - Play a move {"from","to","promotion"}
    GET    /api/games/{id}/clock     - Remaining time for both sides
    GET    /api/games/{id}/ws        - Spectator websocket
    GET    /api/ws?gameId={id}       - Spectator websocket

EXAMPLES:
    # Start with default configuration
    chessd

    # Create a game and play e2e4
    curl -X POST http://localhost:8080/api/games -d '{"timeControl": "rapid"}'
    curl -X POST http://localhost:8080/api/games/{id}/moves \
      -H "Content-Type: application/json" \
      -d '{"from": "e2", "to": "e4"}'`)
}
