package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/watchparty/signaling/internal/adapters/http"
	signalws "github.com/watchparty/signaling/internal/adapters/signal"
	"github.com/watchparty/signaling/internal/app"
	"github.com/watchparty/signaling/internal/config"
	"github.com/watchparty/signaling/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
	}

	rooms := core.NewRegistry(cfg.RoomCodeLen, cfg.RoomCreateRetries)
	sessions := app.NewSessions()
	policy := app.DropPolicy{}

	lifecycle := &app.Lifecycle{Rooms: rooms, Sessions: sessions, Policy: policy}
	signaler := &app.Router{Rooms: rooms, Sessions: sessions, Policy: policy}
	ctl := signalws.NewSignalWSController(cfg, lifecycle, signaler, sessions)

	r := router.SetupRouter(ctx, cfg, rooms, ctl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("watchparty signaling server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
