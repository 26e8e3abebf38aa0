package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signup_pulse/internal/api"
	"signup_pulse/internal/sheets"
	"signup_pulse/internal/summary"

	"github.com/rs/zerolog/log"
)

func main() {
	log.Debug().Msg("Starting application")
	setupEnvironment()

	ctx := context.Background()

	spreadsheetID := getRequiredEnv("SPREADSHEET_ID")
	credsFile := getEnvWithDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	port := getEnvWithDefault("PORT", "8080")
	ttl := getDurationEnv("SUMMARY_TTL", summary.DefaultTTL)
	staticDir := getEnvWithDefault("STATIC_DIR", "./static")

	sheetsClient, err := sheets.NewClient(ctx, credsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets client")
	}

	source := sheets.NewSource(sheetsClient, spreadsheetID)
	summaries := summary.NewService(source, ttl)
	handlers := api.NewHandlers(summaries)
	server := api.NewServer(port, api.NewRouter(handlers, staticDir))

	log.Info().
		Str("port", port).
		Dur("ttl", ttl).
		Msg("Signup summary service configured")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}
