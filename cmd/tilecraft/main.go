// Package main is the entry point for Tilecraft.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/samdwyer/tilecraft/internal/game"
	"github.com/samdwyer/tilecraft/internal/telemetry"
	"github.com/samdwyer/tilecraft/internal/tuning"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_TILECRAFT_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	tuningPath := flag.String("tuning", os.Getenv("TILECRAFT_TUNING"), "path to a tuning YAML file")
	seed := flag.Int64("seed", envInt64("TILECRAFT_SEED"), "terrain seed (0 picks one from the clock)")
	flag.Parse()

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfg, err := loadConfig(*tuningPath, *seed)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		g.Close()
		log.Fatalf("Game error: %v", err)
	}
}

// loadConfig builds the game config from an optional tuning file and seed.
func loadConfig(path string, seed int64) (game.Config, error) {
	cfg := game.DefaultConfig()
	cfg.Seed = seed
	if path == "" {
		return cfg, nil
	}
	t, err := tuning.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.Tuning = t
	return cfg, nil
}

// envInt64 reads an integer environment variable, returning 0 if unset or malformed.
func envInt64(key string) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_TILECRAFT_API_KEY")
	dataset := os.Getenv("HONEYCOMB_TILECRAFT_DATASET")
	if dataset == "" {
		dataset = "tilecraft" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
