package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fortuna/gamecast/internal/api/rest"
	ws "github.com/fortuna/gamecast/internal/api/websocket"
	"github.com/fortuna/gamecast/internal/ingest/bdl"
	"github.com/fortuna/gamecast/internal/projection"
	"github.com/fortuna/gamecast/internal/publisher"
	"github.com/fortuna/gamecast/internal/store"
)

const (
	serviceName    = "gamecast"
	serviceVersion = "0.1.0"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	log.Printf("Starting %s v%s - Live NBA Projection Service", serviceName, serviceVersion)

	config := loadConfig()

	// Baseline priors: loaded once before any session starts, immutable
	// afterwards. Postgres when configured, built-in seed otherwise.
	baselines := loadBaselines(config)
	log.Printf("✓ Baseline priors loaded (%d players)", len(baselines))

	if config.BDLAPIKey == "" {
		log.Println("⚠️  No BALLDONTLIE_API_KEY configured - serving mock box scores")
	} else {
		log.Println("✓ balldontlie API key configured - serving live box scores")
	}

	// Optional Redis fan-out of each poll's dashboard payload
	var dashboardPublisher ws.DashboardPublisher
	if config.RedisURL != "" {
		redisPublisher, err := publisher.NewRedisPublisher(config.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis publisher unavailable: %v (continuing without fan-out)", err)
		} else {
			defer redisPublisher.Close()
			dashboardPublisher = redisPublisher
			log.Println("✓ Redis publisher initialized")
		}
	}

	// Initialize REST API server
	restServer := rest.NewServer(config.RESTPort, baselines)
	go func() {
		log.Printf("Starting REST API server on port %s", config.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", config.RESTPort)

	// Initialize WebSocket server; every connection gets its own adapter
	newFetcher := func() ws.StatsFetcher {
		return bdl.New(config.BDLAPIBase, config.BDLAPIKey)
	}
	wsServer := ws.NewServer(baselines, config.PollInterval, dashboardPublisher, newFetcher)
	go func() {
		log.Printf("Starting WebSocket server on port %s", config.WSPort)
		if err := wsServer.Start(config.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ WebSocket server listening on :%s", config.WSPort)
	log.Printf("✓ Gamecast v%s started successfully", serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", config.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/live-gamecast", config.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down Gamecast gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Gamecast stopped")
}

type Config struct {
	BDLAPIKey    string
	BDLAPIBase   string
	PollInterval time.Duration
	RESTPort     string
	WSPort       string
	GamecastDSN  string
	RedisURL     string
}

func loadConfig() Config {
	return Config{
		BDLAPIKey:    os.Getenv("BALLDONTLIE_API_KEY"),
		BDLAPIBase:   getEnv("BDL_API_BASE", bdl.BaseURL),
		PollInterval: getEnvSeconds("LIVE_POLL_INTERVAL_SECONDS", 3),
		RESTPort:     getEnv("REST_PORT", "8080"),
		WSPort:       getEnv("WS_PORT", "8081"),
		GamecastDSN:  os.Getenv("GAMECAST_DSN"),
		RedisURL:     os.Getenv("REDIS_URL"),
	}
}

// loadBaselines builds the process-wide priors table. A broken priors
// database degrades to the seed table rather than refusing to start.
func loadBaselines(config Config) projection.Table {
	if config.GamecastDSN == "" {
		return projection.SeedBaselines()
	}

	baselineStore, err := store.NewBaselineStore(config.GamecastDSN)
	if err != nil {
		log.Printf("⚠️  Baseline store unavailable: %v (using seed priors)", err)
		return projection.SeedBaselines()
	}
	defer baselineStore.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := baselineStore.Migrate(ctx); err != nil {
		log.Printf("⚠️  Baseline migration failed: %v (using seed priors)", err)
		return projection.SeedBaselines()
	}
	if err := baselineStore.Seed(ctx); err != nil {
		log.Printf("⚠️  Seed data warning: %v (continuing anyway)", err)
	}

	baselines, err := baselineStore.LoadBaselines(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load baselines: %v (using seed priors)", err)
		return projection.SeedBaselines()
	}

	log.Println("✓ Baseline priors loaded from database")
	return baselines
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvSeconds parses a fractional seconds value, e.g. "0.5".
func getEnvSeconds(key string, defaultSeconds float64) time.Duration {
	seconds := defaultSeconds
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || parsed <= 0 {
			log.Printf("⚠️  Invalid %s=%q (using %vs)", key, value, defaultSeconds)
		} else {
			seconds = parsed
		}
	}
	return time.Duration(seconds * float64(time.Second))
}
