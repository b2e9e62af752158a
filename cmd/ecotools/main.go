package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/greenlab/ecotools/internal/api/http"
	"github.com/greenlab/ecotools/internal/conditions"
	"github.com/greenlab/ecotools/internal/conditions/providers"
	"github.com/greenlab/ecotools/internal/config"
	"github.com/greenlab/ecotools/internal/eco"
	"github.com/greenlab/ecotools/internal/greenscore"
	"github.com/greenlab/ecotools/internal/quiz"
	"github.com/greenlab/ecotools/internal/scheduler"
	"github.com/greenlab/ecotools/internal/store"
	"github.com/greenlab/ecotools/internal/waste"
	"github.com/greenlab/ecotools/internal/water"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Engines built from static tables; a malformed table aborts startup.
	ecoClassifier, err := eco.NewClassifier()
	if err != nil {
		log.Fatalf("failed to build eco classifier: %v", err)
	}
	waterScorer, err := water.NewScorer(water.DefaultTable())
	if err != nil {
		log.Fatalf("failed to build water scorer: %v", err)
	}
	wasteClassifier, err := waste.NewClassifier()
	if err != nil {
		log.Fatalf("failed to build waste classifier: %v", err)
	}
	quizLibrary, err := quiz.LoadLibrary()
	if err != nil {
		log.Fatalf("failed to load quiz banks: %v", err)
	}

	// Fit the green score model once, before serving.
	model, err := greenscore.Train(greenscore.TrainConfig{
		Seed:    cfg.GreenScoreSeed,
		Samples: cfg.GreenScoreSamples,
	})
	if err != nil {
		log.Fatalf("failed to train green score model: %v", err)
	}
	log.Printf("INFO: green score model fitted: samples=%d seed=%d r2=%.3f",
		model.Samples(), model.Seed(), model.R2())

	// Quiz session store, pruned periodically.
	sessions := store.NewSessionStore(cfg.SessionTTL, cfg.SessionMax)

	sched := scheduler.New(sessions, cfg.SessionPruneInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Conditions providers with resilience (backoff + circuit breaker).
	// Open-Meteo needs no API key; the others register only when configured.
	provs := []conditions.Provider{
		providers.NewOpenMeteoProvider(httpClient, cfg.GeocoderAPIKey),
	}
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
	}
	condService := conditions.NewService(provs, cfg.HTTPTimeout)
	log.Printf("INFO: conditions providers: %v", condService.Providers())

	app := httpapi.NewApp(&httpapi.API{
		Eco:        ecoClassifier,
		Water:      waterScorer,
		Waste:      wasteClassifier,
		Quiz:       quizLibrary,
		Sessions:   sessions,
		GreenScore: model,
		Conditions: condService,
	})

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
