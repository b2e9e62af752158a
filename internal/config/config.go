package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/greenlab/ecotools/internal/greenscore"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds each outbound call to a conditions provider.
	HTTPTimeout time.Duration

	// Quiz session retention.
	SessionTTL           time.Duration
	SessionPruneInterval time.Duration
	SessionMax           int // max live sessions (0 = unlimited)

	// Green score model training.
	GreenScoreSeed    int64
	GreenScoreSamples int

	// Provider credentials. Keyed providers are skipped when unset.
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GeocoderAPIKey    string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	timeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	ttl, err := getenvDuration("SESSION_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = ttl

	prune, err := getenvDuration("SESSION_PRUNE_INTERVAL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.SessionPruneInterval = prune

	cfg.SessionMax = getenvInt("SESSION_MAX", 1000)

	cfg.GreenScoreSeed = getenvInt64("GREENSCORE_SEED", greenscore.DefaultSeed)
	cfg.GreenScoreSamples = getenvInt("GREENSCORE_SAMPLES", greenscore.DefaultSamples)

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
