package config

import (
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so ambient environment cannot
// leak into the test.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "HTTP_TIMEOUT", "SESSION_TTL", "SESSION_PRUNE_INTERVAL",
		"SESSION_MAX", "GREENSCORE_SEED", "GREENSCORE_SAMPLES",
		"OPENWEATHER_API_KEY", "WEATHERAPI_API_KEY", "GEOCODER_API_KEY",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("expected default HTTP timeout 10s, got %v", cfg.HTTPTimeout)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected default session TTL 1h, got %v", cfg.SessionTTL)
	}
	if cfg.SessionPruneInterval != 10*time.Minute {
		t.Errorf("expected default prune interval 10m, got %v", cfg.SessionPruneInterval)
	}
	if cfg.SessionMax != 1000 {
		t.Errorf("expected default session cap 1000, got %d", cfg.SessionMax)
	}
	if cfg.GreenScoreSeed != 42 {
		t.Errorf("expected default seed 42, got %d", cfg.GreenScoreSeed)
	}
	if cfg.GreenScoreSamples != 120 {
		t.Errorf("expected default sample count 120, got %d", cfg.GreenScoreSamples)
	}
	if cfg.OpenWeatherAPIKey != "" || cfg.WeatherAPIKey != "" || cfg.GeocoderAPIKey != "" {
		t.Error("expected provider keys to default to empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_PRUNE_INTERVAL", "1m")
	t.Setenv("SESSION_MAX", "25")
	t.Setenv("GREENSCORE_SEED", "7")
	t.Setenv("GREENSCORE_SAMPLES", "200")
	t.Setenv("OPENWEATHER_API_KEY", "ow-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("expected HTTP timeout 3s, got %v", cfg.HTTPTimeout)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected session TTL 30m, got %v", cfg.SessionTTL)
	}
	if cfg.SessionPruneInterval != time.Minute {
		t.Errorf("expected prune interval 1m, got %v", cfg.SessionPruneInterval)
	}
	if cfg.SessionMax != 25 {
		t.Errorf("expected session cap 25, got %d", cfg.SessionMax)
	}
	if cfg.GreenScoreSeed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.GreenScoreSeed)
	}
	if cfg.GreenScoreSamples != 200 {
		t.Errorf("expected sample count 200, got %d", cfg.GreenScoreSamples)
	}
	if cfg.OpenWeatherAPIKey != "ow-key" {
		t.Errorf("expected openweather key to pass through, got %q", cfg.OpenWeatherAPIKey)
	}
}

func TestLoadRejectsMalformedDurations(t *testing.T) {
	cases := []string{"HTTP_TIMEOUT", "SESSION_TTL", "SESSION_PRUNE_INTERVAL"}
	for _, key := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "soon")

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for malformed %s", key)
			}
		})
	}
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_MAX", "many")
	t.Setenv("GREENSCORE_SAMPLES", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SessionMax != 1000 {
		t.Errorf("expected malformed SESSION_MAX to fall back to 1000, got %d", cfg.SessionMax)
	}
	if cfg.GreenScoreSamples != 120 {
		t.Errorf("expected malformed GREENSCORE_SAMPLES to fall back to 120, got %d", cfg.GreenScoreSamples)
	}
}
