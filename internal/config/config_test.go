package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Pin the keys that matter to unset; empty values fall back to defaults.
	for _, k := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "DB_PATH",
		"READ_TIMEOUT", "IDLE_TIMEOUT", "RATE_RPS", "RATE_BURST",
		"OTEL_ENABLED", "SWAGGER_ENABLED",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode = %q", cfg.GinMode)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.DBPath != "storefront.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ReadTimeout != 15*time.Second || cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("timeouts: %+v", cfg)
	}
	if cfg.RateRPS != 20.0 || cfg.RateBurst != 40 {
		t.Fatalf("rate limits: rps=%v burst=%d", cfg.RateRPS, cfg.RateBurst)
	}
	if cfg.OTEL.Enabled {
		t.Fatal("OTEL must default to disabled")
	}
	if cfg.SwaggerEnabled {
		t.Fatal("Swagger must default to disabled")
	}
}

func TestLoad_EnvOverridesAndNormalization(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "bogus")      // normalizes to release
	t.Setenv("LOG_LEVEL", "WARNING")   // normalizes to warn
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_RPS", "3.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode = %q", cfg.GinMode)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Fatalf("ReadTimeout = %v", cfg.ReadTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORS origins: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.RateRPS != 3.5 {
		t.Fatalf("RateRPS = %v", cfg.RateRPS)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"negative timeout", "READ_TIMEOUT", "-1s"},
		{"zero burst", "RATE_BURST", "0"},
		{"sampler out of range", "OTEL_TRACES_SAMPLER_ARG", "1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustLoad()
}

func TestHelpers(t *testing.T) {
	t.Setenv("X_STR", "")
	if got := getenv("X_STR", "def"); got != "def" {
		t.Fatalf("getenv empty = %q", got)
	}
	t.Setenv("X_BOOL", "yes")
	if !getbool("X_BOOL", false) {
		t.Fatal("getbool yes")
	}
	t.Setenv("X_BOOL", "off")
	if getbool("X_BOOL", true) {
		t.Fatal("getbool off")
	}
	t.Setenv("X_INT", "not-a-number")
	if got := getint("X_INT", 7); got != 7 {
		t.Fatalf("getint fallback = %d", got)
	}
	if got := splitCSV(" a, ,b ,"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("splitCSV = %v", got)
	}
}
