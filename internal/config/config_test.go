package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.APISportsBaseURL != "https://v1.american-football.api-sports.io" {
		t.Fatalf("unexpected APISportsBaseURL: %q", cfg.APISportsBaseURL)
	}
	if cfg.LiveCacheTTL != 60*time.Second {
		t.Fatalf("unexpected LiveCacheTTL: %s", cfg.LiveCacheTTL)
	}
	if cfg.ReferenceCacheTTL != 300*time.Second {
		t.Fatalf("unexpected ReferenceCacheTTL: %s", cfg.ReferenceCacheTTL)
	}
	if cfg.ScheduleWindow != 168*time.Hour {
		t.Fatalf("unexpected ScheduleWindow: %s", cfg.ScheduleWindow)
	}
	if cfg.LeagueIDByName["nfl"] != 1 || cfg.LeagueIDByName["ncaa"] != 2 {
		t.Fatalf("unexpected LeagueIDByName: %v", cfg.LeagueIDByName)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_ProdRequiresAPIKey(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("APISPORTS_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without APISPORTS_API_KEY")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_LeagueIDMapParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEAGUE_ID_MAP", "NFL:1, cfl:9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LeagueIDByName["nfl"] != 1 || cfg.LeagueIDByName["cfl"] != 9 {
		t.Fatalf("unexpected LeagueIDByName: %v", cfg.LeagueIDByName)
	}
}

func TestLoad_LeagueIDMapRejectsMalformedItems(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEAGUE_ID_MAP", "nfl=1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for malformed LEAGUE_ID_MAP")
	}
}

func TestLoad_RejectsNonPositiveDurations(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LIVE_CACHE_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for LIVE_CACHE_TTL=0s")
	}
}
