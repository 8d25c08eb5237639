package server

import (
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"CHARKEEP_HTTP_ADDR", "CHARKEEP_DB_PATH", "CHARKEEP_SESSION_KEY", "CHARKEEP_SESSION_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := ParseConfig()
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "charkeep.db" {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Fatalf("unexpected session ttl %v", cfg.SessionTTL)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("CHARKEEP_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("CHARKEEP_DB_PATH", "/var/lib/charkeep/data.db")
	t.Setenv("CHARKEEP_SESSION_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("CHARKEEP_SESSION_TTL", "1h30m")

	cfg, err := ParseConfig()
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:9000" || cfg.DBPath != "/var/lib/charkeep/data.db" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Fatalf("unexpected session ttl %v", cfg.SessionTTL)
	}
}

func TestParseConfigRejectsMalformedTTL(t *testing.T) {
	t.Setenv("CHARKEEP_SESSION_TTL", "not-a-duration")

	if _, err := ParseConfig(); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}
