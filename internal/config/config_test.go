package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SECRET_KEY", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("port %q, want 9090", cfg.Server.Port)
	}
	if cfg.Auth.Secret != "from-env" {
		t.Fatalf("secret %q, want from-env", cfg.Auth.Secret)
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: \"8081\"\nredis:\n  addr: localhost:6379\ncache:\n  lesson_ttl: 45m\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REDIS_ADDR", "redis:6380")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8081" {
		t.Fatalf("port %q, want 8081", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "redis:6380" {
		t.Fatalf("env override lost, addr %q", cfg.Redis.Addr)
	}
	if got := TTLDuration(cfg.Cache.LessonTTL, time.Hour); got != 45*time.Minute {
		t.Fatalf("lesson ttl %v, want 45m", got)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("empty: got %v", got)
	}
	if got := TTLDuration("bogus", time.Minute); got != time.Minute {
		t.Fatalf("invalid: got %v", got)
	}
	if got := TTLDuration("2h", time.Minute); got != 2*time.Hour {
		t.Fatalf("valid: got %v", got)
	}
}
