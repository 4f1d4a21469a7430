package config_test

import (
	"testing"
	"time"

	"github.com/relata/relata/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"RELATA_ADDR", "RELATA_DB", "RELATA_AUTH_TOKEN", "RELATA_FUNNELS", "RELATA_REDIS_ADDR", "RELATA_STAGE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DBPath != "relata.db" {
		t.Errorf("DBPath = %q, want relata.db", cfg.DBPath)
	}
	if cfg.AuthToken != "" {
		t.Errorf("AuthToken = %q, want empty", cfg.AuthToken)
	}
	if cfg.StageTimeout != 5*time.Second {
		t.Errorf("StageTimeout = %v, want 5s", cfg.StageTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RELATA_ADDR", ":9999")
	t.Setenv("RELATA_DB", "/tmp/test.db")
	t.Setenv("RELATA_AUTH_TOKEN", "secret")
	t.Setenv("RELATA_FUNNELS", "/etc/relata/funnels.yaml")
	t.Setenv("RELATA_REDIS_ADDR", "localhost:6379")
	t.Setenv("RELATA_STAGE_TIMEOUT", "250ms")

	cfg := config.Load()

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want /tmp/test.db", cfg.DBPath)
	}
	if cfg.AuthToken != "secret" {
		t.Errorf("AuthToken = %q, want secret", cfg.AuthToken)
	}
	if cfg.FunnelsPath != "/etc/relata/funnels.yaml" {
		t.Errorf("FunnelsPath = %q", cfg.FunnelsPath)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.StageTimeout != 250*time.Millisecond {
		t.Errorf("StageTimeout = %v, want 250ms", cfg.StageTimeout)
	}
}

func TestStageTimeoutInvalidFallsBack(t *testing.T) {
	t.Setenv("RELATA_STAGE_TIMEOUT", "soon")

	cfg := config.Load()
	if cfg.StageTimeout != 5*time.Second {
		t.Errorf("StageTimeout = %v, want default 5s", cfg.StageTimeout)
	}
}
