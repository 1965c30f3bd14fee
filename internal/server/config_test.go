package server

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Tick != time.Second {
		t.Errorf("Tick = %v, want 1s", cfg.Tick)
	}
	if cfg.DaysPerTick != 1 {
		t.Errorf("DaysPerTick = %v, want 1", cfg.DaysPerTick)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BSTAR_ADDR", ":9999")
	t.Setenv("BSTAR_TICK", "250ms")
	t.Setenv("BSTAR_DAYS_PER_TICK", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.Tick != 250*time.Millisecond || cfg.DaysPerTick != 5 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("BSTAR_TICK", "-1s")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("negative tick accepted")
	}
}
