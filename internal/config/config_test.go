package config

import (
	"testing"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Errorf("AppEnv = %q, want dev", cfg.AppEnv)
	}
	if !cfg.UseMemoryStore {
		t.Error("dev should default to the memory store")
	}
	if cfg.KeyCooldown != time.Hour {
		t.Errorf("KeyCooldown = %v, want 1h", cfg.KeyCooldown)
	}
	if cfg.ScoreDebounce != 2*time.Minute {
		t.Errorf("ScoreDebounce = %v, want 2m", cfg.ScoreDebounce)
	}
	if cfg.XIDebounce != 5*time.Minute || cfg.XILeadWindow != 20*time.Minute {
		t.Errorf("xi cadence = %v/%v, want 5m/20m", cfg.XIDebounce, cfg.XILeadWindow)
	}
	if cfg.Workers != 6 {
		t.Errorf("Workers = %d, want 6", cfg.Workers)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadProviderKeysCSV(t *testing.T) {
	t.Setenv("CRICKETDATA_API_KEYS", "key-1, key-2 ,,key-3")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"key-1", "key-2", "key-3"}
	if len(cfg.CricketdataKeys) != len(want) {
		t.Fatalf("keys = %v, want %v", cfg.CricketdataKeys, want)
	}
	for i := range want {
		if cfg.CricketdataKeys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, cfg.CricketdataKeys[i], want[i])
		}
	}
}

func TestLoadRequiresDBURLForPostgres(t *testing.T) {
	t.Setenv("USE_MEMORY_STORE", "false")
	t.Setenv("DB_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without DB_URL when the memory store is off")
	}
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject unknown APP_ENV values")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SCORE_DEBOUNCE", "two minutes")
	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject unparsable durations")
	}
}
