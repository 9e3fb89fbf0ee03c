package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.SeedClientCount != 500 {
		t.Fatalf("SeedClientCount = %d, want 500", cfg.SeedClientCount)
	}
	if cfg.SeedTransactionCount != 1000 {
		t.Fatalf("SeedTransactionCount = %d, want 1000", cfg.SeedTransactionCount)
	}
	if cfg.SeedRandomSeed != 1 {
		t.Fatalf("SeedRandomSeed = %d, want 1", cfg.SeedRandomSeed)
	}
	if cfg.SettlementFailurePercent != 10 {
		t.Fatalf("SettlementFailurePercent = %d, want 10", cfg.SettlementFailurePercent)
	}
	if cfg.ExpirySweepSchedule != "*/5 * * * *" {
		t.Fatalf("ExpirySweepSchedule = %q", cfg.ExpirySweepSchedule)
	}
	if cfg.SettlementSweepSchedule != "*/10 * * * *" {
		t.Fatalf("SettlementSweepSchedule = %q", cfg.SettlementSweepSchedule)
	}

	if cfg.SimulatedLatency() != 300*time.Millisecond {
		t.Fatalf("SimulatedLatency = %v, want 300ms", cfg.SimulatedLatency())
	}
	if cfg.SettlementDelay() != 3*time.Second {
		t.Fatalf("SettlementDelay = %v, want 3s", cfg.SettlementDelay())
	}
	if cfg.NotificationInterval() != 5*time.Second {
		t.Fatalf("NotificationInterval = %v, want 5s", cfg.NotificationInterval())
	}
	if cfg.TransactionExpiry() != 30*time.Minute {
		t.Fatalf("TransactionExpiry = %v, want 30m", cfg.TransactionExpiry())
	}
	if cfg.StuckSettlementAge() != 15*time.Minute {
		t.Fatalf("StuckSettlementAge = %v, want 15m", cfg.StuckSettlementAge())
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SEED_CLIENT_COUNT", "25")
	t.Setenv("SEED_RANDOM_SEED", "42")
	t.Setenv("SIMULATED_LATENCY_MS", "0")
	t.Setenv("SETTLEMENT_FAILURE_PERCENT", "100")
	t.Setenv("EXPIRY_SWEEP_SCHEDULE", "* * * * *")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.SeedClientCount != 25 {
		t.Fatalf("SeedClientCount = %d, want 25", cfg.SeedClientCount)
	}
	if cfg.SeedRandomSeed != 42 {
		t.Fatalf("SeedRandomSeed = %d, want 42", cfg.SeedRandomSeed)
	}
	if cfg.SimulatedLatency() != 0 {
		t.Fatalf("SimulatedLatency = %v, want 0", cfg.SimulatedLatency())
	}
	if cfg.SettlementFailurePercent != 100 {
		t.Fatalf("SettlementFailurePercent = %d, want 100", cfg.SettlementFailurePercent)
	}
	if cfg.ExpirySweepSchedule != "* * * * *" {
		t.Fatalf("ExpirySweepSchedule = %q", cfg.ExpirySweepSchedule)
	}
}

func TestLoadConfigSanitizesOutOfRangeValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SEED_CLIENT_COUNT", "-10")
	t.Setenv("SIMULATED_LATENCY_MS", "-5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.SeedClientCount != 500 {
		t.Fatalf("SeedClientCount = %d, want fallback 500", cfg.SeedClientCount)
	}
	if cfg.SimulatedLatency() != 0 {
		t.Fatalf("SimulatedLatency = %v, want clamped 0", cfg.SimulatedLatency())
	}
}

func TestLoadConfigRejectsBadFailurePercent(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SETTLEMENT_FAILURE_PERCENT", "150")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a failure percent above 100")
	}
}
