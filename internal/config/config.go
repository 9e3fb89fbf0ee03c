/**
 * @description
 * This package handles configuration management for the console-engine. It
 * uses the Viper library to read settings from environment variables,
 * providing defaults for every simulation knob so the engine boots with no
 * configuration at all.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the console-engine.
type Config struct {
	SeedClientCount          int    `mapstructure:"SEED_CLIENT_COUNT"`
	SeedTransactionCount     int    `mapstructure:"SEED_TRANSACTION_COUNT"`
	SeedRandomSeed           int64  `mapstructure:"SEED_RANDOM_SEED"`
	SimulatedLatencyMS       int    `mapstructure:"SIMULATED_LATENCY_MS"`
	SettlementDelayMS        int    `mapstructure:"SETTLEMENT_DELAY_MS"`
	SettlementFailurePercent int    `mapstructure:"SETTLEMENT_FAILURE_PERCENT"`
	NotificationIntervalMS   int    `mapstructure:"NOTIFICATION_INTERVAL_MS"`
	TransactionExpiryMinutes int    `mapstructure:"TRANSACTION_EXPIRY_MINUTES"`
	StuckSettlementMinutes   int    `mapstructure:"STUCK_SETTLEMENT_MINUTES"`
	ExpirySweepSchedule      string `mapstructure:"EXPIRY_SWEEP_SCHEDULE"`
	SettlementSweepSchedule  string `mapstructure:"SETTLEMENT_SWEEP_SCHEDULE"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	viper.SetDefault("SEED_CLIENT_COUNT", 500)
	viper.SetDefault("SEED_TRANSACTION_COUNT", 1000)
	viper.SetDefault("SEED_RANDOM_SEED", 1)
	viper.SetDefault("SIMULATED_LATENCY_MS", 300)
	viper.SetDefault("SETTLEMENT_DELAY_MS", 3000)
	viper.SetDefault("SETTLEMENT_FAILURE_PERCENT", 10)
	viper.SetDefault("NOTIFICATION_INTERVAL_MS", 5000)
	viper.SetDefault("TRANSACTION_EXPIRY_MINUTES", 30)
	viper.SetDefault("STUCK_SETTLEMENT_MINUTES", 15)
	viper.SetDefault("EXPIRY_SWEEP_SCHEDULE", "*/5 * * * *")      // Every 5 minutes.
	viper.SetDefault("SETTLEMENT_SWEEP_SCHEDULE", "*/10 * * * *") // Every 10 minutes.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SEED_CLIENT_COUNT")
	_ = viper.BindEnv("SEED_TRANSACTION_COUNT")
	_ = viper.BindEnv("SEED_RANDOM_SEED")
	_ = viper.BindEnv("SIMULATED_LATENCY_MS")
	_ = viper.BindEnv("SETTLEMENT_DELAY_MS")
	_ = viper.BindEnv("SETTLEMENT_FAILURE_PERCENT")
	_ = viper.BindEnv("NOTIFICATION_INTERVAL_MS")
	_ = viper.BindEnv("TRANSACTION_EXPIRY_MINUTES")
	_ = viper.BindEnv("STUCK_SETTLEMENT_MINUTES")
	_ = viper.BindEnv("EXPIRY_SWEEP_SCHEDULE")
	_ = viper.BindEnv("SETTLEMENT_SWEEP_SCHEDULE")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.SeedClientCount <= 0 {
		config.SeedClientCount = 500
	}
	if config.SeedTransactionCount <= 0 {
		config.SeedTransactionCount = 1000
	}
	if config.SimulatedLatencyMS < 0 {
		config.SimulatedLatencyMS = 0
	}
	if config.SettlementDelayMS < 0 {
		config.SettlementDelayMS = 0
	}
	if config.SettlementFailurePercent < 0 || config.SettlementFailurePercent > 100 {
		return nil, fmt.Errorf("SETTLEMENT_FAILURE_PERCENT must be between 0 and 100, got %d", config.SettlementFailurePercent)
	}
	if config.NotificationIntervalMS <= 0 {
		config.NotificationIntervalMS = 5000
	}
	if config.TransactionExpiryMinutes <= 0 {
		config.TransactionExpiryMinutes = 30
	}
	if config.StuckSettlementMinutes <= 0 {
		config.StuckSettlementMinutes = 15
	}

	return &config, nil
}

// SimulatedLatency returns the per-operation latency as a duration.
func (c *Config) SimulatedLatency() time.Duration {
	return time.Duration(c.SimulatedLatencyMS) * time.Millisecond
}

// SettlementDelay returns the settlement processing delay as a duration.
func (c *Config) SettlementDelay() time.Duration {
	return time.Duration(c.SettlementDelayMS) * time.Millisecond
}

// NotificationInterval returns the hub push interval as a duration.
func (c *Config) NotificationInterval() time.Duration {
	return time.Duration(c.NotificationIntervalMS) * time.Millisecond
}

// TransactionExpiry returns the stale-payment age threshold as a duration.
func (c *Config) TransactionExpiry() time.Duration {
	return time.Duration(c.TransactionExpiryMinutes) * time.Minute
}

// StuckSettlementAge returns the abandoned-batch age threshold as a duration.
func (c *Config) StuckSettlementAge() time.Duration {
	return time.Duration(c.StuckSettlementMinutes) * time.Minute
}
