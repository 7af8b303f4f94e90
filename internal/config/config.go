// Package config holds the daemon's configuration document.
//
// The document is a versioned struct with named fields and explicit
// defaults. It is loaded once at startup and handed to each background
// loop; loops read a fresh snapshot at the start of every pass, so a
// "settings changed" call takes effect without restarts.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config document's name inside the data directory.
const FileName = "config.yaml"

// CurrentVersion is written into new config documents.
const CurrentVersion = 1

// Config is the full configuration document.
type Config struct {
	Version              int           `yaml:"version"`
	IdleThresholdSeconds int           `yaml:"idle_threshold_seconds"`
	PollIntervalSeconds  int           `yaml:"poll_interval_seconds"`
	DataRetentionDays    int           `yaml:"data_retention_days"`
	Notifications        Notifications `yaml:"notifications"`
}

// Notifications holds the toggles and frequencies of the evaluator loops.
type Notifications struct {
	GoalsEnabled            bool `yaml:"goals_enabled"`
	AchievementsEnabled     bool `yaml:"achievements_enabled"`
	GoalCheckMinutes        int  `yaml:"goal_check_minutes"`
	AchievementCheckMinutes int  `yaml:"achievement_check_minutes"`
	BlockCooldownMinutes    int  `yaml:"block_cooldown_minutes"`
}

// Default returns the hard-coded defaults used when no document exists
// or the existing one cannot be read.
func Default() Config {
	return Config{
		Version:              CurrentVersion,
		IdleThresholdSeconds: 180,
		PollIntervalSeconds:  3,
		DataRetentionDays:    90,
		Notifications: Notifications{
			GoalsEnabled:            true,
			AchievementsEnabled:     true,
			GoalCheckMinutes:        15,
			AchievementCheckMinutes: 60,
			BlockCooldownMinutes:    5,
		},
	}
}

// IdleThreshold returns the idle cutoff as a duration.
func (c Config) IdleThreshold() time.Duration {
	return time.Duration(c.IdleThresholdSeconds) * time.Second
}

// PollInterval returns the sampler period as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// GoalCheckInterval returns the goal evaluator period as a duration.
func (c Config) GoalCheckInterval() time.Duration {
	return time.Duration(c.Notifications.GoalCheckMinutes) * time.Minute
}

// AchievementCheckInterval returns the achievement evaluator period.
func (c Config) AchievementCheckInterval() time.Duration {
	return time.Duration(c.Notifications.AchievementCheckMinutes) * time.Minute
}

// BlockCooldown returns the per-process block-goal cooldown.
func (c Config) BlockCooldown() time.Duration {
	return time.Duration(c.Notifications.BlockCooldownMinutes) * time.Minute
}

// Load reads the config document at path. A missing or unreadable
// document yields Default() — configuration failure never stops the
// daemon. Zero or negative core intervals are snapped back to defaults
// so a hand-edited document cannot stall the sampler.
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	return sanitize(cfg)
}

// Save writes the document to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func sanitize(cfg Config) Config {
	def := Default()
	if cfg.Version <= 0 {
		cfg.Version = def.Version
	}
	if cfg.IdleThresholdSeconds <= 0 {
		cfg.IdleThresholdSeconds = def.IdleThresholdSeconds
	}
	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = def.PollIntervalSeconds
	}
	if cfg.Notifications.GoalCheckMinutes <= 0 {
		cfg.Notifications.GoalCheckMinutes = def.Notifications.GoalCheckMinutes
	}
	if cfg.Notifications.AchievementCheckMinutes <= 0 {
		cfg.Notifications.AchievementCheckMinutes = def.Notifications.AchievementCheckMinutes
	}
	if cfg.Notifications.BlockCooldownMinutes <= 0 {
		cfg.Notifications.BlockCooldownMinutes = def.Notifications.BlockCooldownMinutes
	}
	return cfg
}
