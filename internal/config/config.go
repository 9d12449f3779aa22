package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Data      DataConfig      `koanf:"data"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Notify    NotifyConfig    `koanf:"notify"`
	Pomodoro  PomodoroConfig  `koanf:"pomodoro"`
	UI        UIConfig        `koanf:"ui"`
}

type DataConfig struct {
	Path string `koanf:"path"` // SQLite database path (default: ~/.tasktame/tasktame.db)
	TTL  int    `koanf:"ttl"`  // Expiry in seconds for cached collections (0 = never)
	Seal bool   `koanf:"seal"` // Encrypt stored payloads at rest
	Key  string `koanf:"key"`  // Hex key for sealed storage; required when seal is true
}

type SchedulerConfig struct {
	Interval    int  `koanf:"interval"`     // Polling tick interval in seconds
	ForcePoll   bool `koanf:"force_poll"`   // Use the polling strategy even on desktop sessions
	SystemAlarm bool `koanf:"system_alarm"` // Allow reminders to request redundant OS alarms
}

type NotifyConfig struct {
	Telegram TelegramConfig `koanf:"telegram"`
	Terminal bool           `koanf:"terminal"` // Permit OSC terminal notifications
	Sound    SoundConfig    `koanf:"sound"`
}

type TelegramConfig struct {
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
}

// Configured reports whether the push channel can be used at all.
func (t TelegramConfig) Configured() bool {
	return t.BotToken != "" && t.ChatID != ""
}

type SoundConfig struct {
	Enabled bool   `koanf:"enabled"`
	Asset   string `koanf:"asset"` // Path to the audio cue file; empty uses the terminal bell
}

type PomodoroConfig struct {
	FocusMinutes      int `koanf:"focus_minutes"`
	ShortBreakMinutes int `koanf:"short_break_minutes"`
	LongBreakMinutes  int `koanf:"long_break_minutes"`
	SessionsPerCycle  int `koanf:"sessions_per_cycle"`
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("TASKTAME_", ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Secrets are commonly supplied via the environment only
	if token := os.Getenv("TASKTAME_TELEGRAM_TOKEN"); token != "" {
		k.Set("notify.telegram.bot_token", token)
	}
	if chatID := os.Getenv("TASKTAME_TELEGRAM_CHAT_ID"); chatID != "" {
		k.Set("notify.telegram.chat_id", chatID)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Data.Path = expandPath(cfg.Data.Path)
	cfg.Notify.Sound.Asset = expandPath(cfg.Notify.Sound.Asset)

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data path is required")
	}

	if c.Data.TTL < 0 {
		return fmt.Errorf("data ttl must not be negative")
	}

	if c.Data.Seal && len(c.Data.Key) != 64 {
		return fmt.Errorf("sealed storage requires a 64-character hex key (32 bytes)")
	}

	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %d", c.Scheduler.Interval)
	}

	if c.Pomodoro.FocusMinutes <= 0 || c.Pomodoro.ShortBreakMinutes <= 0 || c.Pomodoro.LongBreakMinutes <= 0 {
		return fmt.Errorf("pomodoro durations must be positive")
	}

	if c.Pomodoro.SessionsPerCycle <= 0 {
		return fmt.Errorf("pomodoro sessions_per_cycle must be positive")
	}

	return nil
}

// EnsureDataDir creates the directory holding the database file.
func (c *Config) EnsureDataDir() error {
	dir := filepath.Dir(c.Data.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func envKeyMapper(s string) string {
	return s
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
