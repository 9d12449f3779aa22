// Package app wires the application together: one store, one probe
// result, one registry, one presenter. Both binaries compose through it
// so the delivery pipeline is identical everywhere.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlexCorreaDJ/task-tame/internal/config"
	"github.com/AlexCorreaDJ/task-tame/internal/kvstore"
	"github.com/AlexCorreaDJ/task-tame/internal/notify"
	"github.com/AlexCorreaDJ/task-tame/internal/platform"
	"github.com/AlexCorreaDJ/task-tame/internal/pomodoro"
	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
	"github.com/AlexCorreaDJ/task-tame/internal/scheduler"
	"github.com/AlexCorreaDJ/task-tame/internal/task"
	"github.com/AlexCorreaDJ/task-tame/internal/ui"
)

// App holds the composed components.
type App struct {
	Config    *config.Config
	DB        *kvstore.DB
	Store     kvstore.KV
	Probe     *platform.Probe
	Desc      *platform.Descriptor
	Mode      reminder.Mode
	Native    reminder.NativeScheduler
	Registry  *reminder.Registry
	Tasks     *task.List
	Pomodoro  *pomodoro.Timer
	Sound     *notify.Sound
	Presenter *notify.Presenter
	Formatter *ui.Formatter
}

// New loads configuration, opens the store, probes the platform once
// and builds the full delivery pipeline.
func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	db, err := kvstore.Open(cfg.Data.Path)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(db, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	probe := platform.NewProbe(filepath.Dir(cfg.Data.Path))
	desc := probe.Classify()

	mode := reminder.ModePolling
	var native reminder.NativeScheduler
	if desc.HasUserScheduler {
		sd := scheduler.NewSystemdScheduler(desc.NotifyCmd)
		if sd.Available() {
			if !cfg.Scheduler.ForcePoll {
				mode = reminder.ModeNative
				native = sd
			} else if cfg.Scheduler.SystemAlarm {
				// Polling handles delivery; the OS scheduler only backs
				// reminders that ask for a redundant system alarm.
				native = sd
			}
		}
	}

	registry := reminder.NewRegistry(store, native, mode)

	// Sound is nil when the cue is disabled; the presenter treats a nil
	// sound as no cue at all.
	var sound *notify.Sound
	if cfg.Notify.Sound.Enabled {
		sound = notify.NewSound(cfg.Notify.Sound.Asset, os.Stdout)
		if desc.TTY {
			sound.Arm()
		}
	}

	formatter := ui.NewFormatter(cfg.UI.ColoredOutput)

	var sender notify.MessageSender
	if cfg.Notify.Telegram.Configured() {
		sender = notify.NewTelegramSender(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
	}

	presenter := notify.NewPresenter(sound,
		notify.NewBalloonChannel(sender),
		notify.NewDesktopChannel(desc),
		notify.NewTerminalChannel(os.Stdout, cfg.Notify.Terminal, desc.TTY),
		notify.NewToastChannel(os.Stdout, formatter),
	)

	return &App{
		Config:    cfg,
		DB:        db,
		Store:     store,
		Probe:     probe,
		Desc:      desc,
		Mode:      mode,
		Native:    native,
		Registry:  registry,
		Tasks:     task.NewList(store),
		Pomodoro:  pomodoro.NewTimer(store, cfg.Pomodoro, presenter),
		Sound:     sound,
		Presenter: presenter,
		Formatter: formatter,
	}, nil
}

// Refresh re-runs the capability probe. Permission state can change
// outside the app's control (the user edits OS settings), so status
// views re-query instead of trusting the startup snapshot. The delivery
// strategy itself stays fixed for the session.
func (a *App) Refresh() *platform.Descriptor {
	a.Desc = a.Probe.Classify()
	return a.Desc
}

// PollInterval is the polling strategy's tick interval.
func (a *App) PollInterval() time.Duration {
	return time.Duration(a.Config.Scheduler.Interval) * time.Second
}

// Close releases the store.
func (a *App) Close() error {
	return a.DB.Close()
}

func buildStore(db *kvstore.DB, cfg *config.Config) (kvstore.KV, error) {
	if cfg.Data.TTL <= 0 && !cfg.Data.Seal {
		return kvstore.NewStore(db), nil
	}

	var sealer *kvstore.Sealer
	if cfg.Data.Seal {
		var err error
		sealer, err = kvstore.NewSealer(cfg.Data.Key)
		if err != nil {
			return nil, err
		}
	}
	return kvstore.NewExpiringStore(db, time.Duration(cfg.Data.TTL)*time.Second, sealer), nil
}
