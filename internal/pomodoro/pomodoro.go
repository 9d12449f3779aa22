// Package pomodoro is the focus-timer state machine. State persists
// through the shared store so separate CLI invocations resume the same
// session; completed phases fire a break-typed presentation.
package pomodoro

import (
	"fmt"
	"time"

	"github.com/AlexCorreaDJ/task-tame/internal/config"
	"github.com/AlexCorreaDJ/task-tame/internal/kvstore"
	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

const storeKey = "pomodoro"

// Modes.
const (
	ModeFocus      = "focus"
	ModeShortBreak = "short_break"
	ModeLongBreak  = "long_break"
)

// Statuses.
const (
	StatusIdle    = "idle"
	StatusRunning = "running"
	StatusPaused  = "paused"
)

// State is the persisted timer snapshot.
type State struct {
	Mode              string     `json:"mode"`
	Status            string     `json:"status"`
	RemainingSeconds  int        `json:"remaining_seconds"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedSessions int        `json:"completed_sessions"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Presenter receives the phase-complete notification.
type Presenter interface {
	Present(r reminder.Reminder)
}

// Timer drives the state machine.
type Timer struct {
	store     kvstore.KV
	cfg       config.PomodoroConfig
	presenter Presenter
	now       func() time.Time
}

func NewTimer(store kvstore.KV, cfg config.PomodoroConfig, presenter Presenter) *Timer {
	return &Timer{store: store, cfg: cfg, presenter: presenter, now: time.Now}
}

func (t *Timer) load() State {
	s := State{Mode: ModeFocus, Status: StatusIdle}
	t.store.Get(storeKey, &s)
	return s
}

func (t *Timer) save(s State) {
	s.UpdatedAt = t.now().UTC()
	t.store.Set(storeKey, s)
}

func (t *Timer) duration(mode string) time.Duration {
	switch mode {
	case ModeShortBreak:
		return time.Duration(t.cfg.ShortBreakMinutes) * time.Minute
	case ModeLongBreak:
		return time.Duration(t.cfg.LongBreakMinutes) * time.Minute
	default:
		return time.Duration(t.cfg.FocusMinutes) * time.Minute
	}
}

// Start begins a phase. An already-running timer must be stopped first.
func (t *Timer) Start(mode string) (State, error) {
	switch mode {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
	default:
		return State{}, fmt.Errorf("unknown mode %q", mode)
	}

	s := t.load()
	if s.Status == StatusRunning {
		return State{}, fmt.Errorf("timer already running (%s)", s.Mode)
	}

	now := t.now().UTC()
	s.Mode = mode
	s.Status = StatusRunning
	s.RemainingSeconds = int(t.duration(mode).Seconds())
	s.StartedAt = &now
	t.save(s)
	return s, nil
}

// Pause freezes the remaining time.
func (t *Timer) Pause() (State, error) {
	s := t.tickLocked()
	if s.Status != StatusRunning {
		return State{}, fmt.Errorf("timer is not running")
	}
	s.Status = StatusPaused
	s.StartedAt = nil
	t.save(s)
	return s, nil
}

// Resume continues a paused phase.
func (t *Timer) Resume() (State, error) {
	s := t.load()
	if s.Status != StatusPaused {
		return State{}, fmt.Errorf("timer is not paused")
	}
	now := t.now().UTC()
	s.Status = StatusRunning
	s.StartedAt = &now
	t.save(s)
	return s, nil
}

// Reset abandons the current phase.
func (t *Timer) Reset() State {
	s := t.load()
	s.Status = StatusIdle
	s.StartedAt = nil
	s.RemainingSeconds = 0
	t.save(s)
	return s
}

// Check recomputes the remaining time from the wall clock and, when the
// phase has elapsed, fires the completion notification and advances the
// machine. Called by the CLI status command and the daemon tick.
func (t *Timer) Check() State {
	s := t.tickLocked()
	if s.Status == StatusRunning && s.RemainingSeconds <= 0 {
		s = t.complete(s)
	}
	t.save(s)
	return s
}

// tickLocked folds elapsed wall-clock time into RemainingSeconds.
func (t *Timer) tickLocked() State {
	s := t.load()
	if s.Status != StatusRunning || s.StartedAt == nil {
		return s
	}

	elapsed := int(t.now().UTC().Sub(*s.StartedAt).Seconds())
	if elapsed <= 0 {
		return s
	}

	now := t.now().UTC()
	s.RemainingSeconds -= elapsed
	s.StartedAt = &now
	if s.RemainingSeconds < 0 {
		s.RemainingSeconds = 0
	}
	return s
}

func (t *Timer) complete(s State) State {
	finished := s.Mode

	next := ModeFocus
	title := "Break over"
	body := "Time to focus."
	if finished == ModeFocus {
		s.CompletedSessions++
		if s.CompletedSessions%t.cfg.SessionsPerCycle == 0 {
			next = ModeLongBreak
			title = "Focus session complete"
			body = fmt.Sprintf("Take a long break (%d min).", t.cfg.LongBreakMinutes)
		} else {
			next = ModeShortBreak
			title = "Focus session complete"
			body = fmt.Sprintf("Take a short break (%d min).", t.cfg.ShortBreakMinutes)
		}
	}

	if t.presenter != nil {
		t.presenter.Present(reminder.Reminder{
			ID:          "pomodoro",
			Title:       title,
			Description: body,
			Type:        reminder.TypeBreak,
			Time:        reminder.ClockOf(t.now()).String(),
			IsActive:    true,
		})
	}

	s.Mode = next
	s.Status = StatusIdle
	s.StartedAt = nil
	s.RemainingSeconds = 0
	return s
}
