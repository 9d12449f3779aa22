package pomodoro

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/AlexCorreaDJ/task-tame/internal/config"
	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

type mapKV struct {
	data map[string]string
}

func newMapKV() *mapKV { return &mapKV{data: make(map[string]string)} }

func (m *mapKV) Get(key string, dest any) bool {
	raw, ok := m.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (m *mapKV) Set(key string, value any) {
	raw, _ := json.Marshal(value)
	m.data[key] = string(raw)
}

func (m *mapKV) Remove(key string) { delete(m.data, key) }

type recordPresenter struct {
	presented []reminder.Reminder
}

func (p *recordPresenter) Present(r reminder.Reminder) {
	p.presented = append(p.presented, r)
}

func testConfig() config.PomodoroConfig {
	return config.PomodoroConfig{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		SessionsPerCycle:  4,
	}
}

func newTestTimer(t *testing.T) (*Timer, *recordPresenter, *time.Time) {
	t.Helper()
	presenter := &recordPresenter{}
	timer := NewTimer(newMapKV(), testConfig(), presenter)
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	timer.now = func() time.Time { return clock }
	return timer, presenter, &clock
}

func TestStartFocusSession(t *testing.T) {
	timer, _, _ := newTestTimer(t)

	s, err := timer.Start(ModeFocus)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.Status != StatusRunning || s.Mode != ModeFocus {
		t.Errorf("state = %+v", s)
	}
	if s.RemainingSeconds != 25*60 {
		t.Errorf("RemainingSeconds = %d, want %d", s.RemainingSeconds, 25*60)
	}
}

func TestStartRejectsUnknownMode(t *testing.T) {
	timer, _, _ := newTestTimer(t)
	if _, err := timer.Start("nap"); err == nil {
		t.Error("Start(nap) error = nil, want error")
	}
}

func TestStartRejectsWhileRunning(t *testing.T) {
	timer, _, _ := newTestTimer(t)
	if _, err := timer.Start(ModeFocus); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := timer.Start(ModeShortBreak); err == nil {
		t.Error("second Start() error = nil, want error")
	}
}

func TestPauseFreezesRemaining(t *testing.T) {
	timer, _, clock := newTestTimer(t)
	if _, err := timer.Start(ModeFocus); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	*clock = clock.Add(10 * time.Minute)
	s, err := timer.Pause()
	if err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if s.Status != StatusPaused {
		t.Errorf("Status = %q, want paused", s.Status)
	}
	if s.RemainingSeconds != 15*60 {
		t.Errorf("RemainingSeconds = %d, want %d", s.RemainingSeconds, 15*60)
	}

	// Wall-clock time spent paused does not drain the phase.
	*clock = clock.Add(time.Hour)
	if got := timer.Check(); got.RemainingSeconds != 15*60 {
		t.Errorf("RemainingSeconds after pause = %d, want %d", got.RemainingSeconds, 15*60)
	}
}

func TestResumeRequiresPause(t *testing.T) {
	timer, _, _ := newTestTimer(t)
	if _, err := timer.Resume(); err == nil {
		t.Error("Resume() on idle timer error = nil, want error")
	}
}

func TestPauseResumeRoundtrip(t *testing.T) {
	timer, _, clock := newTestTimer(t)
	timer.Start(ModeFocus)

	*clock = clock.Add(5 * time.Minute)
	timer.Pause()

	*clock = clock.Add(30 * time.Minute)
	s, err := timer.Resume()
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}

	*clock = clock.Add(10 * time.Minute)
	s = timer.Check()
	if s.RemainingSeconds != 10*60 {
		t.Errorf("RemainingSeconds = %d, want %d", s.RemainingSeconds, 10*60)
	}
	if s.Status != StatusRunning {
		t.Errorf("Status = %q, want running", s.Status)
	}
}

func TestResetAbandonsPhase(t *testing.T) {
	timer, _, _ := newTestTimer(t)
	timer.Start(ModeFocus)

	s := timer.Reset()
	if s.Status != StatusIdle || s.RemainingSeconds != 0 || s.StartedAt != nil {
		t.Errorf("state after Reset = %+v", s)
	}
}

func TestCompletionFiresBreakNotification(t *testing.T) {
	timer, presenter, clock := newTestTimer(t)
	timer.Start(ModeFocus)

	*clock = clock.Add(26 * time.Minute)
	s := timer.Check()

	if len(presenter.presented) != 1 {
		t.Fatalf("presented %d notifications, want 1", len(presenter.presented))
	}
	r := presenter.presented[0]
	if r.Type != reminder.TypeBreak {
		t.Errorf("notification type = %q, want break", r.Type)
	}
	if s.Mode != ModeShortBreak || s.Status != StatusIdle {
		t.Errorf("state after completion = %+v, want idle short break", s)
	}
	if s.CompletedSessions != 1 {
		t.Errorf("CompletedSessions = %d, want 1", s.CompletedSessions)
	}
}

func TestLongBreakAfterFullCycle(t *testing.T) {
	timer, presenter, clock := newTestTimer(t)

	for i := 0; i < 4; i++ {
		if _, err := timer.Start(ModeFocus); err != nil {
			t.Fatalf("Start() #%d error = %v", i+1, err)
		}
		*clock = clock.Add(26 * time.Minute)
		timer.Check()
	}

	s := timer.Check()
	if s.Mode != ModeLongBreak {
		t.Errorf("Mode = %q after %d sessions, want long break", s.Mode, 4)
	}
	if len(presenter.presented) != 4 {
		t.Errorf("presented %d notifications, want 4", len(presenter.presented))
	}
}

func TestBreakCompletionReturnsToFocus(t *testing.T) {
	timer, _, clock := newTestTimer(t)
	timer.Start(ModeShortBreak)

	*clock = clock.Add(6 * time.Minute)
	s := timer.Check()

	if s.Mode != ModeFocus || s.Status != StatusIdle {
		t.Errorf("state after break = %+v, want idle focus", s)
	}
	if s.CompletedSessions != 0 {
		t.Errorf("CompletedSessions = %d, breaks must not count", s.CompletedSessions)
	}
}

func TestStatePersistsAcrossTimers(t *testing.T) {
	store := newMapKV()
	presenter := &recordPresenter{}
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	first := NewTimer(store, testConfig(), presenter)
	first.now = func() time.Time { return clock }
	first.Start(ModeFocus)

	clock = clock.Add(10 * time.Minute)
	second := NewTimer(store, testConfig(), presenter)
	second.now = func() time.Time { return clock }

	s := second.Check()
	if s.Status != StatusRunning || s.RemainingSeconds != 15*60 {
		t.Errorf("resumed state = %+v, want running with 15m left", s)
	}
}
