package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

type fakeRegistry struct {
	reminders []reminder.Reminder
}

func (f *fakeRegistry) Active() []reminder.Reminder {
	var active []reminder.Reminder
	for _, r := range f.reminders {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active
}

type fakePresenter struct {
	mu      sync.Mutex
	fired   []string
	panicOn string
}

func (f *fakePresenter) Present(r reminder.Reminder) {
	if r.ID == f.panicOn {
		panic("channel exploded")
	}
	f.mu.Lock()
	f.fired = append(f.fired, r.ID)
	f.mu.Unlock()
}

func (f *fakePresenter) firedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fired...)
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 1, hour, minute, 0, 0, time.UTC)
}

func TestTickFiresOnlyMatchingMinute(t *testing.T) {
	registry := &fakeRegistry{reminders: []reminder.Reminder{
		{ID: "a", Title: "Study", Time: "14:30", IsActive: true},
		{ID: "b", Title: "Read", Time: "14:31", IsActive: true},
	}}
	presenter := &fakePresenter{}
	p := NewPoller(registry, presenter, time.Minute)

	p.now = func() time.Time { return at(14, 30) }
	p.tick()

	fired := presenter.firedIDs()
	if len(fired) != 1 || fired[0] != "a" {
		t.Errorf("fired = %v, want [a]", fired)
	}
}

func TestTickNeverFiresInactive(t *testing.T) {
	registry := &fakeRegistry{reminders: []reminder.Reminder{
		{ID: "a", Title: "Study", Time: "14:30", IsActive: false},
	}}
	presenter := &fakePresenter{}
	p := NewPoller(registry, presenter, time.Minute)

	p.now = func() time.Time { return at(14, 30) }
	p.tick()

	if fired := presenter.firedIDs(); len(fired) != 0 {
		t.Errorf("fired = %v, want none for inactive reminder", fired)
	}
}

func TestTickDoesNotDoubleFireSameMinute(t *testing.T) {
	registry := &fakeRegistry{reminders: []reminder.Reminder{
		{ID: "a", Title: "Study", Time: "14:30", IsActive: true},
	}}
	presenter := &fakePresenter{}
	p := NewPoller(registry, presenter, time.Minute)

	// Immediate start tick and the first interval tick can land in the
	// same wall-clock minute.
	p.now = func() time.Time { return at(14, 30) }
	p.tick()
	p.tick()

	if fired := presenter.firedIDs(); len(fired) != 1 {
		t.Errorf("fired %d times in one minute, want 1", len(fired))
	}
}

func TestTickFiresAgainNextDay(t *testing.T) {
	registry := &fakeRegistry{reminders: []reminder.Reminder{
		{ID: "a", Title: "Study", Time: "14:30", IsActive: true},
	}}
	presenter := &fakePresenter{}
	p := NewPoller(registry, presenter, time.Minute)

	p.now = func() time.Time { return at(14, 30) }
	p.tick()
	p.now = func() time.Time { return at(14, 30).AddDate(0, 0, 1) }
	p.tick()

	if fired := presenter.firedIDs(); len(fired) != 2 {
		t.Errorf("fired = %v, want one firing per day", fired)
	}
}

// A reminder created at 14:29 fires on the immediate tick at 14:30 and
// is not re-fired by the 14:31 tick.
func TestLaunchMinuteScenario(t *testing.T) {
	registry := &fakeRegistry{reminders: []reminder.Reminder{
		{ID: "study", Title: "Study", Time: "14:30", IsActive: true},
	}}
	presenter := &fakePresenter{}
	p := NewPoller(registry, presenter, time.Minute)

	p.now = func() time.Time { return at(14, 30) }
	p.tick()
	p.now = func() time.Time { return at(14, 31) }
	p.tick()

	if fired := presenter.firedIDs(); len(fired) != 1 || fired[0] != "study" {
		t.Errorf("fired = %v, want exactly one firing at 14:30", fired)
	}
}

func TestTickIsolatesPanickingPresentation(t *testing.T) {
	registry := &fakeRegistry{reminders: []reminder.Reminder{
		{ID: "boom", Title: "Bad", Time: "14:30", IsActive: true},
		{ID: "ok", Title: "Good", Time: "14:30", IsActive: true},
	}}
	presenter := &fakePresenter{panicOn: "boom"}
	p := NewPoller(registry, presenter, time.Minute)

	p.now = func() time.Time { return at(14, 30) }
	p.tick()

	fired := presenter.firedIDs()
	if len(fired) != 1 || fired[0] != "ok" {
		t.Errorf("fired = %v, want the surviving reminder to fire", fired)
	}
}

func TestStartRejectsBadInterval(t *testing.T) {
	p := NewPoller(&fakeRegistry{}, &fakePresenter{}, 0)
	if err := p.Start(); err == nil {
		t.Error("Start() error = nil with zero interval, want error")
	}
}

func TestDoubleStartIsGuarded(t *testing.T) {
	p := NewPoller(&fakeRegistry{}, &fakePresenter{}, time.Hour)

	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}

	p.Stop()
	// Stop is idempotent.
	p.Stop()
}

func TestStopWaitsForLoop(t *testing.T) {
	registry := &fakeRegistry{reminders: []reminder.Reminder{
		{ID: "a", Title: "Study", Time: "14:30", IsActive: true},
	}}
	presenter := &fakePresenter{}
	p := NewPoller(registry, presenter, time.Hour)
	p.now = func() time.Time { return at(14, 30) }

	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	p.Stop()

	// The immediate start tick ran before Stop returned.
	if fired := presenter.firedIDs(); len(fired) != 1 {
		t.Errorf("fired = %v, want the immediate tick to have run", fired)
	}
}
