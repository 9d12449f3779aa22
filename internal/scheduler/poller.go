package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

// Presenter renders one firing reminder.
type Presenter interface {
	Present(r reminder.Reminder)
}

// Registry supplies the reminders eligible for delivery.
type Registry interface {
	Active() []reminder.Reminder
}

// Poller is the in-process delivery strategy: a single timer compares
// wall-clock time against every active reminder once per interval. It
// only works while the process runs; missed ticks are not backfilled.
//
// The poller is an owned object with a symmetric Start/Stop lifecycle.
// The composition root constructs exactly one and passes it by
// reference; a second Start on a running poller is a guarded no-op.
type Poller struct {
	registry  Registry
	presenter Presenter
	interval  time.Duration
	now       func() time.Time

	mu        sync.Mutex
	running   bool
	stop      chan struct{}
	done      chan struct{}
	lastFired map[string]string // reminder id -> minute it last fired
}

// NewPoller builds a poller. interval is typically one minute.
func NewPoller(registry Registry, presenter Presenter, interval time.Duration) *Poller {
	return &Poller{
		registry:  registry,
		presenter: presenter,
		interval:  interval,
		now:       time.Now,
		lastFired: make(map[string]string),
	}
}

// Start launches the polling loop. The first tick runs immediately, not
// on the first interval boundary, so a reminder matching the launch
// minute still fires.
func (p *Poller) Start() error {
	if p.interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", p.interval)
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		log.Println("[poller] already running, ignoring second start")
		return nil
	}
	p.running = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.mu.Unlock()

	log.Printf("[poller] started, interval %s", p.interval)

	go func() {
		defer close(p.done)

		p.tick()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.stop:
				log.Println("[poller] shutting down")
				return
			case <-ticker.C:
				p.tick()
			}
		}
	}()

	return nil
}

// Stop halts the loop and waits for the in-flight tick to finish. Safe
// to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stop)
	p.mu.Unlock()

	<-p.done
}

// tick fires every active reminder whose time matches the current
// minute. Each reminder's presentation is isolated: a panic in one must
// not stop the rest of the tick.
func (p *Poller) tick() {
	now := p.now()
	minute := reminder.ClockOf(now).String()
	day := now.Format("2006-01-02")
	key := day + " " + minute

	for _, r := range p.registry.Active() {
		if r.Time != minute {
			continue
		}

		p.mu.Lock()
		fired := p.lastFired[r.ID] == key
		if !fired {
			p.lastFired[r.ID] = key
		}
		p.mu.Unlock()

		if fired {
			continue
		}

		p.present(r)
	}
}

func (p *Poller) present(r reminder.Reminder) {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("[poller] presentation of %s panicked: %v", r.ID, err)
		}
	}()
	p.presenter.Present(r)
}
