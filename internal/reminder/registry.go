package reminder

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AlexCorreaDJ/task-tame/internal/kvstore"
)

const storeKey = "reminders"

// Mode selects how active reminders reach the user.
type Mode int

const (
	// ModePolling delivers via the in-process poller; the OS scheduler
	// is used only for reminders that request a redundant system alarm.
	ModePolling Mode = iota
	// ModeNative hands every active reminder to the OS scheduler.
	ModeNative
)

func (m Mode) String() string {
	if m == ModeNative {
		return "native"
	}
	return "polling"
}

// NativeScheduler is the OS-level scheduling surface the registry
// consumes. Registrations are daily-repeating, keyed by numeric id, and
// outlive the process. Schedule with an already-registered id replaces
// the prior entry.
type NativeScheduler interface {
	Schedule(id int64, title, body string, at Clock) error
	Cancel(id int64) error
	Pending() ([]int64, error)
}

// Registry is the persistent set of reminders. It is the single writer:
// all mutations go through it, in call order, and it keeps the native
// scheduler consistent with the stored state (at most one live
// registration per reminder).
type Registry struct {
	store  kvstore.KV
	native NativeScheduler // nil when no OS scheduler is available
	mode   Mode
}

// NewRegistry builds a registry over store. native may be nil.
func NewRegistry(store kvstore.KV, native NativeScheduler, mode Mode) *Registry {
	return &Registry{store: store, native: native, mode: mode}
}

// List returns every reminder, active or not.
func (g *Registry) List() []Reminder {
	var rs []Reminder
	g.store.Get(storeKey, &rs)
	return rs
}

// Active returns the reminders eligible for delivery.
func (g *Registry) Active() []Reminder {
	var active []Reminder
	for _, r := range g.List() {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active
}

// Get returns the reminder with the given id.
func (g *Registry) Get(id string) (Reminder, bool) {
	for _, r := range g.List() {
		if r.ID == id {
			return r, true
		}
	}
	return Reminder{}, false
}

// ResolveID expands a unique id prefix to the full reminder id.
func (g *Registry) ResolveID(prefix string) (string, error) {
	var match string
	for _, r := range g.List() {
		if !strings.HasPrefix(r.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
		}
		match = r.ID
	}
	if match == "" {
		return "", fmt.Errorf("reminder %s not found", prefix)
	}
	return match, nil
}

// Add validates, persists and (when eligible) registers a new reminder.
func (g *Registry) Add(r Reminder) (Reminder, error) {
	r.Title = Sanitize(r.Title)
	r.Description = Sanitize(r.Description)
	if r.Type == "" {
		r.Type = TypeCustom
	}
	if err := r.Validate(); err != nil {
		return Reminder{}, err
	}

	rs := g.List()
	r.ID = g.newID(rs)
	r.CreatedAt = time.Now().UTC()
	r.NativeID = nil

	g.register(&r)

	rs = append(rs, r)
	g.store.Set(storeKey, rs)
	return r, nil
}

// UpdateFields holds optional fields for a partial update.
type UpdateFields struct {
	Title       *string
	Description *string
	Time        *string
	Type        *string
	Balloon     *bool
	SystemAlarm *bool
}

// Update applies partial updates. Any change to a reminder cancels the
// existing native registration before creating the replacement, so no
// window exists where two registrations fire for the same reminder.
func (g *Registry) Update(id string, fields UpdateFields) (Reminder, error) {
	return g.mutate(id, func(r *Reminder) error {
		if fields.Title != nil {
			r.Title = Sanitize(*fields.Title)
		}
		if fields.Description != nil {
			r.Description = Sanitize(*fields.Description)
		}
		if fields.Time != nil {
			r.Time = *fields.Time
		}
		if fields.Type != nil {
			r.Type = *fields.Type
		}
		if fields.Balloon != nil {
			r.UseBalloonStyle = *fields.Balloon
		}
		if fields.SystemAlarm != nil {
			r.CreateSystemAlarm = *fields.SystemAlarm
		}
		return r.Validate()
	})
}

// Toggle flips the active flag. Deactivating cancels the native
// registration; reactivating creates a fresh one.
func (g *Registry) Toggle(id string) (Reminder, error) {
	return g.mutate(id, func(r *Reminder) error {
		r.IsActive = !r.IsActive
		return nil
	})
}

// Delete cancels any native registration and removes the reminder.
func (g *Registry) Delete(id string) error {
	rs := g.List()
	for i, r := range rs {
		if r.ID != id {
			continue
		}
		g.cancel(&r)
		g.store.Set(storeKey, append(rs[:i], rs[i+1:]...))
		return nil
	}
	return fmt.Errorf("reminder %s not found", id)
}

// SyncNative reconciles the OS scheduler with the stored state: every
// eligible reminder gets a fresh registration, everything else is
// cancelled, and registrations the OS still holds for reminders no
// longer in the registry are reaped. Called once at daemon start so
// registrations left behind by a previous process match the current
// registry.
func (g *Registry) SyncNative() {
	if g.native == nil {
		return
	}

	rs := g.List()
	for i := range rs {
		r := &rs[i]
		g.cancel(r)
		if g.eligible(*r) {
			g.register(r)
		}
	}
	g.store.Set(storeKey, rs)

	wanted := make(map[int64]bool, len(rs))
	for _, r := range rs {
		if r.NativeID != nil {
			wanted[*r.NativeID] = true
		}
	}

	pending, err := g.native.Pending()
	if err != nil {
		log.Printf("[registry] listing native registrations failed: %v", err)
		return
	}
	for _, id := range pending {
		if wanted[id] {
			continue
		}
		// Left behind by a reminder deleted while the scheduler was
		// unreachable or by an older data file.
		if err := g.native.Cancel(id); err != nil {
			log.Printf("[registry] reaping stale registration %d failed: %v", id, err)
		}
	}
}

func (g *Registry) mutate(id string, apply func(*Reminder) error) (Reminder, error) {
	rs := g.List()
	for i := range rs {
		if rs[i].ID != id {
			continue
		}

		// Apply the edit to a copy first: a rejected mutation must leave
		// both the stored reminder and its registration untouched.
		updated := rs[i]
		if err := apply(&updated); err != nil {
			return Reminder{}, err
		}

		// Cancel before registering the replacement so the old schedule
		// can never fire alongside the new one.
		g.cancel(&rs[i])
		updated.NativeID = nil
		g.register(&updated)

		rs[i] = updated
		g.store.Set(storeKey, rs)
		return rs[i], nil
	}
	return Reminder{}, fmt.Errorf("reminder %s not found", id)
}

// eligible reports whether r should hold a native registration.
func (g *Registry) eligible(r Reminder) bool {
	if g.native == nil || !r.IsActive {
		return false
	}
	return g.mode == ModeNative || r.CreateSystemAlarm
}

// register creates the native registration for r when eligible. Failure
// is not fatal: the reminder stays unregistered (NativeID nil) and the
// poller or in-app channel still covers it.
func (g *Registry) register(r *Reminder) bool {
	if !g.eligible(*r) {
		return false
	}

	at, err := r.Clock()
	if err != nil {
		log.Printf("[registry] reminder %s has invalid time %q: %v", r.ID, r.Time, err)
		return false
	}

	id := NumericID(r.ID)
	if err := g.native.Schedule(id, r.Title, r.Description, at); err != nil {
		log.Printf("[registry] native registration for %s failed: %v", r.ID, err)
		r.NativeID = nil
		return false
	}
	r.NativeID = &id
	return true
}

// cancel removes the native registration for r if one exists. A failed
// cancel is logged and the id cleared anyway; the caller proceeds with
// re-registration and the inconsistency is visible in the log.
func (g *Registry) cancel(r *Reminder) {
	if r.NativeID == nil || g.native == nil {
		return
	}
	if err := g.native.Cancel(*r.NativeID); err != nil {
		log.Printf("[registry] cancel of native registration %d for %s failed: %v", *r.NativeID, r.ID, err)
	}
	r.NativeID = nil
}

// newID generates a uuid whose numeric projection collides with no
// existing reminder, so native registrations stay one-to-one.
func (g *Registry) newID(existing []Reminder) string {
	taken := make(map[int64]bool, len(existing))
	for _, r := range existing {
		taken[NumericID(r.ID)] = true
	}

	for {
		id := uuid.NewString()
		if !taken[NumericID(id)] {
			return id
		}
	}
}
