package reminder

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
	"unicode"
)

// Display categories for reminders.
const (
	TypeTask    = "task"
	TypeReading = "reading"
	TypeProject = "project"
	TypeBreak   = "break"
	TypeCustom  = "custom"
)

// Bounds applied to user text before storage.
const (
	MaxTitleLen       = 120
	MaxDescriptionLen = 500
)

// ValidType reports whether t is one of the closed type enumeration.
func ValidType(t string) bool {
	switch t {
	case TypeTask, TypeReading, TypeProject, TypeBreak, TypeCustom:
		return true
	}
	return false
}

// Clock is a wall-clock time of day. Reminders carry no date component;
// they recur daily at this time.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" in 24h form. Only the zero-padded canonical
// form is accepted: stored times are compared as strings against the
// poller's formatted current minute, so "9:30" would never match.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q (use HH:MM, 24h): %w", s, err)
	}
	c := Clock{Hour: t.Hour(), Minute: t.Minute()}
	if c.String() != s {
		return Clock{}, fmt.Errorf("invalid time %q (use zero-padded HH:MM, 24h)", s)
	}
	return c, nil
}

// ClockOf truncates t to its time of day.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Reminder is one user-configured daily-recurring alert.
type Reminder struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Time        string `json:"time"` // HH:MM, 24h
	Type        string `json:"type"`
	IsActive    bool   `json:"is_active"`

	// UseBalloonStyle selects the rich push presentation when the
	// messaging channel is configured.
	UseBalloonStyle bool `json:"use_balloon_style,omitempty"`

	// CreateSystemAlarm requests a redundant OS-level registration even
	// when delivery is handled by the in-process poller.
	CreateSystemAlarm bool `json:"create_system_alarm,omitempty"`

	// NativeID is the live OS scheduler registration for this reminder,
	// nil when none exists. At most one registration is outstanding at a
	// time; it must be cancelled before re-registering.
	NativeID *int64 `json:"native_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Clock returns the parsed time of day. The registry validates Time on
// every write, so stored reminders always parse.
func (r Reminder) Clock() (Clock, error) {
	return ParseClock(r.Time)
}

// Validate checks the user-settable fields.
func (r Reminder) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(r.Title) > MaxTitleLen {
		return fmt.Errorf("title exceeds %d characters", MaxTitleLen)
	}
	if len(r.Description) > MaxDescriptionLen {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLen)
	}
	if _, err := ParseClock(r.Time); err != nil {
		return err
	}
	if !ValidType(r.Type) {
		return fmt.Errorf("unknown type %q (use task, reading, project, break or custom)", r.Type)
	}
	return nil
}

// Sanitize trims surrounding whitespace and strips control characters
// from user text.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' {
			return -1
		}
		return r
	}, s)
}

// NumericID maps a reminder id into the native scheduler's numeric id
// space: FNV-1a over the id, masked to 31 bits so it fits every signed
// integer the OS side might use. Deterministic, so the same reminder
// always maps to the same registration; the registry checks for hash
// collisions at creation time.
func NumericID(id string) int64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return int64(h.Sum32() & 0x7fffffff)
}
