// Package platform classifies the runtime environment once at startup
// and reports which delivery capabilities it supports. The resulting
// Descriptor is an immutable value handed to the scheduler and presenter
// by the composition root; call sites never re-sniff the environment.
package platform

import (
	"os"
	"os/exec"
)

// Kind is the coarse environment classification.
type Kind string

const (
	// KindDesktop is a graphical session with a notification service
	// and (usually) an autonomous user-level scheduler.
	KindDesktop Kind = "desktop"
	// KindTerminal is an interactive tty without desktop services.
	KindTerminal Kind = "terminal"
	// KindHeadless has neither; only logging-level delivery works.
	KindHeadless Kind = "headless"
)

// Permission is the current state of one capability.
type Permission string

const (
	Granted      Permission = "granted"
	Denied       Permission = "denied"
	PromptNeeded Permission = "prompt-needed"
)

// Capability names the probeable features.
type Capability string

const (
	CapNotify      Capability = "notification-delivery"
	CapStorage     Capability = "durable-storage"
	CapIdleInhibit Capability = "keep-screen-on"
)

// Descriptor is the immutable probe result.
type Descriptor struct {
	Kind        Kind
	Permissions map[Capability]Permission

	// NotifyCmd is the resolved desktop notification binary, empty when
	// none was found.
	NotifyCmd string
	// HasUserScheduler reports whether OS-level daily scheduling is
	// available (transient user timers).
	HasUserScheduler bool
	// TTY reports whether stdout is an interactive terminal.
	TTY bool
}

// Query returns the permission state for a capability. Capabilities the
// probe never examined report Denied, matching unsupported platforms.
func (d *Descriptor) Query(c Capability) Permission {
	if p, ok := d.Permissions[c]; ok {
		return p
	}
	return Denied
}

// Probe detects the environment. All lookups are injectable so tests can
// simulate any platform.
type Probe struct {
	DataDir  string
	LookPath func(string) (string, error)
	Getenv   func(string) string
	Run      func(name string, args ...string) error
	IsTTY    func() bool
}

// NewProbe returns a probe with real OS lookups.
func NewProbe(dataDir string) *Probe {
	return &Probe{
		DataDir:  dataDir,
		LookPath: exec.LookPath,
		Getenv:   os.Getenv,
		Run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
		IsTTY: stdoutIsTerminal,
	}
}

// Classify runs every probe once and returns the descriptor. Individual
// probes never fail loudly: anything unsupported simply reports Denied.
func (p *Probe) Classify() *Descriptor {
	d := &Descriptor{Permissions: make(map[Capability]Permission)}

	notifyCmd, _ := p.LookPath("notify-send")
	sessionBus := p.Getenv("DBUS_SESSION_BUS_ADDRESS") != ""
	display := p.Getenv("DISPLAY") != "" || p.Getenv("WAYLAND_DISPLAY") != ""

	d.TTY = p.IsTTY != nil && p.IsTTY()

	switch {
	case display && notifyCmd != "":
		d.Kind = KindDesktop
		d.NotifyCmd = notifyCmd
	case d.TTY:
		d.Kind = KindTerminal
	default:
		d.Kind = KindHeadless
	}

	if d.NotifyCmd != "" && (sessionBus || display) {
		d.Permissions[CapNotify] = Granted
	} else if d.TTY {
		// The terminal channel works, but only with explicit opt-in.
		d.Permissions[CapNotify] = PromptNeeded
	} else {
		d.Permissions[CapNotify] = Denied
	}

	d.Permissions[CapStorage] = p.probeStorage()
	d.Permissions[CapIdleInhibit] = p.probeIdleInhibit()

	if _, err := p.LookPath("systemd-run"); err == nil {
		d.HasUserScheduler = d.Kind == KindDesktop
	}

	return d
}

func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// probeStorage writes and immediately removes a marker file in the data
// directory.
func (p *Probe) probeStorage() Permission {
	if p.DataDir == "" {
		return Denied
	}
	f, err := os.CreateTemp(p.DataDir, ".probe-*")
	if err != nil {
		return Denied
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return Granted
}

// probeIdleInhibit acquires an idle inhibitor for the duration of a
// no-op command and releases it immediately, solely to test support.
func (p *Probe) probeIdleInhibit() Permission {
	if _, err := p.LookPath("systemd-inhibit"); err != nil {
		return Denied
	}
	if err := p.Run("systemd-inhibit", "--what=idle", "--mode=block", "true"); err != nil {
		return Denied
	}
	return Granted
}
