package notify

import (
	"fmt"
	"io"
	"log"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

// TerminalChannel emits an OSC 9 notification escape, which terminals
// such as kitty, wezterm and iTerm2 surface as a system notification.
// It requires an interactive tty and explicit user opt-in; without both
// it declines and the chain falls through to the toast.
type TerminalChannel struct {
	w       io.Writer
	enabled bool // user granted terminal notifications in config
	tty     bool
}

// NewTerminalChannel writes escapes to w, typically os.Stdout.
func NewTerminalChannel(w io.Writer, enabled, tty bool) *TerminalChannel {
	return &TerminalChannel{w: w, enabled: enabled, tty: tty}
}

func (c *TerminalChannel) Name() string { return "terminal" }

func (c *TerminalChannel) Deliver(r reminder.Reminder) bool {
	if !c.enabled || !c.tty || c.w == nil {
		return false
	}

	text := r.Title
	if r.Description != "" {
		text += ": " + r.Description
	}

	if _, err := fmt.Fprintf(c.w, "\x1b]9;%s\x07", text); err != nil {
		log.Printf("[notify] terminal delivery failed: %v", err)
		return false
	}
	return true
}
