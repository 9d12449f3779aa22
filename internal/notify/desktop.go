package notify

import (
	"log"
	"os/exec"

	"github.com/AlexCorreaDJ/task-tame/internal/platform"
	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

// DesktopChannel shows reminders through the session's notification
// service (OS-drawn). It declines when the platform probe found no
// notification binary or the capability is denied.
type DesktopChannel struct {
	desc *platform.Descriptor
	run  func(name string, args ...string) error
}

// NewDesktopChannel builds the channel from the probe result.
func NewDesktopChannel(desc *platform.Descriptor) *DesktopChannel {
	return &DesktopChannel{
		desc: desc,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

func (c *DesktopChannel) Name() string { return "desktop" }

func (c *DesktopChannel) Deliver(r reminder.Reminder) bool {
	if c.desc.NotifyCmd == "" || c.desc.Query(platform.CapNotify) != platform.Granted {
		return false
	}

	args := []string{
		"--app-name=tasktame",
		"--category=" + r.Type,
		"--hint=string:x-tasktame-id:" + r.ID,
		r.Title,
	}
	if r.Description != "" {
		args = append(args, r.Description)
	}

	if err := c.run(c.desc.NotifyCmd, args...); err != nil {
		log.Printf("[notify] desktop delivery failed: %v", err)
		return false
	}
	return true
}
