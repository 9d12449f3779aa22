package scheduler

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

const unitPrefix = "tasktame-reminder-"

// SystemdScheduler registers daily-repeating reminders as transient
// systemd user timers. Registrations fire independently of this process
// and survive its exit; deregistration must be explicit per id, a global
// stop never removes them.
type SystemdScheduler struct {
	notifyCmd string
	run       func(name string, args ...string) ([]byte, error)
}

// NewSystemdScheduler builds a scheduler whose timers deliver through
// notifyCmd (the resolved desktop notification binary).
func NewSystemdScheduler(notifyCmd string) *SystemdScheduler {
	if notifyCmd == "" {
		notifyCmd = "notify-send"
	}
	return &SystemdScheduler{
		notifyCmd: notifyCmd,
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
	}
}

// Available reports whether the user scheduler can be reached at all.
func (s *SystemdScheduler) Available() bool {
	_, err := s.run("systemctl", "--user", "show-environment")
	return err == nil
}

// Schedule registers a daily timer for id. Re-scheduling an existing id
// replaces the prior timer.
func (s *SystemdScheduler) Schedule(id int64, title, body string, at reminder.Clock) error {
	unit := unitName(id)

	// Replace semantics: drop any prior registration for this id first.
	s.run("systemctl", "--user", "stop", unit+".timer")

	args := []string{
		"--user",
		"--collect",
		"--unit=" + unit,
		fmt.Sprintf("--on-calendar=*-*-* %02d:%02d:00", at.Hour, at.Minute),
		s.notifyCmd, "--app-name=tasktame", title,
	}
	if body != "" {
		args = append(args, body)
	}

	if out, err := s.run("systemd-run", args...); err != nil {
		return fmt.Errorf("systemd-run failed: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Cancel removes the registration for id if one exists.
func (s *SystemdScheduler) Cancel(id int64) error {
	unit := unitName(id)
	if out, err := s.run("systemctl", "--user", "stop", unit+".timer"); err != nil {
		return fmt.Errorf("failed to stop timer %s: %v: %s", unit, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Pending lists the ids with a live registration.
func (s *SystemdScheduler) Pending() ([]int64, error) {
	out, err := s.run("systemctl", "--user", "list-units",
		unitPrefix+"*.timer", "--no-legend", "--plain")
	if err != nil {
		return nil, fmt.Errorf("failed to list timers: %w", err)
	}

	var ids []int64
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(fields[0], unitPrefix), ".timer")
		id, err := strconv.ParseInt(name, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func unitName(id int64) string {
	return unitPrefix + strconv.FormatInt(id, 10)
}
