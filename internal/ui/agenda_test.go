package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
	"github.com/AlexCorreaDJ/task-tame/internal/task"
)

func TestAgendaMarkdownSections(t *testing.T) {
	reminders := []reminder.Reminder{
		{Title: "Study", Time: "14:30", Type: reminder.TypeReading, IsActive: true},
		{Title: "Standup", Time: "09:00", Type: reminder.TypeCustom, IsActive: false, Description: "daily sync"},
	}
	tasks := []task.Task{
		{Title: "Write report"},
		{Title: "Review notes", Done: true},
	}

	md := buildAgendaMarkdown(reminders, tasks)

	for _, want := range []string{
		"# Agenda",
		"## Reminders",
		"- [x] **Study** `14:30` (reading)",
		"- [ ] **Standup** `09:00` (custom)",
		"daily sync",
		"## Tasks",
		"- [ ] Write report",
		"- [x] Review notes",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("agenda missing %q:\n%s", want, md)
		}
	}
}

func TestAgendaMarkdownEmpty(t *testing.T) {
	md := buildAgendaMarkdown(nil, nil)

	if !strings.Contains(md, "_No reminders configured._") {
		t.Errorf("missing reminders placeholder:\n%s", md)
	}
	if !strings.Contains(md, "_No open tasks._") {
		t.Errorf("missing tasks placeholder:\n%s", md)
	}
}

func TestRenderAgendaUncoloredIsPlainMarkdown(t *testing.T) {
	out, err := RenderAgenda(nil, nil, false)
	if err != nil {
		t.Fatalf("RenderAgenda() error = %v", err)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("uncolored agenda contains ANSI escapes")
	}
	if !strings.Contains(out, "# Agenda") {
		t.Errorf("output = %q", out)
	}
}

func TestFormatToastUncolored(t *testing.T) {
	f := NewFormatter(false)

	got := f.FormatToast("Study", "Open the book", "reading")
	for _, want := range []string{"Study", "Open the book", "[reading]"} {
		if !strings.Contains(got, want) {
			t.Errorf("toast missing %q: %s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("uncolored toast contains ANSI escapes")
	}
}

func TestFormatErrorUncolored(t *testing.T) {
	f := NewFormatter(false)
	got := f.FormatError(errors.New("boom"))
	if got != "Error: boom" {
		t.Errorf("FormatError() = %q", got)
	}
}
