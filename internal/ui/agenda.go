package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
	"github.com/AlexCorreaDJ/task-tame/internal/task"
)

// RenderAgenda produces the terminal agenda view: reminders grouped by
// state plus the open task list, rendered from markdown.
func RenderAgenda(reminders []reminder.Reminder, tasks []task.Task, colored bool) (string, error) {
	md := buildAgendaMarkdown(reminders, tasks)

	if !colored {
		return md, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render agenda: %w", err)
	}
	return out, nil
}

func buildAgendaMarkdown(reminders []reminder.Reminder, tasks []task.Task) string {
	var b strings.Builder

	b.WriteString("# Agenda\n\n")

	b.WriteString("## Reminders\n\n")
	if len(reminders) == 0 {
		b.WriteString("_No reminders configured._\n\n")
	} else {
		for _, r := range reminders {
			state := " "
			if r.IsActive {
				state = "x"
			}
			b.WriteString(fmt.Sprintf("- [%s] **%s** `%s` (%s)", state, r.Title, r.Time, r.Type))
			if r.Description != "" {
				b.WriteString(" — " + r.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Tasks\n\n")
	if len(tasks) == 0 {
		b.WriteString("_No open tasks._\n")
	} else {
		for _, t := range tasks {
			state := " "
			if t.Done {
				state = "x"
			}
			b.WriteString(fmt.Sprintf("- [%s] %s\n", state, t.Title))
		}
	}

	return b.String()
}
