// Package task is the KV-backed task list surrounding the reminder
// feature. Tasks have no delivery semantics of their own; reminders of
// type "task" simply point at this collection.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AlexCorreaDJ/task-tame/internal/kvstore"
	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

const storeKey = "tasks"

// Task is one entry in the list.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Done        bool       `json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// List provides CRUD over the persisted task collection.
type List struct {
	store kvstore.KV
}

func NewList(store kvstore.KV) *List {
	return &List{store: store}
}

// All returns every task, done or not, in insertion order.
func (l *List) All() []Task {
	var ts []Task
	l.store.Get(storeKey, &ts)
	return ts
}

// Open returns the tasks not yet completed.
func (l *List) Open() []Task {
	var open []Task
	for _, t := range l.All() {
		if !t.Done {
			open = append(open, t)
		}
	}
	return open
}

// Add appends a new task.
func (l *List) Add(title string) (Task, error) {
	title = reminder.Sanitize(title)
	if title == "" {
		return Task{}, fmt.Errorf("title is required")
	}
	if len(title) > reminder.MaxTitleLen {
		return Task{}, fmt.Errorf("title exceeds %d characters", reminder.MaxTitleLen)
	}

	t := Task{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	ts := append(l.All(), t)
	l.store.Set(storeKey, ts)
	return t, nil
}

// Complete marks a task done.
func (l *List) Complete(id string) (Task, error) {
	ts := l.All()
	for i := range ts {
		if ts[i].ID != id {
			continue
		}
		now := time.Now().UTC()
		ts[i].Done = true
		ts[i].CompletedAt = &now
		l.store.Set(storeKey, ts)
		return ts[i], nil
	}
	return Task{}, fmt.Errorf("task %s not found", id)
}

// ResolveID expands a unique id prefix to the full task id.
func (l *List) ResolveID(prefix string) (string, error) {
	var match string
	for _, t := range l.All() {
		if !strings.HasPrefix(t.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
		}
		match = t.ID
	}
	if match == "" {
		return "", fmt.Errorf("task %s not found", prefix)
	}
	return match, nil
}

// Remove deletes a task.
func (l *List) Remove(id string) error {
	ts := l.All()
	for i, t := range ts {
		if t.ID == id {
			l.store.Set(storeKey, append(ts[:i], ts[i+1:]...))
			return nil
		}
	}
	return fmt.Errorf("task %s not found", id)
}
