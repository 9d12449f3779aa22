// Package repl is the interactive management mode. Its first read also
// counts as the user gesture that arms the audio cue.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/AlexCorreaDJ/task-tame/internal/app"
	"github.com/AlexCorreaDJ/task-tame/internal/platform"
	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
	"github.com/AlexCorreaDJ/task-tame/internal/ui"
)

type REPL struct {
	app   *app.App
	rl    *readline.Instance
	armed bool
}

func NewREPL(a *app.App) (*REPL, error) {
	rl, err := readline.New("tasktame> ")
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}
	return &REPL{app: a, rl: rl}, nil
}

func (r *REPL) Start() error {
	defer r.rl.Close()

	fmt.Println(r.app.Formatter.FormatInfo("tasktame interactive mode. Type 'help' for commands."))

	for {
		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Println("Bye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		// The first keystroke is the user gesture that unlocks sound.
		if !r.armed {
			if r.app.Sound != nil {
				r.app.Sound.Arm()
			}
			r.armed = true
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" || cmd == "exit" {
			fmt.Println("Bye!")
			return nil
		}

		if err := r.handle(cmd, args); err != nil {
			fmt.Println(r.app.Formatter.FormatError(err))
		}
	}
}

func (r *REPL) handle(cmd string, args []string) error {
	switch cmd {
	case "help", "h":
		r.printHelp()
		return nil

	case "list", "ls":
		r.printReminders()
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: add HH:MM title...")
		}
		added, err := r.app.Registry.Add(reminder.Reminder{
			Title:    strings.Join(args[1:], " "),
			Time:     args[0],
			Type:     reminder.TypeCustom,
			IsActive: true,
		})
		if err != nil {
			return err
		}
		fmt.Println(r.app.Formatter.FormatSuccess("Added " + shortID(added.ID) + " at " + added.Time))
		return nil

	case "toggle":
		if len(args) != 1 {
			return fmt.Errorf("usage: toggle ID")
		}
		id, err := r.app.Registry.ResolveID(args[0])
		if err != nil {
			return err
		}
		toggled, err := r.app.Registry.Toggle(id)
		if err != nil {
			return err
		}
		state := "inactive"
		if toggled.IsActive {
			state = "active"
		}
		fmt.Println(r.app.Formatter.FormatSuccess("Reminder " + shortID(toggled.ID) + " is now " + state))
		return nil

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: rm ID")
		}
		id, err := r.app.Registry.ResolveID(args[0])
		if err != nil {
			return err
		}
		if err := r.app.Registry.Delete(id); err != nil {
			return err
		}
		fmt.Println(r.app.Formatter.FormatSuccess("Deleted " + shortID(id)))
		return nil

	case "test":
		if len(args) != 1 {
			return fmt.Errorf("usage: test ID")
		}
		id, err := r.app.Registry.ResolveID(args[0])
		if err != nil {
			return err
		}
		rem, ok := r.app.Registry.Get(id)
		if !ok {
			return fmt.Errorf("reminder %s not found", id)
		}
		r.app.Presenter.Present(rem)
		return nil

	case "task":
		if len(args) == 0 {
			return fmt.Errorf("usage: task title...")
		}
		added, err := r.app.Tasks.Add(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(r.app.Formatter.FormatSuccess("Task " + shortID(added.ID) + " added"))
		return nil

	case "tasks":
		for _, t := range r.app.Tasks.All() {
			mark := "[ ]"
			if t.Done {
				mark = "[x]"
			}
			fmt.Printf("%s %s %s\n", mark, r.app.Formatter.FormatHint(shortID(t.ID)), t.Title)
		}
		return nil

	case "done":
		if len(args) != 1 {
			return fmt.Errorf("usage: done ID")
		}
		id, err := r.app.Tasks.ResolveID(args[0])
		if err != nil {
			return err
		}
		if _, err := r.app.Tasks.Complete(id); err != nil {
			return err
		}
		fmt.Println(r.app.Formatter.FormatSuccess("Done."))
		return nil

	case "agenda":
		out, err := ui.RenderAgenda(r.app.Registry.List(), r.app.Tasks.All(), r.app.Config.UI.ColoredOutput)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil

	case "pomo":
		return r.handlePomodoro(args)

	case "status":
		desc := r.app.Refresh()
		fmt.Printf("platform %s, strategy %s, notifications %s\n",
			desc.Kind, r.app.Mode, desc.Query(platform.CapNotify))
		return nil

	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func (r *REPL) handlePomodoro(args []string) error {
	if len(args) == 0 {
		args = []string{"status"}
	}

	switch args[0] {
	case "start":
		mode := "focus"
		if len(args) > 1 {
			mode = args[1]
		}
		state, err := r.app.Pomodoro.Start(mode)
		if err != nil {
			return err
		}
		fmt.Println(r.app.Formatter.FormatSuccess(fmt.Sprintf("%s started, %dm", state.Mode, state.RemainingSeconds/60)))
	case "pause":
		if _, err := r.app.Pomodoro.Pause(); err != nil {
			return err
		}
		fmt.Println(r.app.Formatter.FormatSuccess("Paused."))
	case "resume":
		if _, err := r.app.Pomodoro.Resume(); err != nil {
			return err
		}
		fmt.Println(r.app.Formatter.FormatSuccess("Resumed."))
	case "reset":
		r.app.Pomodoro.Reset()
		fmt.Println(r.app.Formatter.FormatSuccess("Reset."))
	case "status":
		state := r.app.Pomodoro.Check()
		fmt.Printf("%s %s, %02d:%02d remaining, %d sessions done\n",
			state.Mode, state.Status,
			state.RemainingSeconds/60, state.RemainingSeconds%60,
			state.CompletedSessions)
	default:
		return fmt.Errorf("usage: pomo [start [mode]|pause|resume|reset|status]")
	}
	return nil
}

func (r *REPL) printReminders() {
	reminders := r.app.Registry.List()
	if len(reminders) == 0 {
		fmt.Println(r.app.Formatter.FormatHint("No reminders."))
		return
	}
	for _, rem := range reminders {
		mark := "[ ]"
		if rem.IsActive {
			mark = "[x]"
		}
		fmt.Printf("%s %s %s %s (%s)\n",
			mark, r.app.Formatter.FormatHint(shortID(rem.ID)), rem.Time, rem.Title, rem.Type)
	}
}

func (r *REPL) printHelp() {
	fmt.Print(`Commands:
  list                 show all reminders
  add HH:MM title...   add a daily reminder
  toggle ID            activate/deactivate a reminder
  rm ID                delete a reminder
  test ID              fire a reminder through the presenter now
  task title...        add a task
  tasks                show tasks
  done ID              complete a task
  pomo [subcommand]    pomodoro timer (start/pause/resume/reset/status)
  agenda               rendered agenda view
  status               re-probe platform capabilities
  quit                 exit
`)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
