package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

func remindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage daily reminders",
	}

	cmd.AddCommand(remindAddCmd())
	cmd.AddCommand(remindListCmd())
	cmd.AddCommand(remindToggleCmd())
	cmd.AddCommand(remindSetCmd())
	cmd.AddCommand(remindRmCmd())
	cmd.AddCommand(remindTestCmd())

	return cmd
}

func remindAddCmd() *cobra.Command {
	var at, typ, desc string
	var balloon, alarm bool

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a daily reminder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			added, err := a.Registry.Add(reminder.Reminder{
				Title:             strings.Join(args, " "),
				Description:       desc,
				Time:              at,
				Type:              typ,
				IsActive:          true,
				UseBalloonStyle:   balloon,
				CreateSystemAlarm: alarm,
			})
			if err != nil {
				return err
			}

			fmt.Println(a.Formatter.FormatSuccess(fmt.Sprintf("Added %s at %s", added.ID[:8], added.Time)))
			if added.IsActive && added.NativeID == nil && a.Mode == reminder.ModeNative {
				// Registration failed; delivery falls back to in-app
				// channels while the daemon is running.
				fmt.Println(a.Formatter.FormatHint("Note: OS scheduling unavailable, reminder will only fire while tasktamed runs."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "time", "", "time of day, HH:MM 24h (required)")
	cmd.Flags().StringVar(&typ, "type", reminder.TypeCustom, "type: task, reading, project, break, custom")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().BoolVar(&balloon, "balloon", false, "use the rich push presentation when available")
	cmd.Flags().BoolVar(&alarm, "alarm", false, "also request a redundant OS-level alarm")
	cmd.MarkFlagRequired("time")

	return cmd
}

func remindListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			reminders := a.Registry.List()
			if len(reminders) == 0 {
				fmt.Println(a.Formatter.FormatHint("No reminders."))
				return nil
			}

			for _, r := range reminders {
				mark := "[ ]"
				if r.IsActive {
					mark = "[x]"
				}
				line := fmt.Sprintf("%s %s %s %s (%s)", mark, a.Formatter.FormatHint(r.ID[:8]), r.Time, r.Title, r.Type)
				if r.NativeID != nil {
					line += " " + a.Formatter.FormatHint(fmt.Sprintf("os:%d", *r.NativeID))
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func remindToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id]",
		Short: "Activate or deactivate a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Registry.ResolveID(args[0])
			if err != nil {
				return err
			}
			toggled, err := a.Registry.Toggle(id)
			if err != nil {
				return err
			}

			state := "inactive"
			if toggled.IsActive {
				state = "active"
			}
			fmt.Println(a.Formatter.FormatSuccess(fmt.Sprintf("Reminder %s is now %s", toggled.ID[:8], state)))
			return nil
		},
	}
}

func remindSetCmd() *cobra.Command {
	var at, typ, desc, title string

	cmd := &cobra.Command{
		Use:   "set [id]",
		Short: "Update a reminder's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Registry.ResolveID(args[0])
			if err != nil {
				return err
			}

			var fields reminder.UpdateFields
			if cmd.Flags().Changed("time") {
				fields.Time = &at
			}
			if cmd.Flags().Changed("type") {
				fields.Type = &typ
			}
			if cmd.Flags().Changed("desc") {
				fields.Description = &desc
			}
			if cmd.Flags().Changed("title") {
				fields.Title = &title
			}

			updated, err := a.Registry.Update(id, fields)
			if err != nil {
				return err
			}
			fmt.Println(a.Formatter.FormatSuccess(fmt.Sprintf("Updated %s (%s %s)", updated.ID[:8], updated.Time, updated.Title)))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "time", "", "new time of day, HH:MM 24h")
	cmd.Flags().StringVar(&typ, "type", "", "new type")
	cmd.Flags().StringVar(&desc, "desc", "", "new description")
	cmd.Flags().StringVar(&title, "title", "", "new title")

	return cmd
}

func remindRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Registry.ResolveID(args[0])
			if err != nil {
				return err
			}
			if err := a.Registry.Delete(id); err != nil {
				return err
			}
			fmt.Println(a.Formatter.FormatSuccess("Deleted " + id[:8]))
			return nil
		},
	}
}

func remindTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test [id]",
		Short: "Fire a reminder through the presenter now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Registry.ResolveID(args[0])
			if err != nil {
				return err
			}
			r, ok := a.Registry.Get(id)
			if !ok {
				return fmt.Errorf("reminder %s not found", id)
			}

			if a.Sound != nil {
				a.Sound.Arm()
			}
			a.Presenter.Present(r)
			return nil
		},
	}
}
