package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the task list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			added, err := a.Tasks.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(a.Formatter.FormatSuccess("Added task " + added.ID[:8]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tasks := a.Tasks.All()
			if len(tasks) == 0 {
				fmt.Println(a.Formatter.FormatHint("No tasks."))
				return nil
			}
			for _, t := range tasks {
				mark := "[ ]"
				if t.Done {
					mark = "[x]"
				}
				fmt.Printf("%s %s %s\n", mark, a.Formatter.FormatHint(t.ID[:8]), t.Title)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "done [id]",
		Short: "Complete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Tasks.ResolveID(args[0])
			if err != nil {
				return err
			}
			done, err := a.Tasks.Complete(id)
			if err != nil {
				return err
			}
			fmt.Println(a.Formatter.FormatSuccess("Done: " + done.Title))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Tasks.ResolveID(args[0])
			if err != nil {
				return err
			}
			if err := a.Tasks.Remove(id); err != nil {
				return err
			}
			fmt.Println(a.Formatter.FormatSuccess("Deleted " + id[:8]))
			return nil
		},
	})

	return cmd
}
