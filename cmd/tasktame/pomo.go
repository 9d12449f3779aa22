package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexCorreaDJ/task-tame/internal/pomodoro"
)

func pomoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pomo",
		Short: "Pomodoro focus timer",
	}

	var mode string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus or break phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			state, err := a.Pomodoro.Start(mode)
			if err != nil {
				return err
			}
			fmt.Println(a.Formatter.FormatSuccess(fmt.Sprintf("%s started, %d minutes", state.Mode, state.RemainingSeconds/60)))
			return nil
		},
	}
	startCmd.Flags().StringVar(&mode, "mode", pomodoro.ModeFocus, "focus, short_break or long_break")
	cmd.AddCommand(startCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the running phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.Pomodoro.Pause(); err != nil {
				return err
			}
			fmt.Println(a.Formatter.FormatSuccess("Paused."))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Resume a paused phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.Pomodoro.Resume(); err != nil {
				return err
			}
			fmt.Println(a.Formatter.FormatSuccess("Resumed."))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Abandon the current phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			a.Pomodoro.Reset()
			fmt.Println(a.Formatter.FormatSuccess("Reset."))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the timer state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			state := a.Pomodoro.Check()
			fmt.Printf("%s %s, %02d:%02d remaining, %d sessions done\n",
				state.Mode, state.Status,
				state.RemainingSeconds/60, state.RemainingSeconds%60,
				state.CompletedSessions)
			return nil
		},
	})

	return cmd
}
