// Command tasktame is the management CLI: reminders, tasks, pomodoro
// and the rendered agenda. Delivery itself is handled by tasktamed (or
// the OS scheduler on desktop sessions).
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AlexCorreaDJ/task-tame/internal/app"
	"github.com/AlexCorreaDJ/task-tame/internal/config"
	"github.com/AlexCorreaDJ/task-tame/internal/platform"
	"github.com/AlexCorreaDJ/task-tame/internal/repl"
	"github.com/AlexCorreaDJ/task-tame/internal/ui"
)

var configPath string

func main() {
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "tasktame",
		Short: "Personal reminders, tasks and pomodoro in the terminal",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.GetDefaultConfigPath(), "config file path")

	rootCmd.AddCommand(remindCmd())
	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(pomoCmd())
	rootCmd.AddCommand(agendaCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(replCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getApp() (*app.App, error) {
	return app.New(configPath)
}

func agendaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agenda",
		Short: "Show the rendered agenda",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out, err := ui.RenderAgenda(a.Registry.List(), a.Tasks.All(), a.Config.UI.ColoredOutput)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show platform capabilities and the delivery strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			desc := a.Refresh()
			fmt.Printf("platform:  %s\n", desc.Kind)
			fmt.Printf("strategy:  %s\n", a.Mode)
			for _, c := range []platform.Capability{
				platform.CapNotify, platform.CapStorage, platform.CapIdleInhibit,
			} {
				fmt.Printf("%-26s %s\n", string(c)+":", desc.Query(c))
			}
			if desc.NotifyCmd != "" {
				fmt.Printf("notifier:  %s\n", desc.NotifyCmd)
			}
			return nil
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			r, err := repl.NewREPL(a)
			if err != nil {
				return err
			}
			return r.Start()
		},
	}
}
