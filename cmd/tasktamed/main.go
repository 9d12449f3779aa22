// Command tasktamed is the reminder daemon. It probes the platform
// once, syncs native registrations with the stored registry, and on
// platforms without an autonomous scheduler runs the polling loop until
// signalled.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/AlexCorreaDJ/task-tame/internal/app"
	"github.com/AlexCorreaDJ/task-tame/internal/config"
	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
	"github.com/AlexCorreaDJ/task-tame/internal/scheduler"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	flag.Parse()

	// Optional .env next to the working directory; absence is fine
	godotenv.Load()

	a, err := app.New(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	log.Printf("[tasktamed] platform %s, strategy %s", a.Desc.Kind, a.Mode)

	// Bring the OS scheduler in line with the stored registry before
	// anything can fire.
	a.Registry.SyncNative()

	var poller *scheduler.Poller
	if a.Mode == reminder.ModePolling {
		poller = scheduler.NewPoller(a.Registry, a.Presenter, a.PollInterval())
		if err := poller.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// The pomodoro timer advances on its own coarse tick; reminders on
	// the native strategy fire without us.
	pomoStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-pomoStop:
				return
			case <-ticker.C:
				a.Pomodoro.Check()
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("[tasktamed] shutting down")
	close(pomoStop)
	if poller != nil {
		poller.Stop()
	}
}
