// Command mcp-tasktame provides an MCP server for reminder management.
//
// This server exposes tools for creating, listing, toggling, updating
// and deleting the daily reminders stored by tasktame.
//
// Usage:
//
//	./mcp-tasktame          # Start MCP server (stdio)
//	./mcp-tasktame --help   # Show help
//
// Environment:
//
//	TASKTAME_CONFIG  Path to the config file (default: ~/.tasktame/config.yaml)
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/AlexCorreaDJ/task-tame/internal/app"
	"github.com/AlexCorreaDJ/task-tame/internal/config"
	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	godotenv.Load()

	configPath := os.Getenv("TASKTAME_CONFIG")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	a, err := app.New(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	s := reminder.NewServer(a.Registry)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`mcp-tasktame - MCP server for tasktame reminders

Tools:
  add_reminder     Add a daily reminder (title, HH:MM time, type)
  list_reminders   List all reminders
  toggle_reminder  Activate/deactivate a reminder
  update_reminder  Change a reminder's fields
  delete_reminder  Delete a reminder and cancel its delivery

The server speaks MCP over stdio. Point your client at this binary.`)
}
