package reminder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "tasktame-reminder"
	serverVersion = "1.0.0"
)

// Server is the MCP server exposing reminder management tools.
type Server struct {
	mcpServer *server.MCPServer
	registry  *Registry
}

// NewServer creates a new reminder MCP server backed by the registry.
func NewServer(registry *Registry) *Server {
	s := &Server{
		registry: registry,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	// add_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a daily reminder with a title, time of day, optional description and type"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
			mcp.WithString("time", mcp.Required(), mcp.Description("Time of day in HH:MM 24h format (e.g. 14:30)")),
			mcp.WithString("description", mcp.Description("Optional description")),
			mcp.WithString("type", mcp.Description("Type: task, reading, project, break, custom (default: custom)")),
			mcp.WithBoolean("balloon", mcp.Description("Use the rich push presentation when available")),
			mcp.WithBoolean("system_alarm", mcp.Description("Also request a redundant OS-level alarm")),
		),
		s.handleAddReminder,
	)

	// list_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List all reminders, active and inactive"),
		),
		s.handleListReminders,
	)

	// toggle_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("toggle_reminder",
			mcp.WithDescription("Flip a reminder between active and inactive"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id or unique prefix")),
		),
		s.handleToggleReminder,
	)

	// delete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently, cancelling any scheduled delivery"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id or unique prefix")),
		),
		s.handleDeleteReminder,
	)

	// update_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("update_reminder",
			mcp.WithDescription("Update a reminder's fields (title, description, time, type)"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id or unique prefix")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithString("time", mcp.Description("New time of day in HH:MM 24h format")),
			mcp.WithString("type", mcp.Description("New type: task, reading, project, break, custom")),
		),
		s.handleUpdateReminder,
	)
}

func (s *Server) handleAddReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := Reminder{
		Title:             req.GetString("title", ""),
		Description:       req.GetString("description", ""),
		Time:              req.GetString("time", ""),
		Type:              req.GetString("type", ""),
		IsActive:          true,
		UseBalloonStyle:   req.GetBool("balloon", false),
		CreateSystemAlarm: req.GetBool("system_alarm", false),
	}

	added, err := s.registry.Add(r)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(added, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleListReminders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders := s.registry.List()
	if len(reminders) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}

	output, _ := json.MarshalIndent(reminders, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleToggleReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolve(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	toggled, err := s.registry.Toggle(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle reminder: %v", err)), nil
	}

	state := "inactive"
	if toggled.IsActive {
		state = "active"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s is now %s.", toggled.ID, state)), nil
}

func (s *Server) handleDeleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolve(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.registry.Delete(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s deleted.", id)), nil
}

func (s *Server) handleUpdateReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolve(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var fields UpdateFields
	if v := req.GetString("title", ""); v != "" {
		fields.Title = &v
	}
	if v := req.GetString("description", ""); v != "" {
		fields.Description = &v
	}
	if v := req.GetString("time", ""); v != "" {
		fields.Time = &v
	}
	if v := req.GetString("type", ""); v != "" {
		fields.Type = &v
	}

	updated, err := s.registry.Update(id, fields)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(updated, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) resolve(req mcp.CallToolRequest) (string, error) {
	prefix := req.GetString("id", "")
	if prefix == "" {
		return "", fmt.Errorf("id is required")
	}
	return s.registry.ResolveID(prefix)
}
