// Package mcp exposes the tutor to agent clients over the Model Context
// Protocol. Text turns only: no microphone, no speech output.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vision-27/Teachi/internal/app"
	"github.com/vision-27/Teachi/internal/lesson"
)

// Config identifies the MCP server to clients
type Config struct {
	ServerName    string
	ServerVersion string
}

// Server wraps the MCP stdio server around the assistant
type Server struct {
	config    Config
	mcpServer *sdk.Server
	assistant *app.Assistant
	store     *lesson.Store
}

// NewServer creates the MCP server and registers the tutor tools
func NewServer(cfg Config, assistant *app.Assistant, store *lesson.Store) *Server {
	s := &Server{
		config:    cfg,
		assistant: assistant,
		store:     store,
	}

	s.mcpServer = sdk.NewServer(&sdk.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}, nil)

	s.registerTools()

	return s
}

// Start serves MCP over stdio until the client disconnects
func (s *Server) Start(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdk.StdioTransport{})
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "ask_tutor",
		Description: "Ask the classroom tutoring assistant a question, optionally grounded in a lesson section",
	}, s.handleAskTutor)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "list_lessons",
		Description: "List the lessons the tutor knows about",
	}, s.handleListLessons)
}
