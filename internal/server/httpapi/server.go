// Package httpapi exposes the tutoring assistant to the classroom frontend.
package httpapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vision-27/Teachi/internal/app"
	"github.com/vision-27/Teachi/internal/lesson"
)

// Config holds HTTP server settings
type Config struct {
	// AllowOrigins are the CORS origins of the frontend
	AllowOrigins []string
}

// Server bundles the router and the assistant behind it
type Server struct {
	echo      *echo.Echo
	assistant *app.Assistant
	store     *lesson.Store
}

// New creates a configured server with all routes registered
func New(cfg Config, assistant *app.Assistant, store *lesson.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if len(cfg.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.AllowOrigins,
			AllowCredentials: true,
		}))
	}

	s := &Server{echo: e, assistant: assistant, store: store}

	e.GET("/healthz", s.handleHealth)
	e.GET("/api/lessons", s.handleListLessons)
	e.GET("/api/lessons/:id", s.handleLessonDetail)
	e.POST("/text", s.handleText)
	e.POST("/voice", s.handleVoice)
	e.POST("/shortcut", s.handleShortcut)

	return s
}

// Start begins serving on addr, blocking until shutdown
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler returns the http.Handler, for tests
func (s *Server) Handler() *echo.Echo {
	return s.echo
}
