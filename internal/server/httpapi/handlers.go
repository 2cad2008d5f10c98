package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// askRequest is the /text request body. lessons_step is sent by the
// frontend but unused server-side; it is accepted for schema compatibility.
type askRequest struct {
	LessonID        string `json:"lesson_id"`
	LessonSectionID string `json:"lesson_section_id"`
	LessonsStep     string `json:"lessons_step"`
	UserPrompt      string `json:"userPrompt"`
}

// voiceRequest is the /voice request body
type voiceRequest struct {
	LessonID        string `json:"lesson_id"`
	LessonSectionID string `json:"lesson_section_id"`
	LessonsStep     string `json:"lessons_step"`
}

// shortcutRequest is the /shortcut request body
type shortcutRequest struct {
	LessonID string `json:"lesson_id"`
}

// notFoundBody mirrors the error shape the frontend expects
type notFoundBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) handleListLessons(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.List())
}

func (s *Server) handleLessonDetail(c echo.Context) error {
	id := c.Param("id")
	detail, ok := s.store.Detail(id)
	if !ok {
		return c.JSON(http.StatusNotFound, notFoundBody{
			Error:   "Lesson not found",
			Message: "No lesson found with id: " + id,
		})
	}
	return c.JSON(http.StatusOK, detail)
}

func (s *Server) handleText(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := s.assistant.TextTurn(c.Request().Context(), req.LessonID, req.LessonSectionID, req.UserPrompt)
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleVoice(c echo.Context) error {
	var req voiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := s.assistant.VoiceTurn(c.Request().Context(), req.LessonID, req.LessonSectionID)
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleShortcut(c echo.Context) error {
	var req shortcutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := s.assistant.ShortcutTurn(c.Request().Context(), req.LessonID)
	return c.JSON(http.StatusOK, result)
}
