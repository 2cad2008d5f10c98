package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskTutorArgs are the ask_tutor tool arguments
type AskTutorArgs struct {
	Question        string `json:"question" jsonschema:"required,description=The student question to answer"`
	LessonID        string `json:"lesson_id,omitempty" jsonschema:"description=Lesson to ground the answer in"`
	LessonSectionID string `json:"lesson_section_id,omitempty" jsonschema:"description=Section of the lesson to ground the answer in"`
}

// ListLessonsArgs are the list_lessons tool arguments
type ListLessonsArgs struct{}

func (s *Server) handleAskTutor(ctx context.Context, req *sdk.CallToolRequest, args AskTutorArgs) (*sdk.CallToolResult, any, error) {
	if args.Question == "" {
		return nil, nil, fmt.Errorf("question is required")
	}

	result := s.assistant.TextTurn(ctx, args.LessonID, args.LessonSectionID, args.Question)

	return &sdk.CallToolResult{
		Content: []sdk.Content{
			&sdk.TextContent{Text: result.Response},
		},
	}, nil, nil
}

func (s *Server) handleListLessons(ctx context.Context, req *sdk.CallToolRequest, args ListLessonsArgs) (*sdk.CallToolResult, any, error) {
	lessons := s.store.List()

	content := []sdk.Content{
		&sdk.TextContent{Text: fmt.Sprintf("Known lessons (%d):", len(lessons))},
	}
	for _, l := range lessons {
		content = append(content, &sdk.TextContent{Text: fmt.Sprintf("- %s: %s (%s)", l.ID, l.Title, l.Summary)})
	}

	return &sdk.CallToolResult{Content: content}, nil, nil
}
