package app

import (
	"fmt"
	"strings"

	"github.com/vision-27/Teachi/internal/llm"
)

// systemPrompt is the fixed instruction preamble for every turn
const systemPrompt = "You are an AI teaching assistant for classrooms. " +
	"Answer clearly, step by step, using simple examples. " +
	"Contextualize answers to the current lesson. " +
	"Support the teacher, never reference the internet. " +
	"Use natural cadence, short sentences, occasional pauses, and friendly tone (max 50 words). " +
	"Understand that you are part of a teaching tool, and your goal is to assist learning."

// composePrompt builds the single prompt string for a turn. Pure and
// deterministic. An empty lessonContext omits the context clause entirely
// so no placeholder text leaks into the prompt.
func composePrompt(preamble, lessonContext, userText string) string {
	var b strings.Builder
	b.WriteString(preamble)
	if lessonContext != "" {
		b.WriteString("\n\nThis is the lesson context: ")
		b.WriteString(lessonContext)
	}
	b.WriteString("\n\nThis is the user prompt: ")
	b.WriteString(userText)
	return b.String()
}

// navigationPreamble extends the system prompt with the known lesson list so
// the model can name a lesson to move to.
func navigationPreamble(lessons []llm.LessonRef) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nYou can help users navigate lessons or answer questions. " +
		"If they want to move to a different lesson, respond with the lesson ID. Available lessons:")
	for _, l := range lessons {
		fmt.Fprintf(&b, "\n- %s: %s", l.ID, l.Title)
	}
	return b.String()
}
