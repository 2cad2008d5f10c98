// Package app sequences one tutoring turn: capture, transcription, prompt
// composition, inference, and detached speech output.
package app

import (
	"context"
	"log/slog"

	"github.com/vision-27/Teachi/internal/lesson"
	"github.com/vision-27/Teachi/internal/llm"
)

// noSpeechResponse is returned when a voice turn detects no speech
const noSpeechResponse = "No speech detected."

// degradedResponse is returned when the model process fails; the turn still
// completes with success semantics.
const degradedResponse = "Sorry, I could not reach the tutor right now. Please try again."

// SpeechListener captures and transcribes one utterance; "" means no speech
type SpeechListener interface {
	Listen(ctx context.Context) string
}

// Inferencer is the blocking, one-shot language model call
type Inferencer interface {
	Infer(ctx context.Context, prompt string) (string, error)
}

// Speaker accepts fire-and-forget speech jobs
type Speaker interface {
	Enqueue(text string)
}

// LessonSource is the read-only lesson lookup the assistant grounds
// answers in
type LessonSource interface {
	List() []lesson.Summary
	Context(lessonID, sectionID string) string
	FirstSectionContext(lessonID string) string
}

// TurnResult is the outcome of a text or voice turn
type TurnResult struct {
	Input    string `json:"input,omitempty"`
	Response string `json:"response"`
}

// ShortcutResult is the outcome of a shortcut turn
type ShortcutResult struct {
	Response string     `json:"response"`
	LessonID string     `json:"lesson_id"`
	Action   llm.Action `json:"action"`
}

// Assistant orchestrates tutoring turns. Within one turn everything is
// sequential except the speech enqueue, which is detached; across turns the
// microphone is the only serialized resource.
type Assistant struct {
	listener SpeechListener
	llm      Inferencer
	speech   Speaker
	lessons  LessonSource
	log      *slog.Logger
}

// NewAssistant wires the turn orchestrator. listener and speech may be nil
// for text-only deployments (the MCP server); voice turns then report no
// speech and produce no audio.
func NewAssistant(listener SpeechListener, inferencer Inferencer, speech Speaker, lessons LessonSource, log *slog.Logger) *Assistant {
	if log == nil {
		log = slog.Default()
	}
	return &Assistant{
		listener: listener,
		llm:      inferencer,
		speech:   speech,
		lessons:  lessons,
		log:      log,
	}
}

// TextTurn answers a typed question, grounded in the lesson section when it
// exists. A context miss is not an error; the clause is simply omitted.
func (a *Assistant) TextTurn(ctx context.Context, lessonID, sectionID, userText string) TurnResult {
	lessonContext := a.lessons.Context(lessonID, sectionID)
	prompt := composePrompt(systemPrompt, lessonContext, userText)

	response := a.infer(ctx, prompt)
	return TurnResult{Input: userText, Response: response}
}

// VoiceTurn captures a spoken question, answers it, and queues the answer
// for playback. The speech enqueue is fire-and-forget: the result is
// returned without waiting for audio.
func (a *Assistant) VoiceTurn(ctx context.Context, lessonID, sectionID string) TurnResult {
	spoken := a.listen(ctx)
	if spoken == "" {
		return TurnResult{Response: noSpeechResponse}
	}

	lessonContext := a.lessons.Context(lessonID, sectionID)
	prompt := composePrompt(systemPrompt, lessonContext, spoken)

	response := a.infer(ctx, prompt)

	if a.speech != nil {
		a.speech.Enqueue(response)
	}
	return TurnResult{Input: spoken, Response: response}
}

// ShortcutTurn captures a spoken request that either asks a question or
// moves to another lesson. One model call; the navigation intent is derived
// from its output.
func (a *Assistant) ShortcutTurn(ctx context.Context, lessonID string) ShortcutResult {
	spoken := a.listen(ctx)
	if spoken == "" {
		return ShortcutResult{Response: noSpeechResponse, Action: llm.ActionAsk}
	}

	lessons := a.lessonRefs()
	lessonContext := a.lessons.FirstSectionContext(lessonID)
	prompt := composePrompt(navigationPreamble(lessons), lessonContext, spoken)

	response := a.infer(ctx, prompt)

	targetID, action := llm.DetectNavigation(response, lessons)
	return ShortcutResult{Response: response, LessonID: targetID, Action: action}
}

// listen runs one listen cycle, or reports no speech when the deployment
// has no microphone
func (a *Assistant) listen(ctx context.Context) string {
	if a.listener == nil {
		a.log.Warn("voice turn requested but no listener is configured")
		return ""
	}
	return a.listener.Listen(ctx)
}

// infer runs the model call and absorbs failures into a degraded response,
// keeping the turn's success semantics
func (a *Assistant) infer(ctx context.Context, prompt string) string {
	response, err := a.llm.Infer(ctx, prompt)
	if err != nil {
		a.log.Error("inference failed", "error", err)
		return degradedResponse
	}
	return response
}

// lessonRefs projects the lesson list for navigation matching
func (a *Assistant) lessonRefs() []llm.LessonRef {
	summaries := a.lessons.List()
	refs := make([]llm.LessonRef, len(summaries))
	for i, s := range summaries {
		refs[i] = llm.LessonRef{ID: s.ID, Title: s.Title}
	}
	return refs
}
