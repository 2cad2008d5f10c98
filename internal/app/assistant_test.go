package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/vision-27/Teachi/internal/lesson"
	"github.com/vision-27/Teachi/internal/llm"
)

type fakeListener struct {
	transcript string
	calls      int
}

func (l *fakeListener) Listen(ctx context.Context) string {
	l.calls++
	return l.transcript
}

type fakeInferencer struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeInferencer) Infer(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeSpeaker struct {
	mu    sync.Mutex
	texts []string
}

func (s *fakeSpeaker) Enqueue(text string) {
	s.mu.Lock()
	s.texts = append(s.texts, text)
	s.mu.Unlock()
}

func testStore(t *testing.T) *lesson.Store {
	t.Helper()
	return lesson.NewStore()
}

func TestTextTurnGroundsPromptInSection(t *testing.T) {
	inf := &fakeInferencer{response: "Evaporation turns water into vapor."}
	a := NewAssistant(nil, inf, nil, testStore(t), nil)

	got := a.TextTurn(context.Background(), "water-cycle", "stages", "what is evaporation?")

	if got.Input != "what is evaporation?" {
		t.Fatalf("Input = %q, want the question echoed back", got.Input)
	}
	if got.Response != "Evaporation turns water into vapor." {
		t.Fatalf("Response = %q", got.Response)
	}
	if len(inf.prompts) != 1 {
		t.Fatalf("expected exactly one inference call, got %d", len(inf.prompts))
	}
	prompt := inf.prompts[0]
	if !strings.Contains(prompt, "Evaporation:") {
		t.Fatalf("prompt missing section content:\n%s", prompt)
	}
	if !strings.Contains(prompt, "what is evaporation?") {
		t.Fatalf("prompt missing user question:\n%s", prompt)
	}
}

func TestTextTurnUnknownSectionOmitsContext(t *testing.T) {
	inf := &fakeInferencer{response: "ok"}
	a := NewAssistant(nil, inf, nil, testStore(t), nil)

	a.TextTurn(context.Background(), "water-cycle", "no-such-section", "hello")

	prompt := inf.prompts[0]
	if strings.Contains(prompt, "This is the lesson context") {
		t.Fatalf("context clause present for a missing section:\n%s", prompt)
	}
	if !strings.Contains(prompt, "hello") {
		t.Fatalf("prompt missing user question:\n%s", prompt)
	}
}

func TestVoiceTurnSpeaksTheAnswer(t *testing.T) {
	listener := &fakeListener{transcript: "why is the sky blue"}
	inf := &fakeInferencer{response: "Because of how light scatters."}
	speaker := &fakeSpeaker{}
	a := NewAssistant(listener, inf, speaker, testStore(t), nil)

	got := a.VoiceTurn(context.Background(), "water-cycle", "intro")

	if got.Input != "why is the sky blue" {
		t.Fatalf("Input = %q, want transcript", got.Input)
	}
	if got.Response != "Because of how light scatters." {
		t.Fatalf("Response = %q", got.Response)
	}
	if len(speaker.texts) != 1 || speaker.texts[0] != got.Response {
		t.Fatalf("answer not queued for playback: %v", speaker.texts)
	}
}

func TestVoiceTurnNoSpeech(t *testing.T) {
	listener := &fakeListener{transcript: ""}
	inf := &fakeInferencer{response: "never"}
	speaker := &fakeSpeaker{}
	a := NewAssistant(listener, inf, speaker, testStore(t), nil)

	got := a.VoiceTurn(context.Background(), "water-cycle", "intro")

	if got.Response != "No speech detected." {
		t.Fatalf("Response = %q, want the no-speech message", got.Response)
	}
	if got.Input != "" {
		t.Fatalf("Input = %q, want empty on no speech", got.Input)
	}
	if len(inf.prompts) != 0 {
		t.Fatal("inference must not run when no speech was detected")
	}
	if len(speaker.texts) != 0 {
		t.Fatal("nothing must be queued for playback when no speech was detected")
	}
}

func TestVoiceTurnWithoutListener(t *testing.T) {
	inf := &fakeInferencer{response: "never"}
	a := NewAssistant(nil, inf, nil, testStore(t), nil)

	got := a.VoiceTurn(context.Background(), "water-cycle", "intro")
	if got.Response != "No speech detected." {
		t.Fatalf("Response = %q, want the no-speech message", got.Response)
	}
	if len(inf.prompts) != 0 {
		t.Fatal("inference must not run without a listener")
	}
}

func TestTurnSurvivesInferenceFailure(t *testing.T) {
	inf := &fakeInferencer{err: fmt.Errorf("model process exited 1")}
	a := NewAssistant(nil, inf, nil, testStore(t), nil)

	got := a.TextTurn(context.Background(), "water-cycle", "intro", "hi")
	if got.Response != degradedResponse {
		t.Fatalf("Response = %q, want the degraded message", got.Response)
	}
	if got.Input != "hi" {
		t.Fatalf("Input = %q, want the question preserved", got.Input)
	}
}

func TestShortcutTurnNavigates(t *testing.T) {
	listener := &fakeListener{transcript: "take me to the friction lesson"}
	inf := &fakeInferencer{response: "Sure, let's move to Friction."}
	a := NewAssistant(listener, inf, nil, testStore(t), nil)

	got := a.ShortcutTurn(context.Background(), "water-cycle")

	if got.Action != llm.ActionMove {
		t.Fatalf("Action = %q, want %q", got.Action, llm.ActionMove)
	}
	if got.LessonID != "friction" {
		t.Fatalf("LessonID = %q, want %q", got.LessonID, "friction")
	}
	if got.Response != "Sure, let's move to Friction." {
		t.Fatalf("Response = %q", got.Response)
	}

	// The navigation preamble must list the available lessons
	prompt := inf.prompts[0]
	if !strings.Contains(prompt, "water-cycle") || !strings.Contains(prompt, "friction") {
		t.Fatalf("prompt missing lesson listing:\n%s", prompt)
	}
}

func TestShortcutTurnPlainQuestion(t *testing.T) {
	listener := &fakeListener{transcript: "what causes rain"}
	inf := &fakeInferencer{response: "Rain forms when vapor condenses and falls."}
	a := NewAssistant(listener, inf, nil, testStore(t), nil)

	got := a.ShortcutTurn(context.Background(), "water-cycle")

	if got.Action != llm.ActionAsk {
		t.Fatalf("Action = %q, want %q", got.Action, llm.ActionAsk)
	}
	if got.LessonID != "" {
		t.Fatalf("LessonID = %q, want empty for a plain answer", got.LessonID)
	}
}

func TestShortcutTurnNoSpeech(t *testing.T) {
	listener := &fakeListener{transcript: ""}
	inf := &fakeInferencer{response: "never"}
	a := NewAssistant(listener, inf, nil, testStore(t), nil)

	got := a.ShortcutTurn(context.Background(), "water-cycle")

	if got.Response != "No speech detected." {
		t.Fatalf("Response = %q, want the no-speech message", got.Response)
	}
	if got.Action != llm.ActionAsk {
		t.Fatalf("Action = %q, want %q", got.Action, llm.ActionAsk)
	}
	if len(inf.prompts) != 0 {
		t.Fatal("inference must not run when no speech was detected")
	}
}
