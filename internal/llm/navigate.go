package llm

import "strings"

// Action is what a shortcut turn resolved to: answering the question or
// moving to another lesson.
type Action string

const (
	// ActionAsk means the response is a plain answer
	ActionAsk Action = "ask"
	// ActionMove means the response asks to navigate to another lesson
	ActionMove Action = "move"
)

// LessonRef identifies a lesson the navigation scan can match against
type LessonRef struct {
	ID    string
	Title string
}

// navigationKeywords are the phrases that signal a lesson-switch intent
var navigationKeywords = []string{"go to", "move to", "navigate", "switch to"}

// DetectNavigation scans a model response for lesson-switch intent. It is a
// keyword heuristic, not an intent parser: a navigation phrase plus the first
// lesson whose title occurs in the lowered response wins. Lesson content that
// happens to mention "go to" can produce a false positive, and phrasings
// outside the keyword list are missed.
func DetectNavigation(response string, lessons []LessonRef) (lessonID string, action Action) {
	lower := strings.ToLower(response)

	keyword := false
	for _, kw := range navigationKeywords {
		if strings.Contains(lower, kw) {
			keyword = true
			break
		}
	}
	if !keyword {
		return "", ActionAsk
	}

	// First lesson in list order whose title matches wins; no scoring
	for _, l := range lessons {
		if l.Title != "" && strings.Contains(lower, strings.ToLower(l.Title)) {
			return l.ID, ActionMove
		}
	}

	return "", ActionAsk
}
