// Package lesson holds the classroom lesson content the assistant grounds
// its answers in.
package lesson

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Summary is the list-view shape of a lesson
type Summary struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
}

// Step is one labeled step of a structured section body
type Step struct {
	Step        string `json:"step" yaml:"step"`
	Description string `json:"description" yaml:"description"`
}

// Content is a section body: either freeform text or a sequence of labeled
// steps, never both. It serializes as a plain string or as a step array,
// matching what the frontend renders.
type Content struct {
	Text  string
	Steps []Step
}

// TextContent builds a freeform text body
func TextContent(text string) Content {
	return Content{Text: text}
}

// StepsContent builds a structured step-sequence body
func StepsContent(steps ...Step) Content {
	return Content{Steps: steps}
}

// IsSteps reports whether the body is the structured variant
func (c Content) IsSteps() bool {
	return c.Steps != nil
}

// Plain flattens the body to prompt-ready text. Steps become
// "Step: description" lines.
func (c Content) Plain() string {
	if !c.IsSteps() {
		return c.Text
	}
	var b strings.Builder
	for i, s := range c.Steps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Step)
		b.WriteString(": ")
		b.WriteString(s.Description)
	}
	return b.String()
}

// MarshalJSON encodes the body as a string or a step array
func (c Content) MarshalJSON() ([]byte, error) {
	if c.IsSteps() {
		return json.Marshal(c.Steps)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts either a string or a step array
func (c *Content) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = Content{Text: text}
		return nil
	}
	var steps []Step
	if err := json.Unmarshal(data, &steps); err == nil {
		*c = Content{Steps: steps}
		return nil
	}
	return fmt.Errorf("section content must be a string or a step list")
}

// MarshalYAML mirrors the JSON shape for lesson files
func (c Content) MarshalYAML() (interface{}, error) {
	if c.IsSteps() {
		return c.Steps, nil
	}
	return c.Text, nil
}

// UnmarshalYAML accepts either a string or a step list
func (c *Content) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var text string
	if err := unmarshal(&text); err == nil {
		*c = Content{Text: text}
		return nil
	}
	var steps []Step
	if err := unmarshal(&steps); err == nil {
		*c = Content{Steps: steps}
		return nil
	}
	return fmt.Errorf("section content must be a string or a step list")
}

// Section is one section of a lesson
type Section struct {
	ID      string  `json:"id" yaml:"id"`
	Title   string  `json:"title" yaml:"title"`
	Content Content `json:"content" yaml:"content"`
}

// Detail is the full body of a lesson
type Detail struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Summary  string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}
