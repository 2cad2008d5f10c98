package lesson

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store is an in-memory, read-only lesson lookup. Lookups never fail: a
// missing lesson or section yields the zero value, not an error.
type Store struct {
	order   []Summary
	details map[string]Detail
}

// NewStore returns a store seeded with the built-in lessons
func NewStore() *Store {
	return newStore(builtinLessons())
}

// LoadStore reads lesson data from a YAML file, replacing the built-in set
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lessons file: %w", err)
	}

	var details []Detail
	if err := yaml.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("failed to parse lessons file: %w", err)
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("lessons file %s contains no lessons", path)
	}

	return newStore(details), nil
}

func newStore(details []Detail) *Store {
	s := &Store{details: make(map[string]Detail, len(details))}
	for _, d := range details {
		s.order = append(s.order, Summary{ID: d.ID, Title: d.Title, Summary: d.Summary})
		s.details[d.ID] = d
	}
	return s
}

// List returns lesson summaries in their defined order
func (s *Store) List() []Summary {
	out := make([]Summary, len(s.order))
	copy(out, s.order)
	return out
}

// Detail returns the full lesson body
func (s *Store) Detail(lessonID string) (Detail, bool) {
	d, ok := s.details[lessonID]
	return d, ok
}

// Context returns the prompt-ready text of one lesson section, or "" when
// either the lesson or the section does not exist.
func (s *Store) Context(lessonID, sectionID string) string {
	d, ok := s.details[lessonID]
	if !ok {
		return ""
	}
	for _, sec := range d.Sections {
		if sec.ID == sectionID {
			return sec.Content.Plain()
		}
	}
	return ""
}

// FirstSectionContext returns the text of a lesson's first section, used by
// shortcut turns where no section is selected. "" when absent.
func (s *Store) FirstSectionContext(lessonID string) string {
	d, ok := s.details[lessonID]
	if !ok || len(d.Sections) == 0 {
		return ""
	}
	return d.Sections[0].Content.Plain()
}
