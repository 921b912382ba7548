// Package dataset loads the static school document: students, calendar
// events and message templates. The document is read once and never
// written back.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/stemsi/educonnect-backend/internal/model"
)

//go:embed database.json
var embedded []byte

// Dataset is the read-only school document. Accessors return copies so
// callers cannot alter the shared records.
type Dataset struct {
	students  []model.Student
	events    []model.CalendarEvent
	templates []model.MessageTemplate
}

type document struct {
	Students  []model.Student         `json:"alunos"`
	Events    []model.CalendarEvent   `json:"eventos_calendario"`
	Templates []model.MessageTemplate `json:"mensagens_predefinidas"`
}

// Load reads the dataset from path, or the embedded default when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Parse(bytes.NewReader(embedded))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a dataset document.
func Parse(r io.Reader) (*Dataset, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return New(doc.Students, doc.Events, doc.Templates), nil
}

// New builds a dataset from in-memory records.
func New(students []model.Student, events []model.CalendarEvent, templates []model.MessageTemplate) *Dataset {
	return &Dataset{
		students:  append([]model.Student{}, students...),
		events:    cloneEvents(events),
		templates: append([]model.MessageTemplate{}, templates...),
	}
}

// Students returns every student record.
func (d *Dataset) Students() []model.Student {
	return append([]model.Student{}, d.students...)
}

// Events returns the calendar events shipped with the dataset.
func (d *Dataset) Events() []model.CalendarEvent {
	return cloneEvents(d.events)
}

// Templates returns every message template.
func (d *Dataset) Templates() []model.MessageTemplate {
	return append([]model.MessageTemplate{}, d.templates...)
}

// StudentByID looks up a student by its identifier.
func (d *Dataset) StudentByID(id string) (model.Student, bool) {
	for _, s := range d.students {
		if s.ID == id {
			return s, true
		}
	}
	return model.Student{}, false
}

// TemplateByID looks up a message template by its identifier.
func (d *Dataset) TemplateByID(id string) (model.MessageTemplate, bool) {
	for _, t := range d.templates {
		if t.ID == id {
			return t, true
		}
	}
	return model.MessageTemplate{}, false
}

func cloneEvents(events []model.CalendarEvent) []model.CalendarEvent {
	out := make([]model.CalendarEvent, len(events))
	for i, e := range events {
		e.Series = append([]string{}, e.Series...)
		out[i] = e
	}
	return out
}
