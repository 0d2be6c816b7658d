// Package export converts a parsed gantt document into a JSON model and
// validates it against a JSON Schema.
package export

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/nibzard/ganttfmt/internal/gantt"
)

// SchemaVersion is the version of the JSON model.
const SchemaVersion = 1

// Model is the JSON view of a document.
type Model struct {
	SchemaVersion int       `json:"schema_version"`
	Frontmatter   []string  `json:"frontmatter,omitempty"`
	Title         string    `json:"title,omitempty"`
	DateFormat    string    `json:"date_format,omitempty"`
	Directives    []Line    `json:"directives,omitempty"`
	Sections      []Section `json:"sections"`
	Widths        Widths    `json:"widths"`
	TaskCount     int       `json:"task_count"`
}

// Line is a passthrough line and its position in the input.
type Line struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// Section is a group of tasks.
type Section struct {
	Name        string `json:"name,omitempty"`
	Line        int    `json:"line"`
	Implicit    bool   `json:"implicit,omitempty"`
	Tasks       []Task `json:"tasks"`
	Passthrough []Line `json:"passthrough,omitempty"`
}

// Task is one timeline entry with its typed fields.
type Task struct {
	Line      int    `json:"line"`
	Label     string `json:"label"`
	Status    string `json:"status,omitempty"`
	Modifier  string `json:"modifier,omitempty"`
	ID        string `json:"id,omitempty"`
	Start     string `json:"start,omitempty"`
	StartKind string `json:"start_kind,omitempty"`
	Span      string `json:"span,omitempty"`
	SpanKind  string `json:"span_kind,omitempty"`
}

// Widths are the computed column widths, in runes or terminal cells.
type Widths struct {
	Label    int `json:"label"`
	Status   int `json:"status"`
	Modifier int `json:"modifier"`
	ID       int `json:"id"`
	Start    int `json:"start"`
	Span     int `json:"span"`
}

// FromDocument builds the JSON model of doc.
func FromDocument(doc *gantt.Document, widths gantt.Widths) *Model {
	m := &Model{
		SchemaVersion: SchemaVersion,
		Sections:      []Section{},
		Widths: Widths{
			Label:    widths.Label,
			Status:   widths.Column(gantt.ColumnStatus),
			Modifier: widths.Column(gantt.ColumnModifier),
			ID:       widths.Column(gantt.ColumnID),
			Start:    widths.Column(gantt.ColumnStart),
			Span:     widths.Column(gantt.ColumnSpan),
		},
	}
	if doc == nil {
		return m
	}

	m.Frontmatter = doc.Frontmatter
	dateFormat := ""
	if doc.Title != nil {
		m.Title = doc.Title.Value
	}
	if doc.DateFormat != nil {
		dateFormat = doc.DateFormat.Value
		m.DateFormat = dateFormat
	}
	for _, p := range doc.Preamble {
		m.Directives = append(m.Directives, Line{Line: p.Line, Text: p.Text})
	}

	classifier := gantt.NewClassifier(dateFormat)
	for _, s := range doc.Sections {
		section := Section{Name: s.Name, Line: s.Line, Implicit: s.Implicit, Tasks: []Task{}}
		for _, node := range s.Nodes {
			switch n := node.(type) {
			case gantt.Task:
				section.Tasks = append(section.Tasks, fromTask(n, classifier))
			case gantt.Passthrough:
				section.Passthrough = append(section.Passthrough, Line{Line: n.Line, Text: n.Text})
			}
		}
		m.TaskCount += len(section.Tasks)
		m.Sections = append(m.Sections, section)
	}
	return m
}

func fromTask(t gantt.Task, c *gantt.Classifier) Task {
	out := Task{
		Line:     t.Line,
		Label:    t.Label,
		Status:   t.Status.String(),
		Modifier: t.Modifier.String(),
		ID:       t.ID,
		Start:    t.Start,
		Span:     t.Span,
	}
	if t.Start != "" {
		out.StartKind = "date"
		if strings.HasPrefix(t.Start, "after") {
			out.StartKind = "after"
		}
	}
	switch {
	case t.Span == "":
	case strings.HasPrefix(t.Span, "until"):
		out.SpanKind = "until"
	case c.IsDate(t.Span):
		out.SpanKind = "date"
	default:
		out.SpanKind = "duration"
	}
	return out
}

// Encode writes m as indented JSON.
func (m *Model) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
