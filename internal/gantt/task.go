package gantt

import "fmt"

// Status is the completion state of a task.
type Status int

const (
	StatusNone Status = iota
	StatusDone
	StatusActive
)

// String returns the keyword used for the status in a diagram.
func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusActive:
		return "active"
	default:
		return ""
	}
}

// Modifier is the crit/milestone/vert tag of a task. A task carries at most one.
type Modifier int

const (
	ModifierNone Modifier = iota
	ModifierCrit
	ModifierMilestone
	ModifierVert
)

// String returns the keyword used for the modifier in a diagram.
func (m Modifier) String() string {
	switch m {
	case ModifierCrit:
		return "crit"
	case ModifierMilestone:
		return "milestone"
	case ModifierVert:
		return "vert"
	default:
		return ""
	}
}

var modifierFields = map[Field]Modifier{
	FieldCrit:      ModifierCrit,
	FieldMilestone: ModifierMilestone,
	FieldVert:      ModifierVert,
}

// Task is one timeline entry. Empty strings mean the field is absent.
type Task struct {
	Line     int
	Label    string
	Status   Status
	Modifier Modifier
	ID       string
	Start    string
	Span     string
}

func (Task) isNode() {}

// Fields returns the rendered text of every metadata column in column order.
func (t Task) Fields() [numColumns]string {
	return [numColumns]string{
		ColumnStatus:   t.Status.String(),
		ColumnModifier: t.Modifier.String(),
		ColumnID:       t.ID,
		ColumnStart:    t.Start,
		ColumnSpan:     t.Span,
	}
}

// taskBuilder accumulates classified tokens for a single task line.
type taskBuilder struct {
	task       Task
	classifier *Classifier
}

func newTaskBuilder(c *Classifier, line int, label string) *taskBuilder {
	return &taskBuilder{task: Task{Line: line, Label: label}, classifier: c}
}

// add places a classified token, enforcing at most one value per field.
func (b *taskBuilder) add(field Field, token string) error {
	switch field {
	case FieldStatusDone, FieldStatusActive:
		if b.task.Status != StatusNone {
			return fmt.Errorf("second status %q (already %q)", token, b.task.Status)
		}
		if field == FieldStatusDone {
			b.task.Status = StatusDone
		} else {
			b.task.Status = StatusActive
		}
	case FieldCrit, FieldMilestone, FieldVert:
		if b.task.Modifier != ModifierNone {
			return fmt.Errorf("second modifier %q (already %q)", token, b.task.Modifier)
		}
		b.task.Modifier = modifierFields[field]
	case FieldStart:
		if b.task.Start == "" {
			b.task.Start = token
			return nil
		}
		// A second date literal is the explicit end date.
		if b.classifier.IsDate(token) && b.task.Span == "" {
			b.task.Span = token
			return nil
		}
		return fmt.Errorf("second start %q (already %q)", token, b.task.Start)
	case FieldSpan:
		if b.task.Span != "" {
			return fmt.Errorf("second span %q (already %q)", token, b.task.Span)
		}
		b.task.Span = token
	case FieldID:
		if b.task.ID != "" {
			return fmt.Errorf("second id %q (already %q)", token, b.task.ID)
		}
		b.task.ID = token
	default:
		return fmt.Errorf("unclassified token %q", token)
	}
	return nil
}

func (b *taskBuilder) build() Task {
	return b.task
}
