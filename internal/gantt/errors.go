package gantt

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTaskLine reports task metadata that breaks the one-value-per-field
	// rule or contains a token no rule can place.
	ErrMalformedTaskLine = errors.New("malformed task line")
	// ErrMissingColon reports a task-like line without the label separator.
	ErrMissingColon = errors.New("missing colon")
	// ErrDuplicateDirective reports a second gantt, title or dateFormat line.
	ErrDuplicateDirective = errors.New("duplicate directive")
	// ErrUnterminatedFrontmatter reports a frontmatter block without its closing "---".
	ErrUnterminatedFrontmatter = errors.New("unterminated frontmatter")
)

// LineError is a parse failure tied to one input line.
type LineError struct {
	Line   int    // 1-based line number
	Text   string // raw line text
	Token  string // offending token, if any
	Reason string // detail beyond the sentinel
	Err    error  // one of the Err* sentinels
}

func (e *LineError) Error() string {
	msg := e.Err.Error()
	if e.Reason != "" {
		msg += ": " + e.Reason
	} else if e.Token != "" {
		msg += fmt.Sprintf(": offending token %q", e.Token)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, msg, e.Text)
}

// Unwrap returns the sentinel error.
func (e *LineError) Unwrap() error {
	return e.Err
}
