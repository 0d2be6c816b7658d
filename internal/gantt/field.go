package gantt

import (
	"fmt"
	"regexp"
	"strings"
)

// Field is the semantic role of one comma-separated metadata token.
type Field int

const (
	FieldID Field = iota
	FieldStatusDone
	FieldStatusActive
	FieldCrit
	FieldMilestone
	FieldVert
	FieldStart
	FieldSpan
)

var fieldNames = map[Field]string{
	FieldID:           "id",
	FieldStatusDone:   "done",
	FieldStatusActive: "active",
	FieldCrit:         "crit",
	FieldMilestone:    "milestone",
	FieldVert:         "vert",
	FieldStart:        "start",
	FieldSpan:         "span",
}

// String returns a short name for the field.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

var keywordFields = map[string]Field{
	"done":      FieldStatusDone,
	"active":    FieldStatusActive,
	"crit":      FieldCrit,
	"milestone": FieldMilestone,
	"vert":      FieldVert,
}

var (
	isoDateRegex       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(?:[ T]\d{2}:\d{2}(?::\d{2})?)?$`)
	afterRegex         = regexp.MustCompile(`^after\s+\S`)
	untilRegex         = regexp.MustCompile(`^until\s+\S`)
	durationRegex      = regexp.MustCompile(`^\d+(?:\.\d+)?(?:ms|s|m|h|d|w)$`)
	durationShapeRegex = regexp.MustCompile(`^\d+(?:\.\d+)?[A-Za-z]+$`)
)

// Classifier decides which field a metadata token belongs to. The zero value
// recognises ISO dates only; NewClassifier adds the document's dateFormat.
type Classifier struct {
	datePattern *regexp.Regexp
}

// NewClassifier returns a classifier that also accepts date literals written in
// the given Mermaid dateFormat (e.g. "DD-MM-YYYY"). An empty format keeps the
// ISO-only behavior.
func NewClassifier(dateFormat string) *Classifier {
	return &Classifier{datePattern: dateFormatRegex(dateFormat)}
}

// Classify returns the field for a trimmed token. It fails only for tokens that
// look like a duration with an unknown unit, such as "3y".
func (c *Classifier) Classify(token string) (Field, error) {
	if field, ok := keywordFields[token]; ok {
		return field, nil
	}
	if c.IsDate(token) || afterRegex.MatchString(token) {
		return FieldStart, nil
	}
	if durationRegex.MatchString(token) || untilRegex.MatchString(token) {
		return FieldSpan, nil
	}
	if durationShapeRegex.MatchString(token) {
		return FieldID, fmt.Errorf("unknown duration unit in %q", token)
	}
	return FieldID, nil
}

// IsDate reports whether token is an absolute date literal.
func (c *Classifier) IsDate(token string) bool {
	if isoDateRegex.MatchString(token) {
		return true
	}
	return c != nil && c.datePattern != nil && c.datePattern.MatchString(token)
}

// dateFormatTokens maps dayjs format tokens to patterns, longest first.
var dateFormatTokens = []struct {
	token   string
	pattern string
}{
	{"YYYY", `\d{4}`},
	{"MMMM", `[A-Za-z]+`},
	{"dddd", `[A-Za-z]+`},
	{"MMM", `[A-Za-z]{3}`},
	{"ddd", `[A-Za-z]{3}`},
	{"SSS", `\d{3}`},
	{"YY", `\d{2}`},
	{"MM", `\d{2}`},
	{"DD", `\d{2}`},
	{"Do", `\d{1,2}(?:st|nd|rd|th)`},
	{"HH", `\d{2}`},
	{"hh", `\d{2}`},
	{"mm", `\d{2}`},
	{"ss", `\d{2}`},
	{"ZZ", `[+-]\d{4}`},
	{"M", `\d{1,2}`},
	{"D", `\d{1,2}`},
	{"H", `\d{1,2}`},
	{"h", `\d{1,2}`},
	{"m", `\d{1,2}`},
	{"s", `\d{1,2}`},
	{"A", `[AP]M`},
	{"a", `[ap]m`},
	{"Z", `[+-]\d{2}:\d{2}`},
	{"X", `\d+(?:\.\d+)?`},
	{"x", `\d+`},
}

// dateFormatRegex converts a dayjs-style format into an anchored regexp. It
// returns nil for an empty format or one without any date token, so that plain
// identifiers are never mistaken for dates.
func dateFormatRegex(format string) *regexp.Regexp {
	format = strings.TrimSpace(format)
	if format == "" {
		return nil
	}

	var b strings.Builder
	b.WriteByte('^')
	matched := false
	for i := 0; i < len(format); {
		if format[i] == '[' {
			if end := strings.IndexByte(format[i:], ']'); end > 0 {
				b.WriteString(regexp.QuoteMeta(format[i+1 : i+end]))
				i += end + 1
				continue
			}
		}
		found := false
		for _, t := range dateFormatTokens {
			if strings.HasPrefix(format[i:], t.token) {
				b.WriteString(t.pattern)
				i += len(t.token)
				found = true
				matched = true
				break
			}
		}
		if !found {
			b.WriteString(regexp.QuoteMeta(format[i : i+1]))
			i++
		}
	}
	b.WriteByte('$')

	if !matched {
		return nil
	}
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil
	}
	return re
}
