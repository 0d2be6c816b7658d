package gantt

import (
	"strings"
)

// LineKind identifies what a single input line is.
type LineKind int

const (
	LineBlank LineKind = iota
	LinePassthrough
	LineDiagram
	LineTitle
	LineDateFormat
	LineSection
	LineTask
)

// Line is the parse result for one input line.
type Line struct {
	Number int
	Kind   LineKind
	Text   string // trimmed line text
	Value  string // directive value or section name
	Task   Task   // set when Kind is LineTask
}

// DefaultKeywords are the Mermaid gantt keywords, other than gantt, title,
// dateFormat and section, that are carried through as passthrough lines. Some of
// them legitimately contain colons (axisFormat %H:%M, accTitle: ...).
var DefaultKeywords = []string{
	"accDescr",
	"accTitle",
	"axisFormat",
	"barGap",
	"barHeight",
	"bottomMarginAdj",
	"click",
	"displayMode",
	"excludes",
	"fontSize",
	"gridLineStartPadding",
	"includes",
	"inclusiveEndDates",
	"leftPadding",
	"mirrorActor",
	"numberSectionStyles",
	"rightPadding",
	"sectionFontSize",
	"tickInterval",
	"titleTopMargin",
	"todayMarker",
	"topAxis",
	"topPadding",
	"weekday",
	"weekend",
}

// Parser turns raw lines into a Document. A Parser carries state between
// lines (whether a section has started, the active dateFormat), so one Parser
// must not be shared between goroutines.
type Parser struct {
	keywords   map[string]bool
	classifier *Classifier
	inSection  bool
}

// NewParser returns a parser that knows DefaultKeywords plus extra.
func NewParser(extra ...string) *Parser {
	keywords := make(map[string]bool, len(DefaultKeywords)+len(extra))
	for _, k := range DefaultKeywords {
		keywords[k] = true
	}
	for _, k := range extra {
		if k = strings.TrimSpace(k); k != "" {
			keywords[k] = true
		}
	}
	return &Parser{keywords: keywords, classifier: NewClassifier("")}
}

func (p *Parser) reset() {
	p.classifier = NewClassifier("")
	p.inSection = false
}

// ParseLine parses one raw line. number is the 1-based line number used in
// errors. Lines without a colon are passthrough until the first section header
// has been seen and ErrMissingColon after it.
func (p *Parser) ParseLine(number int, raw string) (Line, error) {
	text := strings.TrimSpace(raw)
	line := Line{Number: number, Text: text}

	if text == "" {
		line.Kind = LineBlank
		return line, nil
	}
	if strings.HasPrefix(text, "%%") {
		line.Kind = LinePassthrough
		return line, nil
	}

	word, rest := splitKeyword(text)
	spaced := rest == "" || rest[0] == ' ' || rest[0] == '\t'
	switch {
	case word == "gantt" && spaced:
		line.Kind = LineDiagram
		return line, nil
	case word == "title" && spaced:
		line.Kind = LineTitle
		line.Value = strings.TrimSpace(rest)
		return line, nil
	case word == "dateFormat" && spaced:
		line.Kind = LineDateFormat
		line.Value = strings.TrimSpace(rest)
		p.classifier = NewClassifier(line.Value)
		return line, nil
	case word == "section" && spaced:
		line.Kind = LineSection
		line.Value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), ":"))
		p.inSection = true
		return line, nil
	case p.keywords[word] && (spaced || rest[0] == ':'):
		line.Kind = LinePassthrough
		return line, nil
	}

	colon := indexUnescapedColon(text)
	if colon < 0 {
		if p.inSection {
			return line, &LineError{Line: number, Text: text, Err: ErrMissingColon}
		}
		line.Kind = LinePassthrough
		return line, nil
	}

	task, err := p.parseTask(number, text, colon)
	if err != nil {
		return line, err
	}
	line.Kind = LineTask
	line.Task = task
	return line, nil
}

func (p *Parser) parseTask(number int, text string, colon int) (Task, error) {
	b := newTaskBuilder(p.classifier, number, strings.TrimSpace(text[:colon]))
	for _, token := range strings.Split(text[colon+1:], ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		field, err := p.classifier.Classify(token)
		if err == nil {
			err = b.add(field, token)
		}
		if err != nil {
			return Task{}, &LineError{
				Line:   number,
				Text:   text,
				Token:  token,
				Reason: err.Error(),
				Err:    ErrMalformedTaskLine,
			}
		}
	}
	return b.build(), nil
}

// Parse parses a whole diagram. It fails on the first malformed line and
// returns no partial document.
func (p *Parser) Parse(lines []string) (*Document, error) {
	p.reset()
	doc := &Document{}

	start, err := parseFrontmatter(lines, doc)
	if err != nil {
		return nil, err
	}

	current := -1

	for i := start; i < len(lines); i++ {
		line, err := p.ParseLine(i+1, lines[i])
		if err != nil {
			return nil, err
		}

		switch line.Kind {
		case LineBlank:
			// The renderer emits the only blank lines: one before each section.
		case LineSection:
			doc.Sections = append(doc.Sections, Section{Name: line.Value, Line: line.Number})
			current = len(doc.Sections) - 1
		case LineDiagram:
			if doc.Diagram != "" {
				return nil, duplicateError(line)
			}
			doc.Diagram = line.Text
			if len(doc.Sections) == 0 {
				doc.Leading = append(doc.Leading, doc.Preamble...)
				doc.Preamble = nil
			}
		case LineTitle:
			if doc.Title != nil {
				return nil, duplicateError(line)
			}
			doc.Title = &Directive{Keyword: "title", Value: line.Value, Line: line.Number}
		case LineDateFormat:
			if doc.DateFormat != nil {
				return nil, duplicateError(line)
			}
			doc.DateFormat = &Directive{Keyword: "dateFormat", Value: line.Value, Line: line.Number}
		case LinePassthrough:
			pt := Passthrough{Line: line.Number, Text: line.Text}
			if current >= 0 {
				pt.Task = p.commentedTask(line.Text)
				doc.Sections[current].Nodes = append(doc.Sections[current].Nodes, pt)
			} else {
				doc.Preamble = append(doc.Preamble, pt)
			}
		case LineTask:
			if current < 0 {
				doc.Sections = append(doc.Sections, Section{Line: line.Number, Implicit: true})
				current = len(doc.Sections) - 1
			}
			doc.Sections[current].Nodes = append(doc.Sections[current].Nodes, line.Task)
		}
	}

	return doc, nil
}

// commentedTask returns the task held by a "%%" comment, or nil when the
// comment is not a well-formed task line.
func (p *Parser) commentedTask(text string) *CommentedTask {
	if !strings.HasPrefix(text, "%%") {
		return nil
	}
	body := strings.TrimSpace(strings.TrimPrefix(text, "%%"))
	if body == "" || body[0] == '{' {
		return nil
	}
	word, rest := splitKeyword(body)
	if rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == ':' {
		switch {
		case word == "gantt", word == "title", word == "dateFormat", word == "section", p.keywords[word]:
			return nil
		}
	}

	colon := indexUnescapedColon(body)
	// A colon opening "//" belongs to a URL, not a task separator.
	if colon <= 0 || strings.HasPrefix(body[colon+1:], "//") {
		return nil
	}
	task, err := p.parseTask(0, body, colon)
	if err != nil || task.Label == "" {
		return nil
	}
	return &CommentedTask{Label: task.Label, Meta: strings.TrimSpace(body[colon+1:])}
}

// Parse parses lines with a parser that knows the default keywords plus extra.
func Parse(lines []string, extra ...string) (*Document, error) {
	return NewParser(extra...).Parse(lines)
}

// parseFrontmatter copies a leading "---" block into doc and returns the index
// of the first line after it.
func parseFrontmatter(lines []string, doc *Document) (int, error) {
	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	if first == len(lines) || strings.TrimSpace(lines[first]) != "---" {
		return 0, nil
	}
	for end := first + 1; end < len(lines); end++ {
		if strings.TrimSpace(lines[end]) == "---" {
			doc.Frontmatter = append([]string(nil), lines[first:end+1]...)
			return end + 1, nil
		}
	}
	return 0, &LineError{Line: first + 1, Text: lines[first], Err: ErrUnterminatedFrontmatter}
}

func duplicateError(line Line) error {
	return &LineError{Line: line.Number, Text: line.Text, Err: ErrDuplicateDirective}
}

// splitKeyword splits off the leading run of ASCII letters.
func splitKeyword(text string) (string, string) {
	i := 0
	for i < len(text) && (text[i] >= 'a' && text[i] <= 'z' || text[i] >= 'A' && text[i] <= 'Z') {
		i++
	}
	return text[:i], text[i:]
}

// indexUnescapedColon returns the index of the first colon not preceded by a
// backslash, or -1.
func indexUnescapedColon(text string) int {
	for i := 0; i < len(text); i++ {
		if text[i] == ':' && (i == 0 || text[i-1] != '\\') {
			return i
		}
	}
	return -1
}
