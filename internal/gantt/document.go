package gantt

import "strings"

// Node is an entry inside a section: a Task or a Passthrough line.
type Node interface {
	isNode()
}

// Passthrough is a line kept as-is apart from its indentation.
type Passthrough struct {
	Line int
	Text string
	// Task is set for a "%%" comment inside a section that holds a task line.
	Task *CommentedTask
}

func (Passthrough) isNode() {}

// CommentedSection reports whether p is a section header disabled with "%%".
func (p Passthrough) CommentedSection() bool {
	body, ok := strings.CutPrefix(p.Text, "%%")
	if !ok {
		return false
	}
	word, rest := splitKeyword(strings.TrimSpace(body))
	return word == "section" && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

// CommentedTask is a task line disabled with "%%". Its label is aligned with
// the real tasks; the metadata is kept as written.
type CommentedTask struct {
	Label string
	Meta  string
}

// Directive is a document-level keyword line such as title or dateFormat.
type Directive struct {
	Keyword string
	Value   string
	Line    int
}

// Section is a named, ordered group of tasks. An implicit section holds tasks
// that appear before the first section header and is rendered without one.
type Section struct {
	Name     string
	Line     int
	Implicit bool
	Nodes    []Node
}

// Tasks returns the section's tasks in input order.
func (s Section) Tasks() []Task {
	var tasks []Task
	for _, n := range s.Nodes {
		if t, ok := n.(Task); ok {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Document is a parsed gantt diagram.
type Document struct {
	Frontmatter []string      // YAML block including both "---" delimiters
	Leading     []Passthrough // comments that preceded the diagram keyword
	Diagram     string        // the "gantt" keyword line, empty when absent
	Title       *Directive
	DateFormat  *Directive
	Preamble    []Passthrough // directives and comments before the first section
	Sections    []Section
}

// Tasks returns every task in the document in input order.
func (d *Document) Tasks() []Task {
	var tasks []Task
	for _, s := range d.Sections {
		tasks = append(tasks, s.Tasks()...)
	}
	return tasks
}

// TaskCount returns the number of tasks in the document.
func (d *Document) TaskCount() int {
	n := 0
	for _, s := range d.Sections {
		for _, node := range s.Nodes {
			if _, ok := node.(Task); ok {
				n++
			}
		}
	}
	return n
}
