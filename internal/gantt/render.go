package gantt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	directiveIndent = "  "
	taskIndent      = "    "
	commentIndent   = "%%  "
	labelSeparator  = " : "
)

// Layout controls the spacing of rendered task lines.
type Layout struct {
	// ColumnGap is the number of spaces between metadata columns.
	ColumnGap int
	// CollapseEmptyColumns elides columns no task uses. When false, such
	// columns are kept at MinColumnWidth.
	CollapseEmptyColumns bool
	// MinColumnWidth is the smallest width of a metadata column.
	MinColumnWidth int
	// TrimTrailingSpace removes padding left at the end of a line.
	TrimTrailingSpace bool
	// DisplayWidth aligns on terminal cells instead of runes, for documents
	// with wide characters that are read in a terminal.
	DisplayWidth bool
}

// DefaultLayout returns the canonical layout: a two-space gap, unused columns
// elided, no trailing whitespace.
func DefaultLayout() Layout {
	return Layout{
		ColumnGap:            2,
		CollapseEmptyColumns: true,
		MinColumnWidth:       0,
		TrimTrailingSpace:    true,
	}
}

// Measure computes the widths of doc in the unit the layout aligns on.
func (l Layout) Measure(doc *Document) Widths {
	if l.DisplayWidth {
		return MeasureCells(doc)
	}
	return Measure(doc)
}

// Render re-emits doc using widths. It never fails: everything it reads was
// validated by the parser.
func Render(doc *Document, widths Widths, layout Layout) []string {
	if doc == nil {
		return nil
	}
	r := renderer{widths: widths, layout: layout, textWidth: runeCount}
	if layout.DisplayWidth {
		r.textWidth = runewidth.StringWidth
	}
	r.resolveColumns()

	out := append([]string(nil), doc.Frontmatter...)
	for _, p := range doc.Leading {
		out = append(out, p.Text)
	}
	if doc.Diagram != "" {
		out = append(out, doc.Diagram)
	}
	if doc.Title != nil {
		out = append(out, r.directive(doc.Title))
	}
	if doc.DateFormat != nil {
		out = append(out, r.directive(doc.DateFormat))
	}
	for _, p := range doc.Preamble {
		out = append(out, r.passthrough(p))
	}

	for i, section := range doc.Sections {
		if i > 0 {
			out = append(out, "")
		}
		if !section.Implicit {
			out = append(out, r.trim(directiveIndent+"section "+section.Name))
		}
		for _, node := range section.Nodes {
			switch n := node.(type) {
			case Task:
				out = append(out, r.task(n))
			case Passthrough:
				if n.CommentedSection() {
					out = append(out, "")
				}
				out = append(out, r.passthrough(n))
			}
		}
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

type renderer struct {
	widths    Widths
	layout    Layout
	textWidth func(string) int
	visible   []Column
	width     [numColumns]int
}

// resolveColumns decides which columns are drawn and how wide.
func (r *renderer) resolveColumns() {
	for _, c := range Columns {
		w := r.widths.Column(c)
		if w == 0 && r.layout.CollapseEmptyColumns {
			continue
		}
		r.width[c] = max(w, r.layout.MinColumnWidth)
		r.visible = append(r.visible, c)
	}
}

func (r *renderer) directive(d *Directive) string {
	return r.trim(directiveIndent + d.Keyword + " " + d.Value)
}

func (r *renderer) passthrough(p Passthrough) string {
	if p.Task != nil {
		return r.trim(commentIndent + r.pad(p.Task.Label, r.widths.Label) + labelSeparator + p.Task.Meta)
	}
	return directiveIndent + p.Text
}

func (r *renderer) task(t Task) string {
	var b strings.Builder
	b.WriteString(taskIndent)
	b.WriteString(r.pad(t.Label, r.widths.Label))
	b.WriteString(labelSeparator)

	fields := t.Fields()
	gap := strings.Repeat(" ", max(r.layout.ColumnGap, 0))
	last := len(r.visible) - 1
	for i, c := range r.visible {
		if i > 0 {
			b.WriteString(gap)
		}
		text := fields[c]
		width := r.width[c]
		// The span and the final visible column take no comma.
		if c == ColumnSpan || i == last {
			b.WriteString(r.pad(text, width))
			continue
		}
		if text == "" {
			b.WriteString(strings.Repeat(" ", width+1))
			continue
		}
		b.WriteString(r.pad(text, width))
		b.WriteByte(',')
	}
	return r.trim(b.String())
}

func (r *renderer) trim(s string) string {
	if r.layout.TrimTrailingSpace {
		return strings.TrimRight(s, " \t")
	}
	return s
}

// pad left-justifies s in a field of width units.
func (r *renderer) pad(s string, width int) string {
	if n := width - r.textWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
