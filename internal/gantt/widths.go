package gantt

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Column is a metadata column of a rendered task line.
type Column int

const (
	ColumnStatus Column = iota
	ColumnModifier
	ColumnID
	ColumnStart
	ColumnSpan
	numColumns
)

// Columns lists the metadata columns in render order.
var Columns = [numColumns]Column{ColumnStatus, ColumnModifier, ColumnID, ColumnStart, ColumnSpan}

var columnNames = [numColumns]string{"status", "modifier", "id", "start", "span"}

// String returns the column name.
func (c Column) String() string {
	if c >= 0 && c < numColumns {
		return columnNames[c]
	}
	return "unknown"
}

// Widths holds the widths used to align every task line.
type Widths struct {
	Label   int
	Columns [numColumns]int
}

// Column returns the width of c.
func (w Widths) Column(c Column) int {
	return w.Columns[c]
}

// Measure computes the label width and the width of every metadata column
// across all sections of doc, counted in runes. A column no task uses has
// width zero.
func Measure(doc *Document) Widths {
	return measure(doc, runeCount)
}

// MeasureCells is Measure counted in terminal cells: wide runes such as CJK
// count as two and combining marks as zero.
func MeasureCells(doc *Document) Widths {
	return measure(doc, runewidth.StringWidth)
}

func measure(doc *Document, width func(string) int) Widths {
	var w Widths
	if doc == nil {
		return w
	}
	for _, section := range doc.Sections {
		for _, node := range section.Nodes {
			task, ok := node.(Task)
			if !ok {
				continue
			}
			w.Label = max(w.Label, width(task.Label))
			for c, text := range task.Fields() {
				w.Columns[c] = max(w.Columns[c], width(text))
			}
		}
	}
	return w
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}
