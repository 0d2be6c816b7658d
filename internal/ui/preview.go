// Package ui provides the interactive terminal preview.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PreviewOptions configures RunPreview.
type PreviewOptions struct {
	Path      string
	Original  []string
	Formatted []string
	// Canonical reports that the file bytes already equal the formatted text.
	// When false, w writes even if no line differs, to fix line endings.
	Canonical bool
	// Save writes the formatted lines back to Path. Nil disables writing.
	Save func([]string) error
	// Output is the terminal to draw on. Defaults to os.Stdout.
	Output io.Writer
}

// RunPreview shows the formatted diagram next to the original until the user
// quits. It requires a TTY.
func RunPreview(ctx context.Context, opts PreviewOptions) error {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if !IsTTY(out) {
		return fmt.Errorf("preview requires a TTY")
	}

	model := newPreviewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*previewModel); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	changeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("190"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

// chromeLines is the number of rows used by the header and footer.
const chromeLines = 3

type previewModel struct {
	path         string
	original     []string
	formatted    []string
	canonical    bool
	save         func([]string) error
	showOriginal bool
	offset       int
	width        int
	height       int
	status       string
	saveErr      error
}

func newPreviewModel(opts PreviewOptions) *previewModel {
	return &previewModel{
		path:      opts.Path,
		original:  opts.Original,
		formatted: opts.Formatted,
		canonical: opts.Canonical,
		save:      opts.Save,
		width:     80,
		height:    24,
	}
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scroll(0)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab":
			m.showOriginal = !m.showOriginal
			m.scroll(0)
		case "down", "j":
			m.scroll(1)
		case "up", "k":
			m.scroll(-1)
		case "pgdown", " ":
			m.scroll(m.pageSize())
		case "pgup":
			m.scroll(-m.pageSize())
		case "home", "g":
			m.offset = 0
		case "end", "G":
			m.scroll(len(m.lines()))
		case "w":
			m.write()
		}
	}
	return m, nil
}

func (m *previewModel) write() {
	switch {
	case m.save == nil:
		m.status = "writing is disabled for this input"
	case m.changedLines() == 0 && m.canonical:
		m.status = "already formatted"
	default:
		if err := m.save(m.formatted); err != nil {
			m.saveErr = err
			m.status = "write failed: " + err.Error()
			return
		}
		m.saveErr = nil
		m.original = append([]string(nil), m.formatted...)
		m.canonical = true
		m.status = "wrote " + m.path
	}
}

func (m *previewModel) lines() []string {
	if m.showOriginal {
		return m.original
	}
	return m.formatted
}

func (m *previewModel) pageSize() int {
	return max(m.height-chromeLines, 1)
}

// scroll moves the view by delta lines and keeps it inside the content.
func (m *previewModel) scroll(delta int) {
	last := max(len(m.lines())-m.pageSize(), 0)
	m.offset = min(max(m.offset+delta, 0), last)
}

// changedLines counts positions where the original and formatted text differ.
func (m *previewModel) changedLines() int {
	n := 0
	for i := 0; i < max(len(m.original), len(m.formatted)); i++ {
		if lineAt(m.original, i) != lineAt(m.formatted, i) {
			n++
		}
	}
	return n
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func (m *previewModel) View() string {
	var b strings.Builder

	mode := "formatted"
	if m.showOriginal {
		mode = "original"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("ganttfmt preview: %s [%s]", m.path, mode)))
	b.WriteString("\n")
	switch changed := m.changedLines(); {
	case changed == 0 && m.canonical:
		b.WriteString(mutedStyle.Render("already formatted"))
	case changed == 0:
		b.WriteString(changeStyle.Render("line endings change"))
	default:
		b.WriteString(changeStyle.Render(fmt.Sprintf("%d of %d lines change", changed, len(m.formatted))))
	}
	b.WriteString("\n")

	lines := m.lines()
	other := m.original
	if m.showOriginal {
		other = m.formatted
	}
	numWidth := len(fmt.Sprint(len(lines)))
	end := min(m.offset+m.pageSize(), len(lines))
	for i := m.offset; i < end; i++ {
		marker := " "
		if lineAt(other, i) != lines[i] {
			marker = changeStyle.Render("~")
		}
		num := mutedStyle.Render(fmt.Sprintf("%*d", numWidth, i+1))
		text := runewidth.Truncate(lines[i], max(m.width-numWidth-3, 1), "…")
		fmt.Fprintf(&b, "%s %s %s\n", num, marker, text)
	}

	footer := "tab original/formatted | j/k scroll | w write | q quit"
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "  " + mutedStyle.Render(footer)
	} else {
		footer = mutedStyle.Render(footer)
	}
	b.WriteString(footer)
	b.WriteString("\n")
	return b.String()
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
