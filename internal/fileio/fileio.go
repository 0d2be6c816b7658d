// Package fileio reads and writes diagram files as lines.
package fileio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdio is the path that selects stdin or stdout.
const Stdio = "-"

var bom = []byte{0xEF, 0xBB, 0xBF}

// Content is a diagram as read: its lines and the exact text they came from.
type Content struct {
	Lines []string
	Raw   string
}

// Canonical reports whether writing lines would reproduce the raw text byte
// for byte.
func (c Content) Canonical(lines []string) bool {
	return c.Raw == Join(lines)
}

// Read splits r into lines. CRLF line endings and a leading byte order mark
// are dropped; a final newline does not produce an empty last line.
func Read(r io.Reader) ([]string, error) {
	c, err := ReadContent(r)
	return c.Lines, err
}

// ReadContent reads r like Read and keeps the raw text alongside the lines.
func ReadContent(r io.Reader) (Content, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Content{}, err
	}
	c := Content{Raw: string(data)}
	data = bytes.TrimPrefix(data, bom)
	if len(data) == 0 {
		return c, nil
	}

	text := strings.TrimSuffix(string(data), "\n")
	c.Lines = strings.Split(text, "\n")
	for i, line := range c.Lines {
		c.Lines[i] = strings.TrimSuffix(line, "\r")
	}
	return c, nil
}

// ReadLines reads the file at path, or stdin when path is "-".
func ReadLines(path string) ([]string, error) {
	c, err := ReadFile(path)
	return c.Lines, err
}

// ReadFile is ReadLines keeping the raw text.
func ReadFile(path string) (Content, error) {
	if path == Stdio {
		c, err := ReadContent(os.Stdin)
		if err != nil {
			return Content{}, fmt.Errorf("read stdin: %w", err)
		}
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Content{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	c, err := ReadContent(f)
	if err != nil {
		return Content{}, fmt.Errorf("read %s: %w", path, err)
	}
	return c, nil
}

// Write writes lines to w, each followed by a newline.
func Write(w io.Writer, lines []string) error {
	_, err := io.WriteString(w, Join(lines))
	return err
}

// Join renders lines as file content with exactly one trailing newline. No
// lines give an empty file.
func Join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteLines writes lines to path, or stdout when path is "-". Files are
// replaced atomically and synced before the rename, so a failed write or a
// crash leaves the previous content in place. An existing file keeps its
// permissions.
func WriteLines(path string, lines []string) error {
	if path == Stdio {
		return Write(os.Stdout, lines)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("output %s is a directory", path)
	}
	if err := writeFile(path, []byte(Join(lines))); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
