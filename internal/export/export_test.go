package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/ganttfmt/internal/gantt"
)

func buildModel(t *testing.T, lines []string) *Model {
	t.Helper()
	doc, err := gantt.Parse(lines)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return FromDocument(doc, gantt.Measure(doc))
}

var sample = []string{
	"gantt",
	"title Release plan",
	"dateFormat YYYY-MM-DD",
	"excludes weekends",
	"section Design",
	"Draft :done, des1, 2014-01-06, 2014-01-08",
	"%% reviewed weekly",
	"Review :active, after des1, 3d",
	"section Ship",
	"Release :milestone, until launch",
}

func TestFromDocument(t *testing.T) {
	m := buildModel(t, sample)

	if m.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d", m.SchemaVersion)
	}
	if m.Title != "Release plan" || m.DateFormat != "YYYY-MM-DD" {
		t.Errorf("Title/DateFormat = %q/%q", m.Title, m.DateFormat)
	}
	if len(m.Directives) != 1 || m.Directives[0].Text != "excludes weekends" || m.Directives[0].Line != 4 {
		t.Errorf("Directives = %+v", m.Directives)
	}
	if m.TaskCount != 3 || len(m.Sections) != 2 {
		t.Fatalf("TaskCount = %d, sections = %d", m.TaskCount, len(m.Sections))
	}

	design := m.Sections[0]
	if design.Name != "Design" || design.Line != 5 {
		t.Errorf("section = %q line %d", design.Name, design.Line)
	}
	if len(design.Passthrough) != 1 || design.Passthrough[0].Text != "%% reviewed weekly" {
		t.Errorf("Passthrough = %+v", design.Passthrough)
	}

	tests := []struct {
		task      Task
		startKind string
		spanKind  string
	}{
		{design.Tasks[0], "date", "date"},
		{design.Tasks[1], "after", "duration"},
		{m.Sections[1].Tasks[0], "", "until"},
	}
	for _, tt := range tests {
		t.Run(tt.task.Label, func(t *testing.T) {
			if tt.task.StartKind != tt.startKind {
				t.Errorf("StartKind = %q, want %q", tt.task.StartKind, tt.startKind)
			}
			if tt.task.SpanKind != tt.spanKind {
				t.Errorf("SpanKind = %q, want %q", tt.task.SpanKind, tt.spanKind)
			}
		})
	}

	if design.Tasks[0].Status != "done" || design.Tasks[0].ID != "des1" {
		t.Errorf("first task = %+v", design.Tasks[0])
	}
	if m.Sections[1].Tasks[0].Modifier != "milestone" {
		t.Errorf("milestone task = %+v", m.Sections[1].Tasks[0])
	}
	if m.Widths.Label != 7 || m.Widths.Span != 12 || m.Widths.Start != 10 {
		t.Errorf("Widths = %+v", m.Widths)
	}
}

func TestFromNilDocument(t *testing.T) {
	m := FromDocument(nil, gantt.Widths{})
	if m.Sections == nil || m.TaskCount != 0 {
		t.Errorf("model = %+v", m)
	}
	if res := m.Validate(ValidationOptions{}); !res.Valid {
		t.Errorf("empty model should be valid: %v", res.Errors)
	}
}

func TestValidateBuiltIn(t *testing.T) {
	m := buildModel(t, sample)
	res := m.Validate(ValidationOptions{})
	if !res.Valid {
		t.Fatalf("expected valid model, got %v", res.Errors)
	}
	if res.UsedSchema != "built-in" {
		t.Errorf("UsedSchema = %q", res.UsedSchema)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestValidateReportsPaths(t *testing.T) {
	m := buildModel(t, sample)
	m.Sections[1].Tasks[0].Status = "blocked"

	res := m.Validate(ValidationOptions{})
	if res.Valid {
		t.Fatal("expected invalid model")
	}
	found := false
	for _, err := range res.Errors {
		var ve *ValidationError
		if errors.As(err, &ve) && ve.Path == "sections[1].tasks[0].status" {
			found = true
		}
	}
	if !found {
		t.Errorf("no error at sections[1].tasks[0].status: %v", res.Errors)
	}
}

func TestValidateMissingSchemaFile(t *testing.T) {
	m := buildModel(t, sample)
	res := m.Validate(ValidationOptions{SchemaPath: filepath.Join(t.TempDir(), "missing.json")})
	if !res.Valid {
		t.Fatalf("expected fallback to built-in schema, got %v", res.Errors)
	}
	if res.UsedSchema != "built-in" {
		t.Errorf("UsedSchema = %q", res.UsedSchema)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "schema file not found") {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestValidateExternalSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strict.json")
	schema := `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title"],
  "properties": {"task_count": {"maximum": 2}}
}`
	if err := os.WriteFile(path, []byte(schema), 0o644); err != nil {
		t.Fatal(err)
	}

	m := buildModel(t, []string{"gantt", "a : 1d", "b : 2d", "c : 3d"})
	res := m.Validate(ValidationOptions{SchemaPath: path})
	if res.UsedSchema != path {
		t.Errorf("UsedSchema = %q, want %q", res.UsedSchema, path)
	}
	if res.Valid {
		t.Fatal("expected strict schema to reject the model")
	}
	if len(res.Errors) != 2 {
		t.Errorf("expected missing title and task_count errors, got %v", res.Errors)
	}
}

func TestValidateInvalidSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"type": 12}`), 0o644); err != nil {
		t.Fatal(err)
	}
	res := buildModel(t, sample).Validate(ValidationOptions{SchemaPath: path})
	if !res.Valid || res.UsedSchema != "built-in" {
		t.Errorf("expected built-in fallback, got valid=%v used=%q", res.Valid, res.UsedSchema)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "invalid schema file") {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := buildModel(t, sample).Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"schema_version\": 1,") {
		t.Errorf("expected indented output, got:\n%s", buf.String())
	}

	var decoded Model
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.TaskCount != 3 {
		t.Errorf("decoded TaskCount = %d", decoded.TaskCount)
	}
}

func TestSchemaIsJSON(t *testing.T) {
	var v map[string]any
	if err := json.Unmarshal([]byte(Schema()), &v); err != nil {
		t.Fatalf("embedded schema is not JSON: %v", err)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/title", "title"},
		{"/sections/0/tasks/2/id", "sections[0].tasks[2].id"},
		{"#/widths/label", "widths.label"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := jsonPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("jsonPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
