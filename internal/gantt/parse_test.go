package gantt

import (
	"errors"
	"strings"
	"testing"
)

func TestParseLineKinds(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		kind  LineKind
		value string
	}{
		{"blank", "   ", LineBlank, ""},
		{"diagram", "gantt", LineDiagram, ""},
		{"title", "    title A Gantt Diagram ", LineTitle, "A Gantt Diagram"},
		{"date format", "  dateFormat YYYY-MM-DD", LineDateFormat, "YYYY-MM-DD"},
		{"section", "    section Design", LineSection, "Design"},
		{"section trailing colon", "section Design:", LineSection, "Design"},
		{"comment", "%% a comment: with colon", LinePassthrough, ""},
		{"init directive", "%%{init: {'theme': 'dark'}}%%", LinePassthrough, ""},
		{"axis format with colon", "axisFormat %H:%M", LinePassthrough, ""},
		{"acc title", "accTitle: Project plan", LinePassthrough, ""},
		{"excludes", "excludes weekends", LinePassthrough, ""},
		{"click", "click a1 href \"https://example.com\"", LinePassthrough, ""},
		{"unknown directive before sections", "someDirective on", LinePassthrough, ""},
		{"task", "A task :done, a1, 2014-01-01, 30d", LineTask, ""},
		{"keyword prefix is not keyword", "titled task : 1d", LineTask, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			line, err := p.ParseLine(1, tt.line)
			if err != nil {
				t.Fatalf("ParseLine(%q) error: %v", tt.line, err)
			}
			if line.Kind != tt.kind {
				t.Errorf("ParseLine(%q).Kind = %d, want %d", tt.line, line.Kind, tt.kind)
			}
			if line.Value != tt.value {
				t.Errorf("ParseLine(%q).Value = %q, want %q", tt.line, line.Value, tt.value)
			}
		})
	}
}

func TestParseTaskFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Task
	}{
		{
			name: "all fields",
			line: "Completed task  :done,  des1, 2014-01-06,2014-01-08",
			want: Task{Label: "Completed task", Status: StatusDone, ID: "des1", Start: "2014-01-06", Span: "2014-01-08"},
		},
		{
			name: "until reference only",
			line: "Add to mermaid  :until isadded",
			want: Task{Label: "Add to mermaid", Span: "until isadded"},
		},
		{
			name: "single duration",
			line: "Create tests for renderer :2d",
			want: Task{Label: "Create tests for renderer", Span: "2d"},
		},
		{
			name: "modifier before status",
			line: "Fix bug :crit, done, after des2, 1d",
			want: Task{Label: "Fix bug", Status: StatusDone, Modifier: ModifierCrit, Start: "after des2", Span: "1d"},
		},
		{
			name: "id after dates",
			line: "Odd order : 2014-01-06, 3d, odd1",
			want: Task{Label: "Odd order", ID: "odd1", Start: "2014-01-06", Span: "3d"},
		},
		{
			name: "milestone",
			line: "Release : milestone, m1, 2014-01-25, 0d",
			want: Task{Label: "Release", Modifier: ModifierMilestone, ID: "m1", Start: "2014-01-25", Span: "0d"},
		},
		{
			name: "bare colon",
			line: "Nothing yet :",
			want: Task{Label: "Nothing yet"},
		},
		{
			name: "trailing comma from formatted output",
			line: "A milestone     :          milestone,            after a2     ,",
			want: Task{Label: "A milestone", Modifier: ModifierMilestone, Start: "after a2"},
		},
		{
			name: "escaped colon in label",
			line: `Meet at 10\:30 : 1h`,
			want: Task{Label: `Meet at 10\:30`, Span: "1h"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			line, err := p.ParseLine(7, tt.line)
			if err != nil {
				t.Fatalf("ParseLine(%q) error: %v", tt.line, err)
			}
			if line.Kind != LineTask {
				t.Fatalf("ParseLine(%q).Kind = %d, want LineTask", tt.line, line.Kind)
			}
			tt.want.Line = 7
			if line.Task != tt.want {
				t.Errorf("ParseLine(%q).Task = %+v, want %+v", tt.line, line.Task, tt.want)
			}
		})
	}
}

func TestParseTaskCardinality(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		token string
	}{
		{"two statuses", "Task : done, active, 1d", "active"},
		{"two modifiers", "Task : crit, milestone, 1d", "milestone"},
		{"two ids", "Task : a1, a2, 1d", "a2"},
		{"two starts", "Task : after a1, after a2, 1d", "after a2"},
		{"two spans", "Task : 1d, 2d", "2d"},
		{"three dates", "Task : 2014-01-01, 2014-01-02, 2014-01-03", "2014-01-03"},
		{"unknown unit", "Task : a1, 3y", "3y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			_, err := p.ParseLine(3, tt.line)
			if !errors.Is(err, ErrMalformedTaskLine) {
				t.Fatalf("expected ErrMalformedTaskLine, got %v", err)
			}
			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				t.Fatalf("expected *LineError, got %T", err)
			}
			if lineErr.Line != 3 {
				t.Errorf("Line = %d, want 3", lineErr.Line)
			}
			if lineErr.Token != tt.token {
				t.Errorf("Token = %q, want %q", lineErr.Token, tt.token)
			}
		})
	}
}

func TestParseMissingColon(t *testing.T) {
	lines := []string{
		"gantt",
		"  section One",
		"    A task : 1d",
		"    no colon here",
	}
	_, err := Parse(lines)
	if !errors.Is(err, ErrMissingColon) {
		t.Fatalf("expected ErrMissingColon, got %v", err)
	}
	var lineErr *LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 4 {
		t.Fatalf("expected error on line 4, got %v", err)
	}
	if !strings.Contains(err.Error(), "no colon here") {
		t.Errorf("error should quote the line, got %q", err.Error())
	}
}

func TestParseDuplicateDirective(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"title", []string{"gantt", "title One", "title Two"}},
		{"dateFormat", []string{"gantt", "dateFormat YYYY-MM-DD", "dateFormat DD-MM-YYYY"}},
		{"gantt", []string{"gantt", "gantt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.lines); !errors.Is(err, ErrDuplicateDirective) {
				t.Errorf("expected ErrDuplicateDirective, got %v", err)
			}
		})
	}
}

func TestParseDocument(t *testing.T) {
	lines := []string{
		"%% plan for Q1",
		"gantt",
		"    dateFormat YYYY-MM-DD",
		"    title Adding GANTT diagram",
		"    excludes weekends",
		"",
		"    section A section",
		"    Completed task            :done,    des1, 2014-01-06,2014-01-08",
		"",
		"    Future task               :         des3, after des2, 5d",
		"",
		"",
		"    section Critical tasks",
		"    Completed task in the critical line :crit, done, 2014-01-06,24h",
		"",
	}

	doc, err := Parse(lines)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.Diagram != "gantt" {
		t.Errorf("Diagram = %q, want gantt", doc.Diagram)
	}
	if len(doc.Leading) != 1 || doc.Leading[0].Text != "%% plan for Q1" {
		t.Errorf("Leading = %+v", doc.Leading)
	}
	if doc.Title == nil || doc.Title.Value != "Adding GANTT diagram" {
		t.Errorf("Title = %+v", doc.Title)
	}
	if doc.DateFormat == nil || doc.DateFormat.Value != "YYYY-MM-DD" {
		t.Errorf("DateFormat = %+v", doc.DateFormat)
	}
	if len(doc.Preamble) != 1 || doc.Preamble[0].Text != "excludes weekends" {
		t.Errorf("Preamble = %+v", doc.Preamble)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("Sections = %d, want 2", len(doc.Sections))
	}

	first := doc.Sections[0]
	if first.Name != "A section" || first.Implicit {
		t.Errorf("first section = %q implicit=%v", first.Name, first.Implicit)
	}
	// Blank lines are layout only and never become nodes.
	if len(first.Nodes) != 2 {
		t.Fatalf("first section nodes = %d, want 2: %+v", len(first.Nodes), first.Nodes)
	}
	if got := len(first.Tasks()); got != 2 {
		t.Errorf("first section tasks = %d, want 2", got)
	}

	if got := doc.TaskCount(); got != 3 {
		t.Errorf("TaskCount = %d, want 3", got)
	}
	tasks := doc.Tasks()
	if tasks[2].Modifier != ModifierCrit || tasks[2].Status != StatusDone || tasks[2].Span != "24h" {
		t.Errorf("critical task = %+v", tasks[2])
	}
}

func TestParseCommentedLines(t *testing.T) {
	doc, err := Parse([]string{
		"gantt",
		"section A",
		"%% Draft : crit, 2d",
		"%% see https://example.com",
		"%% section Later",
		"%%{init: {}}%%",
		"%% excludes weekends",
		"a : 1d",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	nodes := doc.Sections[0].Nodes
	if len(nodes) != 6 {
		t.Fatalf("nodes = %d, want 6: %+v", len(nodes), nodes)
	}

	draft := nodes[0].(Passthrough)
	if draft.Task == nil || draft.Task.Label != "Draft" || draft.Task.Meta != "crit, 2d" {
		t.Errorf("commented task = %+v", draft.Task)
	}
	for _, i := range []int{1, 2, 3, 4} {
		pt := nodes[i].(Passthrough)
		if pt.Task != nil {
			t.Errorf("%q parsed as task %+v", pt.Text, pt.Task)
		}
	}
	if !nodes[2].(Passthrough).CommentedSection() {
		t.Errorf("%q is a commented section", nodes[2].(Passthrough).Text)
	}
	if nodes[1].(Passthrough).CommentedSection() {
		t.Errorf("%q is not a commented section", nodes[1].(Passthrough).Text)
	}
	if got := doc.TaskCount(); got != 1 {
		t.Errorf("TaskCount = %d, want 1", got)
	}
}

func TestParseImplicitSection(t *testing.T) {
	lines := []string{
		"gantt",
		"A : 1d",
		"B : 2d",
		"section Named",
		"C : 3d",
	}
	doc, err := Parse(lines)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("Sections = %d, want 2", len(doc.Sections))
	}
	if !doc.Sections[0].Implicit || doc.Sections[0].Name != "" {
		t.Errorf("first section should be implicit, got %+v", doc.Sections[0])
	}
	if doc.Sections[1].Implicit {
		t.Error("named section should not be implicit")
	}
}

func TestParseUsesDateFormat(t *testing.T) {
	lines := []string{
		"gantt",
		"dateFormat DD-MM-YYYY",
		"section S",
		"Task : t1, 06-01-2014, 08-01-2014",
	}
	doc, err := Parse(lines)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	task := doc.Tasks()[0]
	if task.ID != "t1" || task.Start != "06-01-2014" || task.Span != "08-01-2014" {
		t.Errorf("task = %+v", task)
	}
}

func TestParseFrontmatter(t *testing.T) {
	t.Run("copied verbatim", func(t *testing.T) {
		lines := []string{
			"---",
			"displayMode: compact",
			"---",
			"gantt",
			"section S",
			"A : 1d",
		}
		doc, err := Parse(lines)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(doc.Frontmatter) != 3 || doc.Frontmatter[1] != "displayMode: compact" {
			t.Errorf("Frontmatter = %q", doc.Frontmatter)
		}
	})

	t.Run("unterminated", func(t *testing.T) {
		_, err := Parse([]string{"", "---", "title: x", "gantt"})
		if !errors.Is(err, ErrUnterminatedFrontmatter) {
			t.Fatalf("expected ErrUnterminatedFrontmatter, got %v", err)
		}
		var lineErr *LineError
		if errors.As(err, &lineErr) && lineErr.Line != 2 {
			t.Errorf("Line = %d, want 2", lineErr.Line)
		}
	})
}

func TestParseExtraKeywords(t *testing.T) {
	lines := []string{
		"gantt",
		"section S",
		"customThing enabled",
		"A : 1d",
	}
	if _, err := Parse(lines); !errors.Is(err, ErrMissingColon) {
		t.Fatalf("without extra keyword expected ErrMissingColon, got %v", err)
	}
	doc, err := Parse(lines, "customThing")
	if err != nil {
		t.Fatalf("Parse with extra keyword failed: %v", err)
	}
	if _, ok := doc.Sections[0].Nodes[0].(Passthrough); !ok {
		t.Errorf("expected passthrough, got %T", doc.Sections[0].Nodes[0])
	}
}
