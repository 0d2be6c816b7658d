package gantt

// Options configures Format.
type Options struct {
	Layout   Layout
	Keywords []string // passthrough keywords in addition to DefaultKeywords
}

// DefaultOptions returns the canonical formatting options.
func DefaultOptions() Options {
	return Options{Layout: DefaultLayout()}
}

// Result carries the intermediate products of a formatting run.
type Result struct {
	Document *Document
	Widths   Widths
	Lines    []string
}

// Process parses lines, measures the document and renders it.
func Process(lines []string, opts Options) (*Result, error) {
	doc, err := NewParser(opts.Keywords...).Parse(lines)
	if err != nil {
		return nil, err
	}
	widths := opts.Layout.Measure(doc)
	return &Result{
		Document: doc,
		Widths:   widths,
		Lines:    Render(doc, widths, opts.Layout),
	}, nil
}

// Format returns the canonical form of lines.
func Format(lines []string, opts Options) ([]string, error) {
	res, err := Process(lines, opts)
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}
