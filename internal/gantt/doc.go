// Package gantt parses, measures, and renders Mermaid Gantt diagrams.
//
// Formatting is a fixed pipeline:
//
//  1. Each input line is parsed into a structured line (diagram keyword, title,
//     dateFormat, section header, task, passthrough, or blank). Task metadata is
//     split on commas and every token is classified by content, not by position.
//  2. The parsed lines are assembled into a Document.
//  3. Measure scans the finished Document once and returns a Widths table.
//  4. Render re-emits the Document using that table.
//
// A formatted task line looks like this (default layout, column gap of 2):
//
//	    Completed task : done,  des1,  2014-01-06,  2014-01-08
//	    Add to mermaid :                            until isadded
//
// Every label, colon, and metadata column starts at the same offset on every
// task line of the document. Columns that no task uses are elided.
//
// # Errors
//
// Parsing fails with a *LineError that wraps one of ErrMalformedTaskLine,
// ErrMissingColon, ErrDuplicateDirective or ErrUnterminatedFrontmatter. Nothing is
// rendered when parsing fails.
package gantt
