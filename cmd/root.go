// Package cmd implements the CLI command structure for ganttfmt.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/ganttfmt/internal/config"
	"github.com/nibzard/ganttfmt/internal/export"
	"github.com/nibzard/ganttfmt/internal/fileio"
	"github.com/nibzard/ganttfmt/internal/gantt"
	"github.com/nibzard/ganttfmt/internal/logging"
	"github.com/nibzard/ganttfmt/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries the state shared by every subcommand.
type app struct {
	cws    *config.ConfigWithSources
	logger *log.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Run executes the ganttfmt CLI on the process streams.
func Run(ctx context.Context, args []string) error {
	return RunIO(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

// RunIO executes the ganttfmt CLI with the given streams.
func RunIO(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("ganttfmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}

	a := &app{cws: cws, stdin: stdin, stdout: stdout, stderr: stderr}
	a.resetLogger()

	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Without a subcommand the arguments are files to format
	subcommand := "fmt"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "fmt":
		err = a.fmtCommand(remainingArgs)
	case "check":
		err = a.checkCommand(remainingArgs)
	case "dump":
		err = a.dumpCommand(remainingArgs)
	case "preview":
		err = a.previewCommand(ctx, remainingArgs)
	case "config":
		err = a.configCommand(remainingArgs)
	case "version":
		err = a.versionCommand()
	case "help":
		printUsage(fs, stdout)
	default:
		// A file path formats that file
		if fi, statErr := os.Stat(subcommand); statErr == nil && !fi.IsDir() {
			err = a.fmtCommand(append([]string{subcommand}, remainingArgs...))
			break
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// parseFlags parses a subcommand's flags, which may override the layout and
// logging settings given before the subcommand.
func (a *app) parseFlags(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(a.stderr)
	if err := a.cws.ParseFlags(fs, args); err != nil {
		return err
	}
	a.resetLogger()
	return nil
}

func (a *app) resetLogger() {
	cfg := a.cws.Config
	a.logger = logging.FromConfig(a.stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

// fmtCommand formats one file, in place or into a second path.
func (a *app) fmtCommand(args []string) error {
	fs := flag.NewFlagSet("ganttfmt fmt", flag.ContinueOnError)
	if err := a.parseFlags(fs, args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("fmt requires an input file (use %s for stdin)", fileio.Stdio)
	}
	if len(remaining) > 2 {
		return fmt.Errorf("unexpected arguments: %v", remaining[2:])
	}
	input, output := remaining[0], remaining[0]
	if len(remaining) == 2 {
		output = remaining[1]
	}

	src, err := a.readInput(input)
	if err != nil {
		return err
	}
	res, err := a.process(input, src.Lines)
	if err != nil {
		return err
	}

	if output == input && input != fileio.Stdio && src.Canonical(res.Lines) {
		a.logger.Info("already formatted", "path", input)
		return nil
	}
	if err := a.writeOutput(output, res.Lines); err != nil {
		return err
	}
	a.logger.Info("formatted", "path", displayPath(output), "tasks", res.Document.TaskCount())
	return nil
}

// checkCommand lists the inputs that are not in canonical form.
func (a *app) checkCommand(args []string) error {
	fs := flag.NewFlagSet("ganttfmt check", flag.ContinueOnError)
	if err := a.parseFlags(fs, args); err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("check requires at least one input file")
	}

	failed := 0
	for _, path := range paths {
		src, err := a.readInput(path)
		if err == nil {
			var res *gantt.Result
			res, err = a.process(path, src.Lines)
			if err == nil {
				if src.Canonical(res.Lines) {
					a.logger.Debug("canonical", "path", displayPath(path))
					continue
				}
				fmt.Fprintln(a.stdout, displayPath(path))
				failed++
				continue
			}
		}
		fmt.Fprintln(a.stderr, err)
		failed++
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files are not formatted", failed, len(paths))
	}
	return nil
}

// dumpCommand prints the parsed document as schema-checked JSON.
func (a *app) dumpCommand(args []string) error {
	fs := flag.NewFlagSet("ganttfmt dump", flag.ContinueOnError)
	printSchema := fs.Bool("print-schema", false, "Print the built-in JSON Schema and exit")
	if err := a.parseFlags(fs, args); err != nil {
		return err
	}
	if *printSchema {
		_, err := io.WriteString(a.stdout, export.Schema())
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("dump requires exactly one input file")
	}
	path := remaining[0]

	src, err := a.readInput(path)
	if err != nil {
		return err
	}
	res, err := a.process(path, src.Lines)
	if err != nil {
		return err
	}

	model := export.FromDocument(res.Document, res.Widths)
	result := model.Validate(export.ValidationOptions{SchemaPath: a.cws.Config.SchemaFile})
	for _, warning := range result.Warnings {
		a.logger.Warn(warning)
	}
	if !result.Valid {
		for _, verr := range result.Errors {
			a.logger.Error("schema violation", "err", verr)
		}
		return fmt.Errorf("%s: model does not match schema %s (%d errors)", displayPath(path), result.UsedSchema, len(result.Errors))
	}
	a.logger.Debug("model validated", "schema", result.UsedSchema)
	return model.Encode(a.stdout)
}

// previewCommand opens the interactive before/after viewer.
func (a *app) previewCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ganttfmt preview", flag.ContinueOnError)
	if err := a.parseFlags(fs, args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("preview requires exactly one input file")
	}
	path := remaining[0]

	src, err := a.readInput(path)
	if err != nil {
		return err
	}
	res, err := a.process(path, src.Lines)
	if err != nil {
		return err
	}

	opts := ui.PreviewOptions{
		Path:      displayPath(path),
		Original:  src.Lines,
		Formatted: res.Lines,
		Canonical: src.Canonical(res.Lines),
		Output:    a.stdout,
	}
	if path != fileio.Stdio {
		opts.Save = func(formatted []string) error {
			if err := fileio.WriteLines(path, formatted); err != nil {
				return err
			}
			a.logger.Info("formatted", "path", path, "tasks", res.Document.TaskCount())
			return nil
		}
	}
	return ui.RunPreview(ctx, opts)
}

// configCommand prints the effective configuration, or an example file.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("ganttfmt config", flag.ContinueOnError)
	if err := a.parseFlags(fs, args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		if remaining[0] != "example" {
			return fmt.Errorf("unknown config command: %s", remaining[0])
		}
		_, err := io.WriteString(a.stdout, config.ExampleConfig())
		return err
	}

	printConfig(a.stdout, a.cws)
	return nil
}

func printConfig(w io.Writer, cws *config.ConfigWithSources) {
	entries := cws.Entries()
	fieldWidth, valueWidth := 0, 0
	for _, e := range entries {
		fieldWidth = max(fieldWidth, len(e.Field))
		valueWidth = max(valueWidth, len(e.Value))
	}
	for _, e := range entries {
		value := e.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "%-*s  %-*s  (%s)\n", fieldWidth, e.Field, valueWidth, value, e.Source)
	}

	fmt.Fprintln(w)
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "Config file: none")
		return
	}
	fmt.Fprintf(w, "Config file: %s\n", cws.GetConfigFile())
	for _, path := range cws.Files[:len(cws.Files)-1] {
		fmt.Fprintf(w, "  also read: %s\n", path)
	}
}

func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "ganttfmt version %s\n", Version)
	return nil
}

func (a *app) readInput(path string) (fileio.Content, error) {
	if path == fileio.Stdio {
		src, err := fileio.ReadContent(a.stdin)
		if err != nil {
			return fileio.Content{}, fmt.Errorf("reading stdin: %w", err)
		}
		return src, nil
	}
	return fileio.ReadFile(path)
}

func (a *app) writeOutput(path string, lines []string) error {
	if path == fileio.Stdio {
		return fileio.Write(a.stdout, lines)
	}
	return fileio.WriteLines(path, lines)
}

// process runs the formatting pipeline on lines read from path.
func (a *app) process(path string, lines []string) (*gantt.Result, error) {
	res, err := gantt.Process(lines, a.cws.Config.FormatOptions())
	if err != nil {
		return nil, newFileError(path, err)
	}

	doc := res.Document
	a.logger.Debug("parsed", "path", displayPath(path), "lines", len(lines),
		"sections", len(doc.Sections), "tasks", doc.TaskCount())
	w := res.Widths
	a.logger.Debug("widths", "label", w.Label,
		"status", w.Column(gantt.ColumnStatus),
		"modifier", w.Column(gantt.ColumnModifier),
		"id", w.Column(gantt.ColumnID),
		"start", w.Column(gantt.ColumnStart),
		"span", w.Column(gantt.ColumnSpan))
	return res, nil
}

// fileError is a parse failure positioned as path:line.
type fileError struct {
	Path string
	Err  *gantt.LineError
}

func newFileError(path string, err error) error {
	var lineErr *gantt.LineError
	if !errors.As(err, &lineErr) {
		return fmt.Errorf("%s: %w", displayPath(path), err)
	}
	return &fileError{Path: displayPath(path), Err: lineErr}
}

func (e *fileError) Error() string {
	msg := strings.TrimPrefix(e.Err.Error(), fmt.Sprintf("line %d: ", e.Err.Line))
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Err.Line, msg)
}

func (e *fileError) Unwrap() error {
	return e.Err
}

func displayPath(path string) string {
	if path == fileio.Stdio {
		return "<stdin>"
	}
	return path
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "ganttfmt - Aligns the task columns of Mermaid gantt diagrams")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ganttfmt [options] [command] <input> [output]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  fmt <input> [output]  Format a diagram, in place without output (default command)")
	fmt.Fprintln(w, "  check <input>...      List inputs that are not formatted, fail if any")
	fmt.Fprintln(w, "  dump <input>          Print the parsed diagram as JSON")
	fmt.Fprintln(w, "  preview <input>       Compare original and formatted text in the terminal")
	fmt.Fprintln(w, "  config [example]      Show the effective configuration or an example file")
	fmt.Fprintln(w, "  version               Show version information")
	fmt.Fprintln(w, "  help                  Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use - as input or output for stdin and stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options (also accepted after the command):")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dump Options (use with 'dump' command):")
	fmt.Fprintln(w, "  -print-schema")
	fmt.Fprintln(w, "        Print the built-in JSON Schema and exit")
}
