package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/slicerini/ini"
)

// Fmt parses the target or a given source and prints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as INI (default)."`
	JSON   JSON   `cmd:""                    help:"Format the section map as JSON."`
	YAML   YAML   `cmd:""                    help:"Format the section map as YAML."`
	AST    AST    `cmd:""                    help:"Print one parsed entry per line."`
}

// Source names the input of a fmt subcommand.
type Source struct {
	Source string `arg:"" help:"Source input file or '-' for stdin (default: --file)." name:"source" optional:""`
}

func (s Source) load(ctx context.Context, format string) (*ini.Document, error) {
	path := s.Source
	if path == "" {
		path = targetFrom(ctx)
	}

	doc, err := LoadDocument(ctx, path, false)
	if err != nil {
		if e, ok := err.(*ini.Error); ok {
			return nil, e.With(slog.String("format", format))
		}

		return nil, err
	}

	return doc, nil
}

// Selection holds the flags shared by the map formats.
type Selection struct {
	Indent int    `default:"2" help:"Indent width for formatted output."          short:"i"`
	Where  string `            help:"Only include sections matching expression." placeholder:"EXPR"`
}

func (s Selection) apply(m *ini.SectionMap) (*ini.SectionMap, error) {
	if s.Where == "" {
		return m, nil
	}

	f, err := ini.Compile(s.Where)
	if err != nil {
		return nil, err
	}

	return f.Apply(m)
}

// Native formats input as INI.
type Native struct {
	Source `embed:""`

	Canonical bool `help:"Normalize spacing of every line."`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) error {
	doc, err := f.load(ctx, "native")
	if err != nil {
		return err
	}

	if f.Canonical {
		doc = doc.Canonical()
	}

	return emit(ctx, doc, stdinSource, false)
}

// JSON outputs the section map of the input as JSON.
type JSON struct {
	Source    `embed:""`
	Selection `embed:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	doc, err := j.load(ctx, "json")
	if err != nil {
		return err
	}

	m, err := j.apply(doc.ToMap())
	if err != nil {
		return err
	}

	_, out := streamsFrom(ctx)
	if err := ini.FormatJSON(out, m, j.Indent); err != nil {
		return ErrFormat.With(slog.String("format", "json")).Wrap(err)
	}

	return nil
}

// YAML outputs the section map of the input as YAML.
type YAML struct {
	Source    `embed:""`
	Selection `embed:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	doc, err := y.load(ctx, "yaml")
	if err != nil {
		return err
	}

	m, err := y.apply(doc.ToMap())
	if err != nil {
		return err
	}

	_, out := streamsFrom(ctx)
	if err := ini.FormatYAML(ctx, out, m, y.Indent); err != nil {
		return ErrFormat.With(slog.String("format", "yaml")).Wrap(err)
	}

	return nil
}

// AST prints the parsed entries of the input.
type AST struct {
	Source `embed:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	doc, err := a.load(ctx, "ast")
	if err != nil {
		return err
	}

	_, out := streamsFrom(ctx)

	return doc.Dump(out)
}
