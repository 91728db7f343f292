package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/slicerini/cli/cmd/repl"
	"github.com/ardnew/slicerini/ini"
	"github.com/ardnew/slicerini/log"
)

// Repl edits the target file in an interactive session.
type Repl struct {
	NoHistory bool `help:"Do not load or record command history"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	path := targetFrom(ctx)
	if path == stdinSource {
		return ErrInteractive.Wrap(ErrWriteStdin)
	}

	doc, err := LoadDocument(ctx, path, true)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil && !r.NoHistory {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, repl.Config{
		Document: doc,
		Path:     path,
		CacheDir: cacheDir,
		Save:     saveFunc(path),
		Logger:   log.With(slog.String("command", "repl")),
	})
}

// saveFunc returns a function that atomically replaces the file at path.
func saveFunc(path string) func(*ini.Document) error {
	return func(doc *ini.Document) error {
		if err := WriteFileAtomic(path, []byte(doc.String())); err != nil {
			return ErrWriteTarget.
				With(slog.String("file", path)).
				Wrap(err)
		}

		return nil
	}
}
