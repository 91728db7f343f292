package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/slicerini/ini"
	"github.com/ardnew/slicerini/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	targetKey  struct{}
	streamsKey struct{}
	streams    struct {
		in  io.Reader
		out io.Writer
	}
)

// stdinSource is the special file name for reading from stdin.
const stdinSource = "-"

// defaultFileMode is the permission mode for newly created files.
const defaultFileMode os.FileMode = 0o644

// WithTarget returns a new context.Context naming the PrusaSlicer.ini file
// that commands read and, with --write, replace.
func WithTarget(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, targetKey{}, path)
}

// targetFrom returns the file stored by WithTarget, or stdin if none.
func targetFrom(ctx context.Context) string {
	if path, ok := ctx.Value(targetKey{}).(string); ok && path != "" {
		return path
	}

	return stdinSource
}

// WithStreams returns a new context.Context whose commands read standard
// input from in and write results to out. Nil values keep the process
// streams.
func WithStreams(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{in: in, out: out})
}

func streamsFrom(ctx context.Context) (io.Reader, io.Writer) {
	s, _ := ctx.Value(streamsKey{}).(streams)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	return s.in, s.out
}

// LoadDocument parses the file at path, or standard input if path is "-".
// If missingOK is set, a file that does not exist yields an empty document.
func LoadDocument(
	ctx context.Context,
	path string,
	missingOK bool,
) (*ini.Document, error) {
	if path == stdinSource {
		in, _ := streamsFrom(ctx)

		return ini.ParseReader(ctx, in, ini.WithSourceName(stdinSource))
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && missingOK {
		log.DebugContext(ctx, "source file missing, starting empty",
			slog.String("file", path),
		)

		return ini.NewDocument(), nil
	}

	if err != nil {
		return nil, ErrReadSource.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return ini.Parse(string(data), ini.WithSourceName(path))
}

// WriteFileAtomic replaces the file at path with data. The data is written
// to a temporary file in the same directory, synced, and renamed over path,
// so readers never observe a partial file. An existing file keeps its
// permissions.
func WriteFileAtomic(path string, data []byte) (err error) {
	mode := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	// Remove the temporary file unless it was renamed into place.
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}

	if err = tmp.Sync(); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// emit renders doc to the output stream, or replaces the file at path with
// it when write is set.
func emit(ctx context.Context, doc *ini.Document, path string, write bool) error {
	_, out := streamsFrom(ctx)

	if !write {
		if err := doc.Format(out); err != nil {
			return ErrFormat.Wrap(err)
		}

		return nil
	}

	if path == stdinSource {
		return ErrWriteTarget.Wrap(ErrWriteStdin)
	}

	var buf bytes.Buffer
	if err := doc.Format(&buf); err != nil {
		return ErrFormat.Wrap(err)
	}

	if err := WriteFileAtomic(path, buf.Bytes()); err != nil {
		return ErrWriteTarget.
			With(slog.String("file", path)).
			Wrap(err)
	}

	log.InfoContext(ctx, "wrote file",
		slog.String("file", path),
		slog.Int("lines", doc.Len()),
	)

	return nil
}
