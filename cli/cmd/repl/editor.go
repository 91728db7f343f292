package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/slicerini/ini"
	"github.com/ardnew/slicerini/log"
)

const defaultEditor = "vi"

// editDocumentCommand implements [tea.ExecCommand] for the full document
// edit-parse-retry loop. It writes the current document to a temp file, opens
// the user's editor, and re-parses the result. On parse error the user is
// prompted to re-edit; declining abandons the edit.
type editDocumentCommand struct {
	doc     *ini.Document
	ctxFunc func() context.Context
	newDoc  *ini.Document
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editDocumentCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editDocumentCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editDocumentCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. If the user declines to re-edit, it
// returns [ErrEditDeclined]. An unchanged or emptied file leaves newDoc nil.
func (c *editDocumentCommand) Run() error {
	ctx := c.ctxFunc()
	content := c.doc.String()

	f, err := os.CreateTemp(os.TempDir(), "slicerini-repl-*.ini")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	original := content

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		// An emptied or untouched file cancels the edit.
		if len(data) == 0 || string(data) == original {
			return nil
		}

		newDoc, parseErr := ini.Parse(string(data), ini.WithSourceName(tmpPath))
		c.logger.TraceContext(
			ctx,
			"editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.newDoc = newDoc

			return nil
		}

		fmt.Fprintf(c.stderr, "\nParse error: %s\n", parseErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		// Resume from the failed content.
		content = string(data)
	}
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = defaultEditor
	}

	// EDITOR may carry arguments, as in "code --wait".
	args := strings.Fields(editor)
	args = append(args, path)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
