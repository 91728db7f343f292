package ini

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Format writes the lines of d to w, each followed by a newline except the
// last when the source text had none.
func (d *Document) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for i, e := range d.All() {
		if _, err := bw.WriteString(e.String()); err != nil {
			return err
		}

		if i == len(d.Entries)-1 && d.noFinalNewline {
			break
		}

		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// String returns the formatted text of d.
func (d *Document) String() string { return Format(d) }

// Format returns the formatted text of doc.
func Format(doc *Document) string {
	var b strings.Builder

	// strings.Builder never returns a write error
	_ = doc.Format(&b)

	return b.String()
}

// Dump writes a structural listing of d to w, one entry per line, with the
// source position and the fields relevant to each kind.
func (d *Document) Dump(w io.Writer) error {
	for _, e := range d.All() {
		_, err := fmt.Fprintf(w, "%-6s %s\n", e.Pos, e.describe())
		if err != nil {
			return err
		}
	}

	return nil
}
