package ini

import (
	"strconv"
	"strings"
)

// Kind identifies the structural role of a line.
type Kind int

const (
	// KindBlank is an empty or whitespace-only line.
	KindBlank Kind = iota

	// KindComment is a line beginning with ';' or '#'.
	KindComment

	// KindSection is a "[name]" section header.
	KindSection

	// KindKeyValue is a "key = value" pair.
	KindKeyValue
)

// String returns a string representation of the line kind.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "Blank"
	case KindComment:
		return "Comment"
	case KindSection:
		return "Section"
	case KindKeyValue:
		return "KeyValue"
	default:
		return "Unknown"
	}
}

// Position locates a line in its source text.
type Position struct {
	Offset int // byte offset of the first byte of the line
	Line   int // 1-based
	Column int // 1-based column of the first non-blank byte
}

// IsValid reports whether p refers to a source line.
func (p Position) IsValid() bool { return p.Line > 0 }

// String returns "line:column", or "-" for synthesized entries.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}

	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Entry is a single line of a [Document].
//
// Only the fields relevant to Kind are set: Name for KindSection, Key and
// Value for KindKeyValue, Text for KindComment.
//
// Raw holds the line exactly as it appeared in the source, without the
// terminating newline. Entries built by the New* constructors have an empty
// Raw and are written in canonical form.
type Entry struct {
	Kind  Kind
	Name  string
	Key   string
	Value string
	Text  string
	Raw   string
	Pos   Position
}

// NewSectionHeader returns a synthesized section header entry.
func NewSectionHeader(name string) Entry {
	return Entry{Kind: KindSection, Name: name}
}

// NewKeyValue returns a synthesized key-value entry.
func NewKeyValue(key, value string) Entry {
	return Entry{Kind: KindKeyValue, Key: key, Value: value}
}

// NewComment returns a synthesized comment entry. The text must include its
// leading comment marker.
func NewComment(text string) Entry {
	return Entry{Kind: KindComment, Text: text}
}

// NewBlank returns a synthesized blank line entry.
func NewBlank() Entry {
	return Entry{Kind: KindBlank}
}

// Canonical returns the canonical rendering of e, ignoring Raw.
func (e Entry) Canonical() string {
	switch e.Kind {
	case KindSection:
		return "[" + e.Name + "]"

	case KindKeyValue:
		return e.Key + " = " + e.Value

	case KindComment:
		return e.Text

	default:
		return ""
	}
}

// String returns the line as it is written by [Document.Format].
func (e Entry) String() string {
	if e.Raw != "" {
		return e.Raw
	}

	return e.Canonical()
}

// Values returns the decoded value list of a key-value entry.
func (e Entry) Values() Values {
	if e.Kind != KindKeyValue {
		return nil
	}

	return DecodeValues(e.Value)
}

// describe returns a compact single-line description used by
// [Document.Dump].
func (e Entry) describe() string {
	var b strings.Builder

	b.WriteString(e.Kind.String())

	switch e.Kind {
	case KindSection:
		b.WriteString(" name=")
		b.WriteString(strconv.Quote(e.Name))

	case KindKeyValue:
		b.WriteString(" key=")
		b.WriteString(strconv.Quote(e.Key))
		b.WriteString(" value=")
		b.WriteString(strconv.Quote(e.Value))

	case KindComment:
		b.WriteString(" text=")
		b.WriteString(strconv.Quote(e.Text))
	}

	return b.String()
}
