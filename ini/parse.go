package ini

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Option configures parsing behavior.
type Option func(*parser)

// WithStrictSections rejects key-value lines that appear before the first
// section header with [ErrKeyValueOutsideSection]. By default such lines
// belong to the unnamed section "".
func WithStrictSections(strict bool) Option {
	return func(p *parser) {
		p.strict = strict
	}
}

// WithSourceName attaches a file name to parse errors as a "file"
// attribute.
func WithSourceName(name string) Option {
	return func(p *parser) {
		p.source = name
	}
}

// parser tracks state while classifying lines.
type parser struct {
	source  string
	strict  bool
	section bool // a header has been seen
}

func applyOptions(p *parser, opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

// Parse parses text into a [Document].
//
// Lines are separated by '\n'. A trailing '\r' is kept in [Entry.Raw] and
// otherwise ignored. The text following a final '\n' does not form a line.
//
// Parse stops at the first malformed line and returns a nil Document with
// an [*Error] matching one of [ErrMalformedSectionHeader],
// [ErrMalformedKeyValue], or [ErrKeyValueOutsideSection].
func Parse(text string, opts ...Option) (*Document, error) {
	var p parser

	applyOptions(&p, opts...)

	doc := new(Document)

	if text == "" {
		return doc, nil
	}

	lines := strings.Split(text, "\n")

	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	} else {
		doc.noFinalNewline = true
	}

	doc.Entries = make([]Entry, 0, len(lines))

	offset := 0

	for i, raw := range lines {
		e, err := p.classify(raw, Position{Offset: offset, Line: i + 1})
		if err != nil {
			return nil, err
		}

		doc.Entries = append(doc.Entries, e)
		offset += len(raw) + 1
	}

	return doc, nil
}

// ParseReader reads all of r and parses it with [Parse].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(string(data), opts...)
}

// classify turns a single raw line into an Entry.
func (p *parser) classify(raw string, pos Position) (Entry, error) {
	line := strings.TrimSpace(raw)

	pos.Column = 1 + strings.Index(raw, line)
	if line == "" {
		pos.Column = 1
	}

	text := strings.TrimSuffix(raw, "\r")

	switch {
	case line == "":
		return Entry{Kind: KindBlank, Raw: raw, Pos: pos}, nil

	case line[0] == ';' || line[0] == '#':
		return Entry{Kind: KindComment, Text: line, Raw: raw, Pos: pos}, nil

	case line[0] == '[':
		name, ok := strings.CutSuffix(line[1:], "]")
		if !ok {
			return Entry{}, p.fail(ErrMalformedSectionHeader, pos, text)
		}

		p.section = true

		// "[]" names the unnamed section "".
		name = strings.TrimSpace(name)

		return Entry{Kind: KindSection, Name: name, Raw: raw, Pos: pos}, nil
	}

	// The key may be empty; only the separator is required.
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return Entry{}, p.fail(ErrMalformedKeyValue, pos, text)
	}

	if p.strict && !p.section {
		return Entry{}, p.fail(ErrKeyValueOutsideSection, pos, text)
	}

	return Entry{
		Kind:  KindKeyValue,
		Key:   strings.TrimSpace(key),
		Value: strings.TrimSpace(value),
		Raw:   raw,
		Pos:   pos,
	}, nil
}

func (p *parser) fail(sentinel *Error, pos Position, text string) *Error {
	err := sentinel.At(pos, text)
	if p.source != "" {
		err = err.With(slog.String("file", p.source))
	}

	return err
}
