package ini

import (
	"iter"
	"slices"
)

// Document is the ordered sequence of lines of an INI file.
//
// A Document returned by [Parse] formats back to exactly the text it was
// parsed from.
type Document struct {
	Entries []Entry

	noFinalNewline bool
}

// NewDocument returns a Document holding the given entries. It is written
// with a newline after every entry.
func NewDocument(entries ...Entry) *Document {
	return &Document{Entries: slices.Clone(entries)}
}

// Len returns the number of lines in d.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}

	return len(d.Entries)
}

// All returns an iterator over the entries of d with their indexes.
func (d *Document) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		if d == nil {
			return
		}

		for i, e := range d.Entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Sections returns an iterator over the names of section headers in d in
// file order. Repeated headers are yielded each time they appear.
func (d *Document) Sections() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range d.All() {
			if e.Kind == KindSection && !yield(e.Name) {
				return
			}
		}
	}
}

// FinalNewline reports whether the last line of d is terminated by a
// newline when formatted.
func (d *Document) FinalNewline() bool { return d == nil || !d.noFinalNewline }

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	return &Document{
		Entries:        slices.Clone(d.Entries),
		noFinalNewline: d.noFinalNewline,
	}
}

// Canonical returns a copy of d with every line in canonical form: headers
// as "[name]", pairs as "key = value", comments trimmed, and blanks empty.
func (d *Document) Canonical() *Document {
	c := d.Clone()
	if c == nil {
		return nil
	}

	for i := range c.Entries {
		c.Entries[i].Raw = ""
	}

	c.noFinalNewline = false

	return c
}

// ToMap returns the section map projection of d. See [ToMap].
func (d *Document) ToMap() *SectionMap { return ToMap(d) }
