package ini

import (
	"slices"
	"strings"
)

// ToDocument projects m back onto the document it was built from.
//
// Lines of keys whose values are unchanged are kept verbatim, along with
// every comment and blank line outside removed sections. A changed key is
// written once, as "key = v1, v2", where it first appeared. Removed keys
// and sections are left out, together with the comments leading into a
// removed header.
//
// Keys new to an existing section follow the last key line of that
// section's final block, so comments ahead of the next header stay with
// it. Keys new to the unnamed section "" follow its last key line or, if
// it had none, follow the last key line of a "[]" block or precede the
// first header and the comments attached to it.
// New sections are appended at the end of the document. New sections and
// keys keep the order in which they were created. Generated lines end like
// the origin line before them, so a CRLF document stays CRLF.
//
// A repeated header whose key lines were all merged into an earlier block
// of the same section is dropped along with them.
//
// A SectionMap with no origin document, such as one from [NewSectionMap],
// is rendered entirely in canonical form.
func ToDocument(m *SectionMap) *Document {
	p := projection{m: m, origin: m.origin}
	if p.origin == nil {
		p.origin = new(Document)
	}

	return p.run()
}

// projection holds the working state of a single [ToDocument] call.
type projection struct {
	m      *SectionMap
	origin *Document
	out    []Entry

	// keys already regenerated, by section then key
	written map[string]map[string]bool

	// whether generated lines take a trailing '\r'
	crlf bool

	// output index of an open repeated header, and whether its origin
	// block held key lines
	repeat     int
	repeatKeys bool
}

func (p *projection) run() *Document {
	entries := p.origin.Entries

	p.out = make([]Entry, 0, len(entries)+p.m.Len())
	p.written = make(map[string]map[string]bool)

	inserts := p.anchors()

	var (
		name string
		skip bool // inside a removed section
		seen = make(map[string]bool)
	)

	p.repeat = -1
	p.crlf = len(entries) > 0 && strings.HasSuffix(entries[0].Raw, "\r")

	for i, e := range entries {
		for _, section := range inserts[i] {
			p.emitNewKeys(section)
		}

		if i < len(entries)-1 || !p.origin.noFinalNewline {
			p.crlf = strings.HasSuffix(e.Raw, "\r")
		}

		switch e.Kind {
		case KindSection:
			p.closeBlock()

			name = e.Name
			_, exists := p.m.Section(name)
			skip = !exists

			if !skip {
				if seen[name] {
					p.repeat, p.repeatKeys = len(p.out), false
				}

				p.out = append(p.out, e)
			}

			seen[name] = true

		case KindKeyValue:
			if !skip {
				p.repeatKeys = true
				p.emitKey(name, e)
			}

		default:
			if header, ok := p.attachedTo(i); ok {
				if _, exists := p.m.Section(header); exists {
					p.out = append(p.out, e)
				}
			} else if !skip {
				p.out = append(p.out, e)
			}
		}
	}

	kept := len(p.out)

	for _, section := range inserts[len(entries)] {
		p.emitNewKeys(section)
	}

	if p.closeBlock() {
		kept--
	}

	for n, s := range p.m.All() {
		if n == "" || p.existed(n) {
			continue
		}

		p.out = append(p.out, p.line(NewSectionHeader(n)))
		for k, v := range s.All() {
			p.out = append(p.out, p.line(NewKeyValue(k, EncodeValues(v))))
		}
	}

	// The unterminated last line gains a terminator when lines follow it.
	if p.origin.noFinalNewline && p.crlf && kept > 0 && len(p.out) > kept {
		if last := p.out[kept-1]; !strings.HasSuffix(last.Raw, "\r") {
			p.out[kept-1].Raw = last.String() + "\r"
		}
	}

	return &Document{
		Entries:        p.out,
		noFinalNewline: p.origin.noFinalNewline && len(p.out) == kept,
	}
}

// line gives a generated entry the line ending in effect.
func (p *projection) line(e Entry) Entry {
	if p.crlf {
		e.Raw = e.Canonical() + "\r"
	}

	return e
}

// closeBlock ends the block of an open repeated header, dropping the header
// if its key lines were all merged away. It reports whether it dropped one.
func (p *projection) closeBlock() bool {
	h := p.repeat
	p.repeat = -1

	if h < 0 || !p.repeatKeys {
		return false
	}

	if slices.ContainsFunc(p.out[h+1:], func(e Entry) bool { return e.Kind == KindKeyValue }) {
		return false
	}

	p.out = slices.Delete(p.out, h, h+1)

	return true
}

// existed reports whether section n was part of the origin document.
func (p *projection) existed(n string) bool {
	_, ok := p.m.snapshot[n]

	return ok
}

// emitKey writes an original key line of section n.
func (p *projection) emitKey(n string, e Entry) {
	s, ok := p.m.Section(n)
	if !ok {
		return
	}

	v, ok := s.Get(e.Key)
	if !ok {
		return
	}

	if v.Equal(p.m.snapshot[n][e.Key]) {
		p.out = append(p.out, e)

		return
	}

	if p.written[n][e.Key] {
		return
	}

	if p.written[n] == nil {
		p.written[n] = make(map[string]bool)
	}

	p.written[n][e.Key] = true
	p.out = append(p.out, p.line(NewKeyValue(e.Key, EncodeValues(v))))
}

// emitNewKeys writes the keys of section n absent from the origin.
func (p *projection) emitNewKeys(n string) {
	s, ok := p.m.Section(n)
	if !ok {
		return
	}

	before := p.m.snapshot[n]

	for k, v := range s.All() {
		if _, old := before[k]; !old {
			p.out = append(p.out, p.line(NewKeyValue(k, EncodeValues(v))))
		}
	}
}

// anchors maps entry indexes to the sections whose new keys are written
// just before that entry. Index len(entries) means the end of the origin.
func (p *projection) anchors() map[int][]string {
	entries := p.origin.Entries
	at := make(map[string]int)

	topKV := -1
	firstHeader := -1

	var name string

	for i, e := range entries {
		switch e.Kind {
		case KindSection:
			if firstHeader < 0 {
				firstHeader = i
			}

			name = e.Name
			at[name] = i + 1

		case KindKeyValue:
			if firstHeader < 0 {
				topKV = i
			} else {
				at[name] = i + 1
			}
		}
	}

	inserts := make(map[int][]string)

	for n := range p.m.Names() {
		if n != "" {
			if idx, ok := at[n]; ok {
				inserts[idx] = append(inserts[idx], n)
			}

			continue
		}

		// The unnamed section has no header to anchor to.
		idx := len(entries)

		switch explicit, ok := at[""]; {
		case topKV >= 0:
			idx = topKV + 1
		case ok:
			idx = explicit
		case firstHeader >= 0:
			idx = leadIn(entries, firstHeader)
		}

		inserts[idx] = append(inserts[idx], n)
	}

	return inserts
}

// attachedTo returns the name of the section header that the comment at
// index i leads into: the header ending an unbroken run of comments that
// includes i.
func (p *projection) attachedTo(i int) (string, bool) {
	entries := p.origin.Entries
	if entries[i].Kind != KindComment {
		return "", false
	}

	end := i
	for end < len(entries) && entries[end].Kind == KindComment {
		end++
	}

	if end == len(entries) || entries[end].Kind != KindSection {
		return "", false
	}

	return entries[end].Name, true
}

// leadIn returns the index of the first comment in the unbroken run of
// comments ending right before the header at index h, or h if there is none.
func leadIn(entries []Entry, h int) int {
	i := h
	for i > 0 && entries[i-1].Kind == KindComment {
		i--
	}

	return i
}
