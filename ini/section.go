package ini

import (
	"iter"
	"slices"
)

// Section is an ordered mapping from key to [Values]. Keys are unique and
// iterate in the order they were first added.
type Section struct {
	name   string
	keys   []string
	values map[string]Values
}

func newSection(name string) *Section {
	return &Section{name: name, values: make(map[string]Values)}
}

// Name returns the section name.
func (s *Section) Name() string { return s.name }

// Len returns the number of keys in s.
func (s *Section) Len() int { return len(s.keys) }

// Has reports whether key is declared in s.
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]

	return ok
}

// Get returns a copy of the values of key and whether key is declared.
func (s *Section) Get(key string) (Values, bool) {
	v, ok := s.values[key]

	return slices.Clone(v), ok
}

// Set declares key with a copy of v, appending key to the key order if it
// is new.
func (s *Section) Set(key string, v Values) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}

	s.values[key] = slices.Clone(v)
}

// Delete removes key from s and reports whether it was declared.
func (s *Section) Delete(key string) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}

	delete(s.values, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })

	return true
}

// Keys returns an iterator over the keys of s in order.
func (s *Section) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, k := range s.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// All returns an iterator over the keys of s and copies of their values.
func (s *Section) All() iter.Seq2[string, Values] {
	return func(yield func(string, Values) bool) {
		for _, k := range s.keys {
			if !yield(k, slices.Clone(s.values[k])) {
				return
			}
		}
	}
}

// Upsert adds the items of value to key, declaring key if needed. The value
// is split with [DecodeValues], so "0.6,0.8" adds two items and "" adds
// none. It reports whether s changed. An existing item is never removed or
// reordered.
func (s *Section) Upsert(key, value string) bool {
	items := DecodeValues(value)

	v, ok := s.values[key]
	if ok && !slices.ContainsFunc(items, func(item string) bool { return !v.Contains(item) }) {
		return false
	}

	s.merge(key, items)

	return true
}

// merge folds items into key with set semantics, declaring key if needed.
func (s *Section) merge(key string, items Values) {
	v, ok := s.values[key]
	if !ok {
		s.keys = append(s.keys, key)
	}

	s.values[key] = v.merge(items)
}

// SectionMap is an ordered mapping from section name to [Section]. Section
// names are unique and iterate in the order they were first added.
//
// A SectionMap obtained with [ToMap] remembers the [Document] it came from,
// so [ToDocument] can keep every line the caller did not change.
type SectionMap struct {
	names    []string
	sections map[string]*Section

	origin   *Document
	snapshot map[string]map[string]Values
}

// NewSectionMap returns an empty SectionMap with no origin document.
func NewSectionMap() *SectionMap {
	return &SectionMap{sections: make(map[string]*Section)}
}

// Len returns the number of sections in m.
func (m *SectionMap) Len() int { return len(m.names) }

// Section returns the named section and whether it exists.
func (m *SectionMap) Section(name string) (*Section, bool) {
	s, ok := m.sections[name]

	return s, ok
}

// Ensure returns the named section, appending an empty one if needed.
func (m *SectionMap) Ensure(name string) *Section {
	if s, ok := m.sections[name]; ok {
		return s
	}

	s := newSection(name)
	m.names = append(m.names, name)
	m.sections[name] = s

	return s
}

// Delete removes the named section and reports whether it existed.
func (m *SectionMap) Delete(name string) bool {
	if _, ok := m.sections[name]; !ok {
		return false
	}

	delete(m.sections, name)
	m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })

	return true
}

// Names returns an iterator over the section names of m in order.
func (m *SectionMap) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range m.names {
			if !yield(n) {
				return
			}
		}
	}
}

// All returns an iterator over the sections of m in order.
func (m *SectionMap) All() iter.Seq2[string, *Section] {
	return func(yield func(string, *Section) bool) {
		for _, n := range m.names {
			if !yield(n, m.sections[n]) {
				return
			}
		}
	}
}

// Get returns a copy of the values of key in section, and whether the key
// is declared.
func (m *SectionMap) Get(section, key string) (Values, bool) {
	s, ok := m.sections[section]
	if !ok {
		return nil, false
	}

	return s.Get(key)
}

// Upsert adds value to key in section. See [Upsert].
func (m *SectionMap) Upsert(section, key, value string) bool {
	return m.Ensure(section).Upsert(key, value)
}

// ToDocument returns the document projection of m. See [ToDocument].
func (m *SectionMap) ToDocument() *Document { return ToDocument(m) }

// Upsert ensures value is among the values of key in section of m:
//
//   - a missing section is appended, empty
//   - a missing key is appended with the items of value
//   - a key without values receives them
//   - a key whose values lack some item has it appended
//   - otherwise nothing changes
//
// The value is split into items like a parsed value (see [DecodeValues]),
// so what Upsert stores is exactly what reading the written file yields.
// An empty value declares a missing key without values.
//
// Upsert reports whether m changed. It is idempotent and never removes,
// renames, or reorders existing sections, keys, or values.
func Upsert(m *SectionMap, section, key, value string) bool {
	return m.Upsert(section, key, value)
}

// ToMap builds the section map projection of doc.
//
// Sections and keys keep the order of their first appearance. Repeated
// headers and repeated keys merge into the first, with values folded in
// using set semantics. The unnamed section "" is present only if some key
// was declared ahead of the first header, or a "[]" header appears.
func ToMap(doc *Document) *SectionMap {
	m := NewSectionMap()
	m.origin = doc.Clone()

	if m.origin == nil {
		m.origin = new(Document)
	}

	var current *Section

	name := ""

	for _, e := range doc.All() {
		switch e.Kind {
		case KindSection:
			name = e.Name
			current = m.Ensure(name)

		case KindKeyValue:
			if current == nil {
				current = m.Ensure(name)
			}

			current.merge(e.Key, e.Values())
		}
	}

	m.snapshot = make(map[string]map[string]Values, len(m.names))

	for n, s := range m.All() {
		keys := make(map[string]Values, s.Len())
		for k, v := range s.All() {
			keys[k] = v
		}

		m.snapshot[n] = keys
	}

	return m
}
