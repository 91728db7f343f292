package ini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// MarshalJSON implements json.Marshaler for SectionMap. Sections and keys
// keep their order. A key without values encodes as null.
func (m *SectionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, n := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := writeJSONMember(&buf, n, m.sections[n]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for Section.
func (s *Section) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		var v any
		if items := s.values[k]; !items.IsNone() {
			v = []string(items)
		}

		if err := writeJSONMember(&buf, k, v); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeJSONMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}

	v, err := json.Marshal(value)
	if err != nil {
		return err
	}

	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)

	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler for SectionMap.
func (m *SectionMap) MarshalYAML() (any, error) { return m.mapSlice(), nil }

// MarshalYAML implements yaml.InterfaceMarshaler for Section.
func (s *Section) MarshalYAML() (any, error) { return s.mapSlice(), nil }

func (m *SectionMap) mapSlice() yaml.MapSlice {
	out := make(yaml.MapSlice, 0, len(m.names))
	for n, s := range m.All() {
		out = append(out, yaml.MapItem{Key: n, Value: s.mapSlice()})
	}

	return out
}

func (s *Section) mapSlice() yaml.MapSlice {
	out := make(yaml.MapSlice, 0, len(s.keys))

	for k, v := range s.All() {
		var value any
		if !v.IsNone() {
			value = []string(v)
		}

		out = append(out, yaml.MapItem{Key: k, Value: value})
	}

	return out
}

// FormatJSON writes m as JSON to w. A positive indent pretty-prints with
// that many spaces per level.
func FormatJSON(w io.Writer, m *SectionMap, indent int) error {
	data, err := m.MarshalJSON()
	if err != nil {
		return err
	}

	if indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", strings.Repeat(" ", indent)); err != nil {
			return err
		}

		data = buf.Bytes()
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes m as YAML to w. A positive indent uses block style with
// that many spaces per level, otherwise flow style.
func FormatYAML(ctx context.Context, w io.Writer, m *SectionMap, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, m.mapSlice(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
