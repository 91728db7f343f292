package ini

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormat_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single blank", "\n"},
		{"no final newline", "[s]\nk = v"},
		{"crlf", "[s]\r\nk = v\r\n\r\n"},
		{"odd spacing", "  [ s ]  \n\tkey=value   \n  ; note\n"},
		{"duplicate keys", "[s]\nk = a\nk = b\nk = a\n"},
		{"duplicate sections", "[a]\nx = 1\n[b]\ny = 2\n[a]\nz = 3\n"},
		{"top level", "# head\n\nroot = 1\n\n[s]\nk =\n"},
		{"multi value", "[s]\nnozzles = 0.25, 0.4,0.6 ,,\n"},
		{
			"prusaslicer",
			"# generated by PrusaSlicer 2.7.1+linux-x64-GTK3 on 2024-01-01\n" +
				"\n" +
				"alert_when_supports_needed = 1\n" +
				"\n" +
				"[presets]\n" +
				"filament = Prusament PLA\n" +
				"print = 0.20mm QUALITY @MK4IS 0.4\n" +
				"\n" +
				"[vendor:PrusaResearch]\n" +
				"model:MK3S = 0.4\n" +
				"model:MK4IS = 0.4, 0.6\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var buf bytes.Buffer
			if err := doc.Format(&buf); err != nil {
				t.Fatalf("format error: %v", err)
			}

			if got := buf.String(); got != tt.input {
				t.Errorf("format mismatch:\nwant: %q\ngot:  %q", tt.input, got)
			}

			if got := Format(doc); got != tt.input {
				t.Errorf("Format mismatch:\nwant: %q\ngot:  %q", tt.input, got)
			}
		})
	}
}

func TestFormat_Synthesized(t *testing.T) {
	doc := NewDocument(
		NewComment("; printers"),
		NewSectionHeader("vendor:PrusaResearch"),
		NewKeyValue("model:MK3S", "0.4, 0.6"),
		NewKeyValue("model:MINI", ""),
		NewBlank(),
	)

	want := "; printers\n[vendor:PrusaResearch]\nmodel:MK3S = 0.4, 0.6\nmodel:MINI = \n\n"
	if got := doc.String(); got != want {
		t.Errorf("format mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestFormat_Canonical(t *testing.T) {
	doc, err := Parse("  [ s ]\r\n\tkey=value   \n  ; note\n   \nlast=1")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := "[s]\nkey = value\n; note\n\nlast = 1\n"
	if got := doc.Canonical().String(); got != want {
		t.Errorf("canonical mismatch:\nwant: %q\ngot:  %q", want, got)
	}

	// The original is untouched.
	if got := doc.String(); !strings.HasPrefix(got, "  [ s ]\r\n") {
		t.Errorf("original modified: %q", got)
	}
}

func TestDocument_Dump(t *testing.T) {
	doc, err := Parse("[s]\n  k = v\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := doc.Dump(&buf); err != nil {
		t.Fatalf("dump error: %v", err)
	}

	want := "1:1    Section name=\"s\"\n" +
		"2:3    KeyValue key=\"k\" value=\"v\"\n"
	if got := buf.String(); got != want {
		t.Errorf("dump mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestDocument_Sections(t *testing.T) {
	doc, err := Parse("[a]\n[b]\n[a]\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var got []string
	for name := range doc.Sections() {
		got = append(got, name)
	}

	if strings.Join(got, ",") != "a,b,a" {
		t.Errorf("sections: want a,b,a, got %v", got)
	}
}
