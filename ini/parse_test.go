package ini

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParse_Classify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Entry
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "section header",
			input: "[vendor:PrusaResearch]\n",
			want:  []Entry{{Kind: KindSection, Name: "vendor:PrusaResearch"}},
		},
		{
			name:  "padded section header",
			input: "  [  printer  ]  \n",
			want:  []Entry{{Kind: KindSection, Name: "printer"}},
		},
		{
			name:  "key value",
			input: "[s]\nmodel:MK3S = 0.4\n",
			want: []Entry{
				{Kind: KindSection, Name: "s"},
				{Kind: KindKeyValue, Key: "model:MK3S", Value: "0.4"},
			},
		},
		{
			name:  "value splits on first equals",
			input: "[s]\nexpr = a=b\n",
			want: []Entry{
				{Kind: KindSection, Name: "s"},
				{Kind: KindKeyValue, Key: "expr", Value: "a=b"},
			},
		},
		{
			name:  "empty value",
			input: "[s]\nkey =\n",
			want: []Entry{
				{Kind: KindSection, Name: "s"},
				{Kind: KindKeyValue, Key: "key"},
			},
		},
		{
			name:  "unnamed section header",
			input: "[s]\n[ ]\nk = v\n",
			want: []Entry{
				{Kind: KindSection, Name: "s"},
				{Kind: KindSection, Name: ""},
				{Kind: KindKeyValue, Key: "k", Value: "v"},
			},
		},
		{
			name:  "empty key",
			input: "[s]\n = v\n",
			want: []Entry{
				{Kind: KindSection, Name: "s"},
				{Kind: KindKeyValue, Key: "", Value: "v"},
			},
		},
		{
			name:  "comments",
			input: "# hash\n  ; semicolon\n",
			want: []Entry{
				{Kind: KindComment, Text: "# hash"},
				{Kind: KindComment, Text: "; semicolon"},
			},
		},
		{
			name:  "blanks",
			input: "\n   \n\t\n",
			want: []Entry{
				{Kind: KindBlank},
				{Kind: KindBlank},
				{Kind: KindBlank},
			},
		},
		{
			name:  "top level key",
			input: "key = value\n[s]\n",
			want: []Entry{
				{Kind: KindKeyValue, Key: "key", Value: "value"},
				{Kind: KindSection, Name: "s"},
			},
		},
		{
			name:  "crlf line endings",
			input: "[s]\r\nk = v\r\n",
			want: []Entry{
				{Kind: KindSection, Name: "s"},
				{Kind: KindKeyValue, Key: "k", Value: "v"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if doc.Len() != len(tt.want) {
				t.Fatalf("entry count: want %d, got %d", len(tt.want), doc.Len())
			}

			for i, e := range doc.All() {
				w := tt.want[i]
				if e.Kind != w.Kind || e.Name != w.Name || e.Key != w.Key ||
					e.Value != w.Value || e.Text != w.Text {
					t.Errorf("entry %d mismatch:\nwant: %s\ngot:  %s",
						i, w.describe(), e.describe())
				}

				if e.Pos.Line != i+1 {
					t.Errorf("entry %d line: want %d, got %d", i, i+1, e.Pos.Line)
				}
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []Option
		want  *Error
		line  int
		text  string
	}{
		{
			name:  "unterminated header",
			input: "[unterminated\nkey = val\n",
			want:  ErrMalformedSectionHeader,
			line:  1,
			text:  "[unterminated",
		},
		{
			name:  "missing equals",
			input: "[s]\nk = v\njust text\n",
			want:  ErrMalformedKeyValue,
			line:  3,
			text:  "just text",
		},
		{
			name:  "strict top level key",
			input: "# c\nk = v\n[s]\n",
			opts:  []Option{WithStrictSections(true)},
			want:  ErrKeyValueOutsideSection,
			line:  2,
			text:  "k = v",
		},
		{
			name:  "carriage return dropped from text",
			input: "[s\r\n",
			want:  ErrMalformedSectionHeader,
			line:  1,
			text:  "[s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input, tt.opts...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if doc != nil {
				t.Errorf("expected nil document, got %d entries", doc.Len())
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.want)
			}

			var ie *Error
			if !errors.As(err, &ie) {
				t.Fatalf("expected *Error, got %T", err)
			}

			if ie.Line() != tt.line {
				t.Errorf("line: want %d, got %d", tt.line, ie.Line())
			}

			if ie.Text() != tt.text {
				t.Errorf("text: want %q, got %q", tt.text, ie.Text())
			}
		})
	}
}

func TestParse_ErrorsAreDistinct(t *testing.T) {
	_, err := Parse("[s]\nnope\n")
	if errors.Is(err, ErrMalformedSectionHeader) {
		t.Error("key-value error matched section header sentinel")
	}

	if errors.Is(err, ErrKeyValueOutsideSection) {
		t.Error("key-value error matched outside-section sentinel")
	}
}

func TestParse_StrictAllowsKeysInSections(t *testing.T) {
	_, err := Parse("[s]\nk = v\n", WithStrictSections(true))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
}

func TestParse_SourceName(t *testing.T) {
	_, err := Parse("oops\n", WithSourceName("PrusaSlicer.ini"))

	var ie *Error
	if !errors.As(err, &ie) {
		t.Fatalf("expected *Error, got %T", err)
	}

	found := false

	for _, a := range ie.LogValue().Group() {
		if a.Key == "file" && a.Value.String() == "PrusaSlicer.ini" {
			found = true
		}
	}

	if !found {
		t.Errorf("file attribute missing from %v", ie.LogValue())
	}
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(context.Background(), strings.NewReader("[s]\nk = v\n"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if doc.Len() != 2 {
		t.Errorf("entry count: want 2, got %d", doc.Len())
	}
}

func TestParseReader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseReader(ctx, strings.NewReader("[s]\n"))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseReader_ReadError(t *testing.T) {
	_, err := ParseReader(context.Background(), failReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}
