package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/slicerini/ini"
)

const fmtInput = "# PrusaSlicer\n" +
	"[presets]\n" +
	"printer=Original Prusa MK4IS\n" +
	"\n" +
	"[vendor:PrusaResearch]\n" +
	"model:MK3S   =   0.4,0.6\n" +
	"model:MK4IS = 0.4\n"

func TestNativeRun(t *testing.T) {
	tests := []struct {
		name      string
		canonical bool
		want      string
	}{
		{"verbatim", false, fmtInput},
		{
			"canonical",
			true,
			"# PrusaSlicer\n" +
				"[presets]\n" +
				"printer = Original Prusa MK4IS\n" +
				"\n" +
				"[vendor:PrusaResearch]\n" +
				"model:MK3S = 0.4,0.6\n" +
				"model:MK4IS = 0.4\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, writeTemp(t, fmtInput), "")

			native := &Native{Canonical: tt.canonical}
			if err := native.Run(ctx); err != nil {
				t.Fatalf("Native.Run() error = %v", err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output mismatch:\nwant: %q\ngot:  %q", tt.want, got)
			}
		})
	}
}

func TestNativeRunExplicitSource(t *testing.T) {
	ctx, out := testContext(t, writeTemp(t, "[ignored]\n"), "")

	native := &Native{Source: Source{Source: writeTemp(t, "[used]\n")}}
	if err := native.Run(ctx); err != nil {
		t.Fatalf("Native.Run() error = %v", err)
	}

	if got := out.String(); got != "[used]\n" {
		t.Errorf("output: got %q", got)
	}
}

func TestFmtInvalidSyntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unterminated header", "[unterminated\nkey = val\n", ini.ErrMalformedSectionHeader},
		{"missing separator", "[s]\njust text\n", ini.ErrMalformedKeyValue},
	}

	runners := map[string]func(*testing.T, Source) error{
		"native": func(t *testing.T, s Source) error {
			ctx, _ := testContext(t, "", "")

			return (&Native{Source: s}).Run(ctx)
		},
		"json": func(t *testing.T, s Source) error {
			ctx, _ := testContext(t, "", "")

			return (&JSON{Source: s}).Run(ctx)
		},
		"yaml": func(t *testing.T, s Source) error {
			ctx, _ := testContext(t, "", "")

			return (&YAML{Source: s}).Run(ctx)
		},
		"ast": func(t *testing.T, s Source) error {
			ctx, _ := testContext(t, "", "")

			return (&AST{Source: s}).Run(ctx)
		},
	}

	for _, tt := range tests {
		for format, run := range runners {
			t.Run(tt.name+"/"+format, func(t *testing.T) {
				err := run(t, Source{Source: writeTemp(t, tt.input)})
				if !errors.Is(err, tt.want) {
					t.Errorf("want %v, got %v", tt.want, err)
				}
			})
		}
	}
}

func TestJSONRun(t *testing.T) {
	ctx, out := testContext(t, writeTemp(t, fmtInput), "")

	j := &JSON{Selection: Selection{Indent: 0, Where: `section startsWith "vendor:"`}}
	if err := j.Run(ctx); err != nil {
		t.Fatalf("JSON.Run() error = %v", err)
	}

	var got map[string]map[string][]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}

	if len(got) != 1 {
		t.Fatalf("filter not applied: %v", got)
	}

	if v := got["vendor:PrusaResearch"]["model:MK3S"]; len(v) != 2 || v[1] != "0.6" {
		t.Errorf("unexpected values: %v", v)
	}
}

func TestJSONRunBadFilter(t *testing.T) {
	ctx, _ := testContext(t, writeTemp(t, fmtInput), "")

	j := &JSON{Selection: Selection{Where: "section +"}}
	if err := j.Run(ctx); !errors.Is(err, ini.ErrFilterCompile) {
		t.Errorf("want ErrFilterCompile, got %v", err)
	}
}

func TestYAMLRun(t *testing.T) {
	ctx, out := testContext(t, writeTemp(t, fmtInput), "")

	y := &YAML{Selection: Selection{Indent: 2}}
	if err := y.Run(ctx); err != nil {
		t.Fatalf("YAML.Run() error = %v", err)
	}

	got := out.String()
	if p, v := strings.Index(got, "presets:"), strings.Index(got, "vendor:PrusaResearch"); p < 0 || v < p {
		t.Errorf("sections missing or out of order:\n%s", got)
	}
}

func TestASTRun(t *testing.T) {
	ctx, out := testContext(t, stdinSource, "; c\n[s]\nk = v\n")

	if err := (&AST{}).Run(ctx); err != nil {
		t.Fatalf("AST.Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %q", lines)
	}

	for i, kind := range []string{"Comment", "Section", "KeyValue"} {
		if !strings.Contains(lines[i], kind) {
			t.Errorf("line %d: want kind %s, got %q", i+1, kind, lines[i])
		}
	}
}
