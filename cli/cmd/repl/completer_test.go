package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/slicerini/ini"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"second_word", "upsert ven", 10, "ven", 7, 10},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"empty_at_boundary", "upsert ", 7, "", 7, 7},
		{"past_end", "ls", 9, "ls", 0, 2},
		// Colons and hyphens are part of names.
		{"section_name", "list vendor:Prusa", 17, "vendor:Prusa", 5, 17},
		{"hyphenated", "delete s log-pr", 15, "log-pr", 9, 15},
		{"tab_separated", "list\tpre", 8, "pre", 5, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestArgCandidates(t *testing.T) {
	doc, err := ini.Parse(testSource)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	m := doc.ToMap()

	tests := []struct {
		name  string
		prior []string
		want  []string
	}{
		{"command", nil, commandNames()},
		{"upsert_section", []string{"upsert"}, []string{"vendor:PrusaResearch", "presets"}},
		{"alias_section", []string{"ls"}, []string{"vendor:PrusaResearch", "presets"}},
		{"delete_key", []string{"rm", "presets"}, []string{"print", "filament"}},
		{"upsert_value", []string{"u", "vendor:PrusaResearch", "model:MK4IS"}, []string{"0.4"}},
		{"missing_section", []string{"upsert", "nope"}, nil},
		{"list_has_no_keys", []string{"list", "presets"}, nil},
		{"show_takes_nothing", []string{"show"}, nil},
		{"unknown_command", []string{"frob"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := argCandidates(m, tt.prior, len(tt.prior))
			if !slices.Equal(got, tt.want) {
				t.Errorf("argCandidates(%q) = %q, want %q", tt.prior, got, tt.want)
			}
		})
	}
}

func TestComputeMatches(t *testing.T) {
	m := testModel(t, nil)

	m.input.SetValue("upsert pre")
	m.input.SetCursor(len("upsert pre"))

	matches, _, start, end := m.computeMatches()
	if start != 7 || end != 10 {
		t.Errorf("bounds = (%d, %d), want (7, 10)", start, end)
	}

	if len(matches) == 0 || matches[0].Str != "presets" {
		t.Fatalf("best match = %v, want presets first", matches)
	}

	// An empty argument lists every candidate.
	m.input.SetValue("list ")
	m.input.SetCursor(len("list "))

	matches, _, _, _ = m.computeMatches()
	if len(matches) != 2 {
		t.Errorf("len(matches) = %d, want 2", len(matches))
	}

	// An empty command word shows the hint instead.
	m.input.SetValue("")

	if matches, _, _, _ = m.computeMatches(); matches != nil {
		t.Errorf("matches = %v, want nil", matches)
	}
}

func TestFormatPreview(t *testing.T) {
	doc, err := ini.Parse(testSource)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	m := doc.ToMap()

	tests := []struct {
		name      string
		prior     []string
		candidate string
		want      string
	}{
		{"command", nil, "upsert", "upsert <section> <key> <value>"},
		{"bare_command", nil, "show", "show"},
		{"section", []string{"list"}, "presets", "[presets] (2 keys)"},
		{"key", []string{"upsert", "presets"}, "filament", "filament = Prusament PLA, Generic PETG"},
		{"unknown", []string{"upsert", "presets"}, "nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPreview(m, tt.prior, tt.candidate); got != tt.want {
				t.Errorf("formatPreview() = %q, want %q", got, tt.want)
			}
		})
	}
}
