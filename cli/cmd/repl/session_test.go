package repl

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/slicerini/ini"
)

const testSource = `; PrusaSlicer configuration
[vendor:PrusaResearch]
model:MK4IS = 0.4

[presets]
print = 0.20mm QUALITY @MK4IS 0.4
filament = Prusament PLA, Generic PETG
`

func testSession(t *testing.T, save func(*ini.Document) error) *session {
	t.Helper()

	doc, err := ini.Parse(testSource)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	return newSession(doc, "PrusaSlicer.ini", save)
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		n    int
		want []string
	}{
		{"a b c", 3, []string{"a", "b", "c"}},
		{"  a   b  ", 3, []string{"a", "b"}},
		{"s k Original Prusa  MK4IS", 3, []string{"s", "k", "Original Prusa  MK4IS"}},
		{"one", 1, []string{"one"}},
		{"", 3, nil},
	}

	for _, tt := range tests {
		if got := splitArgs(tt.line, tt.n); !slices.Equal(got, tt.want) {
			t.Errorf("splitArgs(%q, %d) = %q, want %q", tt.line, tt.n, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := map[string]command{
		"upsert": cmdUpsert,
		"U":      cmdUpsert,
		"rm":     cmdDelete,
		"ls":     cmdList,
		"cat":    cmdShow,
		"save":   cmdWrite,
		"?":      cmdHelp,
		"exit":   cmdQuit,
		"frob":   cmdNone,
	}

	for word, want := range tests {
		if got := lookup(word); got != want {
			t.Errorf("lookup(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestSessionUpsert(t *testing.T) {
	s := testSession(t, nil)

	res := s.exec("upsert vendor:PrusaResearch model:MK4IS 0.6")
	if res.err != nil {
		t.Fatalf("exec() error = %v", res.err)
	}

	if want := "[vendor:PrusaResearch] model:MK4IS = 0.4, 0.6"; res.out != want {
		t.Errorf("out = %q, want %q", res.out, want)
	}

	if !s.dirty {
		t.Error("dirty = false after change")
	}

	if res = s.exec("upsert vendor:PrusaResearch model:MK4IS 0.6"); res.out != "unchanged" {
		t.Errorf("repeat out = %q, want unchanged", res.out)
	}

	// The value keeps its inner spaces.
	s.exec("u presets printer Original Prusa MK4IS")

	if v, _ := s.m.Get("presets", "printer"); !v.Equal(ini.Values{"Original Prusa MK4IS"}) {
		t.Errorf("printer = %q", v)
	}

	if res = s.exec("upsert presets"); !errors.Is(res.err, ErrUsage) {
		t.Errorf("short upsert error = %v, want ErrUsage", res.err)
	}
}

func TestSessionDelete(t *testing.T) {
	s := testSession(t, nil)

	tests := []struct {
		line    string
		wantErr error
	}{
		{"delete presets print", nil},
		{"delete presets print", ErrNoKey},
		{"delete nope print", ErrNoSection},
		{"rm vendor:PrusaResearch", nil},
		{"rm vendor:PrusaResearch", ErrNoSection},
		{"delete", ErrUsage},
	}

	for _, tt := range tests {
		res := s.exec(tt.line)
		if !errors.Is(res.err, tt.wantErr) {
			t.Errorf("exec(%q) error = %v, want %v", tt.line, res.err, tt.wantErr)
		}
	}

	// The comment leading into the removed header goes with it.
	want := "[presets]\nfilament = Prusament PLA, Generic PETG"
	if got := s.exec("show").out; got != want {
		t.Errorf("show = %q, want %q", got, want)
	}
}

func TestSessionList(t *testing.T) {
	s := testSession(t, nil)

	if got, want := s.exec("list").out, "[vendor:PrusaResearch] (1 keys)\n[presets] (2 keys)"; got != want {
		t.Errorf("list = %q, want %q", got, want)
	}

	want := "print = 0.20mm QUALITY @MK4IS 0.4\nfilament = Prusament PLA, Generic PETG"
	if got := s.exec("ls presets").out; got != want {
		t.Errorf("list presets = %q, want %q", got, want)
	}

	if got := s.exec("list\tpresets").out; got != want {
		t.Errorf("tab-separated list = %q, want %q", got, want)
	}

	if res := s.exec("list nope"); !errors.Is(res.err, ErrNoSection) {
		t.Errorf("error = %v, want ErrNoSection", res.err)
	}
}

func TestSessionShowUnchanged(t *testing.T) {
	s := testSession(t, nil)

	if got, want := s.exec("show").out, strings.TrimSuffix(testSource, "\n"); got != want {
		t.Errorf("show = %q, want %q", got, want)
	}
}

func TestSessionWrite(t *testing.T) {
	var saved *ini.Document

	s := testSession(t, func(doc *ini.Document) error {
		saved = doc

		return nil
	})

	s.exec("upsert vendor:PrusaResearch model:MK3S 0.4")

	res := s.exec("write")
	if res.err != nil {
		t.Fatalf("write error = %v", res.err)
	}

	if s.dirty {
		t.Error("dirty = true after write")
	}

	if saved == nil || !strings.Contains(saved.String(), "model:MK3S = 0.4\n") {
		t.Fatalf("saved document missing upsert: %v", saved)
	}

	if want := "wrote PrusaSlicer.ini (8 lines)"; res.out != want {
		t.Errorf("out = %q, want %q", res.out, want)
	}

	// A failed save keeps the changes pending.
	boom := errors.New("boom")
	s.save = func(*ini.Document) error { return boom }
	s.exec("upsert presets print draft")

	if res = s.exec("w"); !errors.Is(res.err, boom) || !s.dirty {
		t.Errorf("failed write: err = %v, dirty = %v", res.err, s.dirty)
	}
}

func TestSessionWriteWithoutTarget(t *testing.T) {
	s := testSession(t, nil)

	if res := s.exec("write"); !errors.Is(res.err, ErrNoTarget) {
		t.Errorf("error = %v, want ErrNoTarget", res.err)
	}
}

func TestSessionQuit(t *testing.T) {
	s := testSession(t, nil)

	if res := s.exec("quit"); !res.quit {
		t.Error("clean quit refused")
	}

	s.exec("upsert presets print draft")

	res := s.exec("q")
	if res.quit || !errors.Is(res.err, ErrUnsavedChanges) {
		t.Fatalf("dirty quit = %+v, want ErrUnsavedChanges", res)
	}

	// Any other command resets the warning.
	s.exec("list")

	if res = s.exec("q"); res.quit {
		t.Error("quit accepted without a fresh warning")
	}

	if res = s.exec("q"); !res.quit {
		t.Error("second quit refused")
	}
}

func TestSessionMisc(t *testing.T) {
	s := testSession(t, nil)

	if res := s.exec("   "); res != (result{}) {
		t.Errorf("blank line = %+v", res)
	}

	if res := s.exec("frob"); !errors.Is(res.err, ErrUnknownCommand) {
		t.Errorf("error = %v, want ErrUnknownCommand", res.err)
	}

	if res := s.exec("clear"); !res.clear {
		t.Error("clear not requested")
	}

	if res := s.exec("edit"); !res.edit {
		t.Error("edit not requested")
	}

	help := s.exec("help").out
	for _, name := range commandNames() {
		if !strings.Contains(help, name) {
			t.Errorf("help missing %q", name)
		}
	}
}
