package repl

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/slicerini/ini"
	"github.com/ardnew/slicerini/log"
)

func testModel(t *testing.T, save func(*ini.Document) error) model {
	t.Helper()

	doc, err := ini.Parse(testSource)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg := Config{
		Document: doc,
		Path:     "PrusaSlicer.ini",
		Save:     save,
		Logger:   log.Make(os.Stderr, log.WithLevel(log.LevelError)),
	}

	return newModel(t.Context(), cfg, NewHistory(""))
}

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)

		var ok bool
		if m, ok = next.(model); !ok {
			t.Fatalf("Update() returned %T", next)
		}
	}

	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTabCompletesCommand(t *testing.T) {
	m := press(t, testModel(t, nil), runes("li"))

	if len(m.matches) != 1 || m.matches[0].Str != "list" {
		t.Fatalf("matches = %v, want [list]", m.matches)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if got := m.input.Value(); got != "list" {
		t.Errorf("input = %q, want %q", got, "list")
	}
}

func TestModelTabCyclesSections(t *testing.T) {
	m := testModel(t, nil)
	m.input.SetValue("list ")
	m.input.SetCursor(len("list "))
	refreshMatches(&m, false)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != "list vendor:PrusaResearch" {
		t.Errorf("first tab = %q", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != "list presets" {
		t.Errorf("second tab = %q", got)
	}

	// Esc restores the text typed before cycling.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.input.Value(); got != "list " || m.tabActive {
		t.Errorf("after esc = %q (tabActive %v)", got, m.tabActive)
	}
}

func TestModelExecute(t *testing.T) {
	var saved string

	m := testModel(t, func(doc *ini.Document) error {
		saved = doc.String()

		return nil
	})

	m.input.SetValue("upsert vendor:PrusaResearch model:MK3S 0.4")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if !m.sess.dirty {
		t.Error("session not dirty after upsert")
	}

	m.input.SetValue("write")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !strings.Contains(saved, "model:MK4IS = 0.4\nmodel:MK3S = 0.4\n\n[presets]") {
		t.Errorf("saved = %q", saved)
	}

	if got := m.history.Entries(); len(got) != 2 {
		t.Errorf("history = %q, want 2 entries", got)
	}

	// Up recalls the previous command.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "write" {
		t.Errorf("history recall = %q, want write", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.input.Value(); got != "" {
		t.Errorf("history exit = %q, want empty", got)
	}
}

func TestModelQuit(t *testing.T) {
	m := press(t, testModel(t, nil), tea.KeyMsg{Type: tea.KeyCtrlD})

	if !m.quitting {
		t.Error("Ctrl+D on empty line did not quit")
	}

	if m.View() != "" {
		t.Errorf("View() after quit = %q", m.View())
	}
}

func TestModelEditResult(t *testing.T) {
	m := testModel(t, nil)

	doc, err := ini.Parse("[fresh]\nkey = value\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	m = press(t, m, editDocumentMsg{doc: doc})

	if !m.sess.dirty {
		t.Error("session not dirty after edit")
	}

	if got := m.sess.document().String(); got != "[fresh]\nkey = value\n" {
		t.Errorf("document = %q", got)
	}
}
