package repl

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ardnew/slicerini/ini"
)

// command identifies a REPL command independent of the alias used to type it.
type command int

const (
	cmdNone command = iota
	cmdUpsert
	cmdDelete
	cmdList
	cmdShow
	cmdWrite
	cmdEdit
	cmdHelp
	cmdClear
	cmdQuit
)

// commandSpec describes one command for parsing, completion, and help.
type commandSpec struct {
	cmd     command
	name    string
	aliases []string
	args    string
	help    string
}

var commands = []commandSpec{
	{cmdUpsert, "upsert", []string{"u", "add"}, "<section> <key> <value>", "add value to key, creating section and key if needed"},
	{cmdDelete, "delete", []string{"d", "rm"}, "<section> [key]", "remove a key, or a whole section"},
	{cmdList, "list", []string{"l", "ls"}, "[section]", "list sections, or the keys of one section"},
	{cmdShow, "show", []string{"s", "cat"}, "", "print the document as it would be written"},
	{cmdWrite, "write", []string{"w", "save"}, "", "write the document back to its file"},
	{cmdEdit, "edit", []string{"e"}, "", "edit the document in $EDITOR"},
	{cmdHelp, "help", []string{"h", "?"}, "", "show this help"},
	{cmdClear, "clear", []string{"c", "cls"}, "", "clear the screen"},
	{cmdQuit, "quit", []string{"q", "exit"}, "", "leave the session"},
}

// commandNames returns the primary name of every command.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

// lookup resolves a typed command word.
func lookup(word string) command {
	word = strings.ToLower(word)

	for _, c := range commands {
		if c.name == word || slices.Contains(c.aliases, word) {
			return c.cmd
		}
	}

	return cmdNone
}

// result is the outcome of executing one line.
type result struct {
	out   string
	err   error
	quit  bool
	clear bool
	edit  bool
}

// session holds the document being edited. It is driven only from the
// bubbletea update loop and needs no locking.
type session struct {
	m     *ini.SectionMap
	path  string
	save  func(*ini.Document) error
	dirty bool

	// quitWarned is set after a quit was refused for unsaved changes.
	quitWarned bool
}

func newSession(doc *ini.Document, path string, save func(*ini.Document) error) *session {
	if doc == nil {
		doc = ini.NewDocument()
	}

	return &session{m: doc.ToMap(), path: path, save: save}
}

// document returns the document as it would be written.
func (s *session) document() *ini.Document { return s.m.ToDocument() }

// replace discards the current map in favor of doc.
func (s *session) replace(doc *ini.Document) {
	s.m = doc.ToMap()
	s.dirty = true
}

// splitArgs splits line into at most n whitespace-separated fields. The last
// field keeps the remainder of the line, inner spacing included.
func splitArgs(line string, n int) []string {
	var fields []string

	rest := strings.TrimSpace(line)
	for rest != "" && len(fields) < n-1 {
		i := strings.IndexFunc(rest, isSpace)
		if i < 0 {
			break
		}

		fields = append(fields, rest[:i])
		rest = strings.TrimLeftFunc(rest[i:], isSpace)
	}

	if rest != "" {
		fields = append(fields, rest)
	}

	return fields
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

// exec runs one input line.
func (s *session) exec(line string) result {
	parts := splitArgs(line, 2)
	if len(parts) == 0 {
		return result{}
	}

	word, rest := parts[0], ""
	if len(parts) > 1 {
		rest = parts[1]
	}

	cmd := lookup(word)
	if cmd != cmdQuit {
		s.quitWarned = false
	}

	switch cmd {
	case cmdUpsert:
		return s.upsert(splitArgs(rest, 3))
	case cmdDelete:
		return s.delete(strings.Fields(rest))
	case cmdList:
		return s.list(strings.Fields(rest))
	case cmdShow:
		return result{out: strings.TrimSuffix(s.document().String(), "\n")}
	case cmdWrite:
		return s.write()
	case cmdEdit:
		return result{edit: true}
	case cmdHelp:
		return result{out: helpText()}
	case cmdClear:
		return result{clear: true}
	case cmdQuit:
		if s.dirty && !s.quitWarned {
			s.quitWarned = true

			return result{err: ErrUnsavedChanges}
		}

		return result{quit: true}
	default:
		return result{err: fmt.Errorf("%w: %s", ErrUnknownCommand, word)}
	}
}

func (s *session) upsert(args []string) result {
	if len(args) != 3 {
		return result{err: fmt.Errorf("%w: upsert <section> <key> <value>", ErrUsage)}
	}

	section, key, value := args[0], args[1], args[2]
	if s.m.Upsert(section, key, value) {
		s.dirty = true

		v, _ := s.m.Get(section, key)

		return result{out: fmt.Sprintf("[%s] %s = %s", section, key, v)}
	}

	return result{out: "unchanged"}
}

func (s *session) delete(args []string) result {
	switch len(args) {
	case 1:
		if !s.m.Delete(args[0]) {
			return result{err: fmt.Errorf("%w: %s", ErrNoSection, args[0])}
		}

		s.dirty = true

		return result{out: fmt.Sprintf("deleted [%s]", args[0])}

	case 2:
		sec, ok := s.m.Section(args[0])
		if !ok {
			return result{err: fmt.Errorf("%w: %s", ErrNoSection, args[0])}
		}

		if !sec.Delete(args[1]) {
			return result{err: fmt.Errorf("%w: %s", ErrNoKey, args[1])}
		}

		s.dirty = true

		return result{out: fmt.Sprintf("deleted [%s] %s", args[0], args[1])}

	default:
		return result{err: fmt.Errorf("%w: delete <section> [key]", ErrUsage)}
	}
}

func (s *session) list(args []string) result {
	var sb strings.Builder

	switch len(args) {
	case 0:
		for name, sec := range s.m.All() {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}

			fmt.Fprintf(&sb, "[%s] (%d keys)", name, sec.Len())
		}

	case 1:
		sec, ok := s.m.Section(args[0])
		if !ok {
			return result{err: fmt.Errorf("%w: %s", ErrNoSection, args[0])}
		}

		for key, v := range sec.All() {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}

			fmt.Fprintf(&sb, "%s = %s", key, v)
		}

	default:
		return result{err: fmt.Errorf("%w: list [section]", ErrUsage)}
	}

	return result{out: sb.String()}
}

func (s *session) write() result {
	if s.save == nil {
		return result{err: ErrNoTarget}
	}

	doc := s.document()
	if err := s.save(doc); err != nil {
		return result{err: err}
	}

	// Rebase on what was written so later writes keep its layout.
	s.m = doc.ToMap()
	s.dirty = false

	return result{out: fmt.Sprintf("wrote %s (%d lines)", s.path, doc.Len())}
}

func helpText() string {
	var sb strings.Builder

	for i, c := range commands {
		if i > 0 {
			sb.WriteByte('\n')
		}

		usage := c.name
		if c.args != "" {
			usage += " " + c.args
		}

		fmt.Fprintf(&sb, "%-32s %s", usage, c.help)
	}

	return sb.String()
}
