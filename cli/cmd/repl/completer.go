package repl

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/slicerini/ini"
)

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. Section names contain colons and keys contain hyphens, so only
// whitespace separates words.
func isWordBoundary(r rune) bool {
	return r == ' ' || r == '\t'
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// argCandidates returns the completions for the argument at position pos,
// given the words typed before it. Position 0 is the command itself.
func argCandidates(m *ini.SectionMap, prior []string, pos int) []string {
	if pos == 0 {
		return commandNames()
	}

	if len(prior) == 0 {
		return nil
	}

	cmd := lookup(prior[0])

	switch {
	case pos == 1 && (cmd == cmdUpsert || cmd == cmdDelete || cmd == cmdList):
		return sectionNames(m)

	case pos == 2 && (cmd == cmdUpsert || cmd == cmdDelete):
		return keyNames(m, prior[1])

	case pos == 3 && cmd == cmdUpsert:
		v, _ := m.Get(prior[1], prior[2])

		return v
	}

	return nil
}

// sectionNames returns every named section of m.
func sectionNames(m *ini.SectionMap) []string {
	var names []string

	for name := range m.Names() {
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

// keyNames returns the keys declared in section of m.
func keyNames(m *ini.SectionMap, section string) []string {
	sec, ok := m.Section(section)
	if !ok {
		return nil
	}

	var keys []string
	for key := range sec.Keys() {
		keys = append(keys, key)
	}

	return keys
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty command word yields no matches so the hint text stays
// visible. An empty argument word lists every candidate for that position.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	prior := strings.Fields(input[:wordStart])
	candidates = argCandidates(m.sess.m, prior, len(prior))

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	if word == "" {
		if len(prior) == 0 {
			return nil, nil, wordStart, wordEnd
		}

		// Return all candidates as unfiltered matches.
		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, candidates, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := matchStyle

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedMatchStyle
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}

// formatPreview describes a completion candidate: the usage of a command,
// the size of a section, or the values of a key.
func formatPreview(m *ini.SectionMap, prior []string, candidate string) string {
	switch len(prior) {
	case 0:
		for _, c := range commands {
			if c.name == candidate {
				return strings.TrimSpace(c.name + " " + c.args)
			}
		}

	case 1:
		if sec, ok := m.Section(candidate); ok {
			return fmt.Sprintf("[%s] (%d keys)", candidate, sec.Len())
		}

	case 2:
		if v, ok := m.Get(prior[1], candidate); ok {
			return formatValuePreview(candidate + " = " + v.String())
		}
	}

	return ""
}

// formatValuePreview shortens a preview line to fit beside the prompt.
func formatValuePreview(s string) string {
	if len(s) > 60 {
		return s[:57] + "..."
	}

	return s
}
