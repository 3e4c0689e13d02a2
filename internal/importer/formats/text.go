// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/setlistkit/songimport/internal/sections"
	"github.com/setlistkit/songimport/internal/song"
	"github.com/setlistkit/songimport/internal/theory"
)

// maxTitleLength bounds an inferred title; longer lines are lyrics.
const maxTitleLength = 100

var firstIntRE = regexp.MustCompile(`\d+`)

// extension returns the lower-cased file extension without the dot.
func extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
}

// looksLikeXML reports whether text opens like an XML document.
func looksLikeXML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<")
}

// tempoFromText takes the first integer in value as a BPM.
func tempoFromText(value string) int {
	m := firstIntRE.FindString(value)
	if m == "" {
		return 0
	}
	bpm, err := strconv.Atoi(m)
	if err != nil || !song.ValidTempo(bpm) {
		return 0
	}
	return bpm
}

// tempoStrict accepts value only when the whole value is an integer BPM.
func tempoStrict(value string) int {
	bpm, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || !song.ValidTempo(bpm) {
		return 0
	}
	return bpm
}

// collapseBlankLines drops runs of blank lines down to one and trims the
// result.
func collapseBlankLines(lines []string) string {
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		if blank {
			line = ""
		}
		out = append(out, line)
		prevBlank = blank
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// isBracketed reports whether line is wrapped in square brackets.
func isBracketed(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")
}

// inferTitle returns the first plausible title among the first window
// non-blank lines: not a chord line, not bracketed, not a section marker and
// no longer than maxTitleLength.
func inferTitle(text string, window int) string {
	seen := 0
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(theory.StripBracketChords(raw))
		if line == "" {
			continue
		}
		seen++
		if seen > window {
			break
		}
		if theory.IsChordLine(line) || isBracketed(line) {
			continue
		}
		if _, _, ok := sections.ParseMarker(line); ok {
			continue
		}
		if utf8.RuneCountInString(line) <= maxTitleLength {
			return line
		}
	}
	return ""
}

// themeNotes splits theme names into known themes and note lines for the
// rest.
func themeNotes(names []string) ([]song.Theme, []string) {
	var themes []song.Theme
	var notes []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if theme, ok := song.LookupTheme(name); ok {
			themes = append(themes, theme)
			continue
		}
		notes = append(notes, "Theme: "+name)
	}
	return themes, notes
}
