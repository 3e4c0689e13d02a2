// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"strings"

	"github.com/setlistkit/songimport/internal/sections"
	"github.com/setlistkit/songimport/internal/theory"
)

// mergeChordLine inserts the chords of a chord-over-lyrics line into the lyric
// line below it at the same columns, producing ChordPro. Chords past the end
// of the lyric are appended.
func mergeChordLine(chordLine, lyricLine string) string {
	lyric := []rune(strings.TrimRight(lyricLine, " \t"))
	positions := theory.ChordPositions(chordLine)
	if len(positions) == 0 {
		return string(lyric)
	}

	var b strings.Builder
	cursor := 0
	for _, p := range positions {
		at := min(p.Column, len(lyric))
		at = max(at, cursor)
		b.WriteString(string(lyric[cursor:at]))
		b.WriteString("[" + p.Chord + "]")
		cursor = at
	}
	b.WriteString(string(lyric[cursor:]))
	return b.String()
}

// chordRow renders a chord line that has no lyric under it as a row of
// bracketed chords.
func chordRow(chordLine string) string {
	positions := theory.ChordPositions(chordLine)
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = "[" + p.Chord + "]"
	}
	return strings.Join(parts, " ")
}

// sheetLines classifies the lines of a chord-over-lyrics sheet. A lone "C" or
// "B" reads as both a chord and a section label (Chorus, Bridge). It counts
// as a label when it opens a block and the sheet labels other sections in a
// way no chord can be mistaken for, such as "V1" or "Verse".
type sheetLines struct {
	lines  []string
	labels map[int]bool
}

func newSheetLines(text string) sheetLines {
	s := sheetLines{lines: strings.Split(text, "\n")}

	labelled := false
	var ambiguous []int
	for i, line := range s.lines {
		if _, _, ok := sections.ParseMarker(line); !ok {
			continue
		}
		if !theory.IsChordLine(line) {
			labelled = true
			continue
		}
		if i == 0 || strings.TrimSpace(s.lines[i-1]) == "" {
			ambiguous = append(ambiguous, i)
		}
	}
	if labelled && len(ambiguous) > 0 {
		s.labels = make(map[int]bool, len(ambiguous))
		for _, i := range ambiguous {
			s.labels[i] = true
		}
	}
	return s
}

func (s sheetLines) isChordLine(i int) bool {
	return !s.labels[i] && theory.IsChordLine(s.lines[i])
}

// isLyric reports whether line i can carry the chords of the line above it.
func (s sheetLines) isLyric(i int) bool {
	line := s.lines[i]
	return strings.TrimSpace(line) != "" && !s.labels[i] && !theory.IsChordLine(line) && !isBracketed(line)
}

// convertChordSheet turns chord-over-lyrics text into ChordPro. A chord line
// directly above a non-blank lyric line is merged into it; any other chord
// line becomes a bracketed chord row. hasChords reports whether any chord
// line was seen.
func convertChordSheet(text string) (chart string, hasChords bool) {
	sheet := newSheetLines(text)
	lines := sheet.lines
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !sheet.isChordLine(i) {
			out = append(out, strings.TrimRight(line, " \t"))
			continue
		}
		hasChords = true
		if i+1 < len(lines) {
			next := lines[i+1]
			if sheet.isLyric(i + 1) {
				out = append(out, mergeChordLine(line, next))
				i++
				continue
			}
		}
		out = append(out, chordRow(line))
	}
	return strings.Join(out, "\n"), hasChords
}

// stripChordLines removes chord-only lines and collapses the blank lines
// left behind.
func stripChordLines(text string) string {
	sheet := newSheetLines(text)
	kept := make([]string, 0, len(sheet.lines))
	for i, line := range sheet.lines {
		if sheet.isChordLine(i) {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return collapseBlankLines(kept)
}
