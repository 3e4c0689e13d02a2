// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"strings"

	"github.com/setlistkit/songimport/internal/sections"
	"github.com/setlistkit/songimport/internal/song"
)

// openSongLetters covers the single-letter section codes OpenSong uses that
// the shared marker grammar does not.
var openSongLetters = map[byte]sections.Type{
	'V': sections.Verse,
	'C': sections.Chorus,
	'B': sections.Bridge,
	'P': sections.PreChorus,
	'T': sections.Tag,
	'E': sections.Ending,
	'I': sections.Intro,
	'O': sections.Outro,
}

// OpenSong parses OpenSong XML: flat metadata elements and a <lyrics> body
// with dot-prefixed chord lines.
type OpenSong struct{}

func (OpenSong) sealed() {}

func (OpenSong) Format() song.Format {
	return song.FormatOpenSong
}

// CanParse requires <song> and <lyrics> and rejects anything mentioning
// OpenLyrics, which is checked first.
func (OpenSong) CanParse(text, _ string) bool {
	if !looksLikeXML(text) || strings.Contains(strings.ToLower(text), openLyricsTag) {
		return false
	}
	return strings.Contains(text, "<song>") && strings.Contains(text, "<lyrics>")
}

func (p OpenSong) Parse(text, filename string, tk Toolkit) (result song.ParseResult) {
	defer guard(&result, p.Format(), "OpenSong")

	root, err := parseXML(text)
	if err != nil {
		return song.Failure(p.Format(), "Invalid XML: "+err.Error())
	}

	ex := extraction{
		title:  root.childText("title"),
		artist: root.childText("author"),
		key:    root.childText("key"),
		tempo:  tempoStrict(root.childText("tempo")),
	}
	if ex.artist == "" {
		ex.artist = root.childText("artist")
	}

	if v := root.childText("capo"); v != "" {
		ex.notes = append(ex.notes, "Capo: "+v)
	}
	if v := root.childText("copyright"); v != "" {
		ex.notes = append(ex.notes, "Copyright: "+v)
	}
	if v := root.childText("ccli"); v != "" {
		ex.notes = append(ex.notes, "CCLI: "+v)
	}

	var names []string
	for _, tag := range []string{"theme", "alttheme"} {
		names = append(names, strings.Split(root.childText(tag), ";")...)
	}
	themes, themeLines := themeNotes(names)
	ex.themes = themes
	ex.notes = append(ex.notes, themeLines...)

	ex.lyrics, ex.chart = openSongLyrics(root.child("lyrics").text())
	return tk.finish(p.Format(), filename, ex)
}

// openSongLyrics converts an OpenSong lyrics body into plain lyrics and a
// ChordPro chart. The chart is empty when no chord line was present.
func openSongLyrics(raw string) (plain, chart string) {
	lines := strings.Split(raw, "\n")
	var plainLines, chartLines []string
	hasChords := false

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, ";"):
			// comment line
		case isBracketed(trimmed):
			marker := openSongMarker(trimmed[1 : len(trimmed)-1])
			plainLines = append(plainLines, marker)
			chartLines = append(chartLines, marker)
		case strings.HasPrefix(line, "."):
			hasChords = true
			chords := " " + line[1:]
			if i+1 < len(lines) {
				next := strings.TrimRight(lines[i+1], " \t")
				if strings.TrimSpace(next) != "" && !strings.HasPrefix(next, ".") && !isBracketed(next) {
					plainLines = append(plainLines, strings.TrimSpace(next))
					chartLines = append(chartLines, strings.TrimSpace(mergeChordLine(chords, next)))
					i++
					continue
				}
			}
			if row := chordRow(chords); row != "" {
				chartLines = append(chartLines, row)
			}
		default:
			plainLines = append(plainLines, trimmed)
			chartLines = append(chartLines, trimmed)
		}
	}

	plain = collapseBlankLines(plainLines)
	if hasChords {
		chart = collapseBlankLines(chartLines)
	}
	return plain, chart
}

// openSongMarker renders an OpenSong section code such as "V1" or "C" as a
// canonical section marker.
func openSongMarker(code string) string {
	code = strings.TrimSpace(code)
	if t, n, ok := sections.ParseMarker(code); ok && t != sections.Unknown {
		return sections.FormatMarker(t, n)
	}
	upper := strings.ToUpper(code)
	if upper != "" {
		if t, ok := openSongLetters[upper[0]]; ok && isDigits(upper[1:]) {
			return "[" + joinNumber(t, upper[1:]) + "]"
		}
	}
	return "[" + code + "]"
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
