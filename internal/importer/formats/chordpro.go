// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"regexp"
	"strings"

	"github.com/setlistkit/songimport/internal/song"
	"github.com/setlistkit/songimport/internal/theory"
)

var (
	directiveRE    = regexp.MustCompile(`\{(\w+):\s*(.+?)\}`)
	anyDirectiveRE = regexp.MustCompile(`\{[^}]+\}`)
	environmentRE  = regexp.MustCompile(`(?i)^\s*\{\s*(start_of_|so)(chorus|verse|bridge|tab|grid|c|v|b)\b[^}]*\}\s*$`)
)

var chordProExtensions = map[string]bool{
	"cho": true, "crd": true, "chopro": true, "chordpro": true, "chord": true, "pro": true,
}

// environmentSections maps ChordPro start_of_* environments onto section
// markers kept in the plain lyrics.
var environmentSections = map[string]string{
	"chorus": "[Chorus]",
	"c":      "[Chorus]",
	"verse":  "[Verse]",
	"v":      "[Verse]",
	"bridge": "[Bridge]",
	"b":      "[Bridge]",
}

// ChordPro parses ChordPro charts: "{directive: value}" metadata with
// "[Chord]" symbols inline in the lyrics.
type ChordPro struct{}

func (ChordPro) sealed() {}

func (ChordPro) Format() song.Format {
	return song.FormatChordPro
}

// CanParse accepts a ChordPro file extension or any "{directive: value}" in
// the content, so a ChordPro chart saved as .txt is still recognised.
func (ChordPro) CanParse(text, filename string) bool {
	if chordProExtensions[extension(filename)] {
		return true
	}
	return directiveRE.MatchString(text)
}

// Parse reads directives (first occurrence wins), strips chords for the
// plain lyrics and keeps the original text as the chart.
func (p ChordPro) Parse(text, filename string, tk Toolkit) (result song.ParseResult) {
	defer guard(&result, p.Format(), "ChordPro")

	var ex extraction
	var capo, composer, duration, copyright string
	var comments []string

	first := func(dst *string, value string) {
		if *dst == "" {
			*dst = value
		}
	}

	for _, m := range directiveRE.FindAllStringSubmatch(text, -1) {
		name, value := strings.ToLower(m[1]), strings.TrimSpace(m[2])
		switch name {
		case "title", "t":
			first(&ex.title, value)
		case "artist", "a", "subtitle", "st":
			first(&ex.artist, value)
		case "key":
			first(&ex.key, value)
		case "tempo":
			if ex.tempo == 0 {
				ex.tempo = tempoFromText(value)
			}
		case "composer":
			first(&composer, value)
		case "capo":
			first(&capo, value)
		case "duration":
			first(&duration, value)
		case "copyright":
			first(&copyright, value)
		case "comment", "c":
			comments = append(comments, value)
		}
	}

	if composer != "" {
		ex.notes = append(ex.notes, "Composer: "+composer)
	}
	if capo != "" {
		ex.notes = append(ex.notes, "Capo: "+capo)
	}
	if duration != "" {
		ex.notes = append(ex.notes, "Duration: "+duration)
	}
	if copyright != "" {
		ex.notes = append(ex.notes, "Copyright: "+copyright)
	}
	ex.notes = append(ex.notes, comments...)

	ex.lyrics = chordProLyrics(text)
	ex.chart = text

	return tk.finish(p.Format(), filename, ex)
}

// chordProLyrics strips chords and directives from a ChordPro chart. Section
// environments such as {start_of_chorus} become section markers.
func chordProLyrics(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if m := environmentRE.FindStringSubmatch(line); m != nil {
			if marker, ok := environmentSections[strings.ToLower(m[2])]; ok {
				out = append(out, marker)
				continue
			}
		}
		line = theory.StripBracketChords(line)
		line = anyDirectiveRE.ReplaceAllString(line, "")
		out = append(out, strings.TrimSpace(line))
	}
	return collapseBlankLines(out)
}
