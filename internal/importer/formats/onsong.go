// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/setlistkit/songimport/internal/sections"
	"github.com/setlistkit/songimport/internal/song"
	"github.com/setlistkit/songimport/internal/theory"
)

var (
	onSongMetaRE       = regexp.MustCompile(`(?i)^(Key|Tempo|Time|Capo|CCLI|Copyright|Duration|Flow):\s*(.+)$`)
	onSongMetaAnyRE    = regexp.MustCompile(`(?im)^(Key|Tempo|Time|Capo|CCLI|Copyright|Duration|Flow):\s*\S`)
	onSongSectionRE    = regexp.MustCompile(`(?i)^(Verse|Chorus|Bridge|Pre-?Chorus|Tag|Intro|Outro|Interlude|Instrumental|Ending|Coda|Refrain|Hook|Vamp|Turnaround)\s*(\d*)\s*:?\s*$`)
	onSongSectionAnyRE = regexp.MustCompile(`(?im)^(Verse|Chorus|Bridge|Pre-?Chorus|Tag|Intro|Outro|Interlude|Instrumental|Ending|Coda|Refrain|Hook|Vamp|Turnaround)[ \t]*\d*[ \t]*:?[ \t]*$`)
	onSongArtistRE     = regexp.MustCompile(`(?i)^(by|artist:?)\s+`)
)

// chordProHeadRE spots the ChordPro directives that rule OnSong out.
var chordProHeadRE = regexp.MustCompile(`(?i)\{(title|artist|key|t|a):`)

// OnSong parses exports from the OnSong iOS app: a title line, an optional
// artist line, "Key: G" style metadata and inline bracket chords.
type OnSong struct{}

func (OnSong) sealed() {}

func (OnSong) Format() song.Format {
	return song.FormatOnSong
}

// CanParse accepts the .onsong extension. Otherwise it needs metadata lines,
// section headers and inline chords together, with no ChordPro directives,
// which separates OnSong from chord-over-lyrics sheets.
func (OnSong) CanParse(text, filename string) bool {
	if extension(filename) == "onsong" {
		return true
	}
	if chordProHeadRE.MatchString(text) {
		return false
	}
	return onSongMetaAnyRE.MatchString(text) &&
		onSongSectionAnyRE.MatchString(text) &&
		len(theory.BracketChords(text)) > 0
}

func (p OnSong) Parse(text, filename string, tk Toolkit) (result song.ParseResult) {
	defer guard(&result, p.Format(), "OnSong")

	var ex extraction
	lines := strings.Split(text, "\n")
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}

	if i < len(lines) && isOnSongTitle(lines[i]) {
		ex.title = strings.TrimSpace(lines[i])
		i++
		if i < len(lines) {
			next := strings.TrimSpace(lines[i])
			switch {
			case strings.HasPrefix(next, "(") && strings.HasSuffix(next, ")"):
				ex.artist = strings.TrimSpace(next[1 : len(next)-1])
				i++
			case onSongArtistRE.MatchString(next):
				ex.artist = strings.TrimSpace(onSongArtistRE.ReplaceAllString(next, ""))
				i++
			case next != "" && isOnSongTitle(next):
				ex.artist = next
				i++
			}
		}
	}

	var body []string
	inBody := false
	for _, line := range lines[i:] {
		stripped := strings.TrimSpace(line)
		if m := onSongMetaRE.FindStringSubmatch(stripped); m != nil && !inBody {
			value := strings.TrimSpace(m[2])
			switch strings.ToLower(m[1]) {
			case "key":
				ex.key = value
			case "tempo":
				ex.tempo = tempoFromText(value)
			case "capo":
				ex.notes = append(ex.notes, "Capo: "+value)
			case "time":
				ex.notes = append(ex.notes, "Time: "+value)
			case "ccli":
				ex.notes = append(ex.notes, "CCLI: "+value)
			case "copyright":
				ex.notes = append(ex.notes, "Copyright: "+value)
			}
			continue
		}
		if stripped != "" {
			inBody = true
		}
		body = append(body, line)
	}

	ex.lyrics = onSongLyrics(body)
	ex.chart = onSongChart(ex, body)
	return tk.finish(p.Format(), filename, ex)
}

// isOnSongTitle rejects lines that belong to the song body.
func isOnSongTitle(line string) bool {
	line = strings.TrimSpace(line)
	return !onSongMetaRE.MatchString(line) &&
		!onSongSectionRE.MatchString(line) &&
		len(theory.BracketChords(line)) == 0
}

// onSongSection renders a section header such as "Verse 2:" as a section
// name. ok is false for any other line.
func onSongSection(line string) (name string, ok bool) {
	m := onSongSectionRE.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	if t, n, known := sections.ParseMarker(m[1] + " " + m[2]); known && t != sections.Unknown {
		if n == 0 {
			return string(t), true
		}
		return strings.Trim(sections.FormatMarker(t, n), "[]"), true
	}
	name = strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
	if m[2] != "" {
		name += " " + m[2]
	}
	return name, true
}

func onSongLyrics(body []string) string {
	out := make([]string, 0, len(body))
	for _, line := range body {
		stripped := strings.TrimSpace(line)
		if onSongMetaRE.MatchString(stripped) {
			continue
		}
		if name, ok := onSongSection(stripped); ok {
			out = append(out, "["+name+"]")
			continue
		}
		out = append(out, strings.TrimSpace(theory.StripBracketChords(stripped)))
	}
	return collapseBlankLines(out)
}

// onSongChart rebuilds the song as ChordPro: header directives followed by
// the body, with section headers turned into comments.
func onSongChart(ex extraction, body []string) string {
	var out []string
	if ex.title != "" {
		out = append(out, "{title: "+ex.title+"}")
	}
	if ex.artist != "" {
		out = append(out, "{artist: "+ex.artist+"}")
	}
	if ex.key != "" {
		out = append(out, "{key: "+ex.key+"}")
	}
	if ex.tempo != 0 {
		out = append(out, "{tempo: "+strconv.Itoa(ex.tempo)+"}")
	}
	if len(out) > 0 {
		out = append(out, "")
	}
	for _, line := range body {
		stripped := strings.TrimSpace(line)
		if name, ok := onSongSection(stripped); ok {
			out = append(out, "{comment: "+name+"}")
			continue
		}
		out = append(out, stripped)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
