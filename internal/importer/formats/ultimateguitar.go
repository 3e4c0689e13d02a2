// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/setlistkit/songimport/internal/song"
	"github.com/setlistkit/songimport/internal/theory"
)

var (
	ugCapoRE       = regexp.MustCompile(`(?im)^[ \t]*capo[: \t]+(\d+)`)
	ugTuningRE     = regexp.MustCompile(`(?im)^[ \t]*tuning[: \t]+(.+)$`)
	ugKeyRE        = regexp.MustCompile(`(?im)^[ \t]*key[: \t]+(\S+)`)
	ugTempoRE      = regexp.MustCompile(`(?im)^[ \t]*(?:tempo|bpm)[: \t]+(\d+)`)
	ugTitleRE      = regexp.MustCompile(`(?im)^[ \t]*(?:title|song):[ \t]*(.+)$`)
	ugArtistRE     = regexp.MustCompile(`(?im)^[ \t]*artist:[ \t]*(.+)$`)
	ugByRE         = regexp.MustCompile(`^(.+)\s+(?:by|[-–—])\s+(.+)$`)
	ugCapoLineRE   = regexp.MustCompile(`(?i)^capo\s+\d+`)
	ugSectionRE    = regexp.MustCompile(`(?i)^\[?(Verse|Chorus|Bridge|Intro|Outro|Pre-Chorus|Interlude|Solo|Hook|Refrain)(?:\s*\d+)?\]?$`)
	ugMetaPrefixes = []string{"capo", "tuning", "key", "tempo", "bpm", "title", "artist", "song", "difficulty"}
)

// ugHeaderWindow is how many leading non-blank lines may hold the
// "Title by Artist" line.
const ugHeaderWindow = 3

// UltimateGuitar parses chord-over-lyrics sheets copied from Ultimate Guitar.
type UltimateGuitar struct{}

func (UltimateGuitar) sealed() {}

func (UltimateGuitar) Format() song.Format {
	return song.FormatUltimateGuitar
}

// CanParse matches filename hints, Capo/Tuning lines, [tab] markers, or at
// least two section markers together with at least two chord lines.
func (UltimateGuitar) CanParse(text, filename string) bool {
	name := strings.ToLower(filename)
	if strings.Contains(name, "ultimate") || strings.Contains(name, "_ug") || strings.Contains(name, "-ug") {
		return true
	}
	if ugCapoRE.MatchString(text) || ugTuningRE.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "[tab]") || strings.Contains(lower, "[/tab]") {
		return true
	}

	markers, chordLines := 0, 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case ugSectionRE.MatchString(line):
			markers++
		case theory.IsChordLine(line):
			chordLines++
		}
	}
	return markers >= 2 && chordLines >= 2
}

func (p UltimateGuitar) Parse(text, filename string, tk Toolkit) (result song.ParseResult) {
	defer guard(&result, p.Format(), "Ultimate Guitar format")

	var ex extraction
	lines := strings.Split(text, "\n")

	byLine := -1
	for i, seen := 0, 0; i < len(lines) && seen < ugHeaderWindow; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		seen++
		if theory.IsChordLine(line) || strings.Contains(line, ":") {
			continue
		}
		if m := ugByRE.FindStringSubmatch(line); m != nil {
			ex.title, ex.artist = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			byLine = i
			break
		}
	}
	if ex.title == "" {
		if m := ugTitleRE.FindStringSubmatch(text); m != nil {
			ex.title = strings.TrimSpace(m[1])
		}
	}
	if ex.artist == "" {
		if m := ugArtistRE.FindStringSubmatch(text); m != nil {
			ex.artist = strings.TrimSpace(m[1])
		}
	}

	if m := ugKeyRE.FindStringSubmatch(text); m != nil {
		ex.key = m[1]
	}
	if m := ugTempoRE.FindStringSubmatch(text); m != nil {
		ex.tempo = tempoStrict(m[1])
	}
	if m := ugCapoRE.FindStringSubmatch(text); m != nil {
		if capo, err := strconv.Atoi(m[1]); err == nil && capo >= 1 && capo <= 12 {
			ex.notes = append(ex.notes, "Capo: "+m[1])
		}
	}
	if m := ugTuningRE.FindStringSubmatch(text); m != nil {
		tuning := strings.TrimSpace(m[1])
		if !strings.HasPrefix(strings.ToLower(tuning), "standard") {
			ex.notes = append(ex.notes, "Tuning: "+tuning)
		}
	}

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == byLine || isUGMetadata(line) {
			continue
		}
		kept = append(kept, line)
	}
	body := strings.Join(kept, "\n")

	if ex.title == "" {
		ex.title = inferTitle(body, 10)
	}
	if chart, hasChords := convertChordSheet(body); hasChords {
		ex.chart = strings.TrimSpace(chart)
	}
	ex.lyrics = stripChordLines(body)
	return tk.finish(p.Format(), filename, ex)
}

// isUGMetadata reports header lines ("Capo: 2", "Tuning: DADGAD", "capo 3")
// and [tab] markers that do not belong in the lyrics.
func isUGMetadata(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "[tab]" || lower == "[/tab]" {
		return true
	}
	if ugCapoLineRE.MatchString(lower) {
		return true
	}
	for _, prefix := range ugMetaPrefixes {
		rest, ok := strings.CutPrefix(lower, prefix)
		if ok && strings.HasPrefix(strings.TrimLeft(rest, " \t"), ":") {
			return true
		}
	}
	return false
}
