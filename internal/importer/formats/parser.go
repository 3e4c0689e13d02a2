// SPDX-License-Identifier: Apache-2.0

// Package formats holds the song-file parsers. The set is closed: Parser is
// sealed, and Ordered returns every implementation in detection priority.
package formats

import (
	"fmt"
	"strings"

	"github.com/setlistkit/songimport/internal/sections"
	"github.com/setlistkit/songimport/internal/song"
	"github.com/setlistkit/songimport/internal/theory"
)

// Parser detects and parses one song-file format.
type Parser interface {
	// Format is the stable name reported in ParseResult.DetectedFormat.
	Format() song.Format
	// CanParse is a cheap, side-effect-free detection check.
	CanParse(text, filename string) bool
	// Parse never panics; any failure is returned as an unsuccessful result
	// attributed to this parser's format.
	Parse(text, filename string, tk Toolkit) song.ParseResult

	sealed()
}

// Toolkit carries the read-only detectors every parser uses during
// post-processing.
type Toolkit struct {
	Keys     *theory.KeyDetector
	Sections *sections.Detector
}

// DefaultToolkit builds a Toolkit with freshly constructed detectors.
func DefaultToolkit() Toolkit {
	return Toolkit{
		Keys:     theory.NewKeyDetector(),
		Sections: sections.NewDetector(),
	}
}

// Ordered returns the parsers in detection priority, most specific first.
// PlainText accepts anything and is always last.
func Ordered() []Parser {
	return []Parser{
		ChordPro{},
		OpenLyrics{},
		OpenSong{},
		OnSong{},
		UltimateGuitar{},
		PlainText{},
	}
}

// extraction is what a parser pulls out of a file before the shared
// post-processing runs.
type extraction struct {
	title  string
	artist string
	key    string
	tempo  int
	themes []song.Theme
	notes  []string

	lyrics string
	chart  string
	// chords overrides the chord list used for key detection; when nil the
	// bracketed chords of chart are used.
	chords []string
}

// titleWindow is how many leading lyric lines may supply a title.
const titleWindow = 5

// finish applies the post-processing shared by every parser: section
// normalisation, key detection, key precedence and the title fallback
// (metadata, then the lyrics, then the file name).
func (tk Toolkit) finish(format song.Format, filename string, ex extraction) song.ParseResult {
	lyrics := strings.TrimSpace(ex.lyrics)
	normalized := lyrics
	if lyrics != "" {
		normalized = tk.Sections.Detect(lyrics).NormalizedContent
	}

	chords := ex.chords
	if chords == nil {
		chords = theory.BracketChords(ex.chart)
	}
	detected := tk.Keys.Detect(chords)

	specified := song.NormalizeKey(ex.key)
	finalKey := specified
	if finalKey == "" {
		finalKey = detected.Key
	}

	title := strings.TrimSpace(ex.title)
	if title == "" {
		title = inferTitle(lyrics, titleWindow)
	}
	if title == "" {
		title = song.TitleFromFilename(filename)
	}

	tempo := 0
	if song.ValidTempo(ex.tempo) {
		tempo = ex.tempo
	}

	result := song.ParseResult{
		Success: true,
		Song: &song.Draft{
			Name:          title,
			Artist:        strings.TrimSpace(ex.artist),
			OriginalKey:   finalKey,
			TempoBPM:      tempo,
			Themes:        ex.themes,
			Lyrics:        normalized,
			ChordProChart: ex.chart,
			Notes:         strings.Join(ex.notes, "\n"),
		},
		DetectedFormat:     format,
		SpecifiedKey:       specified,
		DetectedKey:        detected.Key,
		SectionsNormalized: normalized != lyrics,
	}
	if detected.Key != "" {
		result.KeyConfidence = detected.Confidence
	}
	return result
}

// guard converts a panic inside Parse into a failure result for format.
func guard(result *song.ParseResult, format song.Format, label string) {
	if r := recover(); r != nil {
		*result = song.Failure(format, fmt.Sprintf("Failed to parse %s: %v", label, r))
	}
}
