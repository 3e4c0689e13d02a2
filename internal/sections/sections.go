// SPDX-License-Identifier: Apache-2.0

// Package sections finds verse/chorus/bridge structure in song lyrics and
// rewrites it with canonical "[Verse 1]" style markers.
package sections

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Type is the kind of a song section. The value is the label used in
// canonical markers.
type Type string

const (
	Verse        Type = "Verse"
	Chorus       Type = "Chorus"
	Bridge       Type = "Bridge"
	PreChorus    Type = "Pre-Chorus"
	Tag          Type = "Tag"
	Intro        Type = "Intro"
	Outro        Type = "Outro"
	Interlude    Type = "Interlude"
	Instrumental Type = "Instrumental"
	Ending       Type = "Ending"
	Unknown      Type = "Section"
)

// Confidence levels attached to detected sections.
const (
	ExplicitConfidence    = 1.0
	RepeatedConfidence    = 0.8
	UniqueConfidence      = 0.6
	SingleBlockConfidence = 0.5
)

// DefaultSimilarityThreshold is the block similarity at or above which two
// blocks are treated as the same repeated chorus.
const DefaultSimilarityThreshold = 0.85

// Section is one structural block of a song.
type Section struct {
	Type Type `json:"section_type"`
	// Number is the occurrence number; 0 means the marker carries none.
	Number       int     `json:"number,omitempty"`
	StartLine    int     `json:"start_line"`
	EndLine      int     `json:"end_line"`
	Content      string  `json:"content"`
	Confidence   float64 `json:"confidence"`
	AutoDetected bool    `json:"is_auto_detected"`
}

// Result is the outcome of section detection.
type Result struct {
	Sections           []Section `json:"sections"`
	NormalizedContent  string    `json:"normalized_content"`
	HadExistingMarkers bool      `json:"had_existing_markers"`
}

// markerRE accepts abbreviated and full section names, an optional number,
// optional surrounding brackets and an optional trailing colon.
var markerRE = regexp.MustCompile(`(?i)^\s*\[?\s*` +
	`(V(?:erse)?|C(?:horus)?|B(?:ridge)?|P(?:re)?(?:-?C(?:horus)?)?|` +
	`Tag|Intro|Outro|Interlude|Instrumental|Ending|Coda|Refrain|Hook|` +
	`Verse|Chorus|Bridge|Pre-Chorus|PreChorus|Pre Chorus)` +
	`(?:\s*(\d+))?\s*\]?\s*:?\s*$`)

var aliases = map[string]Type{
	"v":            Verse,
	"verse":        Verse,
	"c":            Chorus,
	"chorus":       Chorus,
	"refrain":      Chorus,
	"hook":         Chorus,
	"b":            Bridge,
	"bridge":       Bridge,
	"p":            PreChorus,
	"pc":           PreChorus,
	"pre":          PreChorus,
	"prec":         PreChorus,
	"pre-c":        PreChorus,
	"pre-chorus":   PreChorus,
	"prechorus":    PreChorus,
	"tag":          Tag,
	"coda":         Tag,
	"ending":       Ending,
	"intro":        Intro,
	"outro":        Outro,
	"interlude":    Interlude,
	"instrumental": Instrumental,
}

// ParseMarker recognises a section marker line such as "[V1]", "Chorus:" or
// "Pre-Chorus 2". number is 0 when the marker carries none.
func ParseMarker(line string) (t Type, number int, ok bool) {
	m := markerRE.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	name := strings.ReplaceAll(strings.ToLower(m[1]), " ", "")
	t, known := aliases[name]
	if !known {
		t = Unknown
	}
	if m[2] != "" {
		number, _ = strconv.Atoi(m[2])
	}
	return t, number, true
}

// FormatMarker renders the canonical marker for a section, e.g. "[Verse 2]"
// or "[Chorus]".
func FormatMarker(t Type, number int) string {
	if number > 0 {
		return fmt.Sprintf("[%s %d]", t, number)
	}
	return fmt.Sprintf("[%s]", t)
}

// numbering hands out per-type occurrence numbers. Verses are always
// numbered; the first chorus stays unnumbered and later ones count on from 2.
type numbering map[Type]int

func (n numbering) next(t Type) int {
	n[t]++
	if t == Chorus && n[t] == 1 {
		return 0
	}
	return n[t]
}

func (n numbering) observe(t Type, number int) {
	if number > n[t] {
		n[t] = number
	}
}
