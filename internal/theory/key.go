// SPDX-License-Identifier: Apache-2.0

package theory

import (
	"regexp"
	"strings"

	"github.com/setlistkit/songimport/internal/song"
)

// Confidence thresholds on the winning margin.
const (
	HighConfidenceMargin   = 0.30
	MediumConfidenceMargin = 0.15
)

// outOfScaleWeight penalises chord roots that fall outside the candidate's
// major scale.
const outOfScaleWeight = -0.3

// defaultWeights scores a chord root by its interval above the candidate
// tonic: I, V, IV, vi, ii, iii and vii.
var defaultWeights = map[int]float64{
	0:  3.0,
	7:  2.5,
	5:  2.0,
	9:  1.5,
	2:  1.0,
	4:  1.0,
	11: 0.5,
}

var naturalSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// semitoneKeys prefers sharps for sharp keys and flats for flat keys.
var semitoneKeys = [12]song.MusicalKey{
	song.KeyC, song.KeyCSharp, song.KeyD, song.KeyEFlat, song.KeyE, song.KeyF,
	song.KeyFSharp, song.KeyG, song.KeyAFlat, song.KeyA, song.KeyBFlat, song.KeyB,
}

var chordRootRE = regexp.MustCompile(`^([A-Ga-g])(#|b|♯|♭)?`)

// KeyResult is the outcome of key detection.
type KeyResult struct {
	Key        song.MusicalKey    `json:"detected_key,omitempty"`
	Confidence song.KeyConfidence `json:"confidence"`
	Score      float64            `json:"confidence_score"`
}

// KeyDetector infers the tonic of a chord progression by scoring chord-root
// frequencies against all twelve candidate major keys. It holds only
// read-only tables and is safe for concurrent use.
type KeyDetector struct {
	weights map[int]float64
}

// NewKeyDetector creates a KeyDetector with the diatonic weight table.
func NewKeyDetector() *KeyDetector {
	return &KeyDetector{weights: defaultWeights}
}

// ChordRoot returns the pitch class (C=0 … B=11) of a chord's root, ignoring
// quality, extensions and any slash bass note.
func ChordRoot(chord string) (int, bool) {
	m := chordRootRE.FindStringSubmatch(strings.TrimSpace(chord))
	if m == nil {
		return 0, false
	}
	pc := naturalSemitones[strings.ToUpper(m[1])[0]]
	switch m[2] {
	case "#", "♯":
		pc++
	case "b", "♭":
		pc--
	}
	return (pc + 12) % 12, true
}

// Detect scores chords and returns the most likely key. An empty or entirely
// unrecognised list yields no key with low confidence.
func (d *KeyDetector) Detect(chords []string) KeyResult {
	var counts [12]int
	seen := 0
	for _, chord := range chords {
		if pc, ok := ChordRoot(chord); ok {
			counts[pc]++
			seen++
		}
	}
	if seen == 0 {
		return KeyResult{Confidence: song.ConfidenceLow}
	}

	best, second := -1, -1
	var scores [12]float64
	for candidate := 0; candidate < 12; candidate++ {
		scores[candidate] = d.score(counts, candidate)
		switch {
		case best < 0 || scores[candidate] > scores[best]:
			second = best
			best = candidate
		case second < 0 || scores[candidate] > scores[second]:
			second = candidate
		}
	}

	margin := 0.0
	if top := scores[best]; top > 0 {
		margin = (top - scores[second]) / top
		if margin > 1 {
			margin = 1
		}
	}

	return KeyResult{
		Key:        semitoneKeys[best],
		Confidence: confidenceFor(margin),
		Score:      margin,
	}
}

func (d *KeyDetector) score(counts [12]int, candidate int) float64 {
	total := 0.0
	for pc, n := range counts {
		if n == 0 {
			continue
		}
		interval := (pc - candidate + 12) % 12
		weight, ok := d.weights[interval]
		if !ok {
			weight = outOfScaleWeight
		}
		total += weight * float64(n)
	}
	return total
}

func confidenceFor(margin float64) song.KeyConfidence {
	switch {
	case margin >= HighConfidenceMargin:
		return song.ConfidenceHigh
	case margin >= MediumConfidenceMargin:
		return song.ConfidenceMedium
	default:
		return song.ConfidenceLow
	}
}
