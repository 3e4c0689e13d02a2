// SPDX-License-Identifier: Apache-2.0

package song

import "strings"

// MusicalKey is a key spelling accepted by the song store.
type MusicalKey string

const (
	KeyC      MusicalKey = "C"
	KeyG      MusicalKey = "G"
	KeyD      MusicalKey = "D"
	KeyA      MusicalKey = "A"
	KeyE      MusicalKey = "E"
	KeyB      MusicalKey = "B"
	KeyFSharp MusicalKey = "F#"
	KeyCSharp MusicalKey = "C#"
	KeyF      MusicalKey = "F"
	KeyBFlat  MusicalKey = "Bb"
	KeyEFlat  MusicalKey = "Eb"
	KeyAFlat  MusicalKey = "Ab"
	KeyDFlat  MusicalKey = "Db"
	KeyGFlat  MusicalKey = "Gb"

	// Enharmonic spellings kept for existing data.
	KeyDSharp MusicalKey = "D#"
	KeyGSharp MusicalKey = "G#"
	KeyASharp MusicalKey = "A#"
)

// AllKeys lists every accepted key in circle-of-fifths order, sharps first.
var AllKeys = []MusicalKey{
	KeyC, KeyG, KeyD, KeyA, KeyE, KeyB, KeyFSharp, KeyCSharp,
	KeyF, KeyBFlat, KeyEFlat, KeyAFlat, KeyDFlat, KeyGFlat,
	KeyDSharp, KeyGSharp, KeyASharp,
}

// keySuffixes are stripped from a key spelling before lookup. Only the first
// matching suffix is removed, so "Gm" and "G minor" both become "G".
var keySuffixes = []string{"major", "maj", "minor", "min", "m"}

var keySpellings = map[string]MusicalKey{
	"C":  KeyC,
	"G":  KeyG,
	"D":  KeyD,
	"A":  KeyA,
	"E":  KeyE,
	"B":  KeyB,
	"F":  KeyF,
	"F#": KeyFSharp,
	"F♯": KeyFSharp,
	"Gb": KeyGFlat,
	"G♭": KeyGFlat,
	"C#": KeyCSharp,
	"C♯": KeyCSharp,
	"Db": KeyDFlat,
	"D♭": KeyDFlat,
	"Bb": KeyBFlat,
	"B♭": KeyBFlat,
	"Eb": KeyEFlat,
	"E♭": KeyEFlat,
	"Ab": KeyAFlat,
	"A♭": KeyAFlat,
	"D#": KeyDSharp,
	"D♯": KeyDSharp,
	"G#": KeyGSharp,
	"G♯": KeyGSharp,
	"A#": KeyASharp,
	"A♯": KeyASharp,
}

// NormalizeKey maps a free-form key spelling such as "G major", "Ebm" or
// "F♯" onto a MusicalKey. It returns "" when the spelling is not recognised.
func NormalizeKey(raw string) MusicalKey {
	key := strings.TrimSpace(raw)
	if key == "" {
		return ""
	}

	lower := strings.ToLower(key)
	for _, suffix := range keySuffixes {
		if strings.HasSuffix(lower, suffix) {
			key = strings.TrimSpace(key[:len(key)-len(suffix)])
			break
		}
	}

	return keySpellings[key]
}
