// SPDX-License-Identifier: Apache-2.0

package song

// Format names the source notation a song file was parsed from. The values are
// shown to users in import previews and must stay stable.
type Format string

const (
	FormatChordPro       Format = "chordpro"
	FormatOpenLyrics     Format = "openlyrics"
	FormatOpenSong       Format = "opensong"
	FormatOnSong         Format = "onsong"
	FormatUltimateGuitar Format = "ultimateguitar"
	FormatPlainText      Format = "plaintext"
	FormatUnknown        Format = "unknown"
)

// KeyConfidence grades how clearly a detected key beat its closest rival.
type KeyConfidence string

const (
	ConfidenceHigh   KeyConfidence = "high"
	ConfidenceMedium KeyConfidence = "medium"
	ConfidenceLow    KeyConfidence = "low"
)

// MinTempo and MaxTempo bound a musically valid tempo in BPM.
const (
	MinTempo = 20
	MaxTempo = 300
)

// Draft is the canonical song record produced by an import. Zero values mean
// the field is absent.
type Draft struct {
	Name          string     `json:"name" yaml:"name"`
	Artist        string     `json:"artist,omitempty" yaml:"artist,omitempty"`
	URL           string     `json:"url,omitempty" yaml:"url,omitempty"`
	OriginalKey   MusicalKey `json:"original_key,omitempty" yaml:"original_key,omitempty"`
	TempoBPM      int        `json:"tempo_bpm,omitempty" yaml:"tempo_bpm,omitempty"`
	Mood          Mood       `json:"mood,omitempty" yaml:"mood,omitempty"`
	Themes        []Theme    `json:"themes,omitempty" yaml:"themes,omitempty"`
	Lyrics        string     `json:"lyrics,omitempty" yaml:"lyrics,omitempty"`
	ChordProChart string     `json:"chordpro_chart,omitempty" yaml:"chordpro_chart,omitempty"`
	MinBand       []string   `json:"min_band,omitempty" yaml:"min_band,omitempty"`
	Notes         string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ParseResult is the outcome of parsing one file. Song is set iff Success,
// Error iff not.
type ParseResult struct {
	Success        bool   `json:"success" yaml:"success"`
	Song           *Draft `json:"song_data,omitempty" yaml:"song_data,omitempty"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
	DetectedFormat Format `json:"detected_format" yaml:"detected_format"`

	// SpecifiedKey is the key written in the file's own metadata.
	SpecifiedKey MusicalKey `json:"specified_key,omitempty" yaml:"specified_key,omitempty"`
	// DetectedKey is the key inferred from the chords.
	DetectedKey        MusicalKey    `json:"detected_key,omitempty" yaml:"detected_key,omitempty"`
	KeyConfidence      KeyConfidence `json:"key_confidence,omitempty" yaml:"key_confidence,omitempty"`
	SectionsNormalized bool          `json:"sections_normalized" yaml:"sections_normalized"`
}

// Failure builds an unsuccessful result attributed to format.
func Failure(format Format, message string) ParseResult {
	return ParseResult{
		Success:        false,
		Error:          message,
		DetectedFormat: format,
	}
}

// ValidTempo reports whether bpm lies within the musically valid range.
func ValidTempo(bpm int) bool {
	return bpm >= MinTempo && bpm <= MaxTempo
}
