// SPDX-License-Identifier: Apache-2.0

package theory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setlistkit/songimport/internal/song"
	"github.com/setlistkit/songimport/internal/theory"
)

// ---------------------------------------------------------------------------
// Chord grammar
// ---------------------------------------------------------------------------

func TestChordGrammar(t *testing.T) {
	chords := []string{
		"G", "F#m7", "Cmaj7", "D/F#", "Bbsus4", "Asus2", "E7", "C#dim", "Gadd9", "F♯m", "Dm7b5",
		"A(add9)", "C6/9", "E7(#9)", "G7(b9,#11)", "Dsus4(no3)", "C6/9/E",
	}
	for _, c := range chords {
		assert.True(t, theory.IsChordLine(c), "expected %q to be a chord", c)
		assert.Equal(t, []string{c}, theory.BracketChords("["+c+"]"), "expected [%s] to be a bracket chord", c)
	}

	words := []string{"Chorus", "Bridge", "Amazing", "Verse", "H", "g", "Capo", "A(men)", "C/"}
	for _, w := range words {
		assert.False(t, theory.IsChordLine(w), "expected %q not to be a chord", w)
	}
}

func TestIsChordLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "spaced chords", line: "G       D       Em      C", want: true},
		{name: "chords with bars", line: "| G  D | Em  C |", want: true},
		{name: "lyric line", line: "Amazing grace how sweet the sound", want: false},
		{name: "mixed chord and word", line: "G  then D", want: false},
		{name: "bars only", line: "| | |", want: false},
		{name: "blank", line: "   ", want: false},
		{name: "single article A is a chord", line: "A", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, theory.IsChordLine(tt.line))
		})
	}
}

func TestChordPositions(t *testing.T) {
	positions := theory.ChordPositions("G     D/F#  Em")
	require.Len(t, positions, 3)
	assert.Equal(t, theory.ChordPosition{Column: 0, Chord: "G"}, positions[0])
	assert.Equal(t, theory.ChordPosition{Column: 6, Chord: "D/F#"}, positions[1])
	assert.Equal(t, theory.ChordPosition{Column: 12, Chord: "Em"}, positions[2])
}

func TestBracketChords(t *testing.T) {
	text := "[Verse 1]\n[G]Amazing [D/F#]grace\n[Chorus]\n[em]How [C]sweet\n[A(add9)]The [C6/9]sound [E7(#9)]that"
	assert.Equal(t, []string{"G", "D/F#", "em", "C", "A(add9)", "C6/9", "E7(#9)"}, theory.BracketChords(text))
}

func TestStripBracketChords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain chords", in: "[Chorus]\n[G]Amazing [D]grace", want: "[Chorus]\nAmazing grace"},
		{name: "extended chords", in: "[A(add9)]Amazing [C6/9]grace [E7(#9)]how sweet", want: "Amazing grace how sweet"},
		{name: "bridge marker kept", in: "[Bridge]\n[Bb]Holy", want: "[Bridge]\nHoly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, theory.StripBracketChords(tt.in))
		})
	}
}

// ---------------------------------------------------------------------------
// Key detection
// ---------------------------------------------------------------------------

func TestChordRoot(t *testing.T) {
	tests := []struct {
		chord string
		want  int
		ok    bool
	}{
		{chord: "C", want: 0, ok: true},
		{chord: "G7", want: 7, ok: true},
		{chord: "F#m", want: 6, ok: true},
		{chord: "Bb", want: 10, ok: true},
		{chord: "D/F#", want: 2, ok: true},
		{chord: "Cb", want: 11, ok: true},
		{chord: "E#", want: 5, ok: true},
		{chord: "a", want: 9, ok: true},
		{chord: "N.C.", ok: false},
		{chord: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.chord, func(t *testing.T) {
			got, ok := theory.ChordRoot(tt.chord)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestKeyDetector_Detect(t *testing.T) {
	d := theory.NewKeyDetector()

	tests := []struct {
		name   string
		chords []string
		want   song.MusicalKey
	}{
		{name: "I IV V in G", chords: []string{"G", "C", "D", "G"}, want: song.KeyG},
		{name: "I IV V vi in C", chords: []string{"C", "F", "G", "C", "Am", "F", "G", "C"}, want: song.KeyC},
		{name: "single repeated chord is the tonic", chords: []string{"E", "E", "E"}, want: song.KeyE},
		{name: "flat key spelled with flats", chords: []string{"Bb", "Eb", "F", "Bb", "Gm"}, want: song.KeyBFlat},
		{name: "sharp key spelled with sharps", chords: []string{"F#", "B", "C#", "F#"}, want: song.KeyFSharp},
		{name: "slash chords use the upper root", chords: []string{"D", "G/B", "A/C#", "D"}, want: song.KeyD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.Detect(tt.chords)
			assert.Equal(t, tt.want, result.Key)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.LessOrEqual(t, result.Score, 1.0)
		})
	}
}

func TestKeyDetector_DetectEmpty(t *testing.T) {
	d := theory.NewKeyDetector()

	for _, chords := range [][]string{nil, {}, {"N.C.", "x"}} {
		result := d.Detect(chords)
		assert.Empty(t, result.Key)
		assert.Equal(t, song.ConfidenceLow, result.Confidence)
		assert.Zero(t, result.Score)
	}
}

func TestKeyDetector_Confidence(t *testing.T) {
	d := theory.NewKeyDetector()

	// G: 6 + 2 + 2.5 = 10.5, C: 5 + 3 + 1 = 9, margin 0.14.
	assert.Equal(t, song.ConfidenceLow, d.Detect([]string{"G", "C", "D", "G"}).Confidence)

	// A lone chord wins by (3 - 2.5) / 3.
	result := d.Detect([]string{"A"})
	assert.Equal(t, song.ConfidenceMedium, result.Confidence)
	assert.InDelta(t, 1.0/6.0, result.Score, 1e-9)
}

func TestKeyDetector_Deterministic(t *testing.T) {
	d := theory.NewKeyDetector()
	chords := []string{"Am", "F", "C", "G", "Am", "F", "C", "G"}
	first := d.Detect(chords)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.Detect(chords))
	}
}
