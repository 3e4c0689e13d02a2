// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/setlistkit/songimport/internal/song"
)

func TestGuard(t *testing.T) {
	parse := func() (result song.ParseResult) {
		defer guard(&result, song.FormatOnSong, "OnSong")
		panic("index out of range")
	}

	result := parse()
	assert.False(t, result.Success)
	assert.Equal(t, song.FormatOnSong, result.DetectedFormat)
	assert.Equal(t, "Failed to parse OnSong: index out of range", result.Error)
}

func TestFinish_TitleAndTempoFallbacks(t *testing.T) {
	tk := DefaultToolkit()

	result := tk.finish(song.FormatPlainText, "my_song.txt", extraction{tempo: 500, key: "nonsense"})
	assert.True(t, result.Success)
	assert.Equal(t, "My Song", result.Song.Name)
	assert.Zero(t, result.Song.TempoBPM)
	assert.Empty(t, result.Song.OriginalKey)
	assert.Empty(t, result.SpecifiedKey)
	assert.Empty(t, result.KeyConfidence)
	assert.False(t, result.SectionsNormalized)
}

func TestFinish_ExplicitChordsOverrideChart(t *testing.T) {
	tk := DefaultToolkit()

	result := tk.finish(song.FormatOpenSong, "x.xml", extraction{
		chart:  "[C]a [F]b [G]c",
		chords: []string{"D", "G", "A", "D"},
	})
	assert.Equal(t, song.KeyD, result.DetectedKey)
	assert.Equal(t, song.KeyD, result.Song.OriginalKey)
}
