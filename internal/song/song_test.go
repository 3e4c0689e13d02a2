// SPDX-License-Identifier: Apache-2.0

package song_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/setlistkit/songimport/internal/song"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		raw  string
		want song.MusicalKey
	}{
		{raw: "G", want: song.KeyG},
		{raw: " D ", want: song.KeyD},
		{raw: "G major", want: song.KeyG},
		{raw: "Gmaj", want: song.KeyG},
		{raw: "Em", want: song.KeyE},
		{raw: "E minor", want: song.KeyE},
		{raw: "Ebm", want: song.KeyEFlat},
		{raw: "F#", want: song.KeyFSharp},
		{raw: "F♯", want: song.KeyFSharp},
		{raw: "B♭", want: song.KeyBFlat},
		{raw: "A#", want: song.KeyASharp},
		{raw: "H", want: ""},
		{raw: "Cb", want: ""},
		{raw: "", want: ""},
		{raw: "unknown", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, song.NormalizeKey(tt.raw))
		})
	}
}

func TestAllKeys_NormalizeToThemselves(t *testing.T) {
	assert.Len(t, song.AllKeys, 17)
	for _, k := range song.AllKeys {
		assert.Equal(t, k, song.NormalizeKey(string(k)), "key %q", k)
	}
	assert.Empty(t, song.NormalizeKey("Cb"))
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{filename: "no_metadata.cho", want: "No Metadata"},
		{filename: "amazing-grace.txt", want: "Amazing Grace"},
		{filename: "songs/HOW_GREAT_is-our_god.onsong", want: "How Great Is Our God"},
		{filename: `C:\charts\10000_reasons.pro`, want: "10000 Reasons"},
		{filename: "archive.tar.gz", want: "Archive.Tar"},
		{filename: "", want: song.UntitledName},
		{filename: ".cho", want: song.UntitledName},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, song.TitleFromFilename(tt.filename))
		})
	}
}

func TestLookupTheme(t *testing.T) {
	theme, ok := song.LookupTheme("holy week")
	assert.True(t, ok)
	assert.Equal(t, song.ThemeHolyWeek, theme)

	_, ok = song.LookupTheme("Adoration")
	assert.False(t, ok)
}

func TestValidTempo(t *testing.T) {
	assert.True(t, song.ValidTempo(song.MinTempo))
	assert.True(t, song.ValidTempo(song.MaxTempo))
	assert.False(t, song.ValidTempo(19))
	assert.False(t, song.ValidTempo(301))
	assert.False(t, song.ValidTempo(0))
}

func TestFailure(t *testing.T) {
	result := song.Failure(song.FormatOpenSong, "Invalid XML: boom")
	assert.False(t, result.Success)
	assert.Nil(t, result.Song)
	assert.Equal(t, song.FormatOpenSong, result.DetectedFormat)
	assert.Equal(t, "Invalid XML: boom", result.Error)
}
