// SPDX-License-Identifier: Apache-2.0

package sections_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setlistkit/songimport/internal/sections"
)

// ---------------------------------------------------------------------------
// Marker grammar
// ---------------------------------------------------------------------------

func TestParseMarker(t *testing.T) {
	tests := []struct {
		line       string
		wantType   sections.Type
		wantNumber int
		wantOK     bool
	}{
		{line: "[Verse 1]", wantType: sections.Verse, wantNumber: 1, wantOK: true},
		{line: "Verse 2:", wantType: sections.Verse, wantNumber: 2, wantOK: true},
		{line: "[V1]", wantType: sections.Verse, wantNumber: 1, wantOK: true},
		{line: "C", wantType: sections.Chorus, wantOK: true},
		{line: "Chorus:", wantType: sections.Chorus, wantOK: true},
		{line: "refrain", wantType: sections.Chorus, wantOK: true},
		{line: "[Hook]", wantType: sections.Chorus, wantOK: true},
		{line: "[Bridge]", wantType: sections.Bridge, wantOK: true},
		{line: "Pre-Chorus", wantType: sections.PreChorus, wantOK: true},
		{line: "PreChorus 2", wantType: sections.PreChorus, wantNumber: 2, wantOK: true},
		{line: "Pre", wantType: sections.PreChorus, wantOK: true},
		{line: "[Coda]", wantType: sections.Tag, wantOK: true},
		{line: "Intro", wantType: sections.Intro, wantOK: true},
		{line: "Instrumental:", wantType: sections.Instrumental, wantOK: true},
		{line: "Amazing grace", wantOK: false},
		{line: "Verse of the day", wantOK: false},
		{line: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			typ, number, ok := sections.ParseMarker(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantType, typ)
				assert.Equal(t, tt.wantNumber, number)
			}
		})
	}
}

func TestFormatMarker(t *testing.T) {
	assert.Equal(t, "[Verse 2]", sections.FormatMarker(sections.Verse, 2))
	assert.Equal(t, "[Chorus]", sections.FormatMarker(sections.Chorus, 0))
	assert.Equal(t, "[Pre-Chorus 1]", sections.FormatMarker(sections.PreChorus, 1))
}

// ---------------------------------------------------------------------------
// Explicit-marker mode
// ---------------------------------------------------------------------------

func TestDetect_Idempotent(t *testing.T) {
	d := sections.NewDetector()
	text := "[Verse 1]\nAmazing grace\n\n[Chorus]\nHow sweet the sound\n\n[Verse 2]\nThrough many dangers\n\n[Chorus 2]\nHow sweet the sound"

	first := d.Detect(text)
	assert.True(t, first.HadExistingMarkers)
	assert.Equal(t, text, first.NormalizedContent)

	second := d.Detect(first.NormalizedContent)
	assert.Equal(t, first.NormalizedContent, second.NormalizedContent)
}

func TestDetect_RewritesMarkers(t *testing.T) {
	d := sections.NewDetector()
	text := "V1:\nline one\n\nC\nline two\n\nVerse\nline three\n\nchorus\nline four\n\n[b]\nline five"

	result := d.Detect(text)
	require.True(t, result.HadExistingMarkers)
	assert.Equal(t,
		"[Verse 1]\nline one\n\n[Chorus]\nline two\n\n[Verse 2]\nline three\n\n[Chorus 2]\nline four\n\n[Bridge]\nline five",
		result.NormalizedContent)

	require.Len(t, result.Sections, 5)
	for _, s := range result.Sections {
		assert.Equal(t, sections.ExplicitConfidence, s.Confidence)
		assert.False(t, s.AutoDetected)
	}
	assert.Equal(t, "line one", result.Sections[0].Content)
	assert.Equal(t, sections.Bridge, result.Sections[4].Type)
}

func TestDetect_ExplicitNumbersAdvanceCounter(t *testing.T) {
	d := sections.NewDetector()
	result := d.Detect("[Verse 3]\na\n\n[Verse]\nb")
	assert.Equal(t, "[Verse 3]\na\n\n[Verse 4]\nb", result.NormalizedContent)
}

// ---------------------------------------------------------------------------
// Heuristic mode
// ---------------------------------------------------------------------------

func TestDetect_SingleBlock(t *testing.T) {
	d := sections.NewDetector()
	result := d.Detect("Amazing grace\nhow sweet the sound")

	assert.False(t, result.HadExistingMarkers)
	assert.Equal(t, "[Verse 1]\nAmazing grace\nhow sweet the sound", result.NormalizedContent)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, sections.SingleBlockConfidence, result.Sections[0].Confidence)
	assert.True(t, result.Sections[0].AutoDetected)
}

func TestDetect_RepeatedBlocksBecomeChorus(t *testing.T) {
	d := sections.NewDetector()
	chorus := "Holy holy holy\nLord God almighty"
	text := strings.Join([]string{
		"First verse line\nsecond line of the verse",
		chorus,
		"Another verse here\nwith different words",
		"[G]HOLY holy  holy\nLord God [D]almighty",
	}, "\n\n")

	result := d.Detect(text)
	assert.False(t, result.HadExistingMarkers)
	require.Len(t, result.Sections, 4)

	assert.Equal(t, sections.Verse, result.Sections[0].Type)
	assert.Equal(t, 1, result.Sections[0].Number)
	assert.Equal(t, sections.UniqueConfidence, result.Sections[0].Confidence)

	assert.Equal(t, sections.Chorus, result.Sections[1].Type)
	assert.Equal(t, 0, result.Sections[1].Number)
	assert.Equal(t, sections.RepeatedConfidence, result.Sections[1].Confidence)

	assert.Equal(t, sections.Verse, result.Sections[2].Type)
	assert.Equal(t, 2, result.Sections[2].Number)

	assert.Equal(t, sections.Chorus, result.Sections[3].Type)
	assert.Equal(t, 2, result.Sections[3].Number)

	assert.True(t, strings.HasPrefix(result.NormalizedContent, "[Verse 1]\nFirst verse line"))
	assert.Contains(t, result.NormalizedContent, "\n\n[Chorus]\nHoly holy holy")
	assert.Contains(t, result.NormalizedContent, "\n\n[Chorus 2]\n[G]HOLY")

	// Normalised output is stable under a second pass.
	again := d.Detect(result.NormalizedContent)
	assert.True(t, again.HadExistingMarkers)
	assert.Equal(t, result.NormalizedContent, again.NormalizedContent)
}

func TestDetect_Empty(t *testing.T) {
	d := sections.NewDetector()
	result := d.Detect("  \n\n ")
	assert.Empty(t, result.Sections)
	assert.Empty(t, result.NormalizedContent)
	assert.False(t, result.HadExistingMarkers)
}
