// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"regexp"
	"strings"

	"github.com/setlistkit/songimport/internal/song"
)

var (
	plainTitleREs = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^[ \t]*title:[ \t]*(.+)$`),
		regexp.MustCompile(`(?im)^[ \t]*song:[ \t]*(.+)$`),
		regexp.MustCompile(`(?im)^[ \t]*name:[ \t]*(.+)$`),
	}
	plainArtistREs = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^[ \t]*artist:[ \t]*(.+)$`),
		regexp.MustCompile(`(?im)^[ \t]*by:[ \t]*(.+)$`),
		regexp.MustCompile(`(?im)^[ \t]*author:[ \t]*(.+)$`),
		regexp.MustCompile(`(?im)^[ \t]*performer:[ \t]*(.+)$`),
	}
	plainKeyREs = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^[ \t]*key:[ \t]*(.+)$`),
		regexp.MustCompile(`(?im)^[ \t]*key[ \t]+of[ \t]+(.+)$`),
	}
	plainTempoREs = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^[ \t]*tempo:[ \t]*(\d+)`),
		regexp.MustCompile(`(?im)^[ \t]*bpm:[ \t]*(\d+)`),
	}
	plainMetaLineRE = regexp.MustCompile(`(?im)^[ \t]*(?:(?:title|song|name|artist|by|author|performer|key|tempo|bpm):|key[ \t]+of[ \t]).*$`)
)

// PlainText is the fallback parser. It reads "Title:" style headers and
// chord-over-lyrics sheets and accepts any input.
type PlainText struct{}

func (PlainText) sealed() {}

func (PlainText) Format() song.Format {
	return song.FormatPlainText
}

func (PlainText) CanParse(string, string) bool {
	return true
}

func (p PlainText) Parse(text, filename string, tk Toolkit) (result song.ParseResult) {
	defer guard(&result, p.Format(), "plain text")

	ex := extraction{
		title:  firstMatch(text, plainTitleREs),
		artist: firstMatch(text, plainArtistREs),
		key:    firstMatch(text, plainKeyREs),
		tempo:  tempoStrict(firstMatch(text, plainTempoREs)),
	}

	body := plainMetaLineRE.ReplaceAllString(text, "")
	if chart, hasChords := convertChordSheet(body); hasChords {
		ex.chart = strings.TrimSpace(chart)
	}
	ex.lyrics = stripChordLines(body)
	return tk.finish(p.Format(), filename, ex)
}

// firstMatch returns the first capture of the first pattern that matches.
func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
