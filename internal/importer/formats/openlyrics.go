// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"regexp"
	"strings"

	"github.com/setlistkit/songimport/internal/sections"
	"github.com/setlistkit/songimport/internal/song"
)

var (
	verseNameRE  = regexp.MustCompile(`^([a-z])(\d*)`)
	newlineRunRE = regexp.MustCompile(`[ \t\r]*\n\s*`)
	spaceRunRE   = regexp.MustCompile(`[ \t]+`)
)

const openLyricsTag = "openlyrics"

// verseLetters maps the leading letter of an OpenLyrics verse name ("v1",
// "c", "b2") onto a section type.
var verseLetters = map[string]sections.Type{
	"v": sections.Verse,
	"c": sections.Chorus,
	"b": sections.Bridge,
	"p": sections.PreChorus,
	"e": sections.Ending,
	"i": sections.Intro,
	"o": sections.Outro,
	"t": sections.Tag,
}

// OpenLyrics parses OpenLyrics XML as written by OpenLP and friends.
type OpenLyrics struct{}

func (OpenLyrics) sealed() {}

func (OpenLyrics) Format() song.Format {
	return song.FormatOpenLyrics
}

// CanParse looks for the OpenLyrics namespace, or for a <song> carrying a
// <properties> block when the namespace is missing.
func (OpenLyrics) CanParse(text, _ string) bool {
	if !looksLikeXML(text) {
		return false
	}
	if strings.Contains(strings.ToLower(text), openLyricsTag) {
		return true
	}
	return strings.Contains(text, "<song") && strings.Contains(text, "<properties>")
}

func (p OpenLyrics) Parse(text, filename string, tk Toolkit) (result song.ParseResult) {
	defer guard(&result, p.Format(), "OpenLyrics")

	root, err := parseXML(text)
	if err != nil {
		return song.Failure(p.Format(), "Invalid XML: "+err.Error())
	}

	var ex extraction
	if props := root.child("properties"); props != nil {
		ex.title = props.child("titles").childText("title")
		ex.artist, ex.notes = openLyricsAuthors(props.child("authors"))
		ex.key = props.childText("key")
		ex.tempo = tempoStrict(props.childText("tempo"))

		if v := props.childText("copyright"); v != "" {
			ex.notes = append(ex.notes, "Copyright: "+v)
		}
		if v := props.childText("ccliNo"); v != "" {
			ex.notes = append(ex.notes, "CCLI: "+v)
		}
		if v := props.childText("comments"); v != "" {
			ex.notes = append(ex.notes, v)
		}

		var names []string
		for _, t := range props.child("themes").children("theme") {
			names = append(names, t.text())
		}
		themes, themeLines := themeNotes(names)
		ex.themes = themes
		ex.notes = append(ex.notes, themeLines...)
	}

	ex.lyrics, ex.chart = openLyricsVerses(root.child("lyrics"))
	return tk.finish(p.Format(), filename, ex)
}

// openLyricsAuthors picks the first words author as the artist and turns
// every other author into a note line.
func openLyricsAuthors(authors *xmlNode) (artist string, notes []string) {
	for _, a := range authors.children("author") {
		name := a.text()
		if name == "" {
			continue
		}
		switch kind := strings.ToLower(a.attrs["type"]); kind {
		case "", "words", "lyrics":
			if artist == "" {
				artist = name
				continue
			}
			notes = append(notes, "Words by: "+name)
		case "music":
			notes = append(notes, "Music by: "+name)
		default:
			notes = append(notes, strings.ToUpper(kind[:1])+kind[1:]+": "+name)
		}
	}
	return artist, notes
}

// openLyricsVerses renders every <verse> as plain lyrics and as a ChordPro
// chart. The chart is empty unless the markup carries at least one chord.
func openLyricsVerses(lyrics *xmlNode) (plain, chart string) {
	var plainBlocks, chartBlocks []string
	hasChords := false

	for _, verse := range lyrics.children("verse") {
		var plainLines, chartLines []string
		if name := verse.attrs["name"]; name != "" {
			marker := verseMarker(name)
			plainLines = append(plainLines, marker)
			chartLines = append(chartLines, marker)
		}
		for _, lines := range verse.children("lines") {
			var pb, cb strings.Builder
			if renderLines(lines, &pb, &cb) {
				hasChords = true
			}
			plainLines = append(plainLines, splitRendered(pb.String())...)
			chartLines = append(chartLines, splitRendered(cb.String())...)
		}
		plainBlocks = append(plainBlocks, strings.Join(plainLines, "\n"))
		chartBlocks = append(chartBlocks, strings.Join(chartLines, "\n"))
	}

	plain = strings.TrimSpace(strings.Join(plainBlocks, "\n\n"))
	if hasChords {
		chart = strings.TrimSpace(strings.Join(chartBlocks, "\n\n"))
	}
	return plain, chart
}

// renderLines writes the mixed content of a <lines> element. Source newlines
// are only formatting; <br/> is the line break. It reports whether a chord
// element was seen.
func renderLines(n *xmlNode, plain, chart *strings.Builder) bool {
	hasChords := false
	for _, item := range n.content {
		if item.elem == nil {
			t := newlineRunRE.ReplaceAllString(item.text, " ")
			plain.WriteString(t)
			chart.WriteString(t)
			continue
		}
		switch item.elem.name {
		case "br":
			plain.WriteString("\n")
			chart.WriteString("\n")
		case "comment":
		case "chord":
			hasChords = true
			chart.WriteString("[" + chordSymbol(item.elem.attrs) + "]")
			renderLines(item.elem, plain, chart)
		default:
			if renderLines(item.elem, plain, chart) {
				hasChords = true
			}
		}
	}
	return hasChords
}

// chordSymbol builds a chord from <chord root type bass> or the older
// name attribute.
func chordSymbol(attrs map[string]string) string {
	if name := attrs["name"]; name != "" {
		return name
	}
	chord := attrs["root"] + attrs["type"]
	if bass := attrs["bass"]; bass != "" {
		chord += "/" + bass
	}
	return chord
}

func splitRendered(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		out = append(out, strings.TrimSpace(spaceRunRE.ReplaceAllString(line, " ")))
	}
	return out
}

// verseMarker renders an OpenLyrics verse name as a section marker:
// "v1" is [Verse 1], "c" is [Chorus]. Unknown names are kept as written.
func verseMarker(name string) string {
	m := verseNameRE.FindStringSubmatch(strings.ToLower(name))
	if m == nil {
		return "[" + name + "]"
	}
	typ, ok := verseLetters[m[1]]
	if !ok {
		return "[" + name + "]"
	}
	return "[" + joinNumber(typ, m[2]) + "]"
}

func joinNumber(typ sections.Type, number string) string {
	if number == "" {
		return string(typ)
	}
	return string(typ) + " " + number
}
