// SPDX-License-Identifier: Apache-2.0

package theory

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	rootExpr = `[A-G](?:#|b|♯|♭)?`
	// extensionExpr is what may appear inside parentheses, as in "A(add9)",
	// "E7(#9)" or "C(b9,#11)".
	extensionExpr = `\((?:maj|min|dim|aug|sus|add|no|m|M|\+|-|[0-9]|#|b|♯|♭|,)+\)`
	qualityExpr   = `(?:maj|min|dim|aug|sus|add|m|M|\+|°|ø|[0-9]|(?:#|b|♯|♭)(?:5|9|11|13)|/[0-9]+|` + extensionExpr + `)*`
)

// chordExpr is the chord grammar: root, optional quality/extension run and an
// optional slash bass note. "G", "F#m7", "Cmaj7", "D/F#", "Bbsus4", "C6/9"
// and "A(add9)" all match; words such as "Chorus" or "Bridge" do not.
var chordExpr = rootExpr + qualityExpr + `(?:/` + rootExpr + `)?`

var (
	chordRE = regexp.MustCompile(`^` + chordExpr + `$`)

	// bracketChordRE also accepts a lower-case root, which is common in
	// hand-typed ChordPro ("[am]").
	bracketChordRE = regexp.MustCompile(`^[A-Ga-g](?:#|b|♯|♭)?` + qualityExpr + `(?:/[A-Ga-g](?:#|b|♯|♭)?)?$`)
	bracketTokenRE = regexp.MustCompile(`\[([^\[\]\n]+)\]`)
	tokenRE        = regexp.MustCompile(`\S+`)
)

// barTokens may appear between chords on a chord line without making it a
// lyric line.
var barTokens = map[string]bool{"|": true, "||": true, "/": true, "-": true}

// IsChordLine reports whether line holds nothing but chord symbols (and
// optional bar separators), with at least one chord.
func IsChordLine(line string) bool {
	tokens := strings.Fields(line)
	chords := 0
	for _, tok := range tokens {
		switch {
		case chordRE.MatchString(tok):
			chords++
		case barTokens[tok]:
		default:
			return false
		}
	}
	return chords > 0
}

// ChordPosition is a chord symbol found at a (rune) column of a chord line.
type ChordPosition struct {
	Column int
	Chord  string
}

// ChordPositions returns the chords on a chord line with their columns, in
// left-to-right order. Tokens that are not chords are skipped.
func ChordPositions(line string) []ChordPosition {
	var out []ChordPosition
	for _, loc := range tokenRE.FindAllStringIndex(line, -1) {
		tok := line[loc[0]:loc[1]]
		if chordRE.MatchString(tok) {
			out = append(out, ChordPosition{Column: utf8.RuneCountInString(line[:loc[0]]), Chord: tok})
		}
	}
	return out
}

// BracketChords returns every "[Chord]" symbol in text, in order. Bracketed
// section labels such as "[Chorus]" are not chords and are skipped.
func BracketChords(text string) []string {
	var chords []string
	for _, m := range bracketTokenRE.FindAllStringSubmatch(text, -1) {
		inner := strings.TrimSpace(m[1])
		if bracketChordRE.MatchString(inner) {
			chords = append(chords, inner)
		}
	}
	return chords
}

// StripBracketChords removes "[Chord]" symbols from text and leaves any other
// bracketed text in place.
func StripBracketChords(text string) string {
	return bracketTokenRE.ReplaceAllStringFunc(text, func(tok string) string {
		inner := strings.TrimSpace(tok[1 : len(tok)-1])
		if bracketChordRE.MatchString(inner) {
			return ""
		}
		return tok
	})
}
