// SPDX-License-Identifier: Apache-2.0

package sections

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/setlistkit/songimport/internal/theory"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Detector finds and normalises song sections. It holds only immutable
// configuration and may be shared between goroutines.
type Detector struct {
	threshold float64
}

// NewDetector creates a Detector using DefaultSimilarityThreshold.
func NewDetector() *Detector {
	return &Detector{threshold: DefaultSimilarityThreshold}
}

// Detect finds sections in text. When any line is a recognised marker the
// whole document is treated as explicitly marked and every marker is
// rewritten to canonical form; otherwise blank-line separated blocks are
// classified by repetition.
func (d *Detector) Detect(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	lines := strings.Split(text, "\n")
	if markers := findMarkers(lines); len(markers) > 0 {
		return normalizeMarkers(lines, markers)
	}
	return d.detectHeuristically(text, lines)
}

type marker struct {
	line   int
	typ    Type
	number int
}

func findMarkers(lines []string) []marker {
	var markers []marker
	for i, line := range lines {
		if t, n, ok := ParseMarker(line); ok {
			markers = append(markers, marker{line: i, typ: t, number: n})
		}
	}
	return markers
}

func normalizeMarkers(lines []string, markers []marker) Result {
	normalized := make([]string, len(lines))
	copy(normalized, lines)

	counts := numbering{}
	sections := make([]Section, 0, len(markers))

	for i, m := range markers {
		number := m.number
		switch {
		case number == 0 && (m.typ == Verse || m.typ == Chorus):
			number = counts.next(m.typ)
		case number > 0:
			counts.observe(m.typ, number)
		}

		end := len(lines)
		if i+1 < len(markers) {
			end = markers[i+1].line
		}

		normalized[m.line] = FormatMarker(m.typ, number)
		sections = append(sections, Section{
			Type:       m.typ,
			Number:     number,
			StartLine:  m.line,
			EndLine:    end,
			Content:    strings.TrimSpace(strings.Join(lines[m.line+1:end], "\n")),
			Confidence: ExplicitConfidence,
		})
	}

	return Result{
		Sections:           sections,
		NormalizedContent:  strings.Join(normalized, "\n"),
		HadExistingMarkers: true,
	}
}

type block struct {
	content   string
	startLine int
	endLine   int
}

func splitBlocks(lines []string) []block {
	var blocks []block
	var current []string
	start := 0

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, block{content: strings.Join(current, "\n"), startLine: start, endLine: i})
				current = nil
			}
			continue
		}
		if len(current) == 0 {
			start = i
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, block{content: strings.Join(current, "\n"), startLine: start, endLine: len(lines)})
	}
	return blocks
}

func (d *Detector) detectHeuristically(text string, lines []string) Result {
	blocks := splitBlocks(lines)
	if len(blocks) == 0 {
		return Result{NormalizedContent: text}
	}

	if len(blocks) == 1 {
		return Result{
			Sections: []Section{{
				Type:         Verse,
				Number:       1,
				StartLine:    0,
				EndLine:      len(lines),
				Content:      blocks[0].content,
				Confidence:   SingleBlockConfidence,
				AutoDetected: true,
			}},
			NormalizedContent: FormatMarker(Verse, 1) + "\n" + text,
		}
	}

	repeated := d.repeatedBlocks(blocks)
	counts := numbering{}
	sections := make([]Section, 0, len(blocks))
	parts := make([]string, 0, len(blocks))

	for i, b := range blocks {
		t, confidence := Verse, UniqueConfidence
		if repeated[i] {
			t, confidence = Chorus, RepeatedConfidence
		}
		number := counts.next(t)

		parts = append(parts, FormatMarker(t, number)+"\n"+b.content)
		sections = append(sections, Section{
			Type:         t,
			Number:       number,
			StartLine:    b.startLine,
			EndLine:      b.endLine,
			Content:      b.content,
			Confidence:   confidence,
			AutoDetected: true,
		})
	}

	return Result{
		Sections:          sections,
		NormalizedContent: strings.Join(parts, "\n\n"),
	}
}

// repeatedBlocks marks every block that is similar enough to some other block.
func (d *Detector) repeatedBlocks(blocks []block) map[int]bool {
	normalized := make([][]string, len(blocks))
	for i, b := range blocks {
		normalized[i] = runes(normalizeForComparison(b.content))
	}

	repeated := map[int]bool{}
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if similarity(normalized[i], normalized[j]) >= d.threshold {
				repeated[i] = true
				repeated[j] = true
			}
		}
	}
	return repeated
}

// similarity is the 0..1 ratio of how alike two normalised blocks are.
func similarity(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	return difflib.NewMatcher(a, b).Ratio()
}

func normalizeForComparison(text string) string {
	text = theory.StripBracketChords(text)
	text = strings.ToLower(text)
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
