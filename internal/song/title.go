// SPDX-License-Identifier: Apache-2.0

package song

import (
	"strings"
	"unicode"
)

// UntitledName is used when neither the content nor the filename yields a title.
const UntitledName = "Untitled"

// TitleFromFilename derives a display title from a file name: directory and
// extension are dropped, underscores and hyphens become spaces, and every
// word is title-cased. "no_metadata.cho" becomes "No Metadata".
func TitleFromFilename(filename string) string {
	name := filename
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}

	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return UntitledName
	}
	return titleCase(name)
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}
