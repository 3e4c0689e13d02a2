// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrUndecodable is returned when no supported encoding fits the input.
var ErrUndecodable = errors.New("could not decode file content")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// legacyEncodings are tried in order once UTF-8 has failed. Mac Roman comes
// first for exports from iOS song apps.
var legacyEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"macintosh", charmap.Macintosh},
	{"windows-1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
}

// Decode turns raw file bytes into text with LF line endings and reports
// which encoding was used.
func Decode(content []byte) (text, encodingName string, err error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return normalizeNewlines(string(content)), "utf-8", nil
	}
	for _, candidate := range legacyEncodings {
		out, decErr := candidate.enc.NewDecoder().Bytes(content)
		if decErr != nil || bytes.ContainsRune(out, utf8.RuneError) {
			continue
		}
		return normalizeNewlines(string(out)), candidate.name, nil
	}
	return "", "", ErrUndecodable
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
