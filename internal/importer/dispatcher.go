// SPDX-License-Identifier: Apache-2.0

// Package importer turns raw song files into song drafts. It decodes the
// bytes, picks the first parser that claims the text and runs it.
package importer

import (
	log "github.com/sirupsen/logrus"

	"github.com/setlistkit/songimport/internal/importer/formats"
	"github.com/setlistkit/songimport/internal/song"
)

// Dispatcher holds the ordered parser set and the detectors shared by every
// parse. It is immutable and safe for concurrent use.
type Dispatcher struct {
	parsers []formats.Parser
	toolkit formats.Toolkit
}

// NewDispatcher creates a Dispatcher over the full parser set.
func NewDispatcher(tk formats.Toolkit) *Dispatcher {
	return &Dispatcher{
		parsers: formats.Ordered(),
		toolkit: tk,
	}
}

var defaultDispatcher = NewDispatcher(formats.DefaultToolkit())

// DetectAndParse runs content through the default Dispatcher.
func DetectAndParse(content []byte, filename string) song.ParseResult {
	return defaultDispatcher.DetectAndParse(content, filename)
}

// DetectAndParse decodes content and parses it with the first parser whose
// detection accepts it. It never panics: every failure is reported in the
// returned result.
func (d *Dispatcher) DetectAndParse(content []byte, filename string) song.ParseResult {
	logger := log.WithField("file", filename)
	text, enc, err := Decode(content)
	if err != nil {
		logger.Warn(err)
		return song.Failure(song.FormatUnknown, "Could not decode file content")
	}

	parser := d.selectParser(text, filename)
	logger = logger.WithField("format", parser.Format())
	logger.Tracef("decoded as %s", enc)

	result := parser.Parse(text, filename, d.toolkit)
	if !result.Success {
		logger.Debugf("parse failed: %s", result.Error)
	}
	return result
}

// Detect reports which format DetectAndParse would use for content.
func (d *Dispatcher) Detect(content []byte, filename string) song.Format {
	text, _, err := Decode(content)
	if err != nil {
		return song.FormatUnknown
	}
	return d.selectParser(text, filename).Format()
}

// selectParser returns the first parser that can handle text. PlainText
// accepts everything, so there is always one.
func (d *Dispatcher) selectParser(text, filename string) formats.Parser {
	for _, p := range d.parsers {
		if p.CanParse(text, filename) {
			return p
		}
	}
	return formats.PlainText{}
}

// Formats returns the detectable format names in detection priority.
func (d *Dispatcher) Formats() []song.Format {
	names := make([]song.Format, len(d.parsers))
	for i, p := range d.parsers {
		names[i] = p.Format()
	}
	return names
}

// SupportedFormats lists the format names in detection priority.
func SupportedFormats() []song.Format {
	return defaultDispatcher.Formats()
}

// SupportedExtensions lists the file extensions the importer expects to see.
// Content detection does not depend on them.
func SupportedExtensions() []string {
	return []string{".cho", ".crd", ".chopro", ".chordpro", ".chord", ".pro", ".xml", ".txt", ".onsong"}
}
