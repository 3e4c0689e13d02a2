// SPDX-License-Identifier: Apache-2.0

// Package preview parses a batch of uploaded song files without saving
// anything, so a user can review the drafts before importing them.
package preview

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/setlistkit/songimport/internal/config"
	"github.com/setlistkit/songimport/internal/song"
)

var (
	// ErrNoFiles is returned for an empty batch.
	ErrNoFiles = errors.New("no files provided")
	// ErrTooManyFiles is returned when a batch exceeds the configured limit.
	ErrTooManyFiles = errors.New("too many files")
)

// File is one uploaded file.
type File struct {
	Name    string
	Content []byte
}

// Entry is the preview of one file. Failures are reported here and never
// abort the batch.
type Entry struct {
	FileName           string             `json:"file_name" yaml:"file_name"`
	DetectedFormat     song.Format        `json:"detected_format" yaml:"detected_format"`
	Success            bool               `json:"success" yaml:"success"`
	Error              string             `json:"error,omitempty" yaml:"error,omitempty"`
	Song               *song.Draft        `json:"song_data,omitempty" yaml:"song_data,omitempty"`
	SpecifiedKey       song.MusicalKey    `json:"specified_key,omitempty" yaml:"specified_key,omitempty"`
	DetectedKey        song.MusicalKey    `json:"detected_key,omitempty" yaml:"detected_key,omitempty"`
	KeyConfidence      song.KeyConfidence `json:"key_confidence,omitempty" yaml:"key_confidence,omitempty"`
	SectionsNormalized bool               `json:"sections_normalized" yaml:"sections_normalized"`
	Warnings           []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Response summarises a batch.
type Response struct {
	TotalFiles int     `json:"total_files" yaml:"total_files"`
	Successful int     `json:"successful" yaml:"successful"`
	Failed     int     `json:"failed" yaml:"failed"`
	Songs      []Entry `json:"songs" yaml:"songs"`
}

// Importer parses one file. *importer.Dispatcher satisfies it.
type Importer interface {
	DetectAndParse(content []byte, filename string) song.ParseResult
}

// Checker reports schema warnings for a draft. *schema.Validator
// satisfies it.
type Checker interface {
	Warnings(d *song.Draft) []string
}

// Service previews batches using a bounded worker pool.
type Service struct {
	importer Importer
	checker  Checker
	limits   config.ImportConfig
}

// NewService creates a Service. checker may be nil to skip schema warnings.
func NewService(imp Importer, checker Checker, limits config.ImportConfig) *Service {
	return &Service{importer: imp, checker: checker, limits: limits}
}

// Preview parses every file and returns one entry per file in input order.
func (s *Service) Preview(ctx context.Context, files []File) (Response, error) {
	if len(files) == 0 {
		return Response{}, ErrNoFiles
	}
	if len(files) > s.limits.MaxFiles {
		return Response{}, fmt.Errorf("%w: maximum %d files allowed per import", ErrTooManyFiles, s.limits.MaxFiles)
	}

	entries := make([]Entry, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.limits.Workers, 1))
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i] = s.previewFile(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Response{}, err
	}

	resp := Response{TotalFiles: len(files), Songs: entries}
	for _, e := range entries {
		if e.Success {
			resp.Successful++
		} else {
			resp.Failed++
		}
	}
	log.Debugf("preview: %d files, %d parsed, %d failed", resp.TotalFiles, resp.Successful, resp.Failed)
	return resp, nil
}

func (s *Service) previewFile(f File) Entry {
	if len(f.Content) > s.limits.MaxFileBytes {
		return Entry{
			FileName:       f.Name,
			DetectedFormat: song.FormatUnknown,
			Error:          fmt.Sprintf("File exceeds maximum size of %dKB", s.limits.MaxFileBytes/1024),
		}
	}

	result := s.importer.DetectAndParse(f.Content, f.Name)
	entry := Entry{
		FileName:       f.Name,
		DetectedFormat: result.DetectedFormat,
		Success:        result.Success,
		Error:          result.Error,
	}
	if !result.Success {
		log.WithFields(log.Fields{"file": f.Name, "format": result.DetectedFormat}).Warn(result.Error)
		return entry
	}

	entry.Song = result.Song
	entry.SpecifiedKey = result.SpecifiedKey
	entry.DetectedKey = result.DetectedKey
	entry.KeyConfidence = result.KeyConfidence
	entry.SectionsNormalized = result.SectionsNormalized
	if s.checker != nil {
		entry.Warnings = s.checker.Warnings(result.Song)
	}
	return entry
}
