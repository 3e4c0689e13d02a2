// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/setlistkit/songimport/internal/importer"
	"github.com/setlistkit/songimport/internal/preview"
	"github.com/setlistkit/songimport/internal/song"
)

// MetadataPreviewSongImport describes the preview_song_import tool.
var MetadataPreviewSongImport = &mcp.Tool{
	Name: "preview_song_import",
	Description: "Parse one or more song files and return a draft song record for each, without saving " +
		"anything. Supported formats: chordpro, openlyrics, opensong, onsong, ultimateguitar, plaintext; the " +
		"format is detected from the content and file name. Each entry reports the detected format, the key " +
		"written in the file, the key inferred from its chords and whether section markers were rewritten. " +
		"A file that cannot be parsed gets a failed entry; the rest of the batch is unaffected.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"files"},
		"properties": map[string]interface{}{
			"files": map[string]interface{}{
				"type":        "array",
				"description": "Files to preview, in the order results should be returned.",
				"items": map[string]interface{}{
					"type":     "object",
					"required": []string{"file_name", "content"},
					"properties": map[string]interface{}{
						"file_name": map[string]interface{}{
							"type":        "string",
							"description": "Original file name. Used as an extension hint and as the title of last resort.",
						},
						"content": map[string]interface{}{
							"type":        "string",
							"description": "File content, as text or base64 depending on encoding.",
						},
						"encoding": map[string]interface{}{
							"type":        "string",
							"description": "How content is encoded. Use base64 for files that are not UTF-8.",
							"enum":        []string{"text", "base64"},
						},
					},
				},
			},
		},
	},
}

// InputFile is one file passed to preview_song_import.
type InputFile struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// InputPreviewSongImport is the input for the PreviewSongImport tool.
type InputPreviewSongImport struct {
	Files []InputFile `json:"files"`
}

// OutputPreviewSongImport is the output for the PreviewSongImport tool.
type OutputPreviewSongImport struct {
	TotalFiles int             `json:"total_files"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Songs      []preview.Entry `json:"songs"`
}

// MetadataListSongFormats describes the list_song_formats tool.
var MetadataListSongFormats = &mcp.Tool{
	Name:        "list_song_formats",
	Description: "List the song file formats the importer detects, in detection priority, and the file extensions it expects.",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	},
}

// InputListSongFormats is the (empty) input for the ListSongFormats tool.
type InputListSongFormats struct{}

// OutputListSongFormats is the output for the ListSongFormats tool.
type OutputListSongFormats struct {
	Formats    []song.Format `json:"formats"`
	Extensions []string      `json:"extensions"`
}

// Handlers serves the song import tools.
type Handlers struct {
	previews *preview.Service
}

// NewHandlers creates Handlers backed by svc.
func NewHandlers(svc *preview.Service) *Handlers {
	return &Handlers{previews: svc}
}

// PreviewSongImport decodes the submitted files and previews them as one
// batch.
func (h *Handlers) PreviewSongImport(ctx context.Context, _ *mcp.CallToolRequest, input InputPreviewSongImport) (*mcp.CallToolResult, OutputPreviewSongImport, error) {
	if len(input.Files) == 0 {
		return nil, OutputPreviewSongImport{}, fmt.Errorf("files is required")
	}

	files := make([]preview.File, len(input.Files))
	for i, f := range input.Files {
		content, err := decodeContent(f)
		if err != nil {
			return nil, OutputPreviewSongImport{}, fmt.Errorf("file %q: %w", f.FileName, err)
		}
		files[i] = preview.File{Name: f.FileName, Content: content}
	}

	resp, err := h.previews.Preview(ctx, files)
	if err != nil {
		return nil, OutputPreviewSongImport{}, err
	}
	return nil, OutputPreviewSongImport{
		TotalFiles: resp.TotalFiles,
		Successful: resp.Successful,
		Failed:     resp.Failed,
		Songs:      resp.Songs,
	}, nil
}

// ListSongFormats reports the detectable formats and expected extensions.
func ListSongFormats(_ context.Context, _ *mcp.CallToolRequest, _ InputListSongFormats) (*mcp.CallToolResult, OutputListSongFormats, error) {
	return nil, OutputListSongFormats{
		Formats:    importer.SupportedFormats(),
		Extensions: importer.SupportedExtensions(),
	}, nil
}

func decodeContent(f InputFile) ([]byte, error) {
	switch f.Encoding {
	case "", "text":
		return []byte(f.Content), nil
	case "base64":
		raw, err := base64.StdEncoding.DecodeString(f.Content)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 content: %w", err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", f.Encoding)
	}
}
