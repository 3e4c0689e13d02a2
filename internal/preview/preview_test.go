// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setlistkit/songimport/internal/config"
	"github.com/setlistkit/songimport/internal/song"
)

// fakeImporter succeeds unless the content starts with "fail".
type fakeImporter struct{}

func (fakeImporter) DetectAndParse(content []byte, filename string) song.ParseResult {
	if strings.HasPrefix(string(content), "fail") {
		return song.Failure(song.FormatPlainText, "broken")
	}
	return song.ParseResult{
		Success:        true,
		Song:           &song.Draft{Name: filename},
		DetectedFormat: song.FormatChordPro,
		SpecifiedKey:   song.KeyD,
		DetectedKey:    song.KeyG,
		KeyConfidence:  song.ConfidenceHigh,
	}
}

type fakeChecker struct{}

func (fakeChecker) Warnings(d *song.Draft) []string {
	return []string{"checked " + d.Name}
}

func limits() config.ImportConfig {
	return config.ImportConfig{MaxFiles: 20, MaxFileBytes: 2048, Workers: 3}
}

func TestPreview(t *testing.T) {
	svc := NewService(fakeImporter{}, fakeChecker{}, limits())

	files := []File{
		{Name: "a.cho", Content: []byte("ok")},
		{Name: "b.txt", Content: []byte("fail please")},
		{Name: "c.cho", Content: []byte(strings.Repeat("x", 2049))},
		{Name: "d.cho", Content: []byte("ok")},
	}

	resp, err := svc.Preview(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.TotalFiles)
	assert.Equal(t, 2, resp.Successful)
	assert.Equal(t, 2, resp.Failed)
	require.Len(t, resp.Songs, 4)

	for i, f := range files {
		assert.Equal(t, f.Name, resp.Songs[i].FileName, "entries keep input order")
	}

	ok := resp.Songs[0]
	assert.True(t, ok.Success)
	assert.Equal(t, "a.cho", ok.Song.Name)
	assert.Equal(t, song.KeyD, ok.SpecifiedKey)
	assert.Equal(t, song.KeyG, ok.DetectedKey)
	assert.Equal(t, song.ConfidenceHigh, ok.KeyConfidence)
	assert.Equal(t, []string{"checked a.cho"}, ok.Warnings)

	failed := resp.Songs[1]
	assert.False(t, failed.Success)
	assert.Equal(t, "broken", failed.Error)
	assert.Equal(t, song.FormatPlainText, failed.DetectedFormat)
	assert.Nil(t, failed.Song)
	assert.Empty(t, failed.Warnings)

	oversize := resp.Songs[2]
	assert.False(t, oversize.Success)
	assert.Equal(t, song.FormatUnknown, oversize.DetectedFormat)
	assert.Equal(t, "File exceeds maximum size of 2KB", oversize.Error)
}

func TestPreview_BatchLimits(t *testing.T) {
	svc := NewService(fakeImporter{}, nil, config.ImportConfig{MaxFiles: 2, MaxFileBytes: 64, Workers: 1})

	_, err := svc.Preview(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoFiles)

	files := make([]File, 3)
	for i := range files {
		files[i] = File{Name: fmt.Sprintf("%d.txt", i), Content: []byte("ok")}
	}
	_, err = svc.Preview(context.Background(), files)
	assert.ErrorIs(t, err, ErrTooManyFiles)
	assert.ErrorContains(t, err, "maximum 2 files allowed per import")
}

func TestPreview_NilChecker(t *testing.T) {
	svc := NewService(fakeImporter{}, nil, limits())

	resp, err := svc.Preview(context.Background(), []File{{Name: "a.cho", Content: []byte("ok")}})
	require.NoError(t, err)
	assert.True(t, resp.Songs[0].Success)
	assert.Nil(t, resp.Songs[0].Warnings)
}

func TestPreview_Cancelled(t *testing.T) {
	svc := NewService(fakeImporter{}, nil, limits())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Preview(ctx, []File{{Name: "a.cho", Content: []byte("ok")}})
	assert.ErrorIs(t, err, context.Canceled)
}
