// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/setlistkit/songimport/internal/config"
	"github.com/setlistkit/songimport/internal/importer"
	"github.com/setlistkit/songimport/internal/importer/formats"
	"github.com/setlistkit/songimport/internal/logging"
	"github.com/setlistkit/songimport/internal/preview"
	"github.com/setlistkit/songimport/internal/schema"
)

var version = "dev"

var (
	configPath string
	outputFlag string
	cfg        config.Config
)

var RootCmd = &cobra.Command{
	Use:           "songimport",
	Short:         "Import worship songs from ChordPro, OpenLyrics, OpenSong, OnSong, Ultimate Guitar and plain text",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if outputFlag != "" {
			loaded.Output = outputFlag
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		cfg = loaded
		return logging.Configure(cfg.Log, cmd.ErrOrStderr())
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	RootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output encoding: yaml or json")
}

// newService wires the preview service from the loaded config.
func newService() (*preview.Service, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return preview.NewService(importer.NewDispatcher(formats.DefaultToolkit()), validator, cfg.Import), nil
}

// printValue writes v in the configured output encoding.
func printValue(w io.Writer, v any) error {
	switch strings.ToLower(cfg.Output) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		out, err := yaml.MarshalWithOptions(v, yaml.UseLiteralStyleIfMultiline(true))
		if err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		_, err = w.Write(out)
		return err
	}
}

func readFiles(paths []string) ([]preview.File, error) {
	files := make([]preview.File, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, preview.File{Name: filepath.Base(p), Content: content})
	}
	return files, nil
}
