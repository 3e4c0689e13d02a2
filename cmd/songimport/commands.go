// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/setlistkit/songimport/internal/importer"
	"github.com/setlistkit/songimport/internal/importer/formats"
	"github.com/setlistkit/songimport/internal/song"
	"github.com/setlistkit/songimport/internal/tool"
)

var (
	ParseCmd = &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse song files and print a preview of each draft",
		Args:  cobra.MinimumNArgs(1),
		RunE:  parseCmd,
	}

	DetectCmd = &cobra.Command{
		Use:   "detect FILE...",
		Short: "Print the format each file would be parsed as",
		Args:  cobra.MinimumNArgs(1),
		RunE:  detectCmd,
	}

	FormatsCmd = &cobra.Command{
		Use:   "formats",
		Short: "List the detectable formats and expected file extensions",
		Args:  cobra.NoArgs,
		RunE:  formatsCmd,
	}

	ServeCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the importer as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE:  serveCmd,
	}
)

func init() {
	RootCmd.AddCommand(ParseCmd)
	RootCmd.AddCommand(DetectCmd)
	RootCmd.AddCommand(FormatsCmd)
	RootCmd.AddCommand(ServeCmd)
}

func parseCmd(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	files, err := readFiles(args)
	if err != nil {
		return err
	}
	resp, err := svc.Preview(cmd.Context(), files)
	if err != nil {
		return err
	}
	if err := printValue(cmd.OutOrStdout(), resp); err != nil {
		return err
	}
	if resp.Failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", resp.Failed, resp.TotalFiles)
	}
	return nil
}

func detectCmd(cmd *cobra.Command, args []string) error {
	files, err := readFiles(args)
	if err != nil {
		return err
	}
	d := importer.NewDispatcher(formats.DefaultToolkit())

	type detection struct {
		File   string      `json:"file" yaml:"file"`
		Format song.Format `json:"format" yaml:"format"`
	}
	out := make([]detection, len(files))
	for i, f := range files {
		out[i] = detection{File: f.Name, Format: d.Detect(f.Content, f.Name)}
	}
	return printValue(cmd.OutOrStdout(), out)
}

func formatsCmd(cmd *cobra.Command, _ []string) error {
	return printValue(cmd.OutOrStdout(), struct {
		Formats    any `json:"formats" yaml:"formats"`
		Extensions any `json:"extensions" yaml:"extensions"`
	}{importer.SupportedFormats(), importer.SupportedExtensions()})
}

func serveCmd(cmd *cobra.Command, _ []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	server := tool.NewServer(version, tool.NewHandlers(svc))
	log.Infof("serving MCP tools over stdio")
	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}
