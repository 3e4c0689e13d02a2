// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the song importer as MCP tools.
package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "songimport"

// NewServer registers every song import tool on a new MCP server.
func NewServer(version string, h *Handlers) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	mcp.AddTool(server, MetadataPreviewSongImport, h.PreviewSongImport)
	mcp.AddTool(server, MetadataListSongFormats, ListSongFormats)
	return server
}
