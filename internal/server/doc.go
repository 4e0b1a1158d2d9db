// Package server exposes the figtools operations as MCP (Model Context
// Protocol) tools over stdio.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0, one message per line:
//   - Input: requests on the reader passed to Run (stdin for `figtools serve`)
//   - Output: responses on the writer passed to Run (stdout)
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - figure_find: Group the panel files of a directory into figures
//   - figure_tile: Tile one figure's panels into a labeled composite
//   - image_info: Report dimensions, format and alpha of an image
//   - image_crop_content: Crop an image to its content area
//   - image_optimize: Trim, resize and enhance a figure for print
//
// Tools read and write files by path; no image data travels over the wire.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Logs go to the logger given to New, never to the response stream.
package server
