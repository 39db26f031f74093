// Package server implements an MCP (Model Context Protocol) server that exposes
// the synthesis engine as tools.
//
// It lets an MCP client inspect what the generator does to a text without
// running a batch: lay a text out and see its char boxes, generate a handful
// of samples, score a background against a foreground, or read a sample back
// with OCR.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - synth_layout: Render a text and return its char boxes with a debug overlay
//   - synth_generate: Run the configured stages and return samples
//   - synth_background_distance: Score a foreground/background pair
//   - synth_ocr: Read a sample back with Tesseract
//
// Images are returned as base64-encoded PNG.
//
// # Image Caching
//
// Foreground and background files, as well as the texture and background
// corpora of the configuration, are decoded once through an in-memory cache
// that lives as long as the server.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx, os.Stdin, os.Stdout)
package server
