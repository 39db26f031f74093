package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/textsynth/internal/background"
	"github.com/ironsheep/textsynth/internal/glyph"
	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/layout"
	"github.com/ironsheep/textsynth/internal/ocr"
	"github.com/ironsheep/textsynth/internal/rng"
	"github.com/ironsheep/textsynth/internal/synth"
	"github.com/ironsheep/textsynth/internal/writer"
)

// maxSamples bounds the number of images one synth_generate call returns.
const maxSamples = 64

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "synth_layout", "synth_generate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "synth_layout":
		return s.handleSynthLayout(args)
	case "synth_generate":
		return s.handleSynthGenerate(args)
	case "synth_background_distance":
		return s.handleBackgroundDistance(args)
	case "synth_ocr":
		return s.handleOCR(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Rendering ===

// renderArgs selects a text and the face it is rendered with.
type renderArgs struct {
	Text     string  `json:"text"`
	FontPath string  `json:"font_path"`
	Size     float64 `json:"size"`
}

// glyphs renders a.Text in Ink. Size defaults to 48 pixels.
func (a renderArgs) glyphs() ([]glyph.Glyph, error) {
	if a.Text == "" {
		return nil, errors.New("text is required")
	}
	if a.Size == 0 {
		a.Size = 48
	}

	f, err := glyph.Open(a.FontPath)
	if err != nil {
		return nil, err
	}
	face, err := glyph.NewFace(f, a.Size, a.FontPath)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	return face.RenderText(a.Text, synth.Ink)
}

// Box is a char box in image coordinates.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func boxesJSON(rects []image.Rectangle) []Box {
	boxes := make([]Box, len(rects))
	for i, r := range rects {
		boxes[i] = Box{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
	}
	return boxes
}

type synthLayoutArgs struct {
	renderArgs
	ShowIndex bool   `json:"show_index"`
	BoxColor  string `json:"box_color"`
}

// LayoutResult describes a laid-out word.
type LayoutResult struct {
	Text   string `json:"text"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Boxes  []Box  `json:"boxes"`

	// Image is a base64 PNG of the word with its char boxes drawn on.
	Image string `json:"image"`
}

func (s *Server) handleSynthLayout(args json.RawMessage) (interface{}, error) {
	var a synthLayoutArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	glyphs, err := a.glyphs()
	if err != nil {
		return nil, err
	}
	word, err := layout.Merge(glyphs)
	if err != nil {
		return nil, err
	}

	overlay := imaging.BoxOverlay(word.Image, word.Boxes, a.ShowIndex, a.BoxColor)
	encoded, err := imaging.EncodePNGBase64(overlay)
	if err != nil {
		return nil, err
	}
	return &LayoutResult{
		Text:   a.Text,
		Width:  word.Width(),
		Height: word.Height(),
		Boxes:  boxesJSON(word.Boxes),
		Image:  encoded,
	}, nil
}

type synthGenerateArgs struct {
	renderArgs
	Samples *[3]int `json:"samples"`
	Seed    *uint64 `json:"seed"`
}

// Sample is one generated image.
type Sample struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Image  string `json:"image"`
}

// GenerateResult lists the samples generated for one text.
type GenerateResult struct {
	Text    string   `json:"text"`
	Seed    uint64   `json:"seed"`
	Samples []Sample `json:"samples"`
}

func (s *Server) handleSynthGenerate(args json.RawMessage) (interface{}, error) {
	var a synthGenerateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	n := s.config.Base.Samples
	if a.Samples != nil {
		n = *a.Samples
	}
	if total := n[0] * n[1] * n[2]; total > maxSamples {
		return nil, fmt.Errorf("%d samples requested, at most %d allowed", total, maxSamples)
	}
	seed := s.config.Base.Seed
	if a.Seed != nil {
		seed = *a.Seed
	}

	glyphs, err := a.glyphs()
	if err != nil {
		return nil, err
	}
	ti, err := synth.NewTextImage(glyphs, s.stages.Char, s.stages.Text, s.stages.Background)
	if err != nil {
		return nil, err
	}
	images, err := ti.Samples(rng.New(seed), n)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Text: a.Text, Seed: seed, Samples: make([]Sample, 0, len(images))}
	for _, img := range images {
		encoded, err := imaging.EncodePNGBase64(img)
		if err != nil {
			return nil, err
		}
		result.Samples = append(result.Samples, Sample{
			Width:  img.Bounds().Dx(),
			Height: img.Bounds().Dy(),
			Image:  encoded,
		})
	}
	return result, nil
}

// === Background Scoring ===

type backgroundDistanceArgs struct {
	Foreground string   `json:"foreground"`
	Background string   `json:"background"`
	Threshold  *float64 `json:"threshold"`
	NumColor   int      `json:"num_color"`

	// Reload decodes both files again even when they are cached.
	Reload bool `json:"reload"`
}

// DistanceResult is the compatibility score of a foreground and background.
type DistanceResult struct {
	Distance  float64 `json:"distance"`
	Threshold float64 `json:"threshold"`
	Accepted  bool    `json:"accepted"`
}

func (s *Server) handleBackgroundDistance(args json.RawMessage) (interface{}, error) {
	var a backgroundDistanceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	threshold := s.config.Background.DistanceThreshold
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	if a.NumColor == 0 {
		a.NumColor = s.config.Background.NumColor
	}

	scorer, err := background.NewScorer(threshold, a.NumColor, 1, nil, s.logger)
	if err != nil {
		return nil, err
	}
	fg, err := s.loadImage(a.Foreground, a.Reload)
	if err != nil {
		return nil, err
	}
	bg, err := s.loadImage(a.Background, a.Reload)
	if err != nil {
		return nil, err
	}

	d := scorer.Distance(fg, bg)
	return &DistanceResult{Distance: d, Threshold: threshold, Accepted: d >= threshold}, nil
}

// loadImage decodes path through the cache. A full cache is dropped first;
// corpus images are decoded again on their next draw.
func (s *Server) loadImage(path string, reload bool) (*image.NRGBA, error) {
	if reload {
		s.cache.Evict(path)
	}
	if n := s.cache.Len(); n >= s.cacheLimit {
		s.logger.Debug("clearing image cache", "images", n)
		s.cache.Clear()
	}
	return s.cache.Load(path)
}

// === OCR ===

type ocrArgs struct {
	Path     string `json:"path"`
	Language string `json:"language"`
}

// OCRResult compares the recognized text of a sample with its label.
type OCRResult struct {
	Text     string  `json:"text"`
	Label    string  `json:"label,omitempty"`
	Accuracy float64 `json:"accuracy,omitempty"`
}

func (s *Server) handleOCR(args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = "eng"
	}
	got, err := ocr.Tesseract{Language: a.Language}.RecognizeFile(a.Path)
	if err != nil {
		return nil, err
	}

	// Files named like written samples carry their label.
	result := &OCRResult{Text: got}
	if label, _, err := writer.ParseName(a.Path); err == nil {
		result.Label = label
		result.Accuracy = ocr.Accuracy(label, got)
	}
	return result, nil
}
