package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/figtools/internal/config"
	"github.com/ironsheep/figtools/internal/imaging"
	"github.com/ironsheep/figtools/internal/panel"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "figure_tile").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall executes a tool and wraps its result in MCP's content
// format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
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

func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "figure_find":
		return s.handleFigureFind(args)
	case "figure_tile":
		return s.handleFigureTile(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_crop_content":
		return s.handleCropContent(args)
	case "image_optimize":
		return s.handleOptimize(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = []byte("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Figure Handlers ===

type figureFindArgs struct {
	SearchDir string `json:"search_dir"`
}

type figureFindResult struct {
	Figures []panel.Figure `json:"figures"`
}

func (s *Server) handleFigureFind(args json.RawMessage) (interface{}, error) {
	var a figureFindArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.SearchDir == "" {
		return nil, fmt.Errorf("search_dir is required")
	}
	figs, err := panel.FindFigures(a.SearchDir)
	if err != nil {
		return nil, err
	}
	if figs == nil {
		figs = []panel.Figure{}
	}
	return &figureFindResult{Figures: figs}, nil
}

type figureTileArgs struct {
	FigureBase string `json:"figure_base"`
	SearchDir  string `json:"search_dir"`
	Output     string `json:"output"`
	Spacing    *int   `json:"spacing"`
	DPI        *int   `json:"dpi"`
	Strict     bool   `json:"strict"`
}

func (s *Server) handleFigureTile(args json.RawMessage) (interface{}, error) {
	var a figureTileArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.FigureBase == "" || a.SearchDir == "" || a.Output == "" {
		return nil, fmt.Errorf("figure_base, search_dir and output are required")
	}

	opts := s.tiling
	opts.Strict = a.Strict
	return panel.NewTiler(opts, s.logger).Tile(panel.Request{
		FigureBase: a.FigureBase,
		SearchDir:  a.SearchDir,
		Output:     a.Output,
		Spacing:    config.IntOr(a.Spacing, panel.DefaultSpacing),
		DPI:        config.IntOr(a.DPI, panel.DefaultDPI),
	})
}

// === Image Handlers ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(a.Path)
}

type cropContentArgs struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	Margin    *int   `json:"margin"`
	Threshold *int   `json:"threshold"`
	MaxWidth  *int   `json:"max_width"`
	MaxHeight *int   `json:"max_height"`
	DPI       *int   `json:"dpi"`
}

type cropContentResult struct {
	Output           string  `json:"output"`
	X1               int     `json:"x1"`
	Y1               int     `json:"y1"`
	X2               int     `json:"x2"`
	Y2               int     `json:"y2"`
	OriginalWidth    int     `json:"original_width"`
	OriginalHeight   int     `json:"original_height"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	AreaSavedPercent float64 `json:"area_saved_percent"`
}

func (s *Server) handleCropContent(args json.RawMessage) (interface{}, error) {
	var a cropContentArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Input == "" || a.Output == "" {
		return nil, fmt.Errorf("input and output are required")
	}

	cfg := s.cfg.Crop
	threshold := config.IntOr(a.Threshold, int(cfg.Threshold))
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("threshold must be 0-255, got %d", threshold)
	}
	margin := config.IntOr(a.Margin, cfg.Margin)
	if margin < 0 {
		return nil, fmt.Errorf("margin must not be negative, got %d", margin)
	}

	res, err := imaging.CropFile(a.Input, a.Output, imaging.CropOptions{
		Threshold: uint8(threshold),
		Margin:    margin,
		MaxWidth:  config.IntOr(a.MaxWidth, cfg.MaxWidth),
		MaxHeight: config.IntOr(a.MaxHeight, cfg.MaxHeight),
	}, imaging.SaveOptions{Quality: s.cfg.JPEGQuality, DPI: config.IntOr(a.DPI, panel.DefaultDPI)})
	if err != nil {
		return nil, err
	}

	return &cropContentResult{
		Output:           a.Output,
		X1:               res.Region.Min.X,
		Y1:               res.Region.Min.Y,
		X2:               res.Region.Max.X,
		Y2:               res.Region.Max.Y,
		OriginalWidth:    res.OriginalWidth,
		OriginalHeight:   res.OriginalHeight,
		Width:            res.Width,
		Height:           res.Height,
		AreaSavedPercent: res.AreaSavedPercent(),
	}, nil
}

type optimizeArgs struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	DPI     *int   `json:"dpi"`
	Quality *int   `json:"quality"`
	NoCrop  bool   `json:"no_crop"`
}

type optimizeResult struct {
	Output               string  `json:"output"`
	OriginalWidth        int     `json:"original_width"`
	OriginalHeight       int     `json:"original_height"`
	Width                int     `json:"width"`
	Height               int     `json:"height"`
	PrintWidthInch       float64 `json:"print_width_inches"`
	PrintHeightInch      float64 `json:"print_height_inches"`
	InputBytes           int64   `json:"input_bytes"`
	OutputBytes          int64   `json:"output_bytes"`
	SizeReductionPercent float64 `json:"size_reduction_percent"`
}

func (s *Server) handleOptimize(args json.RawMessage) (interface{}, error) {
	var a optimizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Input == "" {
		return nil, fmt.Errorf("input is required")
	}
	dpi := config.IntOr(a.DPI, panel.DefaultDPI)
	if dpi <= 0 {
		return nil, fmt.Errorf("dpi must be positive, got %d", dpi)
	}

	cfg := s.cfg.Optimize
	res, err := imaging.OptimizeFile(a.Input, a.Output, imaging.OptimizeOptions{
		Crop:      !a.NoCrop,
		Padding:   cfg.Padding,
		Tolerance: cfg.Tolerance,
		MaxWidth:  cfg.MaxWidth,
		MaxHeight: cfg.MaxHeight,
		DPI:       dpi,
		Contrast:  cfg.Contrast,
		Sharpen:   cfg.Sharpen,
	}, imaging.SaveOptions{Quality: config.IntOr(a.Quality, cfg.Quality), DPI: dpi})
	if err != nil {
		return nil, err
	}

	return &optimizeResult{
		Output:               res.Output,
		OriginalWidth:        res.OriginalWidth,
		OriginalHeight:       res.OriginalHeight,
		Width:                res.Width,
		Height:               res.Height,
		PrintWidthInch:       float64(res.Width) / float64(dpi),
		PrintHeightInch:      float64(res.Height) / float64(dpi),
		InputBytes:           res.InputBytes,
		OutputBytes:          res.OutputBytes,
		SizeReductionPercent: res.SizeReductionPercent(),
	}, nil
}
