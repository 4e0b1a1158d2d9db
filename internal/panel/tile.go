package panel

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/figtools/internal/imaging"
	"github.com/ironsheep/figtools/internal/label"
)

// Defaults for the tile command surface.
const (
	DefaultSpacing = 20
	DefaultDPI     = 300
	DefaultQuality = 95
)

// Request describes one tiling invocation.
type Request struct {
	// FigureBase is "<figure_id>_<description>"; only the id is used for
	// discovery.
	FigureBase string

	// SearchDir holds the panel files.
	SearchDir string

	// Output is the composite path. Its extension selects the format.
	Output string

	// Spacing is the gap between panels in pixels.
	Spacing int

	// DPI is recorded in the output's density metadata.
	DPI int
}

// Options configures a Tiler.
type Options struct {
	// Quality is the JPEG quality of the output.
	Quality int

	// Strict turns duplicate panel labels into an error.
	Strict bool

	// Fallback is the canonical size when no A, B or C panel exists.
	Fallback Size

	// Label configures the label renderer.
	Label label.Options
}

// DefaultOptions returns the options used by Tile.
func DefaultOptions() Options {
	return Options{
		Quality:  DefaultQuality,
		Fallback: FallbackSize,
		Label:    label.DefaultOptions(),
	}
}

// Result describes a written composite.
type Result struct {
	FigureID   string        `json:"figure_id"`
	Output     string        `json:"output"`
	Grid       Grid          `json:"grid"`
	PanelSize  Size          `json:"panel_size"`
	Size       Size          `json:"size"`
	Placements []Placement   `json:"placements"`
	Font       string        `json:"font"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Tiler runs the discovery -> layout -> normalize -> compose -> write
// pipeline. It holds no per-figure state and is safe for concurrent use.
type Tiler struct {
	opts   Options
	logger *log.Logger
}

// NewTiler creates a Tiler. Zero Quality, Fallback and Label options take
// their defaults, and a nil logger uses log.Default().
func NewTiler(opts Options, logger *log.Logger) *Tiler {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Quality == 0 {
		opts.Quality = DefaultQuality
	}
	if opts.Fallback == (Size{}) {
		opts.Fallback = FallbackSize
	}
	if opts.Label.FontSize == 0 {
		opts.Label = label.DefaultOptions()
	}
	return &Tiler{opts: opts, logger: logger}
}

// Tile builds and writes the composite for req.
//
// It returns ErrNoPanelsFound (wrapped) when discovery matches nothing, a
// *DecodeError when a panel cannot be read, and an *imaging.WriteError when
// the output cannot be written. The output file is only created on success.
func (t *Tiler) Tile(req Request) (*Result, error) {
	start := time.Now()
	if req.Spacing < 0 {
		return nil, fmt.Errorf("spacing must not be negative, got %d", req.Spacing)
	}
	if req.DPI < 0 || req.DPI > imaging.MaxDPI {
		return nil, fmt.Errorf("dpi must be in 0..%d, got %d", imaging.MaxDPI, req.DPI)
	}
	if req.Output == "" {
		return nil, errors.New("output path is required")
	}

	id := FigureID(req.FigureBase)
	logger := t.logger.With("figure", id)

	paths, err := Discover(req.FigureBase, req.SearchDir, t.opts.Strict, logger)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w for figure %s in %s", ErrNoPanelsFound, id, req.SearchDir)
	}

	panels, err := LoadPanels(paths)
	if err != nil {
		return nil, err
	}
	for _, p := range panels {
		logger.Debug("loaded panel", "label", p.Label, "path", p.Path, "size", p.Size())
	}

	grid := Layout(len(panels))
	normalized, size := Normalize(panels, t.opts.Fallback)
	logger.Debug("normalized panels", "grid", grid, "panel_size", size)

	renderer := label.NewRenderer(t.opts.Label, logger)
	comp, err := Compose(normalized, grid, size, req.Spacing, renderer)
	if err != nil {
		return nil, err
	}

	if req.DPI > 0 && !imaging.CarriesDensity(req.Output) {
		logger.Warn("output format cannot record DPI", "output", req.Output, "dpi", req.DPI)
	}
	if err := imaging.Save(comp.Canvas, req.Output, imaging.SaveOptions{Quality: t.opts.Quality, DPI: req.DPI}); err != nil {
		return nil, err
	}

	b := comp.Canvas.Bounds()
	return &Result{
		FigureID:   id,
		Output:     req.Output,
		Grid:       grid,
		PanelSize:  size,
		Size:       Size{Width: b.Dx(), Height: b.Dy()},
		Placements: comp.Placements,
		Font:       renderer.Source(),
		Elapsed:    time.Since(start),
	}, nil
}

// Tile tiles one figure with DefaultOptions, logging to log.Default().
func Tile(figureBase, searchDir, output string, spacing, dpi int) (*Result, error) {
	return NewTiler(DefaultOptions(), nil).Tile(Request{
		FigureBase: figureBase,
		SearchDir:  searchDir,
		Output:     output,
		Spacing:    spacing,
		DPI:        dpi,
	})
}
