package cli

import (
	"fmt"

	"github.com/ironsheep/figtools/internal/config"
	"github.com/ironsheep/figtools/internal/imaging"
)

// OptimizeCmd prepares a figure for print.
type OptimizeCmd struct {
	Input     string `required:"" short:"i" type:"existingfile" help:"Figure to optimize."`
	Output    string `short:"o" type:"path" help:"Output path (default <name>_optimized<ext>)."`
	DPI       int    `name:"dpi" default:"300" help:"Target print resolution."`
	Quality   *int   `help:"JPEG quality 1-100 (config default 90)."`
	MaxWidth  *int   `help:"Maximum output width (config default 2000)."`
	MaxHeight *int   `help:"Maximum output height (config default 2000)."`
	NoCrop    bool   `help:"Skip whitespace trimming."`
}

func (c *OptimizeCmd) Run(env *Env) error {
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	cfg := env.Config.Optimize

	res, err := imaging.OptimizeFile(c.Input, c.Output, imaging.OptimizeOptions{
		Crop:      !c.NoCrop,
		Padding:   cfg.Padding,
		Tolerance: cfg.Tolerance,
		MaxWidth:  config.IntOr(c.MaxWidth, cfg.MaxWidth),
		MaxHeight: config.IntOr(c.MaxHeight, cfg.MaxHeight),
		DPI:       c.DPI,
		Contrast:  cfg.Contrast,
		Sharpen:   cfg.Sharpen,
	}, imaging.SaveOptions{Quality: config.IntOr(c.Quality, cfg.Quality), DPI: c.DPI})
	if err != nil {
		return err
	}

	if res.CroppedWidth != res.OriginalWidth || res.CroppedHeight != res.OriginalHeight {
		env.Logger.Debug("trimmed whitespace",
			"from", fmt.Sprintf("%dx%d", res.OriginalWidth, res.OriginalHeight),
			"to", fmt.Sprintf("%dx%d", res.CroppedWidth, res.CroppedHeight))
	}
	env.Logger.Info("optimized figure",
		"output", res.Output,
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"print_width_in", fmt.Sprintf("%.2f", float64(res.Width)/float64(c.DPI)),
		"file_size", fmt.Sprintf("%.1fKB -> %.1fKB", float64(res.InputBytes)/1024, float64(res.OutputBytes)/1024),
		"reduction", fmt.Sprintf("%.1f%%", res.SizeReductionPercent()),
	)
	fmt.Fprintln(env.Stdout, res.Output)
	return nil
}
