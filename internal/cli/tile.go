package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/ironsheep/figtools/internal/config"
	"github.com/ironsheep/figtools/internal/panel"
)

// TileCmd tiles one figure.
type TileCmd struct {
	FigureBase string `required:"" help:"Figure name, e.g. 01_workflow. Panels are matched by its id (01)." placeholder:"NAME"`
	SearchDir  string `required:"" type:"existingdir" help:"Directory containing the panel files."`
	Output     string `required:"" short:"o" type:"path" help:"Composite output path; the extension selects the format."`
	Spacing    int    `default:"20" help:"Gap between panels in pixels."`
	DPI        int    `name:"dpi" default:"300" help:"Resolution recorded in the output."`
	Strict     bool   `help:"Fail on duplicate panel letters instead of keeping the first."`
}

func (c *TileCmd) Run(env *Env) error {
	opts, err := tilerOptions(env.Config, c.Strict)
	if err != nil {
		return err
	}
	tiler := panel.NewTiler(opts, env.Logger)

	res, err := tiler.Tile(panel.Request{
		FigureBase: c.FigureBase,
		SearchDir:  c.SearchDir,
		Output:     c.Output,
		Spacing:    c.Spacing,
		DPI:        c.DPI,
	})
	if errors.Is(err, panel.ErrNoPanelsFound) {
		env.Logger.Warn("expected panel files like "+panel.FigureID(c.FigureBase)+"a_<description>.jpg", "dir", c.SearchDir)
	}
	if err != nil {
		return err
	}

	env.Logger.Info("wrote composite",
		"output", res.Output,
		"panels", len(res.Placements),
		"grid", res.Grid,
		"panel_size", res.PanelSize,
		"size", res.Size,
		"font", res.Font,
		"elapsed", res.Elapsed.Round(time.Millisecond),
	)
	fmt.Fprintln(env.Stdout, res.Output)
	return nil
}

// tilerOptions maps the config file onto panel.Options.
func tilerOptions(cfg *config.Config, strict bool) (panel.Options, error) {
	lbl, err := cfg.Label.RendererOptions()
	if err != nil {
		return panel.Options{}, err
	}
	return panel.Options{
		Quality: cfg.JPEGQuality,
		Strict:  strict,
		Fallback: panel.Size{
			Width:  cfg.Normalize.FallbackWidth,
			Height: cfg.Normalize.FallbackHeight,
		},
		Label: lbl,
	}, nil
}
