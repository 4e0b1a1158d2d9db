package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/figtools/internal/config"
	"github.com/ironsheep/figtools/internal/panel"
)

// BatchCmd tiles every figure group in a directory.
type BatchCmd struct {
	SearchDir string `required:"" type:"existingdir" help:"Directory containing the panel files."`
	OutputDir string `required:"" type:"path" help:"Directory for the composites; created if missing."`
	Format    string `default:"jpg" enum:"jpg,png,tif" help:"Output format (${enum})."`
	Spacing   int    `default:"20" help:"Gap between panels in pixels."`
	DPI       int    `name:"dpi" default:"300" help:"Resolution recorded in each output."`
	Strict    bool   `help:"Fail a figure on duplicate panel letters."`
	Workers   *int   `help:"Figures tiled in parallel (config default 4)."`
}

func (c *BatchCmd) Run(env *Env) error {
	p := newProgress(env.Logger)

	figures, err := panel.FindFigures(c.SearchDir)
	if err != nil {
		return err
	}
	if len(figures) == 0 {
		return fmt.Errorf("%w in %s", panel.ErrNoPanelsFound, c.SearchDir)
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	opts, err := tilerOptions(env.Config, c.Strict)
	if err != nil {
		return err
	}
	tiler := panel.NewTiler(opts, env.Logger)

	workers := config.IntOr(c.Workers, env.Config.Batch.Workers)
	if workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", workers)
	}
	env.Logger.Debug("starting batch", "figures", len(figures), "workers", workers)

	var g errgroup.Group
	g.SetLimit(workers)
	var failed atomic.Int32

	for _, fig := range figures {
		g.Go(func() error {
			out := filepath.Join(c.OutputDir, fig.Base+"."+c.Format)
			res, err := tiler.Tile(panel.Request{
				FigureBase: fig.Base,
				SearchDir:  c.SearchDir,
				Output:     out,
				Spacing:    c.Spacing,
				DPI:        c.DPI,
			})
			if err != nil {
				failed.Add(1)
				env.Logger.Error("failed to tile figure", "figure", fig.ID, "err", err)
				return nil
			}
			env.Logger.Info("wrote composite", "figure", fig.ID, "output", res.Output, "grid", res.Grid)
			return nil
		})
	}
	_ = g.Wait()

	if n := int(failed.Load()); n > 0 {
		return fmt.Errorf("%d of %d figures failed", n, len(figures))
	}
	p.done(fmt.Sprintf("Tiled %d figures", len(figures)), "output_dir", c.OutputDir)
	return nil
}
