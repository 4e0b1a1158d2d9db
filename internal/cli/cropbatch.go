package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/figtools/internal/config"
	"github.com/ironsheep/figtools/internal/imaging"
)

// CropBatchCmd crops every matching image in a directory.
type CropBatchCmd struct {
	Directory       string   `required:"" short:"d" type:"existingdir" help:"Directory containing the images."`
	OutputDirectory string   `short:"o" type:"path" help:"Directory for the cropped images, mirroring subdirectories. Default: crop in place."`
	Recursive       bool     `short:"r" help:"Process subdirectories too."`
	Ext             []string `default:"tif,tiff" help:"File extensions to process."`
	Workers         *int     `help:"Images cropped in parallel (config default 4)."`

	CropFlags
}

func (c *CropBatchCmd) Run(env *Env) error {
	p := newProgress(env.Logger)

	opts, err := c.options(env.Config.Crop)
	if err != nil {
		return err
	}
	workers := config.IntOr(c.Workers, env.Config.Batch.Workers)
	if workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", workers)
	}

	files, err := c.collect()
	if err != nil {
		return err
	}
	env.Logger.Info(fmt.Sprintf("Found %d files to process", len(files)), "dir", c.Directory)

	save := imaging.SaveOptions{Quality: env.Config.JPEGQuality, DPI: c.DPI}
	var g errgroup.Group
	g.SetLimit(workers)
	var failed atomic.Int32

	for _, input := range files {
		g.Go(func() error {
			if err := c.cropOne(env, input, opts, save); err != nil {
				failed.Add(1)
				env.Logger.Error("failed to crop image", "input", input, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if n := int(failed.Load()); n > 0 {
		return fmt.Errorf("%d of %d images failed", n, len(files))
	}
	p.done(fmt.Sprintf("Cropped %d images", len(files)))
	return nil
}

func (c *CropBatchCmd) cropOne(env *Env, input string, opts imaging.CropOptions, save imaging.SaveOptions) error {
	output, err := c.outputPath(input)
	if err != nil {
		return err
	}
	res, err := imaging.CropFile(input, output, opts, save)
	if err != nil {
		return err
	}
	logCrop(env, output, res)
	return nil
}

// collect lists the files under Directory whose extension is in Ext, sorted.
func (c *CropBatchCmd) collect() ([]string, error) {
	var files []string
	err := filepath.WalkDir(c.Directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != c.Directory && !c.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if c.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", c.Directory, err)
	}
	slices.Sort(files)
	return files, nil
}

func (c *CropBatchCmd) matches(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, want := range c.Ext {
		if strings.TrimPrefix(strings.ToLower(want), ".") == ext {
			return true
		}
	}
	return false
}

// outputPath mirrors input's position under Directory into OutputDirectory,
// or returns input itself when no output directory is set.
func (c *CropBatchCmd) outputPath(input string) (string, error) {
	if c.OutputDirectory == "" {
		return input, nil
	}
	rel, err := filepath.Rel(c.Directory, input)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.OutputDirectory, rel), nil
}
