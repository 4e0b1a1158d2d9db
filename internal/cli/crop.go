package cli

import (
	"errors"
	"fmt"

	"github.com/ironsheep/figtools/internal/config"
	"github.com/ironsheep/figtools/internal/imaging"
)

// CropFlags are shared by crop and crop-batch.
type CropFlags struct {
	Margin    *int `help:"Pixels kept around the content (config default 30)."`
	Threshold *int `help:"Gray level below which a pixel is content, 0-255 (config default 200)."`
	MaxWidth  *int `help:"Maximum output width (config default 2000)."`
	MaxHeight *int `help:"Maximum output height (config default 2000)."`
	NoResize  bool `help:"Keep the cropped size even when it exceeds the maximum."`
	DPI       int  `name:"dpi" default:"300" help:"Resolution recorded in the output."`
}

// options resolves the flags against the config file.
func (f *CropFlags) options(cfg config.Crop) (imaging.CropOptions, error) {
	threshold := config.IntOr(f.Threshold, int(cfg.Threshold))
	if threshold < 0 || threshold > 255 {
		return imaging.CropOptions{}, fmt.Errorf("threshold must be 0-255, got %d", threshold)
	}
	margin := config.IntOr(f.Margin, cfg.Margin)
	if margin < 0 {
		return imaging.CropOptions{}, fmt.Errorf("margin must not be negative, got %d", margin)
	}

	opts := imaging.CropOptions{
		Threshold: uint8(threshold),
		Margin:    margin,
		MaxWidth:  config.IntOr(f.MaxWidth, cfg.MaxWidth),
		MaxHeight: config.IntOr(f.MaxHeight, cfg.MaxHeight),
	}
	if f.NoResize {
		opts.MaxWidth, opts.MaxHeight = 0, 0
	}
	return opts, nil
}

// CropCmd crops an image to its content area.
type CropCmd struct {
	Input     string `required:"" short:"i" type:"existingfile" help:"Image to crop."`
	Output    string `short:"o" type:"path" help:"Output path; required unless --overwrite."`
	Overwrite bool   `help:"Replace the input file."`

	CropFlags
}

func (c *CropCmd) Run(env *Env) error {
	output := c.Output
	switch {
	case output == "" && !c.Overwrite:
		return errors.New("--output is required unless --overwrite is set")
	case output == "":
		output = c.Input
	}

	opts, err := c.options(env.Config.Crop)
	if err != nil {
		return err
	}

	res, err := imaging.CropFile(c.Input, output, opts, imaging.SaveOptions{Quality: env.Config.JPEGQuality, DPI: c.DPI})
	if err != nil {
		return err
	}
	env.Logger.Debug("content bounds", "region", res.Region)
	logCrop(env, output, res)
	fmt.Fprintln(env.Stdout, output)
	return nil
}

func logCrop(env *Env, output string, res *imaging.CropResult) {
	env.Logger.Info("cropped image",
		"output", output,
		"from", fmt.Sprintf("%dx%d", res.OriginalWidth, res.OriginalHeight),
		"to", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"area_saved", fmt.Sprintf("%.1f%%", res.AreaSavedPercent()),
	)
}
