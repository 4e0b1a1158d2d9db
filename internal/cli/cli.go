// Package cli implements the figtools command-line interface.
//
// # Commands
//
//   - tile: composite the panels of one figure into a labeled grid
//   - batch: tile every figure group found in a directory
//   - crop: crop an image to its content area
//   - crop-batch: crop every image in a directory, optionally recursively
//   - optimize: trim, resize and enhance a figure for print
//   - serve: expose the above as MCP tools over stdin/stdout
//
// # Logging
//
// Logs go to stderr through charmbracelet/log, so stdout stays clean for
// output paths and the MCP stream. --verbose (-v) selects debug
// level; otherwise FIGTOOLS_LOG_LEVEL may name a level. The logger is handed
// to every command through Env rather than a package global.
//
// # Configuration
//
// --config points at an optional TOML file (see internal/config). Flags that
// are not given on the command line take their value from it.
package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/ironsheep/figtools/internal/config"
)

const description = `Prepares figures for a manuscript: tiles multi-panel figures into labeled composites, crops scans to their content and optimizes figures for print.`

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
// The main package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Globals are flags shared by every command.
type Globals struct {
	Config  string           `help:"Path to a TOML config file." type:"path" placeholder:"FILE"`
	Verbose bool             `short:"v" help:"Enable debug logging."`
	Version kong.VersionFlag `help:"Print version information and exit."`
}

// CLI is the root command.
type CLI struct {
	Globals

	Tile      TileCmd      `cmd:"" help:"Tile the panels of one figure into a labeled composite."`
	Batch     BatchCmd     `cmd:"" help:"Tile every figure found in a directory."`
	Crop      CropCmd      `cmd:"" help:"Crop an image to its content area."`
	CropBatch CropBatchCmd `cmd:"" name:"crop-batch" help:"Crop every image in a directory to its content area."`
	Optimize  OptimizeCmd  `cmd:"" help:"Trim, resize and enhance a figure for print."`
	Serve     ServeCmd     `cmd:"" help:"Serve the figure tools over MCP on stdin/stdout."`
}

// Env is bound into every command's Run method.
type Env struct {
	Logger *log.Logger
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer
}

// Execute parses args (without the program name) and runs the selected
// command. Errors are logged to stderr and returned.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("figtools"),
		kong.Description(description),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("figtools %s (commit %s, built %s)", version, commit, date)},
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "figtools: error: %v\n", err)
		return err
	}

	logger := newLogger(stderr, logLevel(cli.Verbose))

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Error("failed to load config", "err", err)
		return err
	}
	if cli.Config != "" {
		logger.Debug("loaded config", "path", cli.Config)
	}

	if err := ctx.Run(&Env{Logger: logger, Config: cfg, Stdin: stdin, Stdout: stdout}); err != nil {
		logger.Error(ctx.Command()+" failed", "err", err)
		return err
	}
	return nil
}
