package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"drawboard/internal/config"
	"drawboard/pkg/board"
)

const defaultOutput = "drawboard.png"

// fieldOpts holds the flags that override the config file. They are shared
// by render and edit.
type fieldOpts struct {
	output string
	width  float64
	height float64
	shape  string
}

func (o *fieldOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "out", "o", defaultOutput, "output PNG file")
	cmd.Flags().Float64Var(&o.width, "width", 0, "field width (overrides config)")
	cmd.Flags().Float64Var(&o.height, "height", 0, "field height (overrides config)")
	cmd.Flags().StringVar(&o.shape, "shape", "", "default shape (overrides config)")
}

// apply copies the flags the user actually set onto cfg.
func (o *fieldOpts) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Height = o.height
	}
	if o.shape != "" {
		cfg.Shape = o.shape
	}
}

func newRenderCmd(configPath *string) *cobra.Command {
	var opts fieldOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the configured board and write it as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), *configPath, opts.output, func(cfg *config.Config) {
				opts.apply(cmd, cfg)
			})
		},
	}
	opts.register(cmd)

	return cmd
}

// loadOptions reads the config file, lets override adjust it and converts it
// into board options logging to the context logger.
func loadOptions(ctx context.Context, path string, override func(*config.Config)) (*config.Config, board.Options, error) {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, board.Options{}, err
	}
	if override != nil {
		override(cfg)
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, board.Options{}, err
	}
	opts.Logger = logger
	logger.Debug("loaded config", "path", path, "width", opts.Width, "height", opts.Height, "elements", len(opts.Elements))
	return cfg, opts, nil
}

func runRender(ctx context.Context, configPath, output string, override func(*config.Config)) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, opts, err := loadOptions(ctx, configPath, override)
	if err != nil {
		return err
	}

	// A bare controller has no loop to post to, so the background image is
	// decoded before Mount returns.
	c, err := board.NewController(opts)
	if err != nil {
		return err
	}
	defer c.Close()
	c.Mount()

	out := cfg.GetSavePath(output)
	if err := c.Surface().SavePNG(out); err != nil {
		return err
	}

	w, h := c.Surface().Size()
	prog.done(fmt.Sprintf("Rendered %s (%gx%g, %d elements)", out, w, h, len(c.Elements())))
	return nil
}
