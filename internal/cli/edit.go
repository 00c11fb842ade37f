package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"drawboard/internal/config"
	"drawboard/internal/tui"
)

func newEditCmd(configPath *string) *cobra.Command {
	var (
		opts    fieldOpts
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the board in the terminal with the mouse",
		Long:  `Opens the configured board full-screen. Each terminal cell covers 8x16 field pixels. Press ? for key bindings and w to write the PNG.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd.Context(), *configPath, opts.output, logFile, func(cfg *config.Config) {
				opts.apply(cmd, cfg)
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&logFile, "log", "", "write logs to this file while the editor is open")

	return cmd
}

// editLogger returns the logger used while the terminal is in the alternate
// screen. Logs go to path, or nowhere when path is empty.
func editLogger(path string, level log.Level) (*log.Logger, func() error, error) {
	if path == "" {
		return log.New(io.Discard), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, level), f.Close, nil
}

func runEdit(ctx context.Context, configPath, output, logFile string, override func(*config.Config)) error {
	logger, closeLog, err := editLogger(logFile, loggerFromContext(ctx).GetLevel())
	if err != nil {
		return err
	}
	defer closeLog()
	ctx = withLogger(ctx, logger)

	cfg, opts, err := loadOptions(ctx, configPath, override)
	if err != nil {
		return err
	}

	return tui.Run(ctx, opts, tui.Settings{
		SavePath: cfg.GetSavePath(output),
		Logger:   logger,
	})
}
