package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/resound-dev/resound/internal/config"
	"github.com/resound-dev/resound/internal/logger"
	"github.com/resound-dev/resound/internal/viewer"
)

var (
	flagWidth      int
	flagHeight     int
	flagFullscreen bool
	flagWatch      bool
)

var viewCmd = &cobra.Command{
	Use:   "view [model]",
	Short: "Open a model in the interactive viewer",
	Long: `Open a model file in the viewer window.

Drag to orbit, scroll to zoom, click a surface to highlight the whole
coplanar region, press X to flip the model, ESC to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().IntVar(&flagWidth, "width", 0, "window width")
	viewCmd.Flags().IntVar(&flagHeight, "height", 0, "window height")
	viewCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "start fullscreen")
	viewCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload the model when the file changes")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	applyFlags(cmd, cfg)

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("=== Resound ===", zap.String("model", args[0]))

	v, err := viewer.New(cfg, args[0])
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		return err
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return err
	}

	logger.Info("viewer closed normally")
	return nil
}

// applyFlags overlays explicitly set flags on the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Graphics.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Graphics.Height = flagHeight
	}
	if flags.Changed("fullscreen") {
		cfg.Graphics.Fullscreen = flagFullscreen
	}
	if flags.Changed("watch") {
		cfg.Viewer.WatchFile = flagWatch
	}
}
