package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hapticglove/host/config"
	"hapticglove/host/glove"
	"hapticglove/host/serial"
)

var (
	// Global flags
	configPath string
	leftPort   string
	rightPort  string
	verbose    bool
	dryRun     bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "glove-host",
	Short: "Glove Host - haptic glove feedback driver",
	Long: `glove-host sends finger pulses to a pair of haptic glove controllers
over their serial links.

Each pulse is one 8-byte frame. Pulses arriving while the same finger is
still playing are dropped.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		if leftPort != "" {
			cfg.LeftPort = leftPort
		}
		if rightPort != "" {
			cfg.RightPort = rightPort
		}

		logger, err = cfg.BuildLogger(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "glove.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&leftPort, "left", "", "Left hand port (device path or COM number)")
	rootCmd.PersistentFlags().StringVar(&rightPort, "right", "", "Right hand port (device path or COM number)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print frames instead of opening serial ports")

	rootCmd.AddCommand(portsCmd, pulseCmd, shellCmd)
}

// newController builds a controller from the loaded config
func newController(cmd *cobra.Command) *glove.Controller {
	opener := glove.SerialOpener(cfg.SerialConfig(), serial.Open)
	if dryRun {
		opener = dumpOpener(cmd.OutOrStdout())
	}

	return glove.New(
		glove.WithLogger(logger),
		glove.WithOpener(opener),
	)
}

// startController initializes a controller on the configured ports
func startController(cmd *cobra.Command) (*glove.Controller, error) {
	if cfg.LeftPort == "" || cfg.RightPort == "" {
		return nil, fmt.Errorf("both --left and --right ports are required")
	}

	ctrl := newController(cmd)
	report, err := ctrl.Initialize(cfg.LeftPort, cfg.RightPort)
	if err != nil {
		return nil, err
	}

	if !report.OK() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: not every glove port opened, see log for details")
	}

	return ctrl, nil
}

// closeController releases the glove ports, logging any port that fails to close
func closeController(ctrl *glove.Controller, log *zap.Logger) {
	if err := ctrl.Close(); err != nil {
		log.Warn("Failed to close glove ports", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
