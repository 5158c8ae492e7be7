// Package main is bindtool, an offline editor for the keybindings file
// read by the input demo.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/midgard-input/internal/config"
	"github.com/Faultbox/midgard-input/internal/logger"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by every command.
type options struct {
	file  string
	debug bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "bindtool",
		Short: "Inspect and edit keybindings",
		Long: `bindtool edits the keybindings file used by the input demo without
starting it. Bindings missing from the file are shown with their defaults.

Examples:
  bindtool list                          # Show every binding
  bindtool list -c menu                  # Show one context
  bindtool set gameplay Jump primary J   # Bind J to Jump
  bindtool clear gameplay Fire --slot gamepad
  bindtool reset gameplay                # Restore defaults
  bindtool export -o bindings.json
  bindtool import bindings.json`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug {
				return logger.Setup(logger.Options{Level: "debug", Console: zapcore.Lock(os.Stderr)})
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", config.DefaultBindingsFile, "Keybindings file")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newListCmd(opts),
		newSetCmd(opts),
		newClearCmd(opts),
		newResetCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
	)
	return root
}
