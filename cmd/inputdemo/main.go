// Package main is the entry point for the input demo: a window showing one
// indicator per action of the current bind context.
package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/config"
	"github.com/Faultbox/midgard-input/internal/game"
	"github.com/Faultbox/midgard-input/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.WriteRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("config written to", config.UserPath())
		return
	}

	logger.Info("=== Midgard Input Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		fatal(err)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		g.Close()
		fatal(err)
	}

	logger.Info("game closed normally")
}

// fatal shows err in a native message box, since the demo is usually
// started without a terminal, then exits.
func fatal(err error) {
	dialog.Message("%v", err).Title("Midgard Input").Error()
	logger.Sync()
	os.Exit(1)
}
