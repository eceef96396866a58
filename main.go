package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"wolfcast/internal/assets"
	"wolfcast/internal/config"
	"wolfcast/internal/game"
	"wolfcast/internal/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml or toml config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wolfcast: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(*debug || cfg.Logging.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wolfcast: logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	bundle, err := assets.Load(cfg, logger)
	if err != nil {
		logger.Fatal("failed to load assets", zap.Error(err))
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	ebiten.SetTPS(cfg.Display.TPS)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := game.New(cfg, bundle, logger)
	err = ebiten.RunGame(g)
	g.Shutdown()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game exited", zap.Error(err))
	}
	logger.Info("bye")
}
