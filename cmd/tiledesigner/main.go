package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tiledesigner/config"
	"github.com/milk9111/tiledesigner/design"
	"github.com/milk9111/tiledesigner/level"
	"github.com/milk9111/tiledesigner/logging"
	"github.com/milk9111/tiledesigner/render"
	"github.com/milk9111/tiledesigner/render/canvas"
)

func main() {
	configPath := flag.String("config", "", "Path to a yaml config merged over the defaults")
	levelPath := flag.String("level", "", "Level JSON to open; saves go back to this file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New(false, os.Stderr).Fatalf("Failed to load config: %v", err)
	}
	log := logging.New(*debug || cfg.Debug, os.Stdout)
	log.Info("Designer starting...")

	surface := render.NewSurface(cfg.Surface.Width, cfg.Surface.Height, cfg.Surface.Cell)
	if *levelPath != "" {
		lvl, err := level.Load(*levelPath)
		switch {
		case err == nil:
			surface = render.NewSurface(lvl.Width, lvl.Height, lvl.Cell)
			n := lvl.Apply(surface)
			log.WithField("placements", n).Infof("Loaded level %s", *levelPath)
		case errors.Is(err, fs.ErrNotExist):
			log.Infof("Level %s does not exist yet; it will be created on save", *levelPath)
		default:
			log.Fatalf("Failed to load level: %v", err)
		}
	}

	renderer := canvas.NewTextureRenderer(surface,
		canvas.WithCatalogPath(cfg.Tilesets),
		canvas.WithLogger(log),
	)
	designer := design.New(renderer, design.WithLogger(log))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = designer.Init(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialise renderer: %v", err)
	}

	game := NewGame(cfg, log, designer, renderer, *levelPath)
	defer game.Close()

	if cfg.Tilesets != "" {
		w, err := render.NewWatcher(filepath.Dir(cfg.Tilesets))
		if err != nil {
			log.Warnf("Tileset hot reload disabled: %v", err)
		} else {
			game.watcher = w
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if err := ebiten.RunGame(game); err != nil {
		log.Errorf("Designer exited: %v", err)
	}
}
