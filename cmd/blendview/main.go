package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/blendview/blendview/internal/app"
	"github.com/blendview/blendview/internal/config"
)

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Printf("config: %v (using defaults)", err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app.New(cfg)); err != nil {
		log.Fatal(err)
	}
}
