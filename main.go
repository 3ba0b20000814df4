package main

import (
	"embed"
	"flag"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wailswindows "github.com/wailsapp/wails/v2/pkg/options/windows"
	"go.uber.org/zap"

	"github.com/ringotypowriter/ringotrack/internal/logging"
	"github.com/ringotypowriter/ringotrack/internal/policy"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default %APPDATA%\\ringotrack\\config.yaml)")
	flag.Parse()

	cfg, err := policy.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Logging())
	defer func() { _ = log.Sync() }()

	app := NewApp(cfg, log)

	err = wails.Run(&options.App{
		Title:  "ringotrack",
		Width:  1024,
		Height: 640,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 0},
		Windows: &wailswindows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		OnStartup:  app.startup,
		OnDomReady: app.domReady,
		OnShutdown: app.shutdown,
		Bind:       []interface{}{app},
	})
	if err != nil {
		log.Error("application exited with error", zap.Error(err))
		os.Exit(1)
	}
}
