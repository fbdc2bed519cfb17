package main

import (
	"flag"
	"os"

	"github.com/soocke/region-cropper-go/app"
	"github.com/soocke/region-cropper-go/config"
)

func main() {
	cfgPath := flag.String("config", "region-cropper.json", "path to the JSON config file")
	image := flag.String("image", "", "image to open at startup (overrides the last used path)")
	debugFlag := flag.Bool("debug", false, "enable runtime samplers and debug logging")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if *image != "" {
		cfg.LastImagePath = *image
	}

	logger := NewLogger(parseLevel(cfg.LogLevel), cfg.LogFormat)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	application, err := app.NewApp("Region Cropper", 900, 720, cfg, *cfgPath, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	application.Start()
}
