// Package main is the entry point for the showroom viewer.
//
// Usage:
//
//	showroom [flags] [car|plexus]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/app"
	"github.com/Faultbox/showroom/internal/assets"
	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/logger"
)

const windowTitle = "Showroom"

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fatal("Config error", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Showroom ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fatal("Config error", err)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return
	}

	page, err := pickPage(cfg, flag.Arg(0))
	if err != nil {
		fatal("Usage error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, windowTitle)
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		fatal("Startup failed", err)
	}
	defer a.Close()

	if err := a.Run(ctx, page); err != nil {
		logger.Error("app error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("showroom closed normally")
}

func pickPage(cfg *config.Config, name string) (app.Page, error) {
	switch name {
	case "", "car":
		cache := assets.NewCache(int64(cfg.Assets.CacheSizeMB) << 20)
		fetcher := assets.NewFetcher(cfg.Assets.AssetBase(), cache)
		return app.NewCarPage(cfg, fetcher), nil
	case "plexus":
		return app.NewPlexusPage(cfg), nil
	}
	return nil, fmt.Errorf("unknown page %q (want car or plexus)", name)
}

// fatal reports a bootstrap failure on stderr and in a native dialog.
func fatal(title string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
	dialog.Message("%v", err).Title(windowTitle + ": " + title).Error()
	logger.Sync()
	os.Exit(1)
}
