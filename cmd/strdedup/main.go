// Package main is the entry point for the strdedup CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/caarlos0/env/v11"

	"github.com/leeovery/strdedup/internal/cli"
)

// Overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	app := &cli.App{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Dir:     ".",
		Env:     env.ToMap(os.Environ()),
		Version: version,
	}

	if wd, err := os.Getwd(); err == nil {
		app.Dir = wd
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := app.Run(ctx, os.Args)
	stop()
	os.Exit(code)
}
