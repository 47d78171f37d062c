package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/splitpad/internal/cli"
	"github.com/mmynk/splitpad/internal/config"
	"github.com/mmynk/splitpad/internal/export"
	"github.com/mmynk/splitpad/internal/storage/backend"
	"github.com/mmynk/splitpad/pkg/logging"
)

func main() {
	// Root flags (apply to every subcommand)
	sheetID := flag.String("sheet", "", "sheet to work on (default: the shared sheet)")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Usage = func() { cli.PrintHelp(os.Stderr) }
	flag.Parse()

	cfg := config.Load()
	level := logging.ParseLevel(cfg.LogLevel)
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetupWithLevel(level)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store, _, err := backend.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open store:", err)
		os.Exit(1)
	}

	code := cli.Run(context.Background(), flag.Args(), cli.Options{
		Store:     store,
		SheetID:   *sheetID,
		Currency:  cfg.Currency,
		Defaults:  cfg.DefaultParticipants,
		Clipboard: export.SystemClipboard{},
	})
	store.Close()
	os.Exit(code)
}
