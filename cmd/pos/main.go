package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/printshop-pos/internal/pricing"
	"github.com/zombor/printshop-pos/internal/receipt"
	"github.com/zombor/printshop-pos/internal/shell"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("pos")
	var (
		pricesPath  = fs.StringLong("prices", "config.ini", "Price table INI file path")
		receiptsDir = fs.StringLong("receipts", "receipts", "Directory receipts are written to")
		logLevel    = fs.StringLong("log-level", "warn", "Log level: debug, info, warn or error")
		_           = fs.StringLong("config", "", "Optional config file with one 'flag value' per line")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("PRINTSHOP_POS"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid log level %q\n", *logLevel)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Load pricing; a broken file leaves the defaults usable
	prices := pricing.NewTable(*pricesPath)
	slog.Info("Loading price config...", "path", prices.Path())
	if err := prices.Load(); err != nil {
		slog.Warn("Failed to load price config, using defaults", "path", prices.Path(), "error", err)
	}

	store := receipt.NewLocalStorage(*receiptsDir)
	service := receipt.NewService(prices, store)

	sh := shell.New(service, os.Stdout)
	sh.Prompt = "pos> "

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Printing Business POS %s (type 'help' for commands)\n", version)

	done := make(chan error, 1)
	go func() {
		done <- sh.Run(ctx, os.Stdin)
	}()

	select {
	case err := <-done:
		if err != nil {
			slog.Error("Shell error", "error", err)
			os.Exit(1)
		}
		// The shell has returned, so the service is no longer in use.
		if n := len(service.Transactions()); n > 0 {
			slog.Warn("Exiting with unsaved transactions", "count", n)
		}
	case <-ctx.Done():
		// A command may still be running against the service; leave it alone.
		fmt.Println()
	}

	slog.Info("Shutting down...")
}
