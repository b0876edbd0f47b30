// Package main is the entry point for the aish shell.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/aish/internal/app"
	"github.com/dshills/aish/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, showVersion := parseFlags()

	if showVersion {
		fmt.Printf("aish %s (%s)\n", version, commit)
		return 0
	}

	shell, err := app.New(app.Options{Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "aish: failed to initialize: %v\n", err)
		return 1
	}
	defer shell.Close()

	if err := shell.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "aish: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (config.Config, bool) {
	cfg := config.FromEnv()
	var showVersion bool

	dataDir := flag.String("data-dir", cfg.DataDir, "Data directory for history, log, and plugins")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.AssistantName, "assistant-name", cfg.AssistantName, "Name the classifier treats as addressing the assistant")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "aish - assistant-augmented interactive shell\n\n")
		fmt.Fprintf(os.Stderr, "Usage: aish [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  AISH_DATA_DIR, AISH_HISTORY_PATH, AISH_PLUGIN_DIR,\n")
		fmt.Fprintf(os.Stderr, "  AISH_LOG_LEVEL, AISH_LOG_PATH, AISH_ASSISTANT_NAME\n")
	}
	flag.Parse()

	if *dataDir != cfg.DataDir {
		prev := cfg
		cfg.DataDir = *dataDir
		cfg.HistoryPath = filepath.Join(*dataDir, filepath.Base(prev.HistoryPath))
		cfg.PluginDir = filepath.Join(*dataDir, filepath.Base(prev.PluginDir))
		if prev.LogPath != "" {
			cfg.LogPath = filepath.Join(*dataDir, filepath.Base(prev.LogPath))
		}
	}

	return cfg, showVersion
}
