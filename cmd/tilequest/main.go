// Tilequest is a top-down action RPG played in the terminal.
// Usage: tilequest [--version] [--plain] [--script <file>] [--trace] [<content_dir>]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nathoo/tilequest/cli"
	"github.com/nathoo/tilequest/config"
	"github.com/nathoo/tilequest/engine"
	"github.com/nathoo/tilequest/engine/world"
	"github.com/nathoo/tilequest/loader"
	"github.com/nathoo/tilequest/logging"
	"github.com/nathoo/tilequest/metrics"
	"github.com/nathoo/tilequest/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: tilequest [--version] [--plain] [--script <file>] [--trace] [<content_dir>]"

func main() {
	plain := false
	trace := false
	var contentDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("tilequest %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if contentDir != "" {
		cfg.Content = contentDir
	}

	useTUI := scriptFile == "" && !plain && isTerminal()
	log, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Quiet:  useTUI,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log, useTUI, scriptFile, trace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger, useTUI bool, scriptFile string, trace bool) error {
	defs, err := loader.Load(cfg.Content)
	if err != nil {
		return fmt.Errorf("loading game: %w", err)
	}

	eng := engine.New(defs, engine.Options{
		Maps:       world.DirSource{Dir: cfg.Content, CellSize: defs.Game.CellSize},
		Seed:       cfg.Seed,
		Logger:     log,
		SpawnRate:  cfg.SpawnRate,
		SpawnBurst: cfg.SpawnBurst,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rec *metrics.Recorder
	if cfg.MetricsAddr != "" {
		rec = metrics.NewRecorder()
		rec.Attach(eng)
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, rec, log); err != nil {
				log.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	if !useTUI {
		c := cli.New(eng, defs)
		c.Frame = cfg.Frame()
		c.Metrics = rec
		c.Trace = trace
		if scriptFile != "" {
			f, err := os.Open(scriptFile)
			if err != nil {
				return fmt.Errorf("opening script: %w", err)
			}
			defer f.Close()
			c.In = f
			c.EchoInput = true
		}
		c.Run()
		return nil
	}

	return tui.Run(eng, defs, tui.Options{Frame: cfg.Frame(), Metrics: rec})
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
