// Package main is the entry point for the ropeview script runner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/ropeview/internal/app"
	"github.com/dshills/ropeview/internal/config"
	"github.com/dshills/ropeview/internal/engine/rope"
	"github.com/dshills/ropeview/internal/view"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	inline      string
	inputPath   string
	watch       bool
	logLevel    string
	showVersion bool
	scripts     []string
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 1
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "ropeview %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.SetOutput(stderr)

	var scripts []app.Script
	for _, path := range opts.scripts {
		scripts = append(scripts, app.FileScript(path))
	}
	if opts.inline != "" {
		scripts = append(scripts, app.InlineScript(opts.inline))
	}
	if len(scripts) == 0 {
		fmt.Fprintf(stderr, "Error: no scripts given (pass files or -e)\n")
		return 1
	}

	runOpts := []app.Option{app.WithLogger(logger), app.WithOutput(stdout)}
	if opts.inputPath != "" {
		input, err := loadInput(opts.inputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to read input: %v\n", err)
			return 1
		}
		runOpts = append(runOpts, app.WithInput(input))
	}

	runner, err := app.New(cfg, runOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		err = runner.WatchFiles(ctx, scripts)
	} else {
		err = runner.Run(ctx, scripts)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadInput reads path into a rope and wraps it in a view.
func loadInput(path string) (view.View, error) {
	f, err := os.Open(path)
	if err != nil {
		return view.View{}, err
	}
	defer f.Close()

	r, err := rope.FromReader(f)
	if err != nil {
		return view.View{}, fmt.Errorf("read %s: %w", path, err)
	}
	return view.New(r), nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("ropeview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.inline, "e", "", "Run an inline Lua chunk after the script files")
	fs.StringVar(&opts.inputPath, "input", "", "File loaded as a rope and bound to the Lua global 'input'")
	fs.StringVar(&opts.inputPath, "i", "", "Input file (shorthand)")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run scripts when their files change")
	fs.BoolVar(&opts.watch, "w", false, "Re-run scripts when their files change (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides config")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "ropeview - run Lua scripts against lazy rope views\n\n")
		fmt.Fprintf(stderr, "Usage: ropeview [options] [script.lua...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  ropeview script.lua                 Run a script\n")
		fmt.Fprintf(stderr, "  ropeview -w script.lua              Re-run on every save\n")
		fmt.Fprintf(stderr, "  ropeview -i notes.txt script.lua    Run a script over a file\n")
		fmt.Fprintf(stderr, "  ropeview -e 'print(require(\"text\")[\"rope-len-chars\"](require(\"text\")[\"string->rope\"](\"héllo\")))'\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.scripts = fs.Args()
	return opts, nil
}
