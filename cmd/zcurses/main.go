// Package main is the entry point for the zcurses script runner.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	xterm "golang.org/x/term"

	"github.com/Syphdias/zcurses/internal/config"
	"github.com/Syphdias/zcurses/internal/host"
	"github.com/Syphdias/zcurses/internal/term"
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
	opts := parseFlags()

	script := flag.Arg(0)
	if script == "" {
		fmt.Fprintln(os.Stderr, "Error: no script given")
		flag.Usage()
		return 2
	}

	if !xterm.IsTerminal(int(os.Stdin.Fd())) || !xterm.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: zcurses requires a terminal")
		return 1
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, logClose, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logClose()

	dev, err := term.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}

	h := host.New(dev, logger)

	// Restore the terminal on interruption so the shell is usable.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		h.Close()
		os.Exit(1)
	}()

	runErr := h.Run(script)

	// Tear the display down before touching stderr.
	h.Close()

	if runErr != nil {
		logger.Error().Err(runErr).Msg("script failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}
	return 0
}

// openLogger builds the zerolog sink. Without a configured file all
// logging is discarded; the terminal belongs to the display session.
func openLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	lvl, err := cfg.Log.ZerologLevel()
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	if cfg.Log.File == "" {
		return zerolog.Nop(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("opening log file: %w", err)
	}
	logger := zerolog.New(f).With().Timestamp().Logger().Level(lvl)
	return logger, func() { _ = f.Close() }, nil
}

type options struct {
	configPath string
	logLevel   string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "zcurses - scriptable terminal windowing\n\n")
		fmt.Fprintf(os.Stderr, "Usage: zcurses [options] script.lua\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("zcurses %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
