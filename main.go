package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life-board/utils"
)

const defaultConfigPath = "config.json"

// parseConfig loads the JSON config named by -config and applies any
// explicitly set flags on top of it
func parseConfig(args []string) (utils.Config, error) {
	fs := flag.NewFlagSet("go-life-board", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "path to a JSON config file")
	flagConfig := utils.DefaultConfig()
	flagConfig.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return flagConfig, err
	}

	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
		fmt.Printf("Using default configuration (%s not found)\n", *configPath)
		config = utils.DefaultConfig()
	}

	overrides := flag.NewFlagSet("overrides", flag.ContinueOnError)
	config.Bind(overrides)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" || setErr != nil {
			return
		}
		setErr = overrides.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return config, errors.Wrap(setErr, "[parseConfig] applying flags")
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrap(err, "[parseConfig] flags")
	}
	return config, nil
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	config, err := parseConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		logger.Error("invalid configuration", "err", err)
		return 2
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.Interactive {
		err = runInteractive(ctx, config, logger)
	} else {
		err = runTerminal(ctx, config, logger)
	}
	if err != nil {
		logger.Error("game failed", "err", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
