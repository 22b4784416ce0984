package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-fraudgen/pkg/config"
	"github.com/dd0wney/cluso-fraudgen/pkg/logging"
	"github.com/dd0wney/cluso-fraudgen/pkg/pipeline"
	"github.com/dd0wney/cluso-fraudgen/pkg/report"
)

func main() {
	os.Exit(run())
}

func newFlagSet(configPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet("fraudgen", flag.ExitOnError)
	fs.StringVar(configPath, "config", "", "Path to a YAML config file overriding the built-in defaults")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: fraudgen [-config file]\n\n")
		fmt.Fprintf(fs.Output(), "Without -config the built-in defaults are used. The log level comes from\n")
		fmt.Fprintf(fs.Output(), "log_level in the config file, else $%s, else info.\n\n", logging.EnvLevel)
		fs.PrintDefaults()
	}
	return fs
}

func run() int {
	var configPath string
	_ = newFlagSet(&configPath).Parse(os.Args[1:])

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.New(os.Stderr, "").Error("failed to load config", logging.Error(err), logging.Path(configPath))
		return 1
	}

	logger := logging.New(os.Stderr, cfg.LogLevel).Named("fraudgen")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks, err := pipeline.OpenSinks(ctx, cfg)
	if err != nil {
		logger.Error("failed to open sinks", logging.Error(err))
		return 1
	}
	defer func() {
		if err := pipeline.CloseSinks(sinks); err != nil {
			logger.Warn("failed to close sinks", logging.Error(err))
		}
	}()

	res, err := pipeline.Run(ctx, cfg, pipeline.Deps{Sinks: sinks, Logger: logger})
	if err != nil {
		logger.Error("generation failed", logging.Error(err))
		return 1
	}

	fmt.Print(report.Render(res))
	return 0
}
