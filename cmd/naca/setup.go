package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/naca456/internal/engine"
	"github.com/samcharles93/naca456/internal/logger"
)

// setup loads the config file and installs the logger for one command.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, Config, logger.Logger) {
	cfg := LoadConfig()
	applyLoggingConfig(cmd, cfg)
	level := logLevel
	if debug {
		level = "debug"
	}
	log := logger.Setup(os.Stderr, level, logFormat)
	return logger.WithContext(ctx, log), cfg, log
}

func newEngine(cmd *cli.Command, cfg Config, log logger.Logger) (*engine.Engine, error) {
	applyEngineConfig(cmd, cfg)
	root, err := resolveRoot(rootDir)
	if err != nil {
		return nil, err
	}
	return engine.New(engine.Config{
		Root:       root,
		Executable: executable,
		Timeout:    timeout,
	}, log)
}
