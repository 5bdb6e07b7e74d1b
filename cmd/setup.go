package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tfx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes config.toml from the embedded template when it is missing, then opens the
// configured store so SQLite migrations run and Redis is reachable.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = "config.toml"
	}

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.logger.Info("config file created", "path", configPath)
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return err
	}
	r.config = config

	r.logger.Info("preparing store", "backend", config.Store.Backend)
	if _, err := r.open(ctx); err != nil {
		return fmt.Errorf("failed to prepare store: %w", err)
	}

	r.writePlain("✓ Configuration: %s\n", configPath)
	switch config.Store.Backend {
	case "redis":
		r.writePlain("✓ Store: redis at %s (key %q)\n", config.Store.Redis.Addr, config.Store.Key)
	case "memory":
		r.writePlain("✓ Store: memory (nothing is kept between runs)\n")
	default:
		r.writePlain("✓ Store: sqlite at %s (key %q)\n", config.Store.SQLite.Path, config.Store.Key)
	}
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'tfx init' to store a default document, or 'tfx import config.json'\n")
	r.writePlain("2. Run 'tfx settings --name \"My Station\" --config-version 1.0' to fill in the settings\n")
	return nil
}

// Init stores a fresh default document. An existing document is only replaced with --force.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(ctx)
	if err != nil {
		return err
	}

	existing, err := e.Repository().Load(ctx)
	if err != nil {
		return err
	}
	if existing != nil && !cmd.Bool("force") {
		return fmt.Errorf("%w: a document already exists (last modified %s); use --force to replace it",
			shared.ErrInvalidArgument, existing.LastModified)
	}

	doc, err := e.Reset(ctx)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Stored a default document (%s)\n", doc.LastModified)
}
