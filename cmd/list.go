package main

import (
	"context"

	"github.com/desertthunder/mixxport/internal/shared"
	"github.com/desertthunder/mixxport/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ListCrates prints crate names, one per line, and exits without exporting.
func (r *Runner) ListCrates(ctx context.Context, cmd *cli.Command) error {
	return r.listNames(cmd, (*tasks.ExportEngine).ListCrates)
}

// ListPlaylists prints visible playlist names, one per line, and exits
// without exporting.
func (r *Runner) ListPlaylists(ctx context.Context, cmd *cli.Command) error {
	return r.listNames(cmd, (*tasks.ExportEngine).ListPlaylists)
}

func (r *Runner) listNames(cmd *cli.Command, fetch func(*tasks.ExportEngine) ([]string, error)) error {
	config := r.loadConfig(cmd.String("config"))

	dbPath := cmd.String("database")
	if dbPath == "" {
		dbPath = config.Database.Path
	}
	if dbPath == "" {
		return shared.ErrMissingArgument
	}

	src, err := r.openSource(shared.ExpandHome(dbPath))
	if err != nil {
		return err
	}
	defer src.Close()

	names, err := fetch(tasks.NewExportEngine(src, r.logger))
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := r.writePlain("%s\n", name); err != nil {
			return err
		}
	}
	return nil
}

// Init writes the embedded example configuration to the config path.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.writePlain("Created %s\n", path)
	return nil
}
