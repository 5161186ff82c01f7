package main

import (
	"context"

	"github.com/desertthunder/mixxport/internal/shared"
	"github.com/desertthunder/mixxport/internal/tasks"
	"github.com/desertthunder/mixxport/internal/ui"
	"github.com/urfave/cli/v3"
)

// overridesFrom collects the export-relevant flag values. IsSet distinguishes
// -p given with no names (use configured defaults) from -p absent entirely
// (crate mode).
func overridesFrom(cmd *cli.Command) shared.Overrides {
	return shared.Overrides{
		Database:      cmd.String("database"),
		Output:        cmd.String("output"),
		SortByBPM:     cmd.String("sort-by-bpm"),
		Playlists:     shared.SplitList(cmd.String("playlists")),
		PlaylistsSet:  cmd.IsSet("playlists"),
		ExcludeCrates: shared.SplitList(cmd.String("exclude-crates")),
		ExcludeSet:    cmd.IsSet("exclude-crates"),
	}
}

// Export runs the full Mixxx → rekordbox export pipeline.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	opts, err := shared.ResolveExport(config, overridesFrom(cmd))
	if err != nil {
		return err
	}

	r.logger.Info("starting export", "database", opts.DatabasePath, "output", opts.OutputPath)

	src, err := r.openSource(opts.DatabasePath)
	if err != nil {
		return err
	}
	defer src.Close()

	engine := tasks.NewExportEngine(src, r.logger)
	result, err := engine.Run(opts)
	if err != nil {
		return err
	}

	if !result.Written {
		r.writePlain("No tracks found.\n")
		return nil
	}

	r.writePlain("%s\n", ui.Default.Title.Render("Export complete"))
	r.writePlain("Tracks: %d\n", result.TrackCount)
	r.writePlain("Collections: %d\n", result.CollectionCount)
	r.writePlain("%s\n", ui.Default.OK.Render("Wrote "+result.OutputPath))
	return nil
}
