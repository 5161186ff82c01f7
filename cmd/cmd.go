// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// exportCommand converts the Mixxx library into a rekordbox XML file
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export crates or playlists to rekordbox XML",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "database",
				Aliases: []string{"d"},
				Usage:   "Path to the Mixxx library database",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output XML path",
			},
			&cli.StringFlag{
				Name:    "playlists",
				Aliases: []string{"p"},
				Usage:   "Comma-separated playlists to export; empty value selects the configured defaults",
			},
			&cli.StringFlag{
				Name:    "exclude-crates",
				Aliases: []string{"e"},
				Usage:   "Comma-separated crates to skip in crate mode",
			},
			&cli.StringFlag{
				Name:  "sort-by-bpm",
				Usage: "Order exported tracks by BPM: asc or desc",
			},
		},
		Action: r.Export,
	}
}

// listCommand enumerates collection names without exporting anything
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List collections in the Mixxx library",
		Commands: []*cli.Command{
			{
				Name:  "crates",
				Usage: "List crate names, one per line",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "database",
						Aliases: []string{"d"},
						Usage:   "Path to the Mixxx library database",
					},
				},
				Action: r.ListCrates,
			},
			{
				Name:  "playlists",
				Usage: "List playlist names, one per line",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "database",
						Aliases: []string{"d"},
						Usage:   "Path to the Mixxx library database",
					},
				},
				Action: r.ListPlaylists,
			},
		},
	}
}

// initCommand writes a starter config file
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage:  "Create a config.toml with documented defaults",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Init,
	}
}
