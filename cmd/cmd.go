// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// Flags carry parse state, so every command gets its own instances.

func plainFlag() cli.Flag {
	return &cli.BoolFlag{Name: "plain", Usage: "Print tab-separated values instead of a table"}
}

func detailFlag() cli.Flag {
	return &cli.BoolFlag{Name: "detail", Aliases: []string{"d"}, Usage: "Label options with status and ordinal"}
}

func allFlag() cli.Flag {
	return &cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Include inactive records"}
}

func fromFlag() cli.Flag {
	return &cli.StringFlag{Name: "from", Usage: "Read the form as JSON from a file (- for stdin); flags override its fields"}
}

// playlistFlags are the playlist form fields. The name flag is added per command.
func playlistFlags() []cli.Flag {
	return []cli.Flag{
		fromFlag(),
		&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Playlist type (ONLINE, LOCAL_SEQUENCED, LOCAL_RANDOMIZED, LOCAL_RESUMING, LOCAL_RESUMING_SAME, LOCAL_RESUMING_NEXT, LOCAL_RESUMING_ONE)"},
		&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Stream URL, or #-separated folders for local types"},
		&cli.StringFlag{Name: "description", Usage: "Free-text description"},
		&cli.StringFlag{Name: "color", Usage: "Palette colour, e.g. #3c9ddd"},
		&cli.BoolFlag{Name: "active", Usage: "Whether the playlist is active", Value: true},
		&cli.BoolFlag{Name: "external-storage", Usage: "Read local folders from external storage"},
		&cli.BoolFlag{Name: "general-bumpers", Usage: "Play general bumpers between programs", Value: true},
		&cli.StringFlag{Name: "bumper-folder", Usage: "Special bumper folder"},
		&cli.StringFlag{Name: "repeat", Usage: "Resuming period for LOCAL_RESUMING_ONE (DAILY, WEEKLY, MONTHLY, QUARTERLY, ANNUALLY)"},
		&cli.IntFlag{Name: "empty-replacer", Usage: "Index of the playlist that replaces this one when empty"},
		&cli.IntFlag{Name: "seek-program", Usage: "Program to resume at"},
		&cli.IntFlag{Name: "seek-position", Usage: "Position to resume at, in milliseconds"},
	}
}

// scheduleFlags are the schedule form fields.
func scheduleFlags() []cli.Flag {
	return []cli.Flag{
		fromFlag(),
		&cli.StringFlag{Name: "playlist", Aliases: []string{"p"}, Usage: "Owning playlist name"},
		&cli.StringFlag{Name: "start", Aliases: []string{"s"}, Usage: "Start time on the half hour, e.g. 08:30"},
		&cli.StringFlag{Name: "days", Usage: "Comma-separated weekday codes, 1 (Sunday) to 7 (Saturday)"},
		&cli.StringFlag{Name: "dates", Usage: "Comma-separated dates (YYYY-MM-DD); overrides days"},
		&cli.StringFlag{Name: "color", Usage: "Palette colour, e.g. #3c9ddd"},
		&cli.BoolFlag{Name: "active", Usage: "Whether the schedule is active", Value: true},
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Write config.toml if missing and prepare the configured store",
		Action: r.Setup,
	}
}

func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Store a fresh default document",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Replace an existing document"},
		},
		Action: r.Init,
	}
}

func settingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Update the global settings; unset flags keep their values",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Configuration name"},
			&cli.StringFlag{Name: "config-version", Usage: "Configuration version"},
			&cli.StringFlag{Name: "email", Usage: "Contact email"},
			&cli.IntFlag{Name: "wait", Usage: "Seconds to wait before playout starts"},
			&cli.BoolFlag{Name: "automation", Usage: "Enable automation"},
			&cli.BoolFlag{Name: "notifications", Usage: "Enable notifications"},
		},
		Action: r.Settings,
	}
}

func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the stored document",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		},
		Action: r.Show,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the document to config.json (or config.md, schedules.csv)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format: json, md, or csv", Value: "json"},
			&cli.StringFlag{Name: "dir", Usage: "Output directory (default: [export] directory)"},
			&cli.BoolFlag{Name: "stdout", Usage: "Write JSON to standard output instead of a file"},
		},
		Action: r.Export,
	}
}

func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Replace the stored document with a .json file",
		ArgsUsage: "<config.json>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Action: r.Import,
	}
}

func clearCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "clear",
		Usage:  "Remove the stored document",
		Action: r.Clear,
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlist",
		Usage: "Create, update and list playlists",
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Add a playlist",
				Flags:  append([]cli.Flag{&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Playlist name"}}, playlistFlags()...),
				Action: r.PlaylistCreate,
			},
			{
				Name:      "update",
				Usage:     "Update the playlist currently named <name>",
				ArgsUsage: "<name>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "identity"},
				},
				Flags:  append([]cli.Flag{&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New playlist name"}}, playlistFlags()...),
				Action: r.PlaylistUpdate,
			},
			{
				Name:   "list",
				Usage:  "List playlists",
				Flags:  []cli.Flag{detailFlag(), allFlag(), plainFlag()},
				Action: r.PlaylistList,
			},
			{
				Name:   "types",
				Usage:  "Describe the playlist types",
				Flags:  []cli.Flag{plainFlag()},
				Action: r.PlaylistTypes,
			},
		},
	}
}

func scheduleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Create, update, list and clear schedules",
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Schedule a playlist",
				Flags:  scheduleFlags(),
				Action: r.ScheduleCreate,
			},
			{
				Name:      "update",
				Usage:     "Update the schedule with key <key> (see schedule list)",
				ArgsUsage: "<key>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
				},
				Flags:  scheduleFlags(),
				Action: r.ScheduleUpdate,
			},
			{
				Name:   "list",
				Usage:  "List schedules",
				Flags:  []cli.Flag{detailFlag(), allFlag(), plainFlag()},
				Action: r.ScheduleList,
			},
			{
				Name:   "clear",
				Usage:  "Delete every schedule",
				Action: r.ScheduleClear,
			},
		},
	}
}

func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete playlists (with their schedules) and schedules",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "playlist", Aliases: []string{"p"}, Usage: "Playlist name; repeat for more"},
			&cli.StringSliceFlag{Name: "schedule", Aliases: []string{"s"}, Usage: "Schedule key (see schedule list); repeat for more"},
		},
		Action: r.Delete,
	}
}

func optionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "options",
		Usage: "Print the delete picker options",
		Flags: []cli.Flag{
			detailFlag(), allFlag(), plainFlag(),
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		},
		Action: r.Options,
	}
}

// tuiCommand returns the top-level TUI command for interactive deletion.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive delete picker",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-file", Usage: "Where TUI logs are written", Value: "./tmp/tfx-tui.log"},
		},
		Action: r.TUI,
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the editor over HTTP on localhost",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "Listen host (default: [server] host)"},
			&cli.IntFlag{Name: "port", Usage: "Listen port (default: [server] port)"},
			&cli.BoolFlag{Name: "open", Usage: "Open the config.json download in a browser"},
		},
		Action: r.Serve,
	}
}
