package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tfx/internal/formatter"
	"github.com/desertthunder/tfx/internal/shared"
	"github.com/desertthunder/tfx/internal/validation"
	"github.com/urfave/cli/v3"
)

// Settings merges the flags that were set into the global settings.
func (r *Runner) Settings(ctx context.Context, cmd *cli.Command) error {
	var in validation.SettingsInput
	if cmd.IsSet("name") {
		in.Name = ptr(cmd.String("name"))
	}
	if cmd.IsSet("config-version") {
		in.Version = ptr(cmd.String("config-version"))
	}
	if cmd.IsSet("email") {
		in.Email = ptr(cmd.String("email"))
	}
	if cmd.IsSet("wait") {
		in.Wait = ptr(cmd.Int("wait"))
	}
	if cmd.IsSet("automation") {
		in.AutomationDisabled = ptr(!cmd.Bool("automation"))
	}
	if cmd.IsSet("notifications") {
		in.NotificationsDisabled = ptr(!cmd.Bool("notifications"))
	}

	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	doc, changed, err := e.UpdateSettings(ctx, in)
	if err != nil {
		return err
	}
	if !changed {
		return r.writePlain("Settings unchanged\n")
	}
	return r.writePlain("✓ Settings saved (%s)\n", doc.LastModified)
}

// Show prints the document as a Markdown summary, or as JSON with --json.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	doc, err := e.Document(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(doc, true)
	}
	summary, err := formatter.ExportToMarkdown(doc)
	if err != nil {
		return err
	}
	return r.writePlain("%s", summary)
}

// Export writes config.json (or config.md / schedules.csv) into the export directory.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	dir := cmd.String("dir")
	if dir == "" {
		dir = r.config.Export.Directory
	}

	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	doc, err := e.Document(ctx)
	if err != nil {
		return err
	}

	if format == formatter.FormatJSON {
		if cmd.Bool("stdout") {
			return r.store.Export(r.output, doc)
		}
		path, err := r.store.ExportToFile(dir, doc)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported %s\n", path)
	}

	path, err := formatter.WriteExport(doc, format, dir)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Exported %s\n", path)
}

// Import replaces the stored document with the file given as the first argument.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path to a .json file", shared.ErrMissingArgument)
	}

	e, err := r.open(ctx)
	if err != nil {
		return err
	}

	var playlists, schedules int
	err = e.Lock(func() error {
		doc, err := r.store.ImportFile(ctx, path)
		if err != nil {
			return err
		}
		playlists, schedules = len(doc.Playlists), len(doc.Schedules)
		return nil
	})
	if err != nil {
		return err
	}
	return r.writePlain("✓ Imported %d playlist(s) and %d schedule(s) from %s\n", playlists, schedules, path)
}

// Clear removes the stored document.
func (r *Runner) Clear(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	if err := e.Clear(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Cleared the stored document\n")
}

func ptr[T any](v T) *T { return &v }
