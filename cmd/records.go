package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/tfx/internal/editor"
	"github.com/desertthunder/tfx/internal/formatter"
	"github.com/desertthunder/tfx/internal/models"
	"github.com/desertthunder/tfx/internal/projection"
	"github.com/desertthunder/tfx/internal/shared"
	"github.com/desertthunder/tfx/internal/validation"
	"github.com/urfave/cli/v3"
)

// readForm decodes the --from file (or stdin for "-") into v. Without --from, v is left as is.
func (r *Runner) readForm(cmd *cli.Command, v any) error {
	path := cmd.String("from")
	if path == "" {
		return nil
	}

	var src io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
		}
		defer f.Close()
		src = f
	}

	if err := json.NewDecoder(src).Decode(v); err != nil {
		return &shared.ParseError{Source: path, Err: err}
	}
	return nil
}

// playlistInput overlays the playlist flags that were set onto base.
func (r *Runner) playlistInput(cmd *cli.Command, base validation.PlaylistInput) (validation.PlaylistInput, error) {
	in := base
	if err := r.readForm(cmd, &in); err != nil {
		return in, err
	}

	if cmd.IsSet("name") {
		in.PlaylistName = cmd.String("name")
	}
	if cmd.IsSet("type") {
		in.Type = models.PlaylistType(strings.ToUpper(cmd.String("type")))
	}
	if cmd.IsSet("url") {
		in.URLOrFolder = cmd.String("url")
	}
	if cmd.IsSet("description") {
		in.Description = ptr(cmd.String("description"))
	}
	if cmd.IsSet("color") {
		in.Color = ptr(cmd.String("color"))
	}
	if cmd.IsSet("active") {
		in.Active = ptr(cmd.Bool("active"))
	}
	if cmd.IsSet("external-storage") {
		in.UsingExternalStorage = ptr(cmd.Bool("external-storage"))
	}
	if cmd.IsSet("general-bumpers") {
		in.PlayingGeneralBumpers = ptr(cmd.Bool("general-bumpers"))
	}
	if cmd.IsSet("bumper-folder") {
		in.SpecialBumperFolder = ptr(cmd.String("bumper-folder"))
	}
	if cmd.IsSet("repeat") {
		in.Repeat = ptr(models.RepeatType(strings.ToUpper(cmd.String("repeat"))))
	}
	if cmd.IsSet("empty-replacer") {
		in.EmptyReplacer = ptr(cmd.Int("empty-replacer"))
	}
	if cmd.IsSet("seek-program") || cmd.IsSet("seek-position") {
		seek := validation.SeekToInput{}
		if in.SeekTo != nil {
			seek = *in.SeekTo
		}
		if cmd.IsSet("seek-program") {
			seek.Program = ptr(cmd.Int("seek-program"))
		}
		if cmd.IsSet("seek-position") {
			seek.Position = ptr(cmd.Int("seek-position"))
		}
		in.SeekTo = &seek
	}
	return in, nil
}

// scheduleInput overlays the schedule flags that were set onto base.
func (r *Runner) scheduleInput(cmd *cli.Command, base validation.ScheduleInput) (validation.ScheduleInput, error) {
	in := base
	if err := r.readForm(cmd, &in); err != nil {
		return in, err
	}

	if cmd.IsSet("start") {
		in.Start = ptr(cmd.String("start"))
	}
	if cmd.IsSet("days") {
		days, err := parseDays(cmd.String("days"))
		if err != nil {
			return in, err
		}
		in.Days = days
	}
	if cmd.IsSet("dates") {
		in.Dates = splitList(cmd.String("dates"))
	}
	if cmd.IsSet("color") {
		in.Color = ptr(cmd.String("color"))
	}
	if cmd.IsSet("active") {
		in.Active = ptr(cmd.Bool("active"))
	}
	return in, nil
}

// splitList splits a comma-separated flag, dropping blanks. An empty flag yields an empty, non-nil list.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDays(s string) ([]int, error) {
	parts := splitList(s)
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: --days %q is not a list of weekday codes", shared.ErrInvalidFlag, s)
		}
		days = append(days, d)
	}
	return days, nil
}

// PlaylistCreate adds a playlist built from the default form and the given flags.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	base := validation.PlaylistInputFrom(models.DefaultPlaylist())
	in, err := r.playlistInput(cmd, base)
	if err != nil {
		return err
	}

	e, err := r.open(ctx)
	if err != nil {
		return err
	}

	session := editor.NewSession("playlist", r.logger)
	err = session.Submit(func(string) (string, error) {
		if _, err := e.CreatePlaylist(ctx, in); err != nil {
			return "", err
		}
		return strings.TrimSpace(in.PlaylistName), nil
	})
	if err != nil {
		return err
	}
	return r.writePlain("✓ Created playlist %q\n", session.Selected())
}

// PlaylistUpdate loads the playlist named by the first argument into the form, applies the flags and saves it.
func (r *Runner) PlaylistUpdate(ctx context.Context, cmd *cli.Command) error {
	identity := cmd.StringArg("identity")
	if strings.TrimSpace(identity) == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	doc, err := e.Document(ctx)
	if err != nil {
		return err
	}
	idx := doc.PlaylistIndex(identity)
	if idx < 0 {
		return &shared.NotFoundError{Kind: "playlist", Identity: strings.TrimSpace(identity)}
	}

	in, err := r.playlistInput(cmd, validation.PlaylistInputFrom(doc.Playlists[idx]))
	if err != nil {
		return err
	}

	session := editor.NewSession("playlist", r.logger)
	if err := session.Select(strings.TrimSpace(identity)); err != nil {
		return err
	}
	err = session.Submit(func(selected string) (string, error) {
		if _, err := e.UpdatePlaylist(ctx, selected, in); err != nil {
			return "", err
		}
		return strings.TrimSpace(in.PlaylistName), nil
	})
	if err != nil {
		return err
	}
	return r.writePlain("✓ Updated playlist %q\n", session.Selected())
}

// PlaylistList prints the playlist options.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	doc, err := e.Document(ctx)
	if err != nil {
		return err
	}

	opts := projection.FilteredPlaylists(doc, cmd.Bool("detail"), !cmd.Bool("all"))
	if len(opts) == 0 {
		return r.writePlain("No playlists\n")
	}
	return r.writePlain("%s\n", formatter.PlaylistTable(opts, r.plain(cmd)))
}

// PlaylistTypes describes each playlist type and the fields it uses.
func (r *Runner) PlaylistTypes(ctx context.Context, cmd *cli.Command) error {
	return r.writePlain("%s\n", formatter.PlaylistTypesTable(r.plain(cmd)))
}

// ScheduleCreate schedules the playlist given with --playlist.
func (r *Runner) ScheduleCreate(ctx context.Context, cmd *cli.Command) error {
	owner := cmd.String("playlist")
	if strings.TrimSpace(owner) == "" {
		return fmt.Errorf("%w: --playlist", shared.ErrMissingArgument)
	}
	in, err := r.scheduleInput(cmd, validation.ScheduleInput{})
	if err != nil {
		return err
	}

	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	doc, err := e.SaveSchedule(ctx, owner, "", in)
	if err != nil {
		return err
	}

	created := doc.Schedules[len(doc.Schedules)-1]
	return r.writePlain("✓ Created schedule %s (%s)\n", created.Key(), formatter.Occurrence(created))
}

// ScheduleUpdate updates the schedule whose key is the first argument.
func (r *Runner) ScheduleUpdate(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: schedule key", shared.ErrMissingArgument)
	}
	in, err := r.scheduleInput(cmd, validation.ScheduleInput{})
	if err != nil {
		return err
	}

	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	doc, err := e.SaveSchedule(ctx, cmd.String("playlist"), key, in)
	if err != nil {
		return err
	}

	for _, s := range doc.Schedules {
		if strings.HasSuffix(key, " "+strconv.Itoa(s.Schedule)) {
			return r.writePlain("✓ Updated schedule %s (%s)\n", s.Key(), formatter.Occurrence(s))
		}
	}
	return r.writePlain("✓ Updated schedule\n")
}

// ScheduleList prints the schedule options with their keys.
func (r *Runner) ScheduleList(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	doc, err := e.Document(ctx)
	if err != nil {
		return err
	}

	opts := projection.FilteredSchedules(doc, cmd.Bool("detail"), !cmd.Bool("all"))
	if len(opts) == 0 {
		return r.writePlain("No schedules\n")
	}
	return r.writePlain("%s\n", formatter.ScheduleTable(opts, r.plain(cmd)))
}

// ScheduleClear deletes every schedule.
func (r *Runner) ScheduleClear(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	if _, err := e.DeleteAllSchedules(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted all schedules\n")
}

// Delete removes the playlists named with --playlist, with their schedules, and the schedules keyed with --schedule.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	var selected []projection.PickerOption
	for _, name := range cmd.StringSlice("playlist") {
		selected = append(selected, projection.PlaylistSelection(name))
	}
	for _, key := range cmd.StringSlice("schedule") {
		selected = append(selected, projection.ScheduleSelection(key))
	}
	if len(selected) == 0 {
		return fmt.Errorf("%w: at least one --playlist or --schedule", shared.ErrMissingArgument)
	}

	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	before, err := e.Document(ctx)
	if err != nil {
		return err
	}
	after, err := e.Delete(ctx, selected)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Deleted %d playlist(s) and %d schedule(s)\n",
		len(before.Playlists)-len(after.Playlists), len(before.Schedules)-len(after.Schedules))
}

// Options prints the delete picker, separators included.
func (r *Runner) Options(ctx context.Context, cmd *cli.Command) error {
	e, err := r.open(ctx)
	if err != nil {
		return err
	}
	doc, err := e.Document(ctx)
	if err != nil {
		return err
	}

	opts := projection.Picker(doc, cmd.Bool("detail"), !cmd.Bool("all"))
	if cmd.Bool("json") {
		return r.writeJSON(opts, true)
	}
	return r.writePlain("%s\n", formatter.PickerTable(opts, r.plain(cmd)))
}
