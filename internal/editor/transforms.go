package editor

import (
	"fmt"
	"strings"

	"github.com/desertthunder/tfx/internal/models"
	"github.com/desertthunder/tfx/internal/projection"
	"github.com/desertthunder/tfx/internal/shared"
	"github.com/desertthunder/tfx/internal/validation"
)

// Strategy decides what an update does with fields the form did not carry.
type Strategy string

const (
	// Overwrite rebuilds the record from the input and defaults.
	Overwrite Strategy = "overwrite"
	// Fallback keeps the current record's value for every absent field.
	Fallback Strategy = "fallback"
)

// ParseStrategy maps a configuration value onto a [Strategy].
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case Overwrite:
		return Overwrite, nil
	case Fallback:
		return Fallback, nil
	default:
		return "", fmt.Errorf("%w: unknown update strategy %q", shared.ErrInvalidConfig, s)
	}
}

// Options tune the transforms.
type Options struct {
	PlaylistUpdate Strategy
	ScheduleUpdate Strategy
	UniqueNames    bool
}

func DefaultOptions() Options {
	return Options{PlaylistUpdate: Overwrite, ScheduleUpdate: Fallback, UniqueNames: true}
}

// OptionsFromConfig reads the [editor] section of the app configuration.
func OptionsFromConfig(cfg shared.EditorConfig) (Options, error) {
	opts := DefaultOptions()
	opts.UniqueNames = cfg.UniqueNames

	if cfg.PlaylistUpdate != "" {
		s, err := ParseStrategy(cfg.PlaylistUpdate)
		if err != nil {
			return opts, fmt.Errorf("playlist_update: %w", err)
		}
		opts.PlaylistUpdate = s
	}
	if cfg.ScheduleUpdate != "" {
		s, err := ParseStrategy(cfg.ScheduleUpdate)
		if err != nil {
			return opts, fmt.Errorf("schedule_update: %w", err)
		}
		opts.ScheduleUpdate = s
	}
	return opts, nil
}

// CreatePlaylist appends a playlist built from in on top of [models.DefaultPlaylist].
func CreatePlaylist(doc *models.ConfigDocument, in validation.PlaylistInput, opts Options) (*models.ConfigDocument, error) {
	out := doc.Clone()
	p := buildPlaylist(in, models.DefaultPlaylist())

	if opts.UniqueNames && out.PlaylistIndex(p.Name) >= 0 {
		return nil, &shared.DuplicateNameError{Name: p.Name}
	}

	out.Playlists = append(out.Playlists, p)
	return out, nil
}

// UpdatePlaylist replaces the playlist named identity at its current position.
func UpdatePlaylist(doc *models.ConfigDocument, identity string, in validation.PlaylistInput, strategy Strategy) (*models.ConfigDocument, error) {
	out := doc.Clone()
	idx := out.PlaylistIndex(identity)
	if idx < 0 {
		return nil, &shared.NotFoundError{Kind: "playlist", Identity: strings.TrimSpace(identity)}
	}

	base := models.DefaultPlaylist()
	if strategy == Fallback {
		base = out.Playlists[idx]
	}
	p := buildPlaylist(in, base)

	if other := out.PlaylistIndex(p.Name); other >= 0 && other != idx {
		return nil, &shared.DuplicateNameError{Name: p.Name}
	}

	out.Playlists[idx] = p
	return out, nil
}

// DeletePlaylistsAndSchedules removes every selected playlist along with its schedules, and
// every selected schedule. Each option is matched by its kind; separators are ignored.
func DeletePlaylistsAndSchedules(doc *models.ConfigDocument, selected []projection.PickerOption) (*models.ConfigDocument, error) {
	playlistWanted := make(map[string]bool)
	scheduleWanted := make(map[string]bool)
	for _, o := range selected {
		switch o.Kind {
		case projection.KindSeparator:
		case projection.KindPlaylist:
			playlistWanted[strings.TrimSpace(o.Value)] = true
		case projection.KindSchedule:
			scheduleWanted[strings.TrimSpace(o.Value)] = true
		default:
			return nil, fmt.Errorf("%w: unknown option kind %q", shared.ErrInvalidArgument, o.Kind)
		}
	}
	if len(playlistWanted) == 0 && len(scheduleWanted) == 0 {
		return nil, fmt.Errorf("%w: nothing selected", shared.ErrMissingArgument)
	}

	out := doc.Clone()
	removed := make(map[string]bool)
	playlists := make([]models.Playlist, 0, len(out.Playlists))
	for _, p := range out.Playlists {
		name := strings.TrimSpace(p.Name)
		if playlistWanted[name] {
			removed[name] = true
			continue
		}
		playlists = append(playlists, p)
	}

	schedules := make([]models.Schedule, 0, len(out.Schedules))
	for _, s := range out.Schedules {
		if removed[strings.TrimSpace(s.Name)] || scheduleWanted[s.Key()] {
			continue
		}
		schedules = append(schedules, s)
	}

	if len(playlists) == len(out.Playlists) && len(schedules) == len(out.Schedules) {
		values := make([]string, 0, len(selected))
		for _, o := range selected {
			values = append(values, o.Value)
		}
		return nil, &shared.NotFoundError{Kind: "selection", Identity: strings.Join(values, ", ")}
	}

	out.Playlists = playlists
	out.Schedules = schedules
	return out, nil
}

// CreateOrUpdateSchedule updates the schedule with existingKey, or appends a new schedule for owner
// when existingKey is empty.
//
// New schedules copy type, color and seekTo from the owning playlist, and its graphics when in has none.
// Passing an owner on update moves the schedule to that playlist.
func CreateOrUpdateSchedule(doc *models.ConfigDocument, owner, existingKey string, in validation.ScheduleInput, strategy Strategy) (*models.ConfigDocument, error) {
	out := doc.Clone()

	if existingKey == "" {
		p, err := findOwner(out, owner)
		if err != nil {
			return nil, err
		}
		s := applySchedule(in, newSchedule(p, out.NextScheduleNumber(), in.Graphics == nil))
		out.Schedules = append(out.Schedules, s)
		return out, nil
	}

	idx := out.ScheduleIndex(existingKey)
	if idx < 0 {
		return nil, &shared.NotFoundError{Kind: "schedule", Identity: existingKey}
	}
	current := out.Schedules[idx]

	moved := owner != "" && strings.TrimSpace(owner) != strings.TrimSpace(current.Name)
	var base models.Schedule
	switch {
	case strategy == Fallback && !moved:
		base = current
	case strategy == Fallback:
		p, err := findOwner(out, owner)
		if err != nil {
			return nil, err
		}
		base = current
		base.Name = strings.TrimSpace(p.Name)
		base.Type, base.Color, base.SeekTo = p.Type, p.Color, p.SeekTo
	default:
		name := current.Name
		if moved {
			name = owner
		}
		p, err := findOwner(out, name)
		if err != nil {
			return nil, err
		}
		base = newSchedule(p, current.Schedule, in.Graphics == nil)
	}

	out.Schedules[idx] = applySchedule(in, base)
	return out, nil
}

// DeleteAllSchedules empties the schedule list. Playlists are untouched.
func DeleteAllSchedules(doc *models.ConfigDocument) *models.ConfigDocument {
	out := doc.Clone()
	out.Schedules = []models.Schedule{}
	return out
}

// UpdateSettings merges the settings form into the document's global fields.
func UpdateSettings(doc *models.ConfigDocument, in validation.SettingsInput) *models.ConfigDocument {
	out := doc.Clone()
	s := out.Settings()
	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Version != nil {
		s.Version = strings.TrimSpace(*in.Version)
	}
	if in.Email != nil {
		s.Email = strings.TrimSpace(*in.Email)
	}
	if in.Wait != nil {
		s.Wait = *in.Wait
	}
	if in.AutomationDisabled != nil {
		s.AutomationDisabled = *in.AutomationDisabled
	}
	if in.NotificationsDisabled != nil {
		s.NotificationsDisabled = *in.NotificationsDisabled
	}
	out.ApplySettings(s)
	return out
}

func findOwner(doc *models.ConfigDocument, owner string) (models.Playlist, error) {
	idx := doc.PlaylistIndex(owner)
	if idx < 0 {
		return models.Playlist{}, &shared.NotFoundError{Kind: "playlist", Identity: strings.TrimSpace(owner)}
	}
	return doc.Playlists[idx], nil
}

func newSchedule(p models.Playlist, number int, inheritGraphics bool) models.Schedule {
	s := models.DefaultSchedule()
	s.Schedule = number
	s.Name = strings.TrimSpace(p.Name)
	s.Type = p.Type
	s.Color = p.Color
	s.SeekTo = p.SeekTo
	if inheritGraphics {
		s.Graphics = p.Graphics
		s.Graphics.LowerThirds = append([]models.LowerThird{}, p.Graphics.LowerThirds...)
	}
	return s
}

func applySchedule(in validation.ScheduleInput, s models.Schedule) models.Schedule {
	if in.Active != nil {
		s.Active = *in.Active
	}
	if in.Start != nil {
		s.Start = *in.Start
	}
	if in.Days != nil {
		s.Days = append([]int{}, in.Days...)
	}
	if in.Dates != nil {
		s.Dates = append([]string{}, in.Dates...)
	}
	if in.Color != nil {
		s.Color = strings.TrimSpace(*in.Color)
	}
	s.Graphics = applyGraphics(in.Graphics, s.Graphics)
	return s
}

func buildPlaylist(in validation.PlaylistInput, p models.Playlist) models.Playlist {
	p.Name = strings.TrimSpace(in.PlaylistName)
	p.Type = models.PlaylistType(strings.TrimSpace(string(in.Type)))
	p.URLOrFolder = strings.TrimSpace(in.URLOrFolder)

	if in.Active != nil {
		p.Active = *in.Active
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Color != nil {
		p.Color = strings.TrimSpace(*in.Color)
	}
	if in.UsingExternalStorage != nil {
		p.UsingExternalStorage = *in.UsingExternalStorage
	}
	if in.PlayingGeneralBumpers != nil {
		p.PlayingGeneralBumpers = *in.PlayingGeneralBumpers
	}
	if in.SpecialBumperFolder != nil {
		p.SpecialBumperFolder = strings.TrimSpace(*in.SpecialBumperFolder)
	}
	if in.Repeat != nil {
		p.Repeat = *in.Repeat
	}
	if in.EmptyReplacer != nil {
		n := *in.EmptyReplacer
		p.EmptyReplacer = &n
	}
	if in.SeekTo != nil {
		if in.SeekTo.Program != nil {
			p.SeekTo.Program = *in.SeekTo.Program
		}
		if in.SeekTo.Position != nil {
			p.SeekTo.Position = *in.SeekTo.Position
		}
	}
	p.Graphics = applyGraphics(in.Graphics, p.Graphics)
	return p
}

func applyGraphics(in *validation.GraphicsInput, g models.Graphics) models.Graphics {
	g.LowerThirds = append([]models.LowerThird{}, g.LowerThirds...)
	if in == nil {
		return g
	}

	if in.DisplayLogo != nil {
		g.DisplayLogo = *in.DisplayLogo
	}
	if in.DisplayLiveLogo != nil {
		g.DisplayLiveLogo = *in.DisplayLiveLogo
	}
	if in.DisplayRepeatWatermark != nil {
		g.DisplayRepeatWatermark = *in.DisplayRepeatWatermark
	}
	if in.LogoPosition != nil {
		g.LogoPosition = *in.LogoPosition
	}
	if in.News != nil {
		if in.News.NewsReplays != nil {
			g.News.Replays = *in.News.NewsReplays
		}
		if in.News.Speed != nil {
			g.News.Speed = *in.News.Speed
		}
		if in.News.Starts != nil {
			g.News.Starts = strings.TrimSpace(*in.News.Starts)
		}
		if in.News.Messages != nil {
			g.News.Messages = *in.News.Messages
		}
	}
	if in.LowerThirds != nil {
		g.LowerThirds = make([]models.LowerThird, len(in.LowerThirds))
		for i, row := range in.LowerThirds {
			g.LowerThirds[i] = models.LowerThird(row)
		}
	}
	return g
}
