// package models defines the configuration document for the Telefyna player
package models

import (
	"strconv"
	"strings"
)

// ConfigDocument is the root of the persisted configuration, one per deployment.
type ConfigDocument struct {
	Name                  string     `json:"name"`
	Version               string     `json:"version"`
	LastModified          string     `json:"lastModified,omitempty"`
	Email                 string     `json:"email,omitempty"`
	AutomationDisabled    bool       `json:"automationDisabled"`
	NotificationsDisabled bool       `json:"notificationsDisabled"`
	Wait                  int        `json:"wait"`
	Alerts                *Alerts    `json:"alerts,omitempty"`
	Playlists             []Playlist `json:"playlists"`
	Schedules             []Schedule `json:"schedules"`
}

// Settings are the global fields edited by the onboarding form.
type Settings struct {
	Name                  string `json:"name"`
	Version               string `json:"version"`
	Email                 string `json:"email"`
	Wait                  int    `json:"wait"`
	AutomationDisabled    bool   `json:"automationDisabled"`
	NotificationsDisabled bool   `json:"notificationsDisabled"`
}

// Settings returns the document's global fields.
func (d *ConfigDocument) Settings() Settings {
	return Settings{
		Name:                  d.Name,
		Version:               d.Version,
		Email:                 d.Email,
		Wait:                  d.Wait,
		AutomationDisabled:    d.AutomationDisabled,
		NotificationsDisabled: d.NotificationsDisabled,
	}
}

// ApplySettings overwrites the document's global fields.
func (d *ConfigDocument) ApplySettings(s Settings) {
	d.Name = s.Name
	d.Version = s.Version
	d.Email = s.Email
	d.Wait = s.Wait
	d.AutomationDisabled = s.AutomationDisabled
	d.NotificationsDisabled = s.NotificationsDisabled
}

// Alerts configures the player's mailer.
type Alerts struct {
	Enabled     bool     `json:"enabled"`
	Mailer      Mailer   `json:"mailer"`
	Subscribers []string `json:"subscribers"`
}

type Mailer struct {
	Host  string `json:"host"`
	Port  int    `json:"port"`
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

// SeekTo is the resume point of a resuming playlist.
type SeekTo struct {
	Program  int `json:"program"`
	Position int `json:"position"` // milliseconds
}

// News is the ticker shown over a playlist or schedule.
type News struct {
	Replays  int       `json:"replays"`
	Speed    SpeedType `json:"speed"`
	Starts   string    `json:"starts"`   // #-delimited minutes after start
	Messages string    `json:"messages"` // #-delimited messages
}

// LowerThird is one row of the lower-thirds table.
type LowerThird struct {
	Replays int    `json:"replays"`
	File    string `json:"file"`
	Starts  string `json:"starts"`
}

// Graphics holds overlay settings shared by playlists and schedules.
type Graphics struct {
	DisplayLogo            bool         `json:"displayLogo"`
	LogoPosition           LogoPosition `json:"logoPosition"`
	News                   News         `json:"news"`
	LowerThirds            []LowerThird `json:"lowerThirds"`
	DisplayLiveLogo        bool         `json:"displayLiveLogo"`
	DisplayRepeatWatermark bool         `json:"displayRepeatWatermark"`
}

// SelectedLogo reports which logo the selector shows: displayLogo, displayLiveLogo or none.
func (g Graphics) SelectedLogo() LogoChoice {
	switch {
	case g.DisplayLogo:
		return LogoStandard
	case g.DisplayLiveLogo:
		return LogoLive
	default:
		return LogoNone
	}
}

// SelectLogo sets the logo flags from a selector choice so that at most one of them is true.
func (g *Graphics) SelectLogo(choice LogoChoice) {
	g.DisplayLogo = choice == LogoStandard
	g.DisplayLiveLogo = choice == LogoLive
}

// Playlist is a named, typed source of program content.
type Playlist struct {
	Active                bool         `json:"active"`
	Type                  PlaylistType `json:"type"`
	UsingExternalStorage  bool         `json:"usingExternalStorage"`
	SeekTo                SeekTo       `json:"seekTo"`
	Graphics              Graphics     `json:"graphics"`
	Name                  string       `json:"name"`
	Description           string       `json:"description,omitempty"`
	URLOrFolder           string       `json:"urlOrFolder"`
	Color                 string       `json:"color"`
	PlayingGeneralBumpers bool         `json:"playingGeneralBumpers"`
	SpecialBumperFolder   string       `json:"specialBumperFolder"`
	Repeat                RepeatType   `json:"repeat,omitempty"`
	EmptyReplacer         *int         `json:"emptyReplacer"`
}

// Folders splits a local playlist's urlOrFolder into its folder names.
func (p Playlist) Folders() []string {
	if p.Type.IsOnline() {
		return nil
	}
	var out []string
	for _, f := range strings.Split(p.URLOrFolder, "#") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Schedule binds a playlist's content and graphics overrides to airing windows.
type Schedule struct {
	Schedule int          `json:"schedule"`
	Start    string       `json:"start"`
	Days     []int        `json:"days"`
	Dates    []string     `json:"dates,omitempty"`
	Name     string       `json:"name"`
	Color    string       `json:"color"`
	Active   bool         `json:"active"`
	Type     PlaylistType `json:"type"`
	SeekTo   SeekTo       `json:"seekTo"`
	Graphics Graphics     `json:"graphics"`
}

// Key is the composite identity "<name> <start> <schedule>" used by pickers and deletion.
func (s Schedule) Key() string {
	return ScheduleKey(s.Name, s.Start, s.Schedule)
}

// IsDaily reports a schedule with a start time but neither days nor dates.
func (s Schedule) IsDaily() bool {
	return len(s.Days) == 0 && len(s.Dates) == 0 && s.Start != ""
}

// UsesDates reports whether explicit dates take precedence over weekdays.
func (s Schedule) UsesDates() bool {
	return len(s.Dates) > 0
}

// ScheduleKey formats a schedule identity from its parts.
func ScheduleKey(name, start string, schedule int) string {
	return strings.TrimSpace(name) + " " + start + " " + strconv.Itoa(schedule)
}

// PlaylistIndex returns the index of the playlist whose trimmed name equals name, or -1.
func (d *ConfigDocument) PlaylistIndex(name string) int {
	name = strings.TrimSpace(name)
	for i, p := range d.Playlists {
		if strings.TrimSpace(p.Name) == name {
			return i
		}
	}
	return -1
}

// ScheduleIndex returns the index of the schedule with the given composite key, or -1.
func (d *ConfigDocument) ScheduleIndex(key string) int {
	for i, s := range d.Schedules {
		if s.Key() == key {
			return i
		}
	}
	return -1
}

// NextScheduleNumber returns one more than the highest schedule disambiguator in use, starting at 1.
func (d *ConfigDocument) NextScheduleNumber() int {
	next := 1
	for _, s := range d.Schedules {
		if s.Schedule >= next {
			next = s.Schedule + 1
		}
	}
	return next
}
