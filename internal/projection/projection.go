// package projection derives picker options from a configuration document
package projection

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/desertthunder/tfx/internal/models"
)

const (
	activeGlyph   = "✅"
	inactiveGlyph = "❌"
)

// PlaylistOption is one selectable playlist. Value is the lookup key.
type PlaylistOption struct {
	Label    string          `json:"label"`
	Value    string          `json:"value"`
	Index    int             `json:"index"`
	Playlist models.Playlist `json:"playlist"`
}

// ScheduleOption is one selectable schedule. Value is the composite key and Key the owner's name.
type ScheduleOption struct {
	Label    string          `json:"label"`
	Value    string          `json:"value"`
	Key      string          `json:"key"`
	Index    int             `json:"index"`
	Schedule models.Schedule `json:"schedule"`
}

// OptionKind tags a [PickerOption].
type OptionKind string

const (
	KindPlaylist  OptionKind = "playlist"
	KindSchedule  OptionKind = "schedule"
	KindSeparator OptionKind = "separator"
)

// PickerOption is an entry of the combined delete picker.
type PickerOption struct {
	Kind  OptionKind `json:"kind"`
	Label string     `json:"label"`
	Value string     `json:"value"`
}

// Selectable reports whether the option can be picked. Separators never can.
func (o PickerOption) Selectable() bool { return o.Kind != KindSeparator }

// PlaylistSelection picks the playlist named name.
func PlaylistSelection(name string) PickerOption {
	return PickerOption{Kind: KindPlaylist, Value: name}
}

// ScheduleSelection picks the schedule with composite key key.
func ScheduleSelection(key string) PickerOption {
	return PickerOption{Kind: KindSchedule, Value: key}
}

const (
	PlaylistSeparator = "playlistSeparator"
	ScheduleSeparator = "scheduleSeparator"
)

func glyph(active bool) string {
	if active {
		return activeGlyph
	}
	return inactiveGlyph
}

// FilteredPlaylists lists playlists in document order, optionally only the active ones.
//
// Verbose labels carry a status glyph and a 1-based ordinal among the listed entries.
func FilteredPlaylists(doc *models.ConfigDocument, verbose, activeOnly bool) []PlaylistOption {
	out := []PlaylistOption{}
	if doc == nil {
		return out
	}

	for i, p := range doc.Playlists {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, PlaylistOption{Index: i, Playlist: p})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Index < out[b].Index })

	for i := range out {
		name := strings.TrimSpace(out[i].Playlist.Name)
		out[i].Value = name
		out[i].Label = name
		if verbose {
			out[i].Label = fmt.Sprintf("%s %s #%d", glyph(out[i].Playlist.Active), name, i+1)
		}
	}
	return out
}

// FilteredSchedules lists schedules in document order, optionally only the active ones.
//
// Labels always end with the schedule number so that two schedules of one playlist at the
// same start stay distinguishable.
func FilteredSchedules(doc *models.ConfigDocument, verbose, activeOnly bool) []ScheduleOption {
	out := []ScheduleOption{}
	if doc == nil {
		return out
	}

	for i, s := range doc.Schedules {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, ScheduleOption{
			Label:    scheduleLabel(s, verbose),
			Value:    s.Key(),
			Key:      strings.TrimSpace(s.Name),
			Index:    i,
			Schedule: s,
		})
	}
	return out
}

func scheduleLabel(s models.Schedule, verbose bool) string {
	name := strings.TrimSpace(s.Name)
	if !verbose {
		if s.Start == "" {
			return fmt.Sprintf("%s (#%d)", name, s.Schedule)
		}
		return fmt.Sprintf("%s @%s (#%d)", name, s.Start, s.Schedule)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s #%d", glyph(s.Active), name, s.Schedule)
	if s.Start != "" {
		fmt.Fprintf(&b, " | @%s", s.Start)
	}
	switch {
	case s.UsesDates():
		fmt.Fprintf(&b, " | Dates: %s", strings.Join(s.Dates, ","))
	case len(s.Days) > 0:
		days := make([]string, len(s.Days))
		for i, d := range s.Days {
			days[i] = strconv.Itoa(d)
		}
		fmt.Fprintf(&b, " | Days: %s", strings.Join(days, ","))
	case s.IsDaily():
		b.WriteString(" | Daily")
	}
	return b.String()
}

// Picker combines playlists and schedules for the delete form, each group behind a separator.
func Picker(doc *models.ConfigDocument, verbose, activeOnly bool) []PickerOption {
	playlists := FilteredPlaylists(doc, verbose, activeOnly)
	schedules := FilteredSchedules(doc, verbose, activeOnly)

	out := make([]PickerOption, 0, len(playlists)+len(schedules)+2)
	out = append(out, PickerOption{Kind: KindSeparator, Label: "Playlists", Value: PlaylistSeparator})
	for _, p := range playlists {
		out = append(out, PickerOption{Kind: KindPlaylist, Label: p.Label, Value: p.Value})
	}
	out = append(out, PickerOption{Kind: KindSeparator, Label: "Schedules", Value: ScheduleSeparator})
	for _, s := range schedules {
		out = append(out, PickerOption{Kind: KindSchedule, Label: s.Label, Value: s.Value})
	}
	return out
}

// Changed reports whether two projections differ in any label, value or kind.
func Changed(prev, next []PickerOption) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if prev[i] != next[i] {
			return true
		}
	}
	return false
}

// ID identifies the option by kind and value. A playlist may share its value with a
// schedule key or a separator, so values alone are not unique.
func (o PickerOption) ID() string { return string(o.Kind) + ":" + o.Value }
