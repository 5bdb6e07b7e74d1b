package models

import "fmt"

// Color is one entry of the preview colour palette.
type Color struct {
	Name  string
	Value string
}

// ColorOptions is the fixed palette playlists and schedules are coloured from.
var ColorOptions = []Color{
	{Name: "Blue", Value: "#3B82F6"},
	{Name: "Green", Value: "#22C55E"},
	{Name: "Red", Value: "#EF4444"},
	{Name: "Yellow", Value: "#EAB308"},
	{Name: "Purple", Value: "#A855F7"},
	{Name: "Orange", Value: "#F97316"},
	{Name: "Pink", Value: "#EC4899"},
	{Name: "Teal", Value: "#14B8A6"},
	{Name: "Gray", Value: "#6B7280"},
}

// IsPaletteColor reports whether hex is one of [ColorOptions].
func IsPaletteColor(hex string) bool {
	for _, c := range ColorOptions {
		if c.Value == hex {
			return true
		}
	}
	return false
}

// Weekday codes as the player reads them: 1=Sunday..7=Saturday.
type Weekday struct {
	Code int
	Name string
}

var Days = []Weekday{
	{1, "Sunday"}, {2, "Monday"}, {3, "Tuesday"}, {4, "Wednesday"}, {5, "Thursday"}, {6, "Friday"}, {7, "Saturday"},
}

// DayName returns the weekday name for a code, or "" when out of range.
func DayName(code int) string {
	if code < 1 || code > len(Days) {
		return ""
	}
	return Days[code-1].Name
}

// TimeSlots returns the 48 half-hour start slots "00:00".."23:30".
func TimeSlots() []string {
	slots := make([]string, 0, 48)
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 30} {
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}

var timeSlotSet = func() map[string]bool {
	set := make(map[string]bool, 48)
	for _, slot := range TimeSlots() {
		set[slot] = true
	}
	return set
}()

// IsTimeSlot reports whether s is one of [TimeSlots].
func IsTimeSlot(s string) bool {
	return timeSlotSet[s]
}

// DefaultGraphics returns the overlay settings of a new playlist or schedule.
func DefaultGraphics() Graphics {
	return Graphics{
		LogoPosition: LogoTop,
		News:         News{Speed: SpeedSlow},
		LowerThirds:  []LowerThird{},
	}
}

// DefaultPlaylist returns the values a new-playlist form starts with.
//
// Name and urlOrFolder are left empty; the operator must fill them before submitting.
func DefaultPlaylist() Playlist {
	return Playlist{
		Active:   true,
		Type:     Online,
		Graphics: DefaultGraphics(),
		Color:    ColorOptions[0].Value,
	}
}

// DefaultSchedule returns the values a new-schedule form starts with.
func DefaultSchedule() Schedule {
	return Schedule{
		Active:   true,
		Days:     []int{},
		Type:     Online,
		Color:    ColorOptions[0].Value,
		Graphics: DefaultGraphics(),
	}
}

// DefaultSettings returns the onboarding form's initial values.
func DefaultSettings() Settings {
	return Settings{NotificationsDisabled: true}
}

// DefaultDocument returns the document created by the onboarding form before any edits.
func DefaultDocument() ConfigDocument {
	doc := ConfigDocument{
		Playlists: []Playlist{},
		Schedules: []Schedule{},
	}
	doc.ApplySettings(DefaultSettings())
	return doc
}
