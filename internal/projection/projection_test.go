package projection

import (
	"reflect"
	"testing"

	"github.com/desertthunder/tfx/internal/models"
)

func fixture() *models.ConfigDocument {
	doc := models.DefaultDocument()
	doc.Playlists = []models.Playlist{
		{Name: "Morning Show ", Active: true, Type: models.Online},
		{Name: "Archive", Active: false, Type: models.LocalSequenced},
		{Name: "News", Active: true, Type: models.LocalResuming},
	}
	doc.Schedules = []models.Schedule{
		{Schedule: 1, Name: "News", Start: "08:00", Days: []int{2, 3}, Active: true},
		{Schedule: 2, Name: "News", Start: "08:00", Dates: []string{"2026-10-20"}, Active: false},
		{Schedule: 3, Name: "Morning Show", Start: "06:30", Active: true},
	}
	return &doc
}

func TestFilteredPlaylists(t *testing.T) {
	doc := fixture()

	t.Run("preserves order across active and inactive", func(t *testing.T) {
		got := FilteredPlaylists(doc, false, false)
		values := make([]string, len(got))
		for i, o := range got {
			values[i] = o.Value
		}
		want := []string{"Morning Show", "Archive", "News"}
		if !reflect.DeepEqual(values, want) {
			t.Errorf("values = %v, want %v", values, want)
		}
		if got[0].Label != "Morning Show" {
			t.Errorf("plain label should be the trimmed name, got %q", got[0].Label)
		}
	})

	t.Run("active only with verbose labels", func(t *testing.T) {
		got := FilteredPlaylists(doc, true, true)
		if len(got) != 2 {
			t.Fatalf("expected 2 active playlists, got %d", len(got))
		}
		if got[0].Label != "✅ Morning Show #1" || got[1].Label != "✅ News #2" {
			t.Errorf("unexpected labels: %q, %q", got[0].Label, got[1].Label)
		}
		if got[1].Index != 2 {
			t.Errorf("expected captured index 2, got %d", got[1].Index)
		}
	})

	t.Run("inactive glyph", func(t *testing.T) {
		got := FilteredPlaylists(doc, true, false)
		if got[1].Label != "❌ Archive #2" {
			t.Errorf("unexpected label %q", got[1].Label)
		}
	})

	t.Run("nil and empty documents", func(t *testing.T) {
		if got := FilteredPlaylists(nil, true, true); got == nil || len(got) != 0 {
			t.Errorf("expected empty options, got %#v", got)
		}
		empty := models.DefaultDocument()
		if got := FilteredPlaylists(&empty, false, false); len(got) != 0 {
			t.Errorf("expected no options, got %d", len(got))
		}
	})
}

func TestFilteredSchedules(t *testing.T) {
	doc := fixture()

	t.Run("values and keys", func(t *testing.T) {
		got := FilteredSchedules(doc, false, false)
		if len(got) != 3 {
			t.Fatalf("expected 3 schedules, got %d", len(got))
		}
		if got[0].Value != "News 08:00 1" || got[0].Key != "News" {
			t.Errorf("unexpected identity: %+v", got[0])
		}
		if got[0].Label == got[1].Label {
			t.Errorf("labels must be unique, both %q", got[0].Label)
		}
	})

	t.Run("verbose labels", func(t *testing.T) {
		got := FilteredSchedules(doc, true, false)
		want := []string{
			"✅ News #1 | @08:00 | Days: 2,3",
			"❌ News #2 | @08:00 | Dates: 2026-10-20",
			"✅ Morning Show #3 | @06:30 | Daily",
		}
		for i, w := range want {
			if got[i].Label != w {
				t.Errorf("label %d = %q, want %q", i, got[i].Label, w)
			}
		}
	})

	t.Run("active only", func(t *testing.T) {
		got := FilteredSchedules(doc, false, true)
		if len(got) != 2 || got[1].Index != 2 {
			t.Errorf("unexpected active schedules: %+v", got)
		}
	})

	t.Run("missing schedules", func(t *testing.T) {
		d, err := models.Decode([]byte(`{"playlists":[],"schedules":"none"}`))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if got := FilteredSchedules(d, true, false); len(got) != 0 {
			t.Errorf("expected no options, got %d", len(got))
		}
	})
}

func TestPicker(t *testing.T) {
	doc := fixture()
	got := Picker(doc, true, false)

	if len(got) != 8 {
		t.Fatalf("expected 8 options, got %d", len(got))
	}
	if got[0].Kind != KindSeparator || got[0].Value != PlaylistSeparator || got[0].Selectable() {
		t.Errorf("first option should be the playlist separator, got %+v", got[0])
	}
	if got[4].Kind != KindSeparator || got[4].Value != ScheduleSeparator {
		t.Errorf("schedule separator misplaced: %+v", got[4])
	}
	for _, o := range got[1:4] {
		if o.Kind != KindPlaylist || !o.Selectable() {
			t.Errorf("expected selectable playlist, got %+v", o)
		}
	}
	for _, o := range got[5:] {
		if o.Kind != KindSchedule {
			t.Errorf("expected schedule, got %+v", o)
		}
	}

	seen := map[string]bool{}
	for _, o := range got {
		if seen[o.Label] {
			t.Errorf("duplicate label %q", o.Label)
		}
		seen[o.Label] = true
	}
	if got[0].ID() == PlaylistSelection(PlaylistSeparator).ID() {
		t.Error("a playlist named like a separator must not share its ID")
	}
	if got[0].Selectable() || !got[1].Selectable() {
		t.Error("only separators are unselectable")
	}
}

func TestChanged(t *testing.T) {
	doc := fixture()
	first := Picker(doc, true, false)
	second := Picker(doc, true, false)
	if Changed(first, second) {
		t.Error("projections of an unchanged document should be identical")
	}

	doc.Playlists[1].Active = true
	if !Changed(first, Picker(doc, true, false)) {
		t.Error("activating a playlist should change the verbose projection")
	}

	doc.Schedules = doc.Schedules[:1]
	if !Changed(first, Picker(doc, true, false)) {
		t.Error("removing schedules should change the projection")
	}
}
