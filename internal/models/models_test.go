package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPlaylistType(t *testing.T) {
	tc := []struct {
		typ      PlaylistType
		seekTo   bool
		bumpers  bool
		repeat   bool
		isOnline bool
	}{
		{Online, false, false, false, true},
		{LocalSequenced, false, true, false, false},
		{LocalRandomized, false, true, false, false},
		{LocalResuming, true, false, false, false},
		{LocalResumingSame, true, false, false, false},
		{LocalResumingNext, true, false, false, false},
		{LocalResumingOne, true, false, true, false},
	}

	for _, tt := range tc {
		t.Run(string(tt.typ), func(t *testing.T) {
			if !tt.typ.Valid() {
				t.Errorf("%s should be valid", tt.typ)
			}
			if tt.typ.Description() == "" {
				t.Errorf("%s should have a description", tt.typ)
			}
			if got := tt.typ.UsesSeekTo(); got != tt.seekTo {
				t.Errorf("UsesSeekTo() = %v, want %v", got, tt.seekTo)
			}
			if got := tt.typ.UsesBumpers(); got != tt.bumpers {
				t.Errorf("UsesBumpers() = %v, want %v", got, tt.bumpers)
			}
			if got := tt.typ.UsesRepeat(); got != tt.repeat {
				t.Errorf("UsesRepeat() = %v, want %v", got, tt.repeat)
			}
			if got := tt.typ.IsOnline(); got != tt.isOnline {
				t.Errorf("IsOnline() = %v, want %v", got, tt.isOnline)
			}
		})
	}

	if PlaylistType("LOCAL").Valid() {
		t.Error("unknown type should be invalid")
	}
}

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()
	if len(slots) != 48 {
		t.Fatalf("expected 48 slots, got %d", len(slots))
	}
	if slots[0] != "00:00" || slots[1] != "00:30" || slots[47] != "23:30" {
		t.Errorf("unexpected slot bounds: %s %s %s", slots[0], slots[1], slots[47])
	}

	for _, s := range []string{"00:00", "08:30", "23:30"} {
		if !IsTimeSlot(s) {
			t.Errorf("%s should be a slot", s)
		}
	}
	for _, s := range []string{"8:00", "08:15", "24:00", "23:59", "", "0800"} {
		if IsTimeSlot(s) {
			t.Errorf("%s should not be a slot", s)
		}
	}
}

func TestDays(t *testing.T) {
	if DayName(1) != "Sunday" || DayName(7) != "Saturday" {
		t.Errorf("unexpected day names: %s %s", DayName(1), DayName(7))
	}
	if DayName(0) != "" || DayName(8) != "" {
		t.Error("out of range codes should have no name")
	}
}

func TestGraphicsLogoSelector(t *testing.T) {
	g := DefaultGraphics()
	if g.SelectedLogo() != LogoNone {
		t.Fatalf("default logo should be none, got %s", g.SelectedLogo())
	}

	g.SelectLogo(LogoStandard)
	if !g.DisplayLogo || g.DisplayLiveLogo {
		t.Errorf("standard logo flags wrong: %+v", g)
	}

	g.SelectLogo(LogoLive)
	if g.DisplayLogo || !g.DisplayLiveLogo {
		t.Errorf("live logo flags wrong: %+v", g)
	}
	if g.SelectedLogo() != LogoLive {
		t.Errorf("expected live logo selected, got %s", g.SelectedLogo())
	}

	g.SelectLogo(LogoNone)
	if g.DisplayLogo || g.DisplayLiveLogo {
		t.Errorf("none should clear both flags: %+v", g)
	}
}

func TestSchedule(t *testing.T) {
	t.Run("Key", func(t *testing.T) {
		s := Schedule{Name: " News ", Start: "08:00", Schedule: 3}
		if got := s.Key(); got != "News 08:00 3" {
			t.Errorf("Key() = %q", got)
		}
	})

	t.Run("IsDaily", func(t *testing.T) {
		if !(Schedule{Start: "08:00"}).IsDaily() {
			t.Error("start without days or dates should be daily")
		}
		if (Schedule{Start: "08:00", Days: []int{2}}).IsDaily() {
			t.Error("schedule with days is not daily")
		}
		if (Schedule{}).IsDaily() {
			t.Error("schedule without start is not daily")
		}
		if !(Schedule{Start: "08:00", Days: []int{2}, Dates: []string{"2026-10-20"}}).UsesDates() {
			t.Error("dates should take precedence")
		}
	})
}

func TestConfigDocument(t *testing.T) {
	doc := DefaultDocument()
	doc.Playlists = append(doc.Playlists, Playlist{Name: "News "}, Playlist{Name: "Movies"})
	doc.Schedules = append(doc.Schedules, Schedule{Name: "News", Start: "08:00", Schedule: 4})

	if doc.PlaylistIndex("News") != 0 || doc.PlaylistIndex(" Movies ") != 1 || doc.PlaylistIndex("Kids") != -1 {
		t.Error("PlaylistIndex should compare trimmed names")
	}
	if doc.ScheduleIndex("News 08:00 4") != 0 || doc.ScheduleIndex("News 08:00 1") != -1 {
		t.Error("ScheduleIndex should match the composite key")
	}
	if doc.NextScheduleNumber() != 5 {
		t.Errorf("NextScheduleNumber() = %d, want 5", doc.NextScheduleNumber())
	}
	if empty := DefaultDocument(); empty.NextScheduleNumber() != 1 {
		t.Errorf("first schedule number should be 1, got %d", empty.NextScheduleNumber())
	}
}

func TestPlaylistFolders(t *testing.T) {
	p := Playlist{Type: LocalSequenced, URLOrFolder: "Kids # Cartoons#"}
	got := p.Folders()
	if len(got) != 2 || got[0] != "Kids" || got[1] != "Cartoons" {
		t.Errorf("Folders() = %v", got)
	}
	if (Playlist{Type: Online, URLOrFolder: "http://x/y"}).Folders() != nil {
		t.Error("online playlists have no folders")
	}
}

func TestCodec(t *testing.T) {
	t.Run("lenient sequences", func(t *testing.T) {
		tc := map[string]string{
			"missing":   `{"name":"TV"}`,
			"null":      `{"name":"TV","playlists":null,"schedules":null}`,
			"non-array": `{"name":"TV","playlists":{"a":1},"schedules":"oops"}`,
		}
		for name, input := range tc {
			t.Run(name, func(t *testing.T) {
				doc, err := Decode([]byte(input))
				if err != nil {
					t.Fatalf("Decode failed: %v", err)
				}
				if doc.Name != "TV" {
					t.Errorf("expected name TV, got %q", doc.Name)
				}
				if doc.Playlists == nil || len(doc.Playlists) != 0 {
					t.Errorf("expected empty playlists, got %#v", doc.Playlists)
				}
				if doc.Schedules == nil || len(doc.Schedules) != 0 {
					t.Errorf("expected empty schedules, got %#v", doc.Schedules)
				}
			})
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		if _, err := Decode([]byte(`{"name":`)); err == nil {
			t.Error("expected error for truncated JSON")
		}
		if _, err := Decode([]byte(`{"playlists":[{"active":"yes"}]}`)); err == nil {
			t.Error("expected error for malformed playlist element")
		}
	})

	t.Run("top level must be an object", func(t *testing.T) {
		for _, input := range []string{`null`, ` null `, `[]`, `"x"`, `42`, ``} {
			if _, err := Decode([]byte(input)); !errors.Is(err, ErrNotObject) {
				t.Errorf("Decode(%q): expected ErrNotObject, got %v", input, err)
			}
		}
		if _, err := Decode([]byte(" \n{}")); err != nil {
			t.Errorf("leading whitespace before an object should decode, got %v", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		replacer := 1
		doc := DefaultDocument()
		doc.Name = "Telefyna"
		doc.Version = "1.0.0"
		doc.Wait = 30
		doc.Alerts = &Alerts{Enabled: true, Mailer: Mailer{Host: "smtp.example.com", Port: 587}, Subscribers: []string{"ops@example.com"}}
		pl := DefaultPlaylist()
		pl.Name = "Morning Show"
		pl.URLOrFolder = "Morning#Extras"
		pl.Type = LocalResumingOne
		pl.Repeat = RepeatWeekly
		pl.EmptyReplacer = &replacer
		pl.Graphics.LowerThirds = []LowerThird{{Replays: 2, File: "promo.mov", Starts: "5#10"}}
		doc.Playlists = append(doc.Playlists, pl)
		doc.Schedules = append(doc.Schedules, Schedule{Schedule: 1, Name: "Morning Show", Start: "08:00", Days: []int{2, 3}, Dates: []string{"2026-10-20"}, Active: true, Type: LocalResumingOne, Graphics: DefaultGraphics()})

		first, err := Encode(&doc, true)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		parsed, err := Decode(first)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		second, err := Encode(parsed, true)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if string(first) != string(second) {
			t.Errorf("round trip changed the document:\n%s\n---\n%s", first, second)
		}
		if *parsed.Playlists[0].EmptyReplacer != 1 {
			t.Error("emptyReplacer lost in round trip")
		}
	})

	t.Run("field names", func(t *testing.T) {
		doc := DefaultDocument()
		pl := DefaultPlaylist()
		pl.Type = LocalResumingOne
		pl.Graphics.News.Speed = SpeedVeryFast
		doc.Playlists = append(doc.Playlists, pl)
		data, err := json.Marshal(&doc)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		for _, want := range []string{`"LOCAL_RESUMING_ONE"`, `"VERY_FAST"`, `"urlOrFolder"`, `"emptyReplacer":null`, `"notificationsDisabled":true`, `"lowerThirds":[]`} {
			if !strings.Contains(string(data), want) {
				t.Errorf("serialized document missing %s: %s", want, data)
			}
		}
		if strings.Contains(string(data), "lastModified") {
			t.Error("empty lastModified should be omitted")
		}
	})

	t.Run("Clone is deep", func(t *testing.T) {
		doc := DefaultDocument()
		doc.Playlists = append(doc.Playlists, DefaultPlaylist())
		clone := doc.Clone()
		clone.Playlists[0].Name = "changed"
		clone.Playlists = append(clone.Playlists, DefaultPlaylist())
		if doc.Playlists[0].Name != "" || len(doc.Playlists) != 1 {
			t.Error("mutating the clone changed the original")
		}
	})

	t.Run("SameContent ignores lastModified", func(t *testing.T) {
		a := DefaultDocument()
		b := DefaultDocument()
		a.LastModified = "10/15/2026, 9:00:00 AM"
		b.LastModified = "10/15/2026, 9:05:00 AM"
		if !SameContent(&a, &b) {
			t.Error("documents differing only in lastModified should match")
		}
		b.Wait = 10
		if SameContent(&a, &b) {
			t.Error("documents with different wait should not match")
		}
	})
}

func TestSettings(t *testing.T) {
	doc := DefaultDocument()
	if got := doc.Settings(); got != DefaultSettings() {
		t.Errorf("default document settings = %+v", got)
	}
	if !doc.NotificationsDisabled || doc.AutomationDisabled {
		t.Error("notifications should start disabled and automation enabled")
	}

	doc.ApplySettings(Settings{Name: "Telefyna", Version: "1.0", Email: "ops@example.com", Wait: 15})
	if doc.Name != "Telefyna" || doc.Email != "ops@example.com" || doc.Wait != 15 || doc.NotificationsDisabled {
		t.Errorf("ApplySettings did not overwrite fields: %+v", doc.Settings())
	}
}
