package validation

import "github.com/desertthunder/tfx/internal/models"

// SeekToInput is the seekTo section of a playlist form.
type SeekToInput struct {
	Program  *int `json:"program" validate:"omitempty,min=0"`
	Position *int `json:"position" validate:"omitempty,min=0"`
}

// NewsInput is the ticker section. The form names the replay count newsReplays.
type NewsInput struct {
	NewsReplays *int              `json:"newsReplays" validate:"omitempty,min=0"`
	Speed       *models.SpeedType `json:"speed" validate:"omitempty,oneof=SLOW FAST VERY_FAST"`
	Starts      *string           `json:"starts" validate:"omitempty,hashints"`
	Messages    *string           `json:"messages"`
}

// LowerThirdInput is one row of the lower-thirds table.
type LowerThirdInput struct {
	Replays int    `json:"replays" validate:"min=0"`
	File    string `json:"file"`
	Starts  string `json:"starts" validate:"omitempty,hashints"`
}

// GraphicsInput is the overlay section shared by the playlist and schedule forms.
type GraphicsInput struct {
	DisplayLogo            *bool                `json:"displayLogo"`
	LogoPosition           *models.LogoPosition `json:"logoPosition" validate:"omitempty,oneof=TOP BOTTOM"`
	News                   *NewsInput           `json:"news"`
	LowerThirds            []LowerThirdInput    `json:"lowerThirds" validate:"omitempty,dive"`
	DisplayLiveLogo        *bool                `json:"displayLiveLogo"`
	DisplayRepeatWatermark *bool                `json:"displayRepeatWatermark"`
}

// PlaylistInput is a playlist form submission. Nil pointers are fields the form did not carry.
type PlaylistInput struct {
	Active                *bool               `json:"active"`
	PlaylistName          string              `json:"playlistName" validate:"trimmedmin=2"`
	Description           *string             `json:"description"`
	Type                  models.PlaylistType `json:"type" validate:"playlisttype"`
	URLOrFolder           string              `json:"urlOrFolder" validate:"urlorfolder"`
	Color                 *string             `json:"color" validate:"omitempty,palette"`
	UsingExternalStorage  *bool               `json:"usingExternalStorage"`
	PlayingGeneralBumpers *bool               `json:"playingGeneralBumpers"`
	SpecialBumperFolder   *string             `json:"specialBumperFolder"`
	Repeat                *models.RepeatType  `json:"repeat" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY QUARTERLY ANNUALLY"`
	EmptyReplacer         *int                `json:"emptyReplacer" validate:"omitempty,min=0"`
	SeekTo                *SeekToInput        `json:"seekTo"`
	Graphics              *GraphicsInput      `json:"graphics"`
}

// ScheduleInput is a schedule form submission. The owning playlist is passed alongside it.
type ScheduleInput struct {
	Active   *bool          `json:"active"`
	Start    *string        `json:"start" validate:"omitempty,halfhour"`
	Days     []int          `json:"days" validate:"omitempty,dive,min=1,max=7"`
	Dates    []string       `json:"dates" validate:"omitempty,dive,isodate"`
	Color    *string        `json:"color" validate:"omitempty,palette"`
	Graphics *GraphicsInput `json:"graphics"`
}

// SettingsInput is the onboarding form. Only the fields that are set are merged.
type SettingsInput struct {
	Name                  *string `json:"name" validate:"omitempty,trimmedmin=2"`
	Version               *string `json:"version" validate:"omitempty,trimmedmin=3"`
	Email                 *string `json:"email"`
	Wait                  *int    `json:"wait" validate:"omitempty,min=0"`
	AutomationDisabled    *bool   `json:"automationDisabled"`
	NotificationsDisabled *bool   `json:"notificationsDisabled"`
}

// PlaylistInputFrom loads an existing playlist into a form, the way selecting a record in a picker does.
func PlaylistInputFrom(p models.Playlist) PlaylistInput {
	in := PlaylistInput{
		Active:                &p.Active,
		PlaylistName:          p.Name,
		Type:                  p.Type,
		URLOrFolder:           p.URLOrFolder,
		Color:                 &p.Color,
		UsingExternalStorage:  &p.UsingExternalStorage,
		PlayingGeneralBumpers: &p.PlayingGeneralBumpers,
		SpecialBumperFolder:   &p.SpecialBumperFolder,
		EmptyReplacer:         p.EmptyReplacer,
		SeekTo:                &SeekToInput{Program: &p.SeekTo.Program, Position: &p.SeekTo.Position},
		Graphics:              GraphicsInputFrom(p.Graphics),
	}
	if p.Description != "" {
		in.Description = &p.Description
	}
	if p.Repeat != "" {
		in.Repeat = &p.Repeat
	}
	return in
}

// GraphicsInputFrom fills every field of a graphics section from g.
func GraphicsInputFrom(g models.Graphics) *GraphicsInput {
	rows := make([]LowerThirdInput, len(g.LowerThirds))
	for i, lt := range g.LowerThirds {
		rows[i] = LowerThirdInput(lt)
	}
	return &GraphicsInput{
		DisplayLogo:  &g.DisplayLogo,
		LogoPosition: &g.LogoPosition,
		News: &NewsInput{
			NewsReplays: &g.News.Replays,
			Speed:       &g.News.Speed,
			Starts:      &g.News.Starts,
			Messages:    &g.News.Messages,
		},
		LowerThirds:            rows,
		DisplayLiveLogo:        &g.DisplayLiveLogo,
		DisplayRepeatWatermark: &g.DisplayRepeatWatermark,
	}
}
