package models

// PlaylistType determines how the player reads a playlist and which sections apply to it.
type PlaylistType string

const (
	Online            PlaylistType = "ONLINE"
	LocalSequenced    PlaylistType = "LOCAL_SEQUENCED"
	LocalRandomized   PlaylistType = "LOCAL_RANDOMIZED"
	LocalResuming     PlaylistType = "LOCAL_RESUMING"
	LocalResumingSame PlaylistType = "LOCAL_RESUMING_SAME"
	LocalResumingNext PlaylistType = "LOCAL_RESUMING_NEXT"
	LocalResumingOne  PlaylistType = "LOCAL_RESUMING_ONE"
)

// PlaylistTypes lists every type in selector order.
var PlaylistTypes = []PlaylistType{
	Online, LocalSequenced, LocalRandomized, LocalResuming, LocalResumingSame, LocalResumingNext, LocalResumingOne,
}

var playlistTypeDescriptions = map[PlaylistType]string{
	Online:            "Streams from a URL; requires an internet connection",
	LocalSequenced:    "Plays local folder programs in order, starting from the first each time",
	LocalRandomized:   "Plays local folder programs in random order",
	LocalResuming:     "Resumes from the program and position where it last stopped",
	LocalResumingSame: "Restarts the program that was playing when it last stopped",
	LocalResumingNext: "Starts the program after the one that was playing when it last stopped",
	LocalResumingOne:  "Plays one program per slot, advancing each resuming period",
}

func (t PlaylistType) Valid() bool {
	_, ok := playlistTypeDescriptions[t]
	return ok
}

// Description is the operator-facing explanation shown under the type selector.
func (t PlaylistType) Description() string {
	return playlistTypeDescriptions[t]
}

func (t PlaylistType) IsOnline() bool { return t == Online }

// UsesSeekTo reports the resuming variants that expose the seekTo section.
func (t PlaylistType) UsesSeekTo() bool {
	switch t {
	case LocalResuming, LocalResumingSame, LocalResumingNext, LocalResumingOne:
		return true
	}
	return false
}

// UsesBumpers reports the types that play general and special bumpers.
func (t PlaylistType) UsesBumpers() bool {
	return t == LocalSequenced || t == LocalRandomized
}

// UsesRepeat reports the type that takes a resuming period.
func (t PlaylistType) UsesRepeat() bool { return t == LocalResumingOne }

// SpeedType is the ticker scroll speed.
type SpeedType string

const (
	SpeedSlow     SpeedType = "SLOW"
	SpeedFast     SpeedType = "FAST"
	SpeedVeryFast SpeedType = "VERY_FAST"
)

var SpeedTypes = []SpeedType{SpeedSlow, SpeedFast, SpeedVeryFast}

func (s SpeedType) Valid() bool {
	return s == SpeedSlow || s == SpeedFast || s == SpeedVeryFast
}

// LogoPosition anchors the channel logo.
type LogoPosition string

const (
	LogoTop    LogoPosition = "TOP"
	LogoBottom LogoPosition = "BOTTOM"
)

var LogoPositions = []LogoPosition{LogoTop, LogoBottom}

func (p LogoPosition) Valid() bool { return p == LogoTop || p == LogoBottom }

// RepeatType is the resuming period of a LOCAL_RESUMING_ONE playlist.
type RepeatType string

const (
	RepeatDaily     RepeatType = "DAILY"
	RepeatWeekly    RepeatType = "WEEKLY"
	RepeatMonthly   RepeatType = "MONTHLY"
	RepeatQuarterly RepeatType = "QUARTERLY"
	RepeatAnnually  RepeatType = "ANNUALLY"
)

var RepeatTypes = []RepeatType{RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatQuarterly, RepeatAnnually}

func (r RepeatType) Valid() bool {
	for _, v := range RepeatTypes {
		if r == v {
			return true
		}
	}
	return false
}

// LogoChoice is the value of the logo selector radio group.
type LogoChoice string

const (
	LogoStandard LogoChoice = "displayLogo"
	LogoLive     LogoChoice = "displayLiveLogo"
	LogoNone     LogoChoice = "none"
)

var LogoChoices = []LogoChoice{LogoStandard, LogoLive, LogoNone}

func (c LogoChoice) Valid() bool {
	return c == LogoStandard || c == LogoLive || c == LogoNone
}
