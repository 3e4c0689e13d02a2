// SPDX-License-Identifier: Apache-2.0

package song

import "strings"

// Mood is the worship-flow energy of a song.
type Mood string

const (
	MoodJoyful      Mood = "Joyful"
	MoodReflective  Mood = "Reflective"
	MoodTriumphant  Mood = "Triumphant"
	MoodIntimate    Mood = "Intimate"
	MoodPeaceful    Mood = "Peaceful"
	MoodEnergetic   Mood = "Energetic"
	MoodHopeful     Mood = "Hopeful"
	MoodSolemn      Mood = "Solemn"
	MoodCelebratory Mood = "Celebratory"
)

// AllMoods lists the accepted moods.
var AllMoods = []Mood{
	MoodJoyful, MoodReflective, MoodTriumphant, MoodIntimate, MoodPeaceful,
	MoodEnergetic, MoodHopeful, MoodSolemn, MoodCelebratory,
}

// Theme is a service-planning tag.
type Theme string

const (
	ThemeWorship      Theme = "Worship"
	ThemeCommunion    Theme = "Communion"
	ThemeOffering     Theme = "Offering"
	ThemeOpening      Theme = "Opening"
	ThemeClosing      Theme = "Closing"
	ThemePrayer       Theme = "Prayer"
	ThemeDeclaration  Theme = "Declaration"
	ThemeThanksgiving Theme = "Thanksgiving"
	ThemeFaith        Theme = "Faith"
	ThemeGrace        Theme = "Grace"
	ThemeSalvation    Theme = "Salvation"
	ThemeBaptism      Theme = "Baptism"
	ThemeChristmas    Theme = "Christmas"
	ThemeHolyWeek     Theme = "Holy Week"
)

// AllThemes lists the accepted themes.
var AllThemes = []Theme{
	ThemeWorship, ThemeCommunion, ThemeOffering, ThemeOpening, ThemeClosing,
	ThemePrayer, ThemeDeclaration, ThemeThanksgiving, ThemeFaith, ThemeGrace,
	ThemeSalvation, ThemeBaptism, ThemeChristmas, ThemeHolyWeek,
}

// LookupTheme matches name case-insensitively against AllThemes.
func LookupTheme(name string) (Theme, bool) {
	name = strings.TrimSpace(name)
	for _, theme := range AllThemes {
		if strings.EqualFold(string(theme), name) {
			return theme, true
		}
	}
	return "", false
}
