package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/timex"
)

type Weather string

const (
	WeatherSunny  Weather = "SUNNY"
	WeatherCloudy Weather = "CLOUDY"
	WeatherRainy  Weather = "RAINY"
	WeatherSnowy  Weather = "SNOWY"
	WeatherWindy  Weather = "WINDY"
)

// Weathers lists every weather value in display order.
var Weathers = []Weather{WeatherSunny, WeatherCloudy, WeatherRainy, WeatherSnowy, WeatherWindy}

func (w Weather) Valid() bool {
	for _, v := range Weathers {
		if v == w {
			return true
		}
	}
	return false
}

type Mood string

const (
	MoodVeryHappy Mood = "VERY_HAPPY"
	MoodHappy     Mood = "HAPPY"
	MoodNormal    Mood = "NORMAL"
	MoodSad       Mood = "SAD"
	MoodVerySad   Mood = "VERY_SAD"
	MoodAngry     Mood = "ANGRY"
	MoodExcited   Mood = "EXCITED"
)

// Moods lists every mood value in display order.
var Moods = []Mood{MoodVeryHappy, MoodHappy, MoodNormal, MoodSad, MoodVerySad, MoodAngry, MoodExcited}

func (m Mood) Valid() bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}

// ParseWeather accepts any letter case; an empty string yields "" without error.
func ParseWeather(s string) (Weather, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	w := Weather(s)
	if !w.Valid() {
		return "", fmt.Errorf("unknown weather %q", s)
	}
	return w, nil
}

// ParseMood accepts any letter case; an empty string yields "" without error.
func ParseMood(s string) (Mood, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

// Diary is owned by the API; the client only holds the currently
// displayed list.
type Diary struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	AuthorID   int64      `json:"authorId"`
	AuthorName string     `json:"authorName"`
	Weather    Weather    `json:"weather"`
	Mood       Mood       `json:"mood"`
	IsPrivate  bool       `json:"isPrivate"`
	CreatedAt  timex.Time `json:"createdAt"`
	UpdatedAt  timex.Time `json:"updatedAt"`
	ImageURLs  []string   `json:"imageUrls"`
	Tags       []string   `json:"tags"`
}

// DiaryInput is the body of a create request.
type DiaryInput struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Weather   Weather  `json:"weather"`
	Mood      Mood     `json:"mood"`
	IsPrivate bool     `json:"isPrivate"`
	Tags      []string `json:"tags"`
}

// DiaryPatch is the body of an update request; nil fields are left
// unchanged by the API and are not sent.
type DiaryPatch struct {
	Title     *string   `json:"title,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Weather   *Weather  `json:"weather,omitempty"`
	Mood      *Mood     `json:"mood,omitempty"`
	IsPrivate *bool     `json:"isPrivate,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p DiaryPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Weather == nil &&
		p.Mood == nil && p.IsPrivate == nil && p.Tags == nil
}

// SearchFilter narrows a diary search. Zero-valued optional fields are
// not sent.
type SearchFilter struct {
	AuthorID int64
	Keyword  string
	Weather  Weather
	Mood     Mood
}
