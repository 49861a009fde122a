package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/client/client"
	"github.com/dmitrijs2005/gophdiary/internal/client/guard"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

var (
	errNotLoggedIn = errors.New("not logged in")
	errEmptyTitle  = errors.New("title is required")
)

// author returns the logged-in user, or sends the REPL to the login
// route when there is none.
func (a *App) author() (*models.User, error) {
	u := a.state.Snapshot().User
	if u == nil {
		printlnFn("Please log in first")
		a.Navigate(guard.RouteLogin)
		return nil, errNotLoggedIn
	}
	return u, nil
}

// reportAPIError prints a diary call failure. A 401 has already logged
// the user out by the time it gets here.
func (a *App) reportAPIError(err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		printlnFn(client.ErrSessionExpired.Error())
	case errors.As(err, &apiErr):
		printlnFn("Error:", apiErr.Message)
	default:
		printlnFn("Error:", err)
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid diary id %q", arg)
	}
	return id, nil
}

func (a *App) List(ctx context.Context) error {
	if !a.enter(ctx, guard.RouteDiaryList) {
		return nil
	}
	u, err := a.author()
	if err != nil {
		return err
	}

	diaries, err := a.diaries.List(ctx, u.ID)
	if err != nil {
		a.reportAPIError(err)
		return err
	}
	printDiaries(diaries)
	return nil
}

// Search prompts for the optional filters; empty answers are not sent.
func (a *App) Search(ctx context.Context) error {
	if !a.enter(ctx, guard.RouteDiarySearch) {
		return nil
	}
	u, err := a.author()
	if err != nil {
		return err
	}

	keyword, err := getSimpleText(a.reader, "Keyword (empty for any)", a.out)
	if err != nil {
		return err
	}
	weather, err := a.askWeather("Weather (empty for any)")
	if err != nil {
		return err
	}
	mood, err := a.askMood("Mood (empty for any)")
	if err != nil {
		return err
	}

	diaries, err := a.diaries.Search(ctx, models.SearchFilter{AuthorID: u.ID, Keyword: keyword, Weather: weather, Mood: mood})
	if err != nil {
		a.reportAPIError(err)
		return err
	}
	printDiaries(diaries)
	return nil
}

func (a *App) Write(ctx context.Context) error {
	if !a.enter(ctx, guard.RouteDiaryWrite) {
		return nil
	}
	u, err := a.author()
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		printlnFn("Error:", errEmptyTitle)
		return errEmptyTitle
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	weather, err := a.askWeather("Weather")
	if err != nil {
		return err
	}
	mood, err := a.askMood("Mood")
	if err != nil {
		return err
	}
	private, err := a.askYesNo("Private? (y/N)")
	if err != nil {
		return err
	}
	tags, err := getTags(a.reader, a.out)
	if err != nil {
		return err
	}

	d, err := a.diaries.Create(ctx, u.ID, models.DiaryInput{
		Title:     title,
		Content:   content,
		Weather:   weather,
		Mood:      mood,
		IsPrivate: private,
		Tags:      tags,
	})
	if err != nil {
		a.reportAPIError(err)
		return err
	}
	printlnFn(fmt.Sprintf("Saved diary #%d", d.ID))
	a.Navigate(guard.RouteDiaryList)
	return nil
}

// Edit prompts for every field; an empty answer keeps the current value.
func (a *App) Edit(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if !a.enter(ctx, guard.DiaryEdit(id)) {
		return nil
	}

	var patch models.DiaryPatch

	title, err := getSimpleText(a.reader, "New title (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if title != "" {
		patch.Title = &title
	}
	content, err := getMultiline(a.reader, "New content (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		patch.Content = &content
	}
	weather, err := a.askWeather("New weather (empty to keep)")
	if err != nil {
		return err
	}
	if weather != "" {
		patch.Weather = &weather
	}
	mood, err := a.askMood("New mood (empty to keep)")
	if err != nil {
		return err
	}
	if mood != "" {
		patch.Mood = &mood
	}

	d, err := a.diaries.Update(ctx, id, patch)
	if err != nil {
		a.reportAPIError(err)
		return err
	}
	printlnFn(fmt.Sprintf("Updated diary #%d", d.ID))
	a.Navigate(guard.RouteDiaryList)
	return nil
}

func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if !a.enter(ctx, guard.RouteDiaryList) {
		return nil
	}

	ok, err := a.askYesNo(fmt.Sprintf("Delete diary #%d? (y/N)", id))
	if err != nil || !ok {
		return err
	}

	if err := a.diaries.Delete(ctx, id); err != nil {
		a.reportAPIError(err)
		return err
	}
	printlnFn(fmt.Sprintf("Deleted diary #%d", id))
	return nil
}

func (a *App) askWeather(prompt string) (models.Weather, error) {
	text, err := getSimpleText(a.reader, fmt.Sprintf("%s %v", prompt, models.Weathers), a.out)
	if err != nil {
		return "", err
	}
	w, err := models.ParseWeather(text)
	if err != nil {
		printlnFn("Error:", err)
	}
	return w, err
}

func (a *App) askMood(prompt string) (models.Mood, error) {
	text, err := getSimpleText(a.reader, fmt.Sprintf("%s %v", prompt, models.Moods), a.out)
	if err != nil {
		return "", err
	}
	m, err := models.ParseMood(text)
	if err != nil {
		printlnFn("Error:", err)
	}
	return m, err
}

func (a *App) askYesNo(prompt string) (bool, error) {
	text, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(text) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
