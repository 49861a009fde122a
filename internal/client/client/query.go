package client

import (
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

const (
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
	diariesPath  = "/api/diaries"
	searchPath   = "/api/diaries/search"
)

func authorDiariesPath(authorID int64) string {
	return diariesPath + "/author/" + strconv.FormatInt(authorID, 10)
}

func diaryPath(id int64) string {
	return diariesPath + "/" + strconv.FormatInt(id, 10)
}

// BuildSearchQuery returns the query of a diary search: authorId is always
// present, keyword/weather/mood only when set.
func BuildSearchQuery(f models.SearchFilter) url.Values {
	q := url.Values{}
	q.Set("authorId", strconv.FormatInt(f.AuthorID, 10))
	if f.Keyword != "" {
		q.Set("keyword", f.Keyword)
	}
	if f.Weather != "" {
		q.Set("weather", string(f.Weather))
	}
	if f.Mood != "" {
		q.Set("mood", string(f.Mood))
	}
	return q
}
