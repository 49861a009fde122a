// Package diaries stores the diary entries of the stand-in API.
package diaries

import (
	"context"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// Query selects diaries by author and optional content filters. The
// repository applies no visibility rules.
type Query struct {
	AuthorID int64
	Keyword  string
	Weather  models.Weather
	Mood     models.Mood
}

// Repository persists diaries. Operations on absent ids return
// common.ErrorNotFound. Results are ordered newest first.
type Repository interface {
	Create(ctx context.Context, d *models.Diary) (*models.Diary, error)
	Get(ctx context.Context, id int64) (*models.Diary, error)
	Update(ctx context.Context, id int64, patch models.DiaryPatch) (*models.Diary, error)
	Delete(ctx context.Context, id int64) error
	Find(ctx context.Context, q Query) ([]models.Diary, error)
}
