package diaries

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/timex"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*models.Diary
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID: 1,
		items:  make(map[int64]*models.Diary),
	}
}

func clone(d *models.Diary) models.Diary {
	out := *d
	out.Tags = slices.Clone(d.Tags)
	out.ImageURLs = slices.Clone(d.ImageURLs)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.ImageURLs == nil {
		out.ImageURLs = []string{}
	}
	return out
}

func (r *InMemoryRepository) Create(ctx context.Context, d *models.Diary) (*models.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := clone(d)
	item.ID = r.nextID
	r.nextID++
	item.CreatedAt = timex.Now()
	item.UpdatedAt = item.CreatedAt
	r.items[item.ID] = &item

	out := clone(&item)
	return &out, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id int64) (*models.Diary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := clone(d)
	return &out, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id int64, p models.DiaryPatch) (*models.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Content != nil {
		d.Content = *p.Content
	}
	if p.Weather != nil {
		d.Weather = *p.Weather
	}
	if p.Mood != nil {
		d.Mood = *p.Mood
	}
	if p.IsPrivate != nil {
		d.IsPrivate = *p.IsPrivate
	}
	if p.Tags != nil {
		d.Tags = slices.Clone(*p.Tags)
	}
	d.UpdatedAt = timex.Now()

	out := clone(d)
	return &out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

// Find matches the keyword case-insensitively against title, content
// and tags.
func (r *InMemoryRepository) Find(ctx context.Context, q Query) ([]models.Diary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	out := []models.Diary{}
	for _, d := range r.items {
		if d.AuthorID != q.AuthorID {
			continue
		}
		if q.Weather != "" && d.Weather != q.Weather {
			continue
		}
		if q.Mood != "" && d.Mood != q.Mood {
			continue
		}
		if keyword != "" && !matches(d, keyword) {
			continue
		}
		out = append(out, clone(d))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt.Time) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out, nil
}

func matches(d *models.Diary, keyword string) bool {
	if strings.Contains(strings.ToLower(d.Title), keyword) ||
		strings.Contains(strings.ToLower(d.Content), keyword) {
		return true
	}
	for _, t := range d.Tags {
		if strings.Contains(strings.ToLower(t), keyword) {
			return true
		}
	}
	return false
}
