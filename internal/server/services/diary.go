package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/server/auth"
	"github.com/dmitrijs2005/gophdiary/internal/server/repositories/diaries"
	"github.com/dmitrijs2005/gophdiary/internal/server/repositories/repomanager"
)

// DiaryService applies ownership rules on top of the diary repository.
// Private entries are visible only to their author and to admins; writes
// require the same.
type DiaryService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewDiaryService(m repomanager.RepositoryManager, logger logging.Logger) *DiaryService {
	return &DiaryService{repomanager: m, logger: logger}
}

func (s *DiaryService) ListByAuthor(ctx context.Context, p auth.Principal, authorID int64) ([]models.Diary, error) {
	return s.Search(ctx, p, diaries.Query{AuthorID: authorID})
}

func (s *DiaryService) Search(ctx context.Context, p auth.Principal, q diaries.Query) ([]models.Diary, error) {
	found, err := s.repomanager.Diaries().Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if p.CanAccess(q.AuthorID) {
		return found, nil
	}

	visible := found[:0]
	for _, d := range found {
		if !d.IsPrivate {
			visible = append(visible, d)
		}
	}
	return visible, nil
}

func (s *DiaryService) Create(ctx context.Context, p auth.Principal, authorID int64, in models.DiaryInput) (*models.Diary, error) {
	if !p.CanAccess(authorID) {
		return nil, common.ErrorForbidden
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, invalid("title is required")
	}
	if err := validateEnums(&in.Weather, &in.Mood); err != nil {
		return nil, err
	}

	author, err := s.repomanager.Users().GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, invalid("author does not exist")
		}
		return nil, err
	}

	d, err := s.repomanager.Diaries().Create(ctx, &models.Diary{
		Title:      in.Title,
		Content:    in.Content,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Weather:    in.Weather,
		Mood:       in.Mood,
		IsPrivate:  in.IsPrivate,
		Tags:       in.Tags,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "diary created", "diary_id", d.ID, "author_id", authorID)
	return d, nil
}

func (s *DiaryService) Update(ctx context.Context, p auth.Principal, id int64, patch models.DiaryPatch) (*models.Diary, error) {
	if err := s.authorize(ctx, p, id); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, invalid("title must not be empty")
		}
		patch.Title = &t
	}
	if err := validateEnums(patch.Weather, patch.Mood); err != nil {
		return nil, err
	}

	return s.repomanager.Diaries().Update(ctx, id, patch)
}

func (s *DiaryService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	if err := s.authorize(ctx, p, id); err != nil {
		return err
	}
	if err := s.repomanager.Diaries().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug(ctx, "diary deleted", "diary_id", id)
	return nil
}

func (s *DiaryService) authorize(ctx context.Context, p auth.Principal, id int64) error {
	d, err := s.repomanager.Diaries().Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.CanAccess(d.AuthorID) {
		return common.ErrorForbidden
	}
	return nil
}

// validateEnums normalizes the letter case of the given values in place.
// Nil pointers and empty values are accepted.
func validateEnums(w *models.Weather, m *models.Mood) error {
	if w != nil {
		parsed, err := models.ParseWeather(string(*w))
		if err != nil {
			return invalid(err.Error())
		}
		*w = parsed
	}
	if m != nil {
		parsed, err := models.ParseMood(string(*m))
		if err != nil {
			return invalid(err.Error())
		}
		*m = parsed
	}
	return nil
}
