package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophdiary/internal/client/client"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

var ErrEmptyPatch = errors.New("nothing to update")

// TokenSource yields the bearer token of the current session. It is read
// only; the service never changes the session itself.
type TokenSource interface {
	Token() string
}

// DiaryService issues the diary calls on behalf of the current session.
//
// Every call makes a single attempt. Failures are *client.APIError; a 401
// additionally fires the handlers registered with OnSessionExpired before
// the error is returned.
type DiaryService interface {
	List(ctx context.Context, authorID int64) ([]models.Diary, error)
	Search(ctx context.Context, filter models.SearchFilter) ([]models.Diary, error)
	Create(ctx context.Context, authorID int64, in models.DiaryInput) (*models.Diary, error)
	Update(ctx context.Context, id int64, patch models.DiaryPatch) (*models.Diary, error)
	Delete(ctx context.Context, id int64) error

	OnSessionExpired(fn func(ctx context.Context))
}

type diaryService struct {
	client client.Client
	tokens TokenSource
	logger logging.Logger

	mu      sync.Mutex
	expired []func(ctx context.Context)
}

func NewDiaryService(c client.Client, tokens TokenSource, logger logging.Logger) DiaryService {
	return &diaryService{client: c, tokens: tokens, logger: logger}
}

func (s *diaryService) OnSessionExpired(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = append(s.expired, fn)
}

// check fires the session-expired handlers when err is a 401.
func (s *diaryService) check(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, client.ErrSessionExpired) {
		return err
	}

	s.logger.Warn(ctx, "session expired")

	s.mu.Lock()
	handlers := append([]func(context.Context){}, s.expired...)
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(ctx)
	}
	return err
}

func (s *diaryService) List(ctx context.Context, authorID int64) ([]models.Diary, error) {
	diaries, err := s.client.ListDiaries(ctx, s.tokens.Token(), authorID)
	return diaries, s.check(ctx, err)
}

func (s *diaryService) Search(ctx context.Context, filter models.SearchFilter) ([]models.Diary, error) {
	diaries, err := s.client.SearchDiaries(ctx, s.tokens.Token(), filter)
	return diaries, s.check(ctx, err)
}

func (s *diaryService) Create(ctx context.Context, authorID int64, in models.DiaryInput) (*models.Diary, error) {
	d, err := s.client.CreateDiary(ctx, s.tokens.Token(), authorID, in)
	return d, s.check(ctx, err)
}

func (s *diaryService) Update(ctx context.Context, id int64, patch models.DiaryPatch) (*models.Diary, error) {
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}
	d, err := s.client.UpdateDiary(ctx, s.tokens.Token(), id, patch)
	return d, s.check(ctx, err)
}

func (s *diaryService) Delete(ctx context.Context, id int64) error {
	return s.check(ctx, s.client.DeleteDiary(ctx, s.tokens.Token(), id))
}
