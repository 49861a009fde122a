package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	mu sync.Mutex

	LoginRet    *models.AuthResult
	LoginErr    error
	RegisterRet *models.RegisterResult
	RegisterErr error

	DiariesRet []models.Diary
	DiaryRet   *models.Diary
	DiaryErr   error

	LastToken    string
	LastAuthorID int64
	LastFilter   models.SearchFilter
	LastInput    models.DiaryInput
	LastPatch    models.DiaryPatch
	LastID       int64
	Calls        int
}

func (f *fakeClient) record(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.Calls++
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	f.record("")
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, profile models.Profile) (*models.RegisterResult, error) {
	f.record("")
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) ListDiaries(ctx context.Context, token string, authorID int64) ([]models.Diary, error) {
	f.record(token)
	f.LastAuthorID = authorID
	if f.DiaryErr != nil {
		return nil, f.DiaryErr
	}
	return f.DiariesRet, nil
}

func (f *fakeClient) SearchDiaries(ctx context.Context, token string, filter models.SearchFilter) ([]models.Diary, error) {
	f.record(token)
	f.LastFilter = filter
	if f.DiaryErr != nil {
		return nil, f.DiaryErr
	}
	return f.DiariesRet, nil
}

func (f *fakeClient) CreateDiary(ctx context.Context, token string, authorID int64, in models.DiaryInput) (*models.Diary, error) {
	f.record(token)
	f.LastAuthorID = authorID
	f.LastInput = in
	if f.DiaryErr != nil {
		return nil, f.DiaryErr
	}
	return f.DiaryRet, nil
}

func (f *fakeClient) UpdateDiary(ctx context.Context, token string, id int64, patch models.DiaryPatch) (*models.Diary, error) {
	f.record(token)
	f.LastID = id
	f.LastPatch = patch
	if f.DiaryErr != nil {
		return nil, f.DiaryErr
	}
	return f.DiaryRet, nil
}

func (f *fakeClient) DeleteDiary(ctx context.Context, token string, id int64) error {
	f.record(token)
	f.LastID = id
	return f.DiaryErr
}

type fakeStore struct {
	SaveErr  error
	ClearErr error

	Saved   bool
	Token   string
	User    models.User
	Cleared int
}

func (s *fakeStore) Save(ctx context.Context, token string, user models.User) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saved, s.Token, s.User = true, token, user
	return nil
}

func (s *fakeStore) Clear(ctx context.Context) error {
	s.Cleared++
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.Saved, s.Token, s.User = false, "", models.User{}
	return nil
}

type fakeNav struct{ routes []string }

func (n *fakeNav) Navigate(route string) { n.routes = append(n.routes, route) }

type staticToken string

func (t staticToken) Token() string { return string(t) }
