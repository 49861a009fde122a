package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/gophdiary/internal/client/guard"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

type fakeState struct {
	session models.Session

	loginErr    error
	loginUser   *models.User
	registerErr error
	errMsg      string

	lastCreds   models.Credentials
	lastProfile models.Profile
	logouts     int
	restores    int
}

func (f *fakeState) Snapshot() models.Session { return f.session.Clone() }

func (f *fakeState) Login(ctx context.Context, creds models.Credentials) error {
	f.lastCreds = creds
	if f.loginErr != nil {
		f.session = models.Session{Error: f.errMsg}
		return f.loginErr
	}
	f.session = models.Session{IsAuthenticated: true, Token: "t1", User: f.loginUser}
	return nil
}

func (f *fakeState) Register(ctx context.Context, profile models.Profile) (*models.User, error) {
	f.lastProfile = profile
	if f.registerErr != nil {
		f.session.Error = f.errMsg
		return nil, f.registerErr
	}
	return &models.User{ID: 9, Name: profile.Name, Email: profile.Email}, nil
}

func (f *fakeState) Logout(ctx context.Context) {
	f.logouts++
	f.session = models.Session{}
}

func (f *fakeState) RestoreAuth(ctx context.Context) { f.restores++ }

func (f *fakeState) ClearError() { f.session.Error = "" }

type fakeGuard struct {
	deny    bool
	checked []string
}

func (g *fakeGuard) Check(ctx context.Context, route string) guard.Decision {
	g.checked = append(g.checked, route)
	if g.deny {
		return guard.Decision{Redirect: guard.RouteLogin}
	}
	return guard.Decision{Allowed: true}
}

type fakeDiaries struct {
	listRet []models.Diary
	err     error

	lastAuthor int64
	lastFilter models.SearchFilter
	lastInput  models.DiaryInput
	lastPatch  models.DiaryPatch
	lastID     int64
	calls      int
}

func (f *fakeDiaries) List(ctx context.Context, authorID int64) ([]models.Diary, error) {
	f.calls++
	f.lastAuthor = authorID
	return f.listRet, f.err
}

func (f *fakeDiaries) Search(ctx context.Context, filter models.SearchFilter) ([]models.Diary, error) {
	f.calls++
	f.lastFilter = filter
	return f.listRet, f.err
}

func (f *fakeDiaries) Create(ctx context.Context, authorID int64, in models.DiaryInput) (*models.Diary, error) {
	f.calls++
	f.lastAuthor = authorID
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Diary{ID: 11, Title: in.Title}, nil
}

func (f *fakeDiaries) Update(ctx context.Context, id int64, patch models.DiaryPatch) (*models.Diary, error) {
	f.calls++
	f.lastID = id
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	return &models.Diary{ID: id}, nil
}

func (f *fakeDiaries) Delete(ctx context.Context, id int64) error {
	f.calls++
	f.lastID = id
	return f.err
}

func (f *fakeDiaries) OnSessionExpired(fn func(ctx context.Context)) {}

func newTestApp(st *fakeState, g *fakeGuard, ds *fakeDiaries) *App {
	return &App{
		logger:  logging.Discard(),
		state:   st,
		guard:   g,
		diaries: ds,
		reader:  rdr(""),
		out:     io.Discard,
		route:   guard.RouteHome,
	}
}

// stubInputs makes the prompt seams answer from the given lines in order.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP, origML, origTags := getSimpleText, getPassword, getMultiline, getTags

	next := func() string {
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt")
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getTags = func(_ *bufio.Reader, _ io.Writer) ([]string, error) {
		if s := next(); s != "" {
			return []string{s}, nil
		}
		return []string{}, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }

	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline, getTags = origST, origGP, origML, origTags
	})
}

func loggedIn(role models.Role) *fakeState {
	u := &models.User{ID: 2, Name: "Test", Email: "user", Age: 30, Role: role}
	return &fakeState{session: models.Session{IsAuthenticated: true, Token: "t1", User: u}}
}
