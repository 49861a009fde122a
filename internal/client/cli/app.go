package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophdiary/internal/client/client"
	"github.com/dmitrijs2005/gophdiary/internal/client/config"
	"github.com/dmitrijs2005/gophdiary/internal/client/guard"
	"github.com/dmitrijs2005/gophdiary/internal/client/services"
	"github.com/dmitrijs2005/gophdiary/internal/client/session"
	"github.com/dmitrijs2005/gophdiary/internal/client/state"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// sessionState is the part of state.Container the commands use.
type sessionState interface {
	Snapshot() models.Session
	Login(ctx context.Context, creds models.Credentials) error
	Register(ctx context.Context, profile models.Profile) (*models.User, error)
	Logout(ctx context.Context)
	RestoreAuth(ctx context.Context)
	ClearError()
}

type routeGuard interface {
	Check(ctx context.Context, route string) guard.Decision
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	state   sessionState
	diaries services.DiaryService
	guard   routeGuard
	reader  *bufio.Reader
	out     io.Writer

	mu    sync.Mutex
	route string
}

// NewApp opens the session database and wires the client stack. The App
// itself is the navigator of the auth service and the state container.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		config: c,
		logger: logger,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		route:  guard.RouteHome,
	}

	store := session.NewStore(db, logger)
	auth := services.NewAuthService(api, store, app, logger)
	st := state.New(auth, store, app, logger)
	st.Subscribe(func(s models.Session) {
		logger.Debug(ctx, "session changed", "authenticated", s.IsAuthenticated, "loading", s.Loading)
	})

	diaries := services.NewDiaryService(api, st, logger)
	diaries.OnSessionExpired(st.ExpireSession)

	app.state = st
	app.diaries = diaries
	app.guard = guard.New(st, store)
	return app, nil
}

// Navigate implements services.Navigator and state.Navigator.
func (a *App) Navigate(route string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.route = route
}

func (a *App) currentRoute() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// Run restores the persisted session before any command can reach a
// protected route, then blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.state.RestoreAuth(ctx)
	if u := a.state.Snapshot().User; u != nil {
		a.Navigate(guard.LandingRoute(u))
		printlnFn("Welcome back,", u.Name)
	}

	printlnFn("Diary CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing session database failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.state.Snapshot().IsAuthenticated
}

func (a *App) getStatus() string {
	s := a.state.Snapshot()
	if s.User != nil {
		return fmt.Sprintf("%s %s", s.User.Email, a.currentRoute())
	}
	return a.currentRoute()
}

// enter asks the guard for route and moves there when allowed. On denial
// it follows the redirect and reports false.
func (a *App) enter(ctx context.Context, route string) bool {
	d := a.guard.Check(ctx, route)
	if !d.Allowed {
		if guard.IsKnown(route) {
			printlnFn("Access denied, redirecting to", d.Redirect)
		} else {
			printlnFn("Unknown route, redirecting to", d.Redirect)
		}
		a.Navigate(d.Redirect)
		return false
	}
	a.Navigate(route)
	return true
}
