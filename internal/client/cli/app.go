package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/config"
	"github.com/dmitrijs2005/alumnet/internal/client/credstore"
	"github.com/dmitrijs2005/alumnet/internal/client/localdb"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/alumnet/internal/client/router"
	"github.com/dmitrijs2005/alumnet/internal/client/services"
	"github.com/dmitrijs2005/alumnet/internal/client/session"
	"github.com/dmitrijs2005/alumnet/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// logWriter receives diagnostic logs; screens write to the app's own output.
var logWriter io.Writer = os.Stderr

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	session   *session.Manager
	router    *router.Router
	auth      services.AuthService
	directory services.DirectoryService
	profile   services.ProfileService
	jobs      services.JobService
	dashboard services.DashboardService

	reader *bufio.Reader
	out    io.Writer
	note   notifier

	current router.Route
	filter  models.DirectoryFilter
	// last answers per form field, passwords excluded
	memory map[string]string

	mu   sync.Mutex
	mode Mode
}

// NewApp opens local state and wires the client stack. The caller owns the
// returned App and must Close it.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log := logging.NewTextLogger(logWriter, c.LogLevel)

	db, err := localdb.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.StoragePath, "err", err)
		return nil, err
	}

	store := credstore.New(metadata.NewSQLiteRepository(db))
	cred := &client.Credential{}
	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, cred)

	sm := session.New(api, store, cred,
		session.WithLogger(log.With("component", "session")),
		session.WithTimeout(c.RequestTimeout),
	)

	return &App{
		config:    c,
		log:       log,
		db:        db,
		session:   sm,
		router:    router.New(sm),
		auth:      services.NewAuthService(sm, api, store),
		directory: services.NewDirectoryService(api),
		profile:   services.NewProfileService(sm, api, log.With("component", "profile")),
		jobs:      services.NewJobService(api),
		dashboard: services.NewDashboardService(sm, api),
		reader:    bufio.NewReader(in),
		out:       out,
		note:      notifier{w: out},
		memory:    map[string]string{},
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run resolves the stored session, opens the landing screen and serves
// commands until the input ends or the user exits.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Bootstrap(ctx); err != nil {
		return err
	}

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.PingInterval)

	if err := a.Navigate(ctx, router.PathHome); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	a.note.info("Type 'help' for commands")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the API every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) loggedIn() bool {
	return a.session.State() == session.Authenticated
}

func (a *App) getStatus() string {
	s := "guest"
	if me, ok := a.session.Identity(); ok {
		s = me.FirstName
	}
	if m := a.getMode(); m != "" {
		s += " " + string(m)
	}
	return s + " " + a.current.Path
}
