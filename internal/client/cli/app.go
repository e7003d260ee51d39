package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/mgiraud/autotrader/internal/client/api"
	"github.com/mgiraud/autotrader/internal/client/bus"
	"github.com/mgiraud/autotrader/internal/client/config"
	"github.com/mgiraud/autotrader/internal/client/session"
	"github.com/mgiraud/autotrader/internal/client/storage"
	"github.com/mgiraud/autotrader/internal/logging"
)

// App bundles everything the interactive client needs.
type App struct {
	config *config.Config
	log    logging.Logger

	db     *sql.DB
	events *bus.Bus
	client api.Client
	store  *session.Store

	reader *bufio.Reader
}

// NewApp wires the client: local state database, event bus, REST client, and
// session store.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "failed to open state database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	events := bus.New()
	client := api.NewRESTClient(cfg.ServerBaseURL, cfg.RequestTimeout, events)
	store := session.NewStore(client, storage.NewSQLiteKV(db), events, log)

	return &App{
		config: cfg,
		log:    log,
		db:     db,
		events: events,
		client: client,
		store:  store,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run hydrates the session and enters the REPL. It blocks until the user
// exits, then releases resources.
func (a *App) Run(ctx context.Context) {
	defer a.closeAll()

	a.store.Initialize(ctx)
	if snap := a.store.Snapshot(); snap.IsAuthenticated {
		printlnFn("Welcome back,", snap.User.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.promptStatus, scanner)
}

func (a *App) closeAll() {
	a.store.Close()
	a.events.Close()
	_ = a.client.Close()
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsAuthenticated
}

// promptStatus is shown in the REPL prompt.
func (a *App) promptStatus() string {
	if snap := a.store.Snapshot(); snap.IsAuthenticated {
		return snap.User.Username
	}
	return "guest"
}
