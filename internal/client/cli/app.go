package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/recipes/internal/client/api"
	"github.com/dmitrijs2005/recipes/internal/client/apperror"
	"github.com/dmitrijs2005/recipes/internal/client/config"
	"github.com/dmitrijs2005/recipes/internal/client/credential"
	"github.com/dmitrijs2005/recipes/internal/client/imagesrc"
	"github.com/dmitrijs2005/recipes/internal/client/kvstore"
	"github.com/dmitrijs2005/recipes/internal/client/loading"
	"github.com/dmitrijs2005/recipes/internal/client/pagination"
	"github.com/dmitrijs2005/recipes/internal/client/stores"
	"github.com/dmitrijs2005/recipes/internal/logging"
	"github.com/dmitrijs2005/recipes/internal/timex"
)

// view is the list the pager currently walks.
type view int

const (
	viewCatalog view = iota
	viewProfile
)

type App struct {
	cfg *config.Config
	log logging.Logger
	db  *sql.DB

	session *stores.SessionStore
	profile *stores.ProfileStore
	catalog *stores.CatalogStore
	tokens  *stores.TokenStore
	pager   *pagination.Paginator
	images  *imagesrc.Resolver
	nav     *navigator

	reader *bufio.Reader
	out    io.Writer
	view   view
}

// deps are the pieces NewApp builds from the environment; tests supply
// their own.
type deps struct {
	kv     *kvstore.Store
	creds  *credential.Store
	client api.Client
	clock  timex.Clock
	in     io.Reader
	out    io.Writer
}

// NewApp opens the local database at cfg.DBPath and connects the stores to
// the API at cfg.APIBaseURL. The caller must Close the App.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := kvstore.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open local state: %w", err)
	}

	kv := kvstore.NewStore(kvstore.NewSQLiteRepository(db))
	creds := credential.NewStore(kv, timex.RealClock())
	client := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, creds, api.WithLogger(log))

	a, err := newApp(ctx, cfg, log, deps{
		kv:     kv,
		creds:  creds,
		client: client,
		clock:  timex.RealClock(),
		in:     os.Stdin,
		out:    os.Stdout,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db
	return a, nil
}

func newApp(ctx context.Context, cfg *config.Config, log logging.Logger, d deps) (*App, error) {
	out := &syncWriter{w: d.out}
	nav := &navigator{}

	opts := []stores.Option{
		stores.WithClock(d.clock),
		stores.WithLogger(log),
		stores.WithNavigator(nav),
		stores.WithNotifier(notifier{w: out}),
		stores.WithAlertDelay(cfg.AlertDelay),
		stores.WithSessionTTL(cfg.SessionTTL),
	}

	session, err := stores.NewSessionStore(ctx, d.client, d.kv, d.creds, opts...)
	if err != nil {
		return nil, err
	}

	card := loading.NewFlag(cfg.ProfileLoadFloor, d.clock)
	collection := loading.NewFlag(cfg.CollectionLoadFloor, d.clock)

	profile, err := stores.NewProfileStore(ctx, d.client, d.kv, session, card, collection, opts...)
	if err != nil {
		return nil, err
	}

	pager, err := pagination.New(ctx, d.kv, cfg.PageSize)
	if err != nil {
		log.Warn(ctx, "persisted page ignored", "err", err)
	}

	return &App{
		cfg:     cfg,
		log:     log,
		session: session,
		profile: profile,
		catalog: stores.NewCatalogStore(d.client, session, collection, opts...),
		tokens:  stores.NewTokenStore(d.client, opts...),
		pager:   pager,
		images: imagesrc.NewResolver(imagesrc.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}),
		nav:    nav,
		reader: bufio.NewReader(d.in),
		out:    out,
	}, nil
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the recipes CLI (type 'help' for commands)")

	if a.session.IsAuthenticated(ctx) {
		fmt.Fprintf(a.out, "Signed in as %s\n", a.session.Login())
	}

	r := &repl{
		in:       a.reader,
		out:      a.out,
		cmds:     a.commands(),
		status:   a.getStatus,
		loggedIn: func() bool { return a.session.IsAuthenticated(ctx) },
		after:    a.follow,
	}
	r.run(ctx)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) getStatus() string {
	s := a.session.Login()
	if s == "" {
		s = "anonymous"
	}
	if a.catalog.Loading() || a.profile.Loading() {
		s += " loading"
	}
	return fmt.Sprintf("(%s)", s)
}

// follow carries out the navigation the last command requested.
func (a *App) follow(ctx context.Context) {
	path, moved, editor := a.nav.take()

	if moved {
		if path == stores.SignInPath {
			fmt.Fprintln(a.out, "Signed out. Use 'signin' to continue.")
		} else if login, ok := loginFromPath(path); ok {
			if err := a.showProfile(ctx, login); err != nil {
				fmt.Fprintln(a.out, "Error:", apperror.UserMessage(err))
			}
		}
	}
	if editor {
		fmt.Fprintln(a.out, "Run 'edit' to change your profile again.")
	}
}
