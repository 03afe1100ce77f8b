package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/examhub/internal/client/client"
	"github.com/dmitrijs2005/examhub/internal/client/config"
	"github.com/dmitrijs2005/examhub/internal/client/credentials"
	"github.com/dmitrijs2005/examhub/internal/client/errmap"
	"github.com/dmitrijs2005/examhub/internal/client/models"
	"github.com/dmitrijs2005/examhub/internal/client/services"
	"github.com/dmitrijs2005/examhub/internal/client/transport"
	"github.com/dmitrijs2005/examhub/internal/filex"
	"github.com/dmitrijs2005/examhub/internal/logging"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	db               *sql.DB
	authService      services.AuthService
	contentService   services.ContentService
	dashboardService services.DashboardService
	user             *models.User
	reader           *bufio.Reader
	out              io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.EffectiveLogLevel(), "text", os.Stderr)

	path, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error preparing database path: %w", err)
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := credentials.NewSecureStore(db, c.StoreSecret)

	tc, err := transport.New(c.BaseURL, store,
		transport.WithTimeout(c.RequestTimeout),
		transport.WithLogger(logger),
		transport.WithErrorMapper(errmap.New(errmap.WithDevMode(c.DevMode))),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	api := client.NewHTTPClient(tc)

	return &App{
		config:           c,
		logger:           logger,
		db:               db,
		authService:      services.NewAuthService(api, store),
		contentService:   services.NewContentService(api),
		dashboardService: services.NewDashboardService(api, store),
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.DisplayName())
}

// restoreSession picks up a session saved by a previous run.
func (a *App) restoreSession(ctx context.Context) {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.logger.Debug(ctx, "no stored session", "error", err)
		return
	}
	a.user = u
	fmt.Fprintf(a.out, "Welcome back, %s\n", u.DisplayName())
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	fmt.Fprintln(a.out, "Welcome to ExamHub CLI (type 'help' for commands)")
	a.restoreSession(ctx)
	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
