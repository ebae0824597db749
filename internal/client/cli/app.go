package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/client/config"
	"github.com/dmitrijs2005/clubhub/internal/client/gateway"
	"github.com/dmitrijs2005/clubhub/internal/client/services"
	"github.com/dmitrijs2005/clubhub/internal/client/storage"
	"github.com/dmitrijs2005/clubhub/internal/client/tokens"
	"github.com/dmitrijs2005/clubhub/internal/logging"
)

type App struct {
	authService    services.AuthService
	clubService    services.ClubService
	postService    services.PostService
	eventService   services.EventService
	profileService services.ProfileService

	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
	loginPath string
	store     storage.Storage

	// relogin is set by Redirect and consumed by the REPL.
	relogin atomic.Bool
}

// NewApp wires persistent storage, the token store, the gateway and the
// services. The App itself receives the gateway's session notices and
// redirects.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	store, err := storage.Open(ctx, c.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	ts := tokens.NewStore(store, tokens.Options{Freshness: c.TokenFreshness, Logger: logger})

	a := &App{
		logger:    logger,
		reader:    bufio.NewReader(in),
		out:       out,
		loginPath: c.LoginPath,
		store:     store,
	}

	gw, err := gateway.New(c.BaseURL, ts, gateway.Options{
		RequestTimeout: c.RequestTimeout,
		RefreshTimeout: c.RefreshTimeout,
		LoginPath:      c.LoginPath,
		Session:        storage.NewMemory(),
		Notifier:       a,
		Navigator:      a,
		Logger:         logger,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	client := api.New(gw)
	a.authService = services.NewAuthService(client, ts, logger)
	a.clubService = services.NewClubService(client, logger)
	a.postService = services.NewPostService(client)
	a.eventService = services.NewEventService(client)
	a.profileService = services.NewProfileService(client, ts)

	return a, nil
}

// Notify prints a session message from the gateway.
func (a *App) Notify(_ context.Context, message string) {
	fmt.Fprintf(a.out, "\n! %s\n", message)
}

// Redirect handles the gateway sending the user elsewhere. Only the login
// entry point is meaningful in a terminal: the REPL asks for credentials
// before the next command.
func (a *App) Redirect(ctx context.Context, location string) {
	if location != a.loginPath {
		a.log().Warn(ctx, "ignoring redirect", "location", location)
		return
	}
	a.relogin.Store(true)
}

func (a *App) log() logging.Logger {
	if a.logger == nil {
		return logging.Nop()
	}
	return a.logger
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.IsLoggedIn(ctx)
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to clubhub (type 'help' for commands)")
	if !a.isLoggedIn(ctx) {
		fmt.Fprintln(a.out, "You are not logged in. Use 'login' or 'signup'.")
	}
	runREPL(ctx, a.repl())
}

func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *App) status(ctx context.Context) string {
	claims, err := a.authService.WhoAmI(ctx)
	if err != nil || claims.Email == "" {
		return ""
	}
	return "(" + claims.Email + ")"
}

// afterCommand prompts for login once the session expired.
func (a *App) afterCommand(ctx context.Context) {
	if !a.relogin.Swap(false) {
		return
	}
	fmt.Fprintln(a.out, "Please log in to continue.")
	if err := a.Login(ctx, nil); err != nil {
		fmt.Fprintln(a.out, describe(err))
	}
}
