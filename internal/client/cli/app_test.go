package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/clubhub/internal/client/config"
	"github.com/dmitrijs2005/clubhub/internal/client/gateway"
	"github.com/dmitrijs2005/clubhub/internal/client/services"
	"github.com/dmitrijs2005/clubhub/internal/client/storage"
	"github.com/dmitrijs2005/clubhub/internal/client/tokens"
	"github.com/dmitrijs2005/clubhub/internal/logging"
	"github.com/dmitrijs2005/clubhub/internal/mockserver"
)

// stubPasswords replaces getPassword with a queue of answers.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })
	getPassword = func(string, io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		pw := answers[0]
		answers = answers[1:]
		return pw, nil
	}
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &mockserver.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = bcrypt.MinCost
	cfg.UploadDir = t.TempDir()
	srv, err := mockserver.New(cfg, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func newTestApp(t *testing.T, baseURL, input string, out *bytes.Buffer) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = baseURL
	cfg.StorageDriver = storage.DriverMemory

	app, err := NewApp(context.Background(), cfg, strings.NewReader(input), out, nil)
	require.NoError(t, err)
	return app
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestApp_SessionScript(t *testing.T) {
	ts := newBackend(t)
	stubPasswords(t, "Secret#123", "Secret#123", "Secret#123")

	var out bytes.Buffer
	app := newTestApp(t, ts.URL, script(
		"clubs",
		"signup", "kim@uni.ac", "kim", "",
		"login", "kim@uni.ac",
		"whoami",
		"newclub", "Go Club", "gophers", "Room 101", "weekly study", "", "club", "go, study", "",
		"clubs",
		"status 1",
		"newpost", "", "hello", "first post", "", "intro", "",
		"like 1",
		"posts",
		"logout",
		"exit",
	), &out)
	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "Please log in first.")
	assert.Contains(t, got, "signup complete You can log in now.")
	assert.Contains(t, got, "Login successful.")
	assert.Contains(t, got, "(kim@uni.ac)")
	assert.Contains(t, got, "Club #1 created.")
	assert.Contains(t, got, "* Go Club")
	assert.Contains(t, got, "Status: ACTIVE, role: LEADER")
	assert.Contains(t, got, "You can manage this club.")
	assert.Contains(t, got, "Post #1 published.")
	assert.Contains(t, got, "Liked (1).")
	assert.Contains(t, got, "Logged out.")
	assert.Contains(t, got, "Bye!")
}

func TestApp_WrongPasswordIsReportedAsRejectedLogin(t *testing.T) {
	ts := newBackend(t)
	stubPasswords(t, "Wrong#123")

	var out bytes.Buffer
	app := newTestApp(t, ts.URL, script("login", "nobody@uni.ac", "exit"), &out)
	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "Error: "+errLoginRejected.Error())
	assert.NotContains(t, got, "Your session has ended.")
	assert.NotContains(t, got, "Please log in to continue.")
	assert.Contains(t, got, "Bye!")
}

func TestApp_ValidationErrorsArePrinted(t *testing.T) {
	ts := newBackend(t)
	stubPasswords(t, "short", "other")

	var out bytes.Buffer
	app := newTestApp(t, ts.URL, script("signup", "not-an-email", "has space", "", "exit"), &out)
	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "Invalid input:")
	assert.Contains(t, got, "email: ")
	assert.Contains(t, got, "passwordConfirm: ")
	assert.Contains(t, got, "nickname: must not contain spaces")
}

type fakeAuth struct {
	services.AuthService
	loggedIn bool
	logins   []string
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) error {
	f.logins = append(f.logins, email)
	f.loggedIn = true
	return nil
}

func (f *fakeAuth) IsLoggedIn(context.Context) bool { return f.loggedIn }

func (f *fakeAuth) WhoAmI(context.Context) (tokens.Claims, error) {
	return tokens.Claims{}, services.ErrNotLoggedIn
}

func TestApp_RedirectPromptsForLogin(t *testing.T) {
	stubPasswords(t, "pw")
	auth := &fakeAuth{}
	var out bytes.Buffer
	app := &App{
		authService: auth,
		reader:      rdr("kim@uni.ac\n"),
		out:         &out,
		loginPath:   gateway.DefaultLoginPath,
		logger:      logging.Nop(),
	}

	app.Redirect(context.Background(), "/elsewhere")
	app.afterCommand(context.Background())
	assert.Empty(t, auth.logins)

	app.Notify(context.Background(), gateway.SessionExpiredNotice)
	app.Redirect(context.Background(), gateway.DefaultLoginPath)
	app.afterCommand(context.Background())
	assert.Equal(t, []string{"kim@uni.ac"}, auth.logins)
	assert.Contains(t, out.String(), gateway.SessionExpiredNotice)
	assert.Contains(t, out.String(), "Please log in to continue.")

	// consumed
	app.afterCommand(context.Background())
	assert.Len(t, auth.logins, 1)
}

func TestApp_RedirectWithoutLogger(t *testing.T) {
	var out bytes.Buffer
	app := &App{out: &out, loginPath: gateway.DefaultLoginPath}

	require.NotPanics(t, func() {
		app.Redirect(context.Background(), "/elsewhere")
	})
	assert.False(t, app.relogin.Load())

	app.Redirect(context.Background(), gateway.DefaultLoginPath)
	assert.True(t, app.relogin.Load())
}
