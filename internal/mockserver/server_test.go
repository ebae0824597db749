package mockserver

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
	"github.com/dmitrijs2005/clubhub/internal/client/gateway"
	"github.com/dmitrijs2005/clubhub/internal/client/services"
	"github.com/dmitrijs2005/clubhub/internal/client/storage"
	"github.com/dmitrijs2005/clubhub/internal/client/tokens"
	"github.com/dmitrijs2005/clubhub/internal/common"
	"github.com/dmitrijs2005/clubhub/internal/logging"
)

const testPassword = "Secret#123"

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig(t *testing.T) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.AccessTTL = time.Minute
	cfg.RefreshTTL = 10 * time.Minute
	cfg.BcryptCost = bcrypt.MinCost
	cfg.UploadDir = t.TempDir()
	return cfg
}

func newTestServer(t *testing.T, clk *clock) *httptest.Server {
	t.Helper()
	srv, err := New(testConfig(t), nil, WithClock(clk.Now))
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// session is one logged-in terminal wired the way cmd/cli wires it.
type session struct {
	mu        sync.Mutex
	notices   []string
	redirects []string

	tokens  *tokens.Store
	auth    services.AuthService
	clubs   services.ClubService
	posts   services.PostService
	profile services.ProfileService
}

func (s *session) Notify(_ context.Context, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, msg)
}

func (s *session) Redirect(_ context.Context, location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirects = append(s.redirects, location)
}

func newSession(t *testing.T, baseURL string, clk *clock) *session {
	t.Helper()
	s := &session{}
	s.tokens = tokens.NewStore(storage.NewMemory(), tokens.Options{Now: clk.Now})
	gw, err := gateway.New(baseURL, s.tokens, gateway.Options{Notifier: s, Navigator: s})
	require.NoError(t, err)

	client := api.New(gw)
	s.auth = services.NewAuthService(client, s.tokens, nil)
	s.clubs = services.NewClubService(client, nil)
	s.posts = services.NewPostService(client)
	s.profile = services.NewProfileService(client, s.tokens)
	return s
}

func signupAndLogin(t *testing.T, s *session, email, nickname string) {
	t.Helper()
	ctx := context.Background()
	msg, err := s.auth.Signup(ctx, services.SignupRequest{
		Email:           email,
		Password:        testPassword,
		PasswordConfirm: testPassword,
		Nickname:        nickname,
	})
	require.NoError(t, err)
	assert.Equal(t, "signup complete", msg)
	require.NoError(t, s.auth.Login(ctx, email, testPassword))
}

func TestServer_LoginThenMe(t *testing.T) {
	clk := newClock()
	ts := newTestServer(t, clk)
	s := newSession(t, ts.URL, clk)
	signupAndLogin(t, s, "kim@uni.ac", "kim")

	me, err := s.profile.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kim@uni.ac", me.Email)
	assert.Equal(t, "kim", me.Nickname)

	claims, err := s.auth.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kim@uni.ac", claims.Email)
}

func TestServer_WrongPassword(t *testing.T) {
	clk := newClock()
	ts := newTestServer(t, clk)
	s := newSession(t, ts.URL, clk)
	signupAndLogin(t, s, "kim@uni.ac", "kim")

	// a rejected login is a 401 like any other: with no refresh cookie to
	// fall back on, the session ends
	other := newSession(t, ts.URL, clk)
	err := other.auth.Login(context.Background(), "kim@uni.ac", "nope")
	require.ErrorIs(t, err, gateway.ErrSessionExpired)
	assert.False(t, other.auth.IsLoggedIn(context.Background()))
	assert.Equal(t, []string{gateway.DefaultLoginPath}, other.redirects)
}

func TestServer_DuplicateSignupConflicts(t *testing.T) {
	clk := newClock()
	ts := newTestServer(t, clk)
	s := newSession(t, ts.URL, clk)
	signupAndLogin(t, s, "kim@uni.ac", "kim")

	_, err := s.auth.Signup(context.Background(), services.SignupRequest{
		Email: "KIM@uni.ac", Password: testPassword, PasswordConfirm: testPassword, Nickname: "kim2",
	})
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "email already registered", apiErr.Message)
}

func TestServer_SilentRefreshAfterAccessExpiry(t *testing.T) {
	clk := newClock()
	ts := newTestServer(t, clk)
	s := newSession(t, ts.URL, clk)
	signupAndLogin(t, s, "kim@uni.ac", "kim")

	clk.Advance(2 * time.Minute)

	me, err := s.profile.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kim", me.Nickname)
	assert.True(t, s.auth.IsLoggedIn(context.Background()))
	assert.Empty(t, s.redirects)
	assert.Empty(t, s.notices)
}

func TestServer_RefreshExpiryEndsSession(t *testing.T) {
	clk := newClock()
	ts := newTestServer(t, clk)
	s := newSession(t, ts.URL, clk)
	signupAndLogin(t, s, "kim@uni.ac", "kim")

	clk.Advance(11 * time.Minute)

	_, err := s.profile.Me(context.Background())
	require.ErrorIs(t, err, gateway.ErrSessionExpired)
	assert.False(t, s.auth.IsLoggedIn(context.Background()))
	assert.Equal(t, []string{gateway.DefaultLoginPath}, s.redirects)
	assert.Equal(t, []string{gateway.SessionExpiredNotice}, s.notices)

	// a second expiry in the same session redirects again without a notice
	require.NoError(t, s.auth.Login(context.Background(), "kim@uni.ac", testPassword))
	clk.Advance(11 * time.Minute)
	_, err = s.profile.Me(context.Background())
	require.ErrorIs(t, err, gateway.ErrSessionExpired)
	assert.Equal(t, []string{gateway.SessionExpiredNotice}, s.notices)
	assert.Equal(t, []string{gateway.DefaultLoginPath, gateway.DefaultLoginPath}, s.redirects)
}

func TestServer_LogoutRevokesRefresh(t *testing.T) {
	clk := newClock()
	ts := newTestServer(t, clk)
	s := newSession(t, ts.URL, clk)
	signupAndLogin(t, s, "kim@uni.ac", "kim")

	require.NoError(t, s.auth.Logout(context.Background()))
	assert.False(t, s.auth.IsLoggedIn(context.Background()))

	_, err := s.profile.Me(context.Background())
	require.ErrorIs(t, err, gateway.ErrSessionExpired)
}

func TestServer_ClubMembershipFlow(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	ts := newTestServer(t, clk)

	leader := newSession(t, ts.URL, clk)
	signupAndLogin(t, leader, "lead@uni.ac", "lead")
	member := newSession(t, ts.URL, clk)
	signupAndLogin(t, member, "mem@uni.ac", "mem")

	club, err := leader.clubs.Create(ctx, api.ClubInput{
		ClubName:     "Go Club",
		Intro:        "gophers",
		LocationName: "Room 101",
		Description:  "weekly study",
		ClubType:     api.ClubTypeClub,
		Tags:         []string{"go", "study"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, club.MemberCount)

	require.NoError(t, member.clubs.Apply(ctx, club.ClubID))
	err = member.clubs.Apply(ctx, club.ClubID)
	assert.True(t, gateway.IsStatus(err, http.StatusConflict))

	_, err = member.clubs.Applications(ctx, club.ClubID)
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, gateway.MsgForbidden, apiErr.Message)

	apps, err := leader.clubs.Applications(ctx, club.ClubID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "mem", apps[0].Nickname)

	require.NoError(t, leader.clubs.Approve(ctx, club.ClubID, apps[0].UserID))

	st, err := member.clubs.Status(ctx, club.ClubID)
	require.NoError(t, err)
	assert.Equal(t, api.JoinStatus{Status: api.JoinActive, Role: api.RoleMember}, st)

	members, err := leader.clubs.Members(ctx, club.ClubID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	listing, err := member.clubs.List(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.True(t, listing[0].IsMine)

	require.NoError(t, leader.clubs.Kick(ctx, club.ClubID, apps[0].UserID))
	_, err = member.clubs.Status(ctx, club.ClubID)
	assert.True(t, gateway.IsStatus(err, http.StatusNotFound))
}

func TestServer_PostsAndLikes(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	ts := newTestServer(t, clk)
	s := newSession(t, ts.URL, clk)
	signupAndLogin(t, s, "kim@uni.ac", "kim")

	p, err := s.posts.Create(ctx, api.PostInput{Scope: api.ScopeGlobal, Title: "hello", Content: "first post", Tags: []string{"intro"}})
	require.NoError(t, err)
	assert.Equal(t, "kim", p.AuthorName)

	like, err := s.posts.ToggleLike(ctx, p.PostID)
	require.NoError(t, err)
	assert.Equal(t, api.LikeState{IsLiked: true, LikeCount: 1}, like)

	like, err = s.posts.ToggleLike(ctx, p.PostID)
	require.NoError(t, err)
	assert.Equal(t, api.LikeState{IsLiked: false, LikeCount: 0}, like)

	_, err = s.posts.Create(ctx, api.PostInput{Scope: api.ScopeClub, ClubID: 999, Title: "x", Content: "y"})
	assert.True(t, gateway.IsStatus(err, http.StatusNotFound))

	page, err := s.posts.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)

	require.NoError(t, s.posts.Delete(ctx, p.PostID))
	_, err = s.posts.Get(ctx, p.PostID)
	assert.True(t, gateway.IsStatus(err, http.StatusNotFound))
}

func TestServer_ProfileImageIsServed(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	ts := newTestServer(t, clk)
	s := newSession(t, ts.URL, clk)
	signupAndLogin(t, s, "kim@uni.ac", "kim")

	u, err := s.profile.UpdateImage(ctx, formdata.File{Name: "me.PNG", ContentType: "image/png", Content: []byte("png-bytes")})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u.ProfileImage, "/uploads/"))
	assert.True(t, strings.HasSuffix(u.ProfileImage, ".png"))

	resp, err := http.Get(ts.URL + u.ProfileImage)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "png-bytes", string(body))

	require.NoError(t, s.profile.DeleteImage(ctx))
	me, err := s.profile.Me(ctx)
	require.NoError(t, err)
	assert.Empty(t, me.ProfileImage)
}

func TestServer_DeleteAccountLogsOut(t *testing.T) {
	clk := newClock()
	ts := newTestServer(t, clk)
	s := newSession(t, ts.URL, clk)
	signupAndLogin(t, s, "kim@uni.ac", "kim")

	require.NoError(t, s.profile.DeleteAccount(context.Background()))
	assert.False(t, s.auth.IsLoggedIn(context.Background()))

	err := s.auth.Login(context.Background(), "kim@uni.ac", testPassword)
	require.ErrorIs(t, err, gateway.ErrSessionExpired)
}

func TestServer_RejectsMissingBearer(t *testing.T) {
	ts := newTestServer(t, newClock())

	resp, err := http.Get(ts.URL + "/users/me")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

// lockedBuffer lets the test read logs the server goroutine writes.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServer_LogsClientRequestID(t *testing.T) {
	var logs lockedBuffer
	logger, err := logging.New(&logs, "info", logging.FormatJSON)
	require.NoError(t, err)
	srv, err := New(testConfig(t), logger)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/clubs", nil)
	require.NoError(t, err)
	req.Header.Set(common.RequestIDHeaderName, "client-req-42")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.Eventually(t, func() bool {
		return strings.Contains(logs.String(), `"request_id":"client-req-42"`)
	}, time.Second, 10*time.Millisecond)
}
