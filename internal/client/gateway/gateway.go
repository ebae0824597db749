package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/clubhub/internal/client/storage"
	"github.com/dmitrijs2005/clubhub/internal/common"
	"github.com/dmitrijs2005/clubhub/internal/logging"
)

const (
	DefaultRefreshPath    = "/auth/refresh"
	DefaultLoginPath      = "/login.html"
	DefaultRequestTimeout = 15 * time.Second
	DefaultRefreshTimeout = 10 * time.Second

	// SessionExpiredNotice is shown once per session when the refresh fails.
	SessionExpiredNotice = "Your session has expired. Please log in again."
)

// TokenStore is the access token lifecycle the gateway depends on.
// AccessToken reports false when no fresh token is available.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, bool)
	StoreToken(ctx context.Context, token string) error
	RemoveToken(ctx context.Context) error
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Navigator moves the user to another entry point of the application.
type Navigator interface {
	Redirect(ctx context.Context, location string)
}

type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) { f(ctx, message) }

type NavigatorFunc func(ctx context.Context, location string)

func (f NavigatorFunc) Redirect(ctx context.Context, location string) { f(ctx, location) }

// Options configures a Gateway. Zero values select the defaults.
type Options struct {
	// HTTPClient defaults to NewHTTPClient(RequestTimeout). A client without
	// a cookie jar gets one so the refresh cookie is replayed.
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	RefreshTimeout time.Duration

	RefreshPath string
	LoginPath   string

	// Session holds per-session flags; defaults to an in-memory store.
	Session   storage.Storage
	Notifier  Notifier
	Navigator Navigator
	Logger    logging.Logger
}

type Gateway struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	session    storage.Storage
	notifier   Notifier
	navigator  Navigator
	logger     logging.Logger

	refreshPath    string
	loginPath      string
	refreshTimeout time.Duration

	flight singleflight.Group
	// expiries counts session expiries; callers snapshot it before sending.
	expiries atomic.Uint64
}

// New creates a Gateway for the API rooted at baseURL.
func New(baseURL string, tokens TokenStore, opts Options) (*Gateway, error) {
	if tokens == nil {
		return nil, errors.New("gateway: token store is required")
	}
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: base url %q must be absolute", baseURL)
	}

	g := &Gateway{
		baseURL:        strings.TrimRight(u.String(), "/"),
		tokens:         tokens,
		session:        opts.Session,
		notifier:       opts.Notifier,
		navigator:      opts.Navigator,
		logger:         opts.Logger,
		refreshPath:    opts.RefreshPath,
		loginPath:      opts.LoginPath,
		refreshTimeout: opts.RefreshTimeout,
	}

	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	if opts.HTTPClient == nil {
		if g.httpClient, err = NewHTTPClient(requestTimeout); err != nil {
			return nil, err
		}
	} else {
		c := *opts.HTTPClient
		if c.Jar == nil {
			if c.Jar, err = newCookieJar(); err != nil {
				return nil, err
			}
		}
		g.httpClient = &c
	}

	if g.session == nil {
		g.session = storage.NewMemory()
	}
	if g.notifier == nil {
		g.notifier = NotifierFunc(func(context.Context, string) {})
	}
	if g.navigator == nil {
		g.navigator = NavigatorFunc(func(context.Context, string) {})
	}
	if g.logger == nil {
		g.logger = logging.Nop()
	}
	g.logger = g.logger.With("component", "gateway")
	if g.refreshPath == "" {
		g.refreshPath = DefaultRefreshPath
	}
	if g.loginPath == "" {
		g.loginPath = DefaultLoginPath
	}
	if g.refreshTimeout <= 0 {
		g.refreshTimeout = DefaultRefreshTimeout
	}
	return g, nil
}

// NewHTTPClient returns a client with a cookie jar, so credentials set by
// the API (the refresh cookie) are sent back on every request.
func NewHTTPClient(timeout time.Duration) (*http.Client, error) {
	jar, err := newCookieJar()
	if err != nil {
		return nil, err
	}
	return &http.Client{Timeout: timeout, Jar: jar}, nil
}

func newCookieJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("gateway: cookie jar: %w", err)
	}
	return jar, nil
}

// BaseURL returns the API root without a trailing slash.
func (g *Gateway) BaseURL() string { return g.baseURL }

// Do performs an authenticated call to endpoint, a path relative to the base
// URL. See the package documentation for the full contract.
func (g *Gateway) Do(ctx context.Context, endpoint string, req Request) (*Response, error) {
	generation := g.expiries.Load()
	token, _ := g.tokens.AccessToken(ctx)

	resp, err := g.send(ctx, endpoint, req, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !g.isRefreshEndpoint(endpoint) {
		drain(resp)
		g.logger.Info(ctx, "access token rejected, refreshing", "endpoint", endpoint)

		fresh, err := g.refresh(ctx, token, generation)
		if err != nil {
			return nil, err
		}
		if resp, err = g.send(ctx, endpoint, req, fresh); err != nil {
			return nil, err
		}
	}

	return readResponse(resp)
}

func (g *Gateway) send(ctx context.Context, endpoint string, req Request, token string) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, body)
	if err != nil {
		return nil, transportError(err)
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	if len(req.Body) > 0 && !req.IsFormData {
		httpReq.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", common.JSONContentType)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	ctx = logging.WithRequestID(ctx, requestID)
	if token != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		g.logger.Warn(ctx, "api request failed",
			"method", method, "endpoint", endpoint, "err", err)
		return nil, transportError(err)
	}
	g.logger.Debug(ctx, "api request",
		"method", method, "endpoint", endpoint,
		"status", resp.StatusCode, "elapsed", time.Since(start))
	return resp, nil
}

func (g *Gateway) isRefreshEndpoint(endpoint string) bool {
	path, _, _ := strings.Cut(endpoint, "?")
	return path == g.refreshPath
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
