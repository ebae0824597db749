package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/clubhub/internal/common"
)

const refreshFlightKey = "refresh"

// refresh returns a usable access token after staleToken was rejected.
// Concurrent callers share one flight; each stops waiting when its own ctx
// is done while the flight completes for the others.
func (g *Gateway) refresh(ctx context.Context, staleToken string, generation uint64) (string, error) {
	ch := g.flight.DoChan(refreshFlightKey, func() (any, error) {
		return g.runRefresh(context.WithoutCancel(ctx), staleToken, generation)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", transportError(ctx.Err())
	}
}

func (g *Gateway) runRefresh(ctx context.Context, staleToken string, generation uint64) (string, error) {
	// The session already expired after this caller sent its request.
	if g.expiries.Load() != generation {
		return "", ErrSessionExpired
	}
	// Another caller refreshed after this one sent its request.
	if current, ok := g.tokens.AccessToken(ctx); ok && current != staleToken {
		return current, nil
	}

	rctx, cancel := context.WithTimeout(ctx, g.refreshTimeout)
	defer cancel()

	token, err := g.requestNewToken(rctx)
	if err != nil {
		g.logger.Warn(ctx, "token refresh failed", "err", err)
		g.expireSession(ctx)
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	if err := g.tokens.StoreToken(ctx, token); err != nil {
		g.logger.Error(ctx, "failed to persist refreshed token", "err", err)
	}
	g.logger.Info(ctx, "access token refreshed")
	return token, nil
}

// requestNewToken calls the refresh endpoint directly. The refresh
// credential travels in the cookie jar, never as a bearer header.
func (g *Gateway) requestNewToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+g.refreshPath, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	req.Header.Set("Accept", common.JSONContentType)
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("refresh endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if strings.TrimSpace(body.Data.AccessToken) == "" {
		return "", errors.New("refresh response carries no access token")
	}
	return body.Data.AccessToken, nil
}

// expireSession purges the token, shows the notice once per session and
// sends the user to the login entry point.
func (g *Gateway) expireSession(ctx context.Context) {
	g.expiries.Add(1)

	if err := g.tokens.RemoveToken(ctx); err != nil {
		g.logger.Error(ctx, "failed to remove access token", "err", err)
	}

	shown, err := g.session.Get(ctx, common.LogoutNoticeShownKey)
	if err != nil {
		g.logger.Warn(ctx, "failed to read session flag", "key", common.LogoutNoticeShownKey, "err", err)
	}
	if len(shown) == 0 {
		if err := g.session.Set(ctx, common.LogoutNoticeShownKey, []byte("true")); err != nil {
			g.logger.Warn(ctx, "failed to set session flag", "key", common.LogoutNoticeShownKey, "err", err)
		}
		g.notifier.Notify(ctx, SessionExpiredNotice)
	}

	g.logger.Info(ctx, "session expired, redirecting", "location", g.loginPath)
	g.navigator.Redirect(ctx, g.loginPath)
}
