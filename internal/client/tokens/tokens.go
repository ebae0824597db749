// Package tokens manages the lifecycle of the access token on the client:
// persisting it with its capture time, enforcing the local freshness window
// and purging it.
//
// Failures never surface as errors from the read path: a token that cannot
// be read, is stale, or is an expired JWT is simply reported absent.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/clubhub/internal/client/storage"
	"github.com/dmitrijs2005/clubhub/internal/common"
	"github.com/dmitrijs2005/clubhub/internal/logging"
)

// DefaultFreshness is how long a stored token is trusted without any server
// signal.
const DefaultFreshness = 15 * time.Minute

type Options struct {
	// Freshness overrides DefaultFreshness when positive.
	Freshness time.Duration
	// Now overrides time.Now.
	Now    func() time.Time
	Logger logging.Logger
}

type Store struct {
	storage   storage.Storage
	freshness time.Duration
	now       func() time.Time
	logger    logging.Logger
}

func NewStore(s storage.Storage, opts Options) *Store {
	st := &Store{storage: s, freshness: opts.Freshness, now: opts.Now, logger: opts.Logger}
	if st.freshness <= 0 {
		st.freshness = DefaultFreshness
	}
	if st.now == nil {
		st.now = time.Now
	}
	if st.logger == nil {
		st.logger = logging.Nop()
	}
	return st
}

// StoreToken persists token together with the current time.
func (s *Store) StoreToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return common.ErrInvalidToken
	}
	storedAt := strconv.FormatInt(s.now().UnixMilli(), 10)
	err := s.storage.SetMany(ctx, map[string][]byte{
		common.AccessTokenKey:   []byte(token),
		common.TokenStoredAtKey: []byte(storedAt),
	})
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// AccessToken returns the stored token if it is present and fresh. A stale
// token is purged before reporting absence.
func (s *Store) AccessToken(ctx context.Context) (string, bool) {
	raw, err := s.storage.Get(ctx, common.AccessTokenKey)
	if err != nil {
		s.logger.Warn(ctx, "access token unreadable", "err", err)
		return "", false
	}
	if len(raw) == 0 {
		return "", false
	}
	token := string(raw)

	if err := s.checkFreshness(ctx, token); err != nil {
		s.logger.Warn(ctx, "local access token expired", "reason", err)
		s.purge(ctx)
		return "", false
	}
	return token, true
}

// RemoveToken clears the token and its timestamp.
func (s *Store) RemoveToken(ctx context.Context) error {
	if err := s.storage.Delete(ctx, common.AccessTokenKey, common.TokenStoredAtKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (s *Store) IsLoggedIn(ctx context.Context) bool {
	_, ok := s.AccessToken(ctx)
	return ok
}

var errNoTimestamp = errors.New("capture time missing")

func (s *Store) checkFreshness(ctx context.Context, token string) error {
	raw, err := s.storage.Get(ctx, common.TokenStoredAtKey)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errNoTimestamp
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("capture time %q: %w", raw, err)
	}

	now := s.now()
	if now.Sub(time.UnixMilli(ms)) > s.freshness {
		return fmt.Errorf("older than %s", s.freshness)
	}

	// opaque tokens carry no expiry and are judged by the window alone
	if claims, err := ParseClaims(token); err == nil && claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return common.ErrTokenExpired
	}
	return nil
}

func (s *Store) purge(ctx context.Context) {
	if err := s.RemoveToken(ctx); err != nil {
		s.logger.Error(ctx, "purging stale token failed", "err", err)
	}
}
