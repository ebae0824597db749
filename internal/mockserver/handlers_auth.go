package mockserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/common"
)

func (s *Server) issueTokens(w http.ResponseWriter, u api.User) (api.TokenPair, error) {
	now := s.now()
	access, err := generateToken(u.UserID, u.Email, []byte(s.cfg.SigningKey), now, s.cfg.AccessTTL)
	if err != nil {
		return api.TokenPair{}, err
	}
	s.setRefreshCookie(w, s.store.issueRefresh(u.UserID, s.cfg.RefreshTTL, now))
	return api.TokenPair{AccessToken: access}, nil
}

func (s *Server) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshCookieName,
		Value:    token,
		Path:     "/auth",
		MaxAge:   int(s.cfg.RefreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "malformed login request")
		return
	}
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := s.store.authenticate(creds.Email, creds.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	pair, err := s.issueTokens(w, u)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info(r.Context(), "user logged in", "user_id", u.UserID)
	writeData(w, http.StatusOK, pair)
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form")
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	nickname := strings.TrimSpace(r.FormValue("nickname"))
	if email == "" || password == "" || nickname == "" {
		writeError(w, http.StatusBadRequest, "email, password and nickname are required")
		return
	}
	image, err := s.saveUpload(r, "profileImage")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if _, err := s.store.createUser(email, password, nickname, image); err != nil {
		if errors.Is(err, errConflict) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		s.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "signup complete")
}

// refresh rotates the refresh cookie and issues a new access token.
func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(common.RefreshCookieName)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	now := s.now()
	userID, next, err := s.store.rotateRefresh(c.Value, s.cfg.RefreshTTL, now)
	if err != nil {
		s.log.Debug(r.Context(), "refresh rejected", "err", err)
		clearRefreshCookie(w)
		writeError(w, http.StatusUnauthorized, "refresh token invalid or expired")
		return
	}
	u, err := s.store.user(userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	access, err := generateToken(u.UserID, u.Email, []byte(s.cfg.SigningKey), now, s.cfg.AccessTTL)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.setRefreshCookie(w, next)
	writeData(w, http.StatusOK, api.TokenPair{AccessToken: access})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(common.RefreshCookieName); err == nil {
		s.store.revokeRefresh(c.Value)
	}
	clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
