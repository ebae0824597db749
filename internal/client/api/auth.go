package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
)

// ErrNoAccessToken is returned when a login or refresh response lacks the
// access token.
var ErrNoAccessToken = errors.New("response carries no access token")

// Login posts the credentials and returns the issued access token. The
// refresh cookie is kept by the gateway's cookie jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (TokenPair, error) {
	var out TokenPair
	if _, err := c.callJSON(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return TokenPair{}, err
	}
	if out.AccessToken == "" {
		return TokenPair{}, ErrNoAccessToken
	}
	return out, nil
}

func (c *Client) Signup(ctx context.Context, in SignupInput) (string, error) {
	form := formdata.New().
		Field("email", in.Email).
		Field("password", in.Password).
		Field("nickname", in.Nickname).
		File("profileImage", in.ProfileImage)
	resp, err := c.callForm(ctx, http.MethodPost, "/auth/signup", form, nil)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Refresh calls the refresh endpoint explicitly. A 401 here is returned as
// is and never triggers the gateway's own refresh.
func (c *Client) Refresh(ctx context.Context) (TokenPair, error) {
	var out TokenPair
	if _, err := c.call(ctx, http.MethodPost, "/auth/refresh", &out); err != nil {
		return TokenPair{}, err
	}
	if out.AccessToken == "" {
		return TokenPair{}, ErrNoAccessToken
	}
	return out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodPost, "/auth/logout", nil)
	return err
}
