package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
)

func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	_, err := c.call(ctx, http.MethodGet, "/users/me", &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileInput) (User, error) {
	form := formdata.New().
		OptionalField("nickname", in.Nickname).
		File("profileImage", in.ProfileImage)
	var out User
	_, err := c.callForm(ctx, http.MethodPatch, "/users", form, &out)
	return out, err
}

func (c *Client) DeleteProfileImage(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodDelete, "/users/profile-image", nil)
	return err
}

func (c *Client) UpdatePassword(ctx context.Context, password string) error {
	_, err := c.callJSON(ctx, http.MethodPatch, "/users/password", map[string]string{"password": password}, nil)
	return err
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodDelete, "/users", nil)
	return err
}
