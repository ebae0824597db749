package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
)

const DefaultPageSize = 10

// Posts returns one page of posts; page starts at 1.
func (c *Client) Posts(ctx context.Context, page, limit int) ([]Post, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out []Post
	_, err := c.call(ctx, http.MethodGet, "/posts?"+q.Encode(), &out)
	return out, err
}

func (c *Client) Post(ctx context.Context, postID int64) (Post, error) {
	var out Post
	_, err := c.call(ctx, http.MethodGet, "/posts/"+id(postID), &out)
	return out, err
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (Post, error) {
	var out Post
	_, err := c.callForm(ctx, http.MethodPost, "/posts", postForm(in), &out)
	return out, err
}

func (c *Client) UpdatePost(ctx context.Context, postID int64, in PostInput) (Post, error) {
	var out Post
	_, err := c.callForm(ctx, http.MethodPatch, "/posts/"+id(postID), postForm(in), &out)
	return out, err
}

func (c *Client) DeletePost(ctx context.Context, postID int64) error {
	_, err := c.call(ctx, http.MethodDelete, "/posts/"+id(postID), nil)
	return err
}

// ToggleLike flips the caller's like on a post.
func (c *Client) ToggleLike(ctx context.Context, postID int64) (LikeState, error) {
	var out LikeState
	_, err := c.call(ctx, http.MethodPost, "/posts/"+id(postID)+"/like", &out)
	return out, err
}

func postForm(in PostInput) *formdata.Form {
	form := formdata.New().Field("scope", in.Scope)
	if in.Scope == ScopeClub {
		form.Field("clubId", id(in.ClubID))
	}
	return form.
		Field("title", in.Title).
		Field("content", in.Content).
		Fields("tags", in.Tags).
		Files("images", in.Images)
}
