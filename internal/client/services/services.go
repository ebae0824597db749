// Package services contains the application services of the clubhub client.
// They validate user input, call the API and keep the local token state in
// step with the server.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
)

// ErrNotLoggedIn is returned when an operation needs a stored access token.
var ErrNotLoggedIn = errors.New("not logged in")

// API is the subset of the backend the services call. *api.Client
// implements it.
type API interface {
	Login(ctx context.Context, creds api.Credentials) (api.TokenPair, error)
	Signup(ctx context.Context, in api.SignupInput) (string, error)
	Logout(ctx context.Context) error

	Me(ctx context.Context) (api.User, error)
	UpdateProfile(ctx context.Context, in api.ProfileInput) (api.User, error)
	DeleteProfileImage(ctx context.Context) error
	UpdatePassword(ctx context.Context, password string) error
	DeleteAccount(ctx context.Context) error

	Clubs(ctx context.Context) ([]api.Club, error)
	MyClubs(ctx context.Context) ([]api.ClubJoin, error)
	Club(ctx context.Context, clubID int64) (api.Club, error)
	CreateClub(ctx context.Context, in api.ClubInput) (api.Club, error)
	ApplyToClub(ctx context.Context, clubID int64) error
	CancelApplication(ctx context.Context, clubID int64) error
	LeaveClub(ctx context.Context, clubID int64) error
	MyJoinStatus(ctx context.Context, clubID int64) (api.JoinStatus, error)
	PendingApplications(ctx context.Context, clubID int64) ([]api.Application, error)
	ApproveApplication(ctx context.Context, clubID, applicantID int64) error
	RejectApplication(ctx context.Context, clubID, applicantID int64) error
	KickMember(ctx context.Context, clubID, memberID int64) error
	ClubMembers(ctx context.Context, clubID int64) ([]api.Member, error)

	Posts(ctx context.Context, page, limit int) ([]api.Post, error)
	Post(ctx context.Context, postID int64) (api.Post, error)
	CreatePost(ctx context.Context, in api.PostInput) (api.Post, error)
	UpdatePost(ctx context.Context, postID int64, in api.PostInput) (api.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	ToggleLike(ctx context.Context, postID int64) (api.LikeState, error)

	CreateEvent(ctx context.Context, in api.EventInput) (api.Event, error)
}

// Tokens is the local access token state. *tokens.Store implements it.
type Tokens interface {
	StoreToken(ctx context.Context, token string) error
	AccessToken(ctx context.Context) (string, bool)
	RemoveToken(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool
}

var _ API = (*api.Client)(nil)
