package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
)

// fakeAPI implements API for unit tests. Unset results return zero values.
type fakeAPI struct {
	LoginRet  api.TokenPair
	LoginErr  error
	SignupRet string
	SignupErr error
	LogoutErr error

	MeRet             api.User
	UpdateProfileErr  error
	UpdatePasswordErr error
	DeleteAccountErr  error

	ClubsRet      []api.Club
	ClubsErr      error
	MyClubsRet    []api.ClubJoin
	MyClubsErr    error
	CreateClubErr error

	PostsRet      []api.Post
	CreatePostErr error
	LikeRet       api.LikeState

	CreateEventErr error

	// for argument checks
	Calls               []string
	LastCreds           api.Credentials
	LastSignup          api.SignupInput
	LastProfile         api.ProfileInput
	LastPassword        string
	LastClub            api.ClubInput
	LastPost            api.PostInput
	LastEvent           api.EventInput
	LastPage, LastLimit int
	LastIDs             []int64
}

func (f *fakeAPI) record(name string, ids ...int64) {
	f.Calls = append(f.Calls, name)
	f.LastIDs = ids
}

func (f *fakeAPI) Login(_ context.Context, creds api.Credentials) (api.TokenPair, error) {
	f.record("Login")
	f.LastCreds = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeAPI) Signup(_ context.Context, in api.SignupInput) (string, error) {
	f.record("Signup")
	f.LastSignup = in
	return f.SignupRet, f.SignupErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.record("Logout")
	return f.LogoutErr
}

func (f *fakeAPI) Me(context.Context) (api.User, error) {
	f.record("Me")
	return f.MeRet, nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, in api.ProfileInput) (api.User, error) {
	f.record("UpdateProfile")
	f.LastProfile = in
	return api.User{Nickname: in.Nickname}, f.UpdateProfileErr
}

func (f *fakeAPI) DeleteProfileImage(context.Context) error {
	f.record("DeleteProfileImage")
	return nil
}

func (f *fakeAPI) UpdatePassword(_ context.Context, password string) error {
	f.record("UpdatePassword")
	f.LastPassword = password
	return f.UpdatePasswordErr
}

func (f *fakeAPI) DeleteAccount(context.Context) error {
	f.record("DeleteAccount")
	return f.DeleteAccountErr
}

func (f *fakeAPI) Clubs(context.Context) ([]api.Club, error) {
	f.record("Clubs")
	return f.ClubsRet, f.ClubsErr
}

func (f *fakeAPI) MyClubs(context.Context) ([]api.ClubJoin, error) {
	f.record("MyClubs")
	return f.MyClubsRet, f.MyClubsErr
}

func (f *fakeAPI) Club(_ context.Context, clubID int64) (api.Club, error) {
	f.record("Club", clubID)
	return api.Club{ClubID: clubID}, nil
}

func (f *fakeAPI) CreateClub(_ context.Context, in api.ClubInput) (api.Club, error) {
	f.record("CreateClub")
	f.LastClub = in
	return api.Club{ClubID: 1, ClubName: in.ClubName}, f.CreateClubErr
}

func (f *fakeAPI) ApplyToClub(_ context.Context, clubID int64) error {
	f.record("ApplyToClub", clubID)
	return nil
}

func (f *fakeAPI) CancelApplication(_ context.Context, clubID int64) error {
	f.record("CancelApplication", clubID)
	return nil
}

func (f *fakeAPI) LeaveClub(_ context.Context, clubID int64) error {
	f.record("LeaveClub", clubID)
	return nil
}

func (f *fakeAPI) MyJoinStatus(_ context.Context, clubID int64) (api.JoinStatus, error) {
	f.record("MyJoinStatus", clubID)
	return api.JoinStatus{Status: api.JoinActive, Role: api.RoleMember}, nil
}

func (f *fakeAPI) PendingApplications(_ context.Context, clubID int64) ([]api.Application, error) {
	f.record("PendingApplications", clubID)
	return nil, nil
}

func (f *fakeAPI) ApproveApplication(_ context.Context, clubID, applicantID int64) error {
	f.record("ApproveApplication", clubID, applicantID)
	return nil
}

func (f *fakeAPI) RejectApplication(_ context.Context, clubID, applicantID int64) error {
	f.record("RejectApplication", clubID, applicantID)
	return nil
}

func (f *fakeAPI) KickMember(_ context.Context, clubID, memberID int64) error {
	f.record("KickMember", clubID, memberID)
	return nil
}

func (f *fakeAPI) ClubMembers(_ context.Context, clubID int64) ([]api.Member, error) {
	f.record("ClubMembers", clubID)
	return nil, nil
}

func (f *fakeAPI) Posts(_ context.Context, page, limit int) ([]api.Post, error) {
	f.record("Posts")
	f.LastPage, f.LastLimit = page, limit
	return f.PostsRet, nil
}

func (f *fakeAPI) Post(_ context.Context, postID int64) (api.Post, error) {
	f.record("Post", postID)
	return api.Post{PostID: postID}, nil
}

func (f *fakeAPI) CreatePost(_ context.Context, in api.PostInput) (api.Post, error) {
	f.record("CreatePost")
	f.LastPost = in
	return api.Post{PostID: 1, Title: in.Title}, f.CreatePostErr
}

func (f *fakeAPI) UpdatePost(_ context.Context, postID int64, in api.PostInput) (api.Post, error) {
	f.record("UpdatePost", postID)
	f.LastPost = in
	return api.Post{PostID: postID, Title: in.Title}, nil
}

func (f *fakeAPI) DeletePost(_ context.Context, postID int64) error {
	f.record("DeletePost", postID)
	return nil
}

func (f *fakeAPI) ToggleLike(_ context.Context, postID int64) (api.LikeState, error) {
	f.record("ToggleLike", postID)
	return f.LikeRet, nil
}

func (f *fakeAPI) CreateEvent(_ context.Context, in api.EventInput) (api.Event, error) {
	f.record("CreateEvent")
	f.LastEvent = in
	return api.Event{EventID: 1, Title: in.Title}, f.CreateEventErr
}

// fakeTokens implements Tokens.
type fakeTokens struct {
	mu        sync.Mutex
	token     string
	storeErr  error
	removeErr error
}

func (f *fakeTokens) StoreToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storeErr != nil {
		return f.storeErr
	}
	f.token = token
	return nil
}

func (f *fakeTokens) AccessToken(context.Context) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.token != ""
}

func (f *fakeTokens) RemoveToken(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.token = ""
	return nil
}

func (f *fakeTokens) IsLoggedIn(ctx context.Context) bool {
	_, ok := f.AccessToken(ctx)
	return ok
}
