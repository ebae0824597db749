package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
)

func (c *Client) Clubs(ctx context.Context) ([]Club, error) {
	var out []Club
	_, err := c.call(ctx, http.MethodGet, "/clubs", &out)
	return out, err
}

// MyClubs lists the caller's memberships in any state.
func (c *Client) MyClubs(ctx context.Context) ([]ClubJoin, error) {
	var out []ClubJoin
	_, err := c.call(ctx, http.MethodGet, "/club-joins/club", &out)
	return out, err
}

func (c *Client) Club(ctx context.Context, clubID int64) (Club, error) {
	var out Club
	_, err := c.call(ctx, http.MethodGet, "/clubs/"+id(clubID), &out)
	return out, err
}

func (c *Client) CreateClub(ctx context.Context, in ClubInput) (Club, error) {
	form := formdata.New().
		Field("clubName", in.ClubName).
		Field("intro", in.Intro).
		Field("locationName", in.LocationName).
		Field("description", in.Description).
		Field("clubType", in.ClubType).
		Fields("tags", in.Tags).
		File("clubImage", in.ClubImage)
	var out Club
	_, err := c.callForm(ctx, http.MethodPost, "/clubs", form, &out)
	return out, err
}

func (c *Client) ApplyToClub(ctx context.Context, clubID int64) error {
	_, err := c.call(ctx, http.MethodPost, "/clubs/"+id(clubID)+"/apply", nil)
	return err
}

func (c *Client) CancelApplication(ctx context.Context, clubID int64) error {
	_, err := c.call(ctx, http.MethodDelete, "/clubs/"+id(clubID)+"/apply", nil)
	return err
}

func (c *Client) LeaveClub(ctx context.Context, clubID int64) error {
	_, err := c.call(ctx, http.MethodDelete, "/clubs/"+id(clubID)+"/leave", nil)
	return err
}

func (c *Client) MyJoinStatus(ctx context.Context, clubID int64) (JoinStatus, error) {
	var out JoinStatus
	_, err := c.call(ctx, http.MethodGet, "/clubs/"+id(clubID)+"/my-status", &out)
	return out, err
}

func (c *Client) PendingApplications(ctx context.Context, clubID int64) ([]Application, error) {
	var out []Application
	_, err := c.call(ctx, http.MethodGet, "/clubs/"+id(clubID)+"/applications", &out)
	return out, err
}

func (c *Client) ApproveApplication(ctx context.Context, clubID, applicantID int64) error {
	_, err := c.call(ctx, http.MethodPost, "/clubs/"+id(clubID)+"/applications/"+id(applicantID)+"/approve", nil)
	return err
}

func (c *Client) RejectApplication(ctx context.Context, clubID, applicantID int64) error {
	_, err := c.call(ctx, http.MethodPost, "/clubs/"+id(clubID)+"/applications/"+id(applicantID)+"/reject", nil)
	return err
}

func (c *Client) KickMember(ctx context.Context, clubID, memberID int64) error {
	_, err := c.call(ctx, http.MethodDelete, "/clubs/"+id(clubID)+"/members/"+id(memberID), nil)
	return err
}

func (c *Client) ClubMembers(ctx context.Context, clubID int64) ([]Member, error) {
	var out []Member
	_, err := c.call(ctx, http.MethodGet, "/clubs/"+id(clubID)+"/members", &out)
	return out, err
}
