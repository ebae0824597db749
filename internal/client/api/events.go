package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
)

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (Event, error) {
	form := formdata.New().Field("scope", in.Scope)
	if in.Scope == ScopeClub {
		form.Field("clubId", id(in.ClubID))
	}
	form.
		Field("type", in.Type).
		Field("title", in.Title).
		Field("content", in.Content).
		Field("locationName", in.LocationName).
		Field("locationAddress", in.LocationAddress).
		Field("locationLink", in.LocationLink).
		Field("capacity", strconv.Itoa(in.Capacity)).
		Field("startsAt", in.StartsAt.Format(DateTimeLayout)).
		Field("endsAt", in.EndsAt.Format(DateTimeLayout)).
		Fields("tags", in.Tags).
		Files("images", in.Images)

	var out Event
	_, err := c.callForm(ctx, http.MethodPost, "/events", form, &out)
	return out, err
}
