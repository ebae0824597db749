package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
)

func (a *App) Posts(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid page %q", args[0])
		}
		page = n
	}
	posts, err := a.postService.List(ctx, page)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Page %d\n", page)
	printPosts(a.out, posts)
	return nil
}

func (a *App) Post(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	p, err := a.postService.Get(ctx, id)
	if err != nil {
		return err
	}
	printPost(a.out, p)
	return nil
}

// readScope asks for GLOBAL or CLUB and, for CLUB, the club id.
func (a *App) readScope() (string, int64, error) {
	scope, err := getSimpleText(a.reader, "Scope (GLOBAL or CLUB, empty for GLOBAL)", a.out)
	if err != nil {
		return "", 0, err
	}
	scope = strings.ToUpper(scope)
	if scope == "" {
		scope = api.ScopeGlobal
	}
	if scope != api.ScopeClub {
		return scope, 0, nil
	}
	raw, err := getSimpleText(a.reader, "Club id", a.out)
	if err != nil {
		return "", 0, err
	}
	id, err := parseID(raw)
	if err != nil {
		return "", 0, err
	}
	return scope, id, nil
}

func (a *App) readPost() (api.PostInput, error) {
	var in api.PostInput
	var err error

	if in.Scope, in.ClubID, err = a.readScope(); err != nil {
		return in, err
	}
	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return in, err
	}
	if in.Content, err = GetMultiline(a.reader, "Content", a.out); err != nil {
		return in, err
	}
	if in.Tags, err = GetTags(a.reader, a.out); err != nil {
		return in, err
	}
	if in.Images, err = GetFiles(a.reader, "Images", a.out); err != nil {
		return in, err
	}
	return in, nil
}

func (a *App) NewPost(ctx context.Context, _ []string) error {
	in, err := a.readPost()
	if err != nil {
		return err
	}
	p, err := a.postService.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post #%d published.\n", p.PostID)
	return nil
}

func (a *App) EditPost(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	in, err := a.readPost()
	if err != nil {
		return err
	}
	if _, err := a.postService.Update(ctx, id, in); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post #%d updated.\n", id)
	return nil
}

func (a *App) DeletePost(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.postService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post #%d deleted.\n", id)
	return nil
}

func (a *App) Like(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	st, err := a.postService.ToggleLike(ctx, id)
	if err != nil {
		return err
	}
	if st.IsLiked {
		fmt.Fprintf(a.out, "Liked (%d).\n", st.LikeCount)
	} else {
		fmt.Fprintf(a.out, "Like removed (%d).\n", st.LikeCount)
	}
	return nil
}

func (a *App) NewEvent(ctx context.Context, _ []string) error {
	var in api.EventInput
	var err error

	if in.Scope, in.ClubID, err = a.readScope(); err != nil {
		return err
	}
	if in.Type, err = getSimpleText(a.reader, "Event type", a.out); err != nil {
		return err
	}
	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Content, err = GetMultiline(a.reader, "Details", a.out); err != nil {
		return err
	}
	if in.LocationName, err = getSimpleText(a.reader, "Location name", a.out); err != nil {
		return err
	}
	if in.LocationAddress, err = getSimpleText(a.reader, "Location address", a.out); err != nil {
		return err
	}
	if in.LocationLink, err = getSimpleText(a.reader, "Location link", a.out); err != nil {
		return err
	}
	if in.Capacity, err = GetInt(a.reader, "Capacity", 0, a.out); err != nil {
		return err
	}
	if in.StartsAt, err = GetDateTime(a.reader, "Starts at", a.out); err != nil {
		return err
	}
	if in.EndsAt, err = GetDateTime(a.reader, "Ends at", a.out); err != nil {
		return err
	}
	if in.Tags, err = GetTags(a.reader, a.out); err != nil {
		return err
	}
	if in.Images, err = GetFiles(a.reader, "Images", a.out); err != nil {
		return err
	}

	ev, err := a.eventService.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Event #%d created.\n", ev.EventID)
	return nil
}
