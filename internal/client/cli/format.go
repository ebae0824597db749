package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/client/gateway"
	"github.com/dmitrijs2005/clubhub/internal/client/services"
	"github.com/dmitrijs2005/clubhub/internal/client/validate"
)

// describe turns an error into the line shown to the user.
func describe(err error) string {
	var apiErr *gateway.APIError
	switch {
	case errors.Is(err, gateway.ErrSessionExpired):
		return "Your session has ended."
	case errors.Is(err, services.ErrNotLoggedIn):
		return "Please log in first."
	case errors.Is(err, validate.ErrInvalid):
		return "Invalid input:\n  " + strings.ReplaceAll(err.Error(), "\n", "\n  ")
	case errors.As(err, &apiErr):
		return "Error: " + apiErr.Message
	default:
		return "Error: " + err.Error()
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printClubs(w io.Writer, clubs []services.ClubListing) {
	if len(clubs) == 0 {
		fmt.Fprintln(w, "No clubs yet.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tMEMBERS\tLOCATION\t")
	for _, c := range clubs {
		name := c.ClubName
		if c.IsMine {
			name = "* " + name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t\n", c.ClubID, name, c.ClubType, c.MemberCount, c.LocationName)
	}
	tw.Flush()
}

func printClub(w io.Writer, c api.Club) {
	fmt.Fprintf(w, "#%d %s (%s)\n", c.ClubID, c.ClubName, c.ClubType)
	fmt.Fprintf(w, "%s\n\n%s\n", c.Intro, c.Description)
	fmt.Fprintf(w, "Location: %s\nMembers: %d\n", c.LocationName, c.MemberCount)
	if len(c.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", hashTags(c.Tags))
	}
}

func printJoins(w io.Writer, joins []api.ClubJoin) {
	if len(joins) == 0 {
		fmt.Fprintln(w, "You have not joined any club.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tROLE\t")
	for _, j := range joins {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", j.ClubID, j.ClubName, j.Status, j.Role)
	}
	tw.Flush()
}

func printMembers(w io.Writer, members []api.Member) {
	tw := newTable(w)
	fmt.Fprintln(tw, "USER\tNICKNAME\tROLE\t")
	for _, m := range members {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", m.UserID, m.Nickname, m.Role)
	}
	tw.Flush()
}

func printApplications(w io.Writer, apps []api.Application) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No pending applications.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "USER\tNICKNAME\tAPPLIED\t")
	for _, a := range apps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", a.UserID, a.Nickname, a.CreatedAt.Local().Format(api.DateTimeLayout))
	}
	tw.Flush()
}

func printPosts(w io.Writer, posts []api.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts on this page.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tLIKES\tSCOPE\t")
	for _, p := range posts {
		like := fmt.Sprint(p.LikeCount)
		if p.IsLiked {
			like += " ♥"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", p.PostID, p.Title, p.AuthorName, like, p.Scope)
	}
	tw.Flush()
}

func printPost(w io.Writer, p api.Post) {
	fmt.Fprintf(w, "#%d %s\n", p.PostID, p.Title)
	fmt.Fprintf(w, "by %s, %s\n\n", p.AuthorName, p.CreatedAt.Local().Format(api.DateTimeLayout))
	fmt.Fprintln(w, p.Content)
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "\nTags: %s\n", hashTags(p.Tags))
	}
	for _, img := range p.Images {
		fmt.Fprintf(w, "Image: %s\n", img)
	}
	fmt.Fprintf(w, "Likes: %d  Comments: %d\n", p.LikeCount, p.CommentCount)
}

func printUser(w io.Writer, u api.User) {
	fmt.Fprintf(w, "User #%d\nEmail: %s\nNickname: %s\n", u.UserID, u.Email, u.Nickname)
	if u.ProfileImage != "" {
		fmt.Fprintf(w, "Image: %s\n", u.ProfileImage)
	}
}

func hashTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}
