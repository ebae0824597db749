package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
)

func (a *App) Clubs(ctx context.Context, _ []string) error {
	clubs, err := a.clubService.List(ctx)
	if err != nil {
		return err
	}
	printClubs(a.out, clubs)
	return nil
}

func (a *App) MyClubs(ctx context.Context, _ []string) error {
	joins, err := a.clubService.Mine(ctx)
	if err != nil {
		return err
	}
	printJoins(a.out, joins)
	return nil
}

func (a *App) Club(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := a.clubService.Get(ctx, id)
	if err != nil {
		return err
	}
	printClub(a.out, c)
	return nil
}

func (a *App) NewClub(ctx context.Context, _ []string) error {
	var in api.ClubInput
	var err error

	if in.ClubName, err = getSimpleText(a.reader, "Club name", a.out); err != nil {
		return err
	}
	if in.Intro, err = getSimpleText(a.reader, "One-line intro", a.out); err != nil {
		return err
	}
	if in.LocationName, err = getSimpleText(a.reader, "Location", a.out); err != nil {
		return err
	}
	if in.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	clubType, err := getSimpleText(a.reader, "Type (CLUB or CREW)", a.out)
	if err != nil {
		return err
	}
	in.ClubType = strings.ToUpper(clubType)
	if in.Tags, err = GetTags(a.reader, a.out); err != nil {
		return err
	}
	if in.ClubImage, err = GetFile(a.reader, "Club image", a.out); err != nil {
		return err
	}

	c, err := a.clubService.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Club #%d created. You are its leader.\n", c.ClubID)
	return nil
}

// clubCommand parses the club id and runs fn, printing done on success.
func (a *App) clubCommand(ctx context.Context, args []string, done string, fn func(context.Context, int64) error) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := fn(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, done)
	return nil
}

func (a *App) Apply(ctx context.Context, args []string) error {
	return a.clubCommand(ctx, args, "Application sent.", a.clubService.Apply)
}

func (a *App) CancelApplication(ctx context.Context, args []string) error {
	return a.clubCommand(ctx, args, "Application cancelled.", a.clubService.CancelApplication)
}

func (a *App) Leave(ctx context.Context, args []string) error {
	return a.clubCommand(ctx, args, "You left the club.", a.clubService.Leave)
}

func (a *App) Status(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	st, err := a.clubService.Status(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Status: %s, role: %s\n", st.Status, st.Role)
	if st.CanManage() {
		fmt.Fprintln(a.out, "You can manage this club.")
	}
	return nil
}

func (a *App) Members(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	members, err := a.clubService.Members(ctx, id)
	if err != nil {
		return err
	}
	printMembers(a.out, members)
	return nil
}

func (a *App) Applications(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	apps, err := a.clubService.Applications(ctx, id)
	if err != nil {
		return err
	}
	printApplications(a.out, apps)
	return nil
}

// memberCommand parses a club id and a user id and runs fn.
func (a *App) memberCommand(ctx context.Context, args []string, done string, fn func(context.Context, int64, int64) error) error {
	clubID, err := parseID(args[0])
	if err != nil {
		return err
	}
	userID, err := parseID(args[1])
	if err != nil {
		return err
	}
	if err := fn(ctx, clubID, userID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, done)
	return nil
}

func (a *App) Approve(ctx context.Context, args []string) error {
	return a.memberCommand(ctx, args, "Application approved.", a.clubService.Approve)
}

func (a *App) Reject(ctx context.Context, args []string) error {
	return a.memberCommand(ctx, args, "Application rejected.", a.clubService.Reject)
}

func (a *App) Kick(ctx context.Context, args []string) error {
	return a.memberCommand(ctx, args, "Member removed.", a.clubService.Kick)
}
