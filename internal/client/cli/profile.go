package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
)

func (a *App) Me(ctx context.Context, _ []string) error {
	u, err := a.profileService.Me(ctx)
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

func (a *App) Nickname(ctx context.Context, args []string) error {
	nickname := strings.Join(args, " ")
	if nickname == "" {
		var err error
		if nickname, err = getSimpleText(a.reader, "New nickname", a.out); err != nil {
			return err
		}
	}
	u, err := a.profileService.UpdateNickname(ctx, nickname)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Nickname changed to %s.\n", u.Nickname)
	return nil
}

func (a *App) Avatar(ctx context.Context, args []string) error {
	f, err := formdata.LoadFile(args[0])
	if err != nil {
		return err
	}
	if _, err := a.profileService.UpdateImage(ctx, f); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile image updated.")
	return nil
}

func (a *App) RemoveAvatar(ctx context.Context, _ []string) error {
	if err := a.profileService.DeleteImage(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile image removed.")
	return nil
}

func (a *App) ChangePassword(ctx context.Context, _ []string) error {
	password, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Repeat new password", a.out)
	if err != nil {
		return err
	}
	if err := a.profileService.ChangePassword(ctx, password, confirm); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

// DeleteAccount removes the account after an explicit confirmation.
func (a *App) DeleteAccount(ctx context.Context, _ []string) error {
	answer, err := getSimpleText(a.reader, "This deletes your account permanently. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.profileService.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}
