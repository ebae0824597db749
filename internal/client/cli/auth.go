package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
	"github.com/dmitrijs2005/clubhub/internal/client/gateway"
	"github.com/dmitrijs2005/clubhub/internal/client/services"
)

// errLoginRejected replaces the session-expired outcome of a failed login:
// the backend answers bad credentials with 401, which ends in a failed
// refresh when no session exists.
var errLoginRejected = errors.New("login rejected: check your email and password")

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for the account fields and creates the account. The
// server's confirmation message is printed on success.
func (a *App) Signup(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	nickname, err := getSimpleText(a.reader, "Enter nickname", a.out)
	if err != nil {
		return err
	}
	image, err := GetFile(a.reader, "Profile image", a.out)
	if err != nil {
		return err
	}

	msg, err := a.authService.Signup(ctx, signupRequest(email, password, confirm, nickname, image))
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Account created."
	}
	fmt.Fprintln(a.out, msg, "You can log in now.")
	return nil
}

// Login prompts the user for credentials and authenticates.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, email, password); err != nil {
		if errors.Is(err, gateway.ErrSessionExpired) {
			// the prompt is already open, no need to ask again
			a.relogin.Store(false)
			return errLoginRejected
		}
		return err
	}
	fmt.Fprintln(a.out, "Login successful.")
	return nil
}

// Logout ends the session; the local token is removed even if the server
// cannot be reached.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the identity carried by the stored access token.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	claims, err := a.authService.WhoAmI(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User #%s (%s)\n", claims.UserID, claims.Email)
	if claims.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Token expires %s\n", claims.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

func signupRequest(email, password, confirm, nickname string, image *formdata.File) services.SignupRequest {
	return services.SignupRequest{
		Email:           email,
		Password:        password,
		PasswordConfirm: confirm,
		Nickname:        nickname,
		ProfileImage:    image,
	}
}
