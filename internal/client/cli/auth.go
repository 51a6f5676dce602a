package cli

import (
	"context"
	"fmt"
	"time"
)

// Prompt indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// SignUp prompts for email, login and password, registers the account and
// signs in. The password is wiped before returning.
func (a *App) SignUp(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	login, err := getSimpleText(a.reader, "Choose a login", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.session.SignUp(ctx, email, login, string(password)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Welcome,", a.session.Login())
	return nil
}

func (a *App) SignIn(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.session.SignIn(ctx, email, string(password)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed in as", a.session.Login())
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	return a.session.Logout(ctx)
}

// Token fetches an integration token and prints it with its claims.
func (a *App) Token(ctx context.Context, _ []string) error {
	token, err := a.tokens.Fetch(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, token)

	claims, err := a.tokens.Claims()
	if err != nil {
		a.log.Debug(ctx, "token claims unreadable", "err", err)
		return nil
	}
	if claims.UserID != 0 {
		fmt.Fprintln(a.out, "user id:", claims.UserID)
	}
	if claims.ExpiresAt != nil {
		fmt.Fprintln(a.out, "expires:", claims.ExpiresAt.Time.Local().Format(time.DateTime))
	}
	return nil
}
