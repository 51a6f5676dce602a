package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipes/internal/client/apperror"
	"github.com/dmitrijs2005/recipes/internal/client/models"
	"github.com/dmitrijs2005/recipes/internal/client/stores"
)

// Profile loads and prints a profile: the one named in args, else the one
// viewed last, else the signed-in user's.
func (a *App) Profile(ctx context.Context, args []string) error {
	login := a.session.Login()
	if v := a.profile.ViewedLogin(); v != "" {
		login = v
	}
	if len(args) > 0 {
		login = args[0]
	}
	if login == "" {
		return errUsage
	}
	return a.showProfile(ctx, login)
}

func (a *App) showProfile(ctx context.Context, login string) error {
	a.profile.LoadProfile(ctx, login)
	if err := a.profile.LastLoadErr(); err != nil {
		return err
	}

	p, ok := a.profile.Profile()
	if !ok {
		return fmt.Errorf("profile %s not loaded", login)
	}
	printProfile(a.out, p, a.profile.IsOwnProfile(ctx))

	a.view = viewProfile
	if err := a.pager.SetTab(ctx, string(a.profile.Tab())); err != nil {
		a.log.Warn(ctx, "persist page", "err", err)
	}
	return a.printPage(ctx)
}

// Edit stages new profile values and saves them. Empty answers keep the
// current value; "-" clears the about text.
func (a *App) Edit(ctx context.Context, _ []string) error {
	if !a.session.IsAuthenticated(ctx) {
		return apperror.Unauthenticated("edit profile")
	}
	own := a.session.Login()
	if !a.profile.IsOwnProfile(ctx) {
		if err := a.showProfile(ctx, own); err != nil {
			return err
		}
	}
	form := a.profile.EditForm()

	login, err := getSimpleText(a.reader, fmt.Sprintf("Login [%s]", form.Login), a.out)
	if err != nil {
		return err
	}
	about, err := getSimpleText(a.reader, fmt.Sprintf("About [%s]", form.About), a.out)
	if err != nil {
		return err
	}
	icon, err := getSimpleText(a.reader, "Icon: file path or s3://bucket/key (empty keeps)", a.out)
	if err != nil {
		return err
	}

	var patch models.EditPatch
	if login != "" {
		patch.Login = &login
	}
	switch about {
	case "":
	case "-":
		patch.About = new(string)
	default:
		patch.About = &about
	}
	if icon != "" {
		img, err := a.images.Load(ctx, icon)
		if err != nil {
			return fmt.Errorf("icon: %w", err)
		}
		if err := checkUpload(icon, img); err != nil {
			return fmt.Errorf("icon: %w", err)
		}
		patch.Icon = &img
	}
	a.profile.StageEdit(patch)

	if err := a.profile.CommitEdit(ctx, own, a.profile.EditForm()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile saved")
	return a.showProfile(ctx, a.profile.ViewedLogin())
}

// Subscribe toggles the subscription to the named or the viewed user. A
// named user other than the viewed one is opened first.
func (a *App) Subscribe(ctx context.Context, args []string) error {
	target := a.profile.ViewedLogin()
	if len(args) > 0 && args[0] != target {
		target = args[0]
		if err := a.showProfile(ctx, target); err != nil {
			return err
		}
	}
	if target == "" {
		return errUsage
	}

	err := a.profile.ToggleSubscription(ctx, target)
	if p, ok := a.profile.Profile(); ok && p.Login == target {
		state := "not subscribed"
		if p.IsSubscribed {
			state = "subscribed"
		}
		fmt.Fprintf(a.out, "%s: %s\n", target, state)
	}
	return err
}

var errPasswordMismatch = errors.New("passwords do not match")

func (a *App) Password(ctx context.Context, _ []string) error {
	pw, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer wipe(pw)
	again, err := getPassword(a.reader, "Repeat new password", a.out)
	if err != nil {
		return err
	}
	defer wipe(again)

	if len(pw) == 0 || !bytes.Equal(pw, again) {
		return errPasswordMismatch
	}
	return a.profile.ChangePassword(ctx, a.session.Login(), string(pw))
}

// Tab switches between the added and liked lists of the viewed profile.
func (a *App) Tab(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	tab := stores.Tab(args[0])
	if err := a.profile.SelectTab(ctx, tab); err != nil {
		return err
	}
	if err := a.pager.SetTab(ctx, string(tab)); err != nil {
		return err
	}
	a.view = viewProfile
	return a.printPage(ctx)
}
