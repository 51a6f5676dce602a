package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/recipes/internal/client/api"
	"github.com/dmitrijs2005/recipes/internal/client/apperror"
	"github.com/dmitrijs2005/recipes/internal/client/kvstore"
	"github.com/dmitrijs2005/recipes/internal/client/loading"
	"github.com/dmitrijs2005/recipes/internal/client/models"
	"github.com/dmitrijs2005/recipes/internal/timex"
)

// Tab selects which of a profile's recipe lists is shown.
type Tab string

const (
	TabAdded Tab = "added"
	TabLiked Tab = "liked"
)

func (t Tab) Valid() bool {
	return t == TabAdded || t == TabLiked
}

// ProfileStore owns the currently viewed profile and the edit form staged
// against it.
type ProfileStore struct {
	api     api.Client
	kv      *kvstore.Store
	session *SessionStore
	card    *loading.Flag
	catalog *loading.Flag
	opts    options

	mu         sync.Mutex
	seq        uint64
	profile    models.UserProfile
	hasProfile bool
	form       models.EditForm
	viewed     string
	tab        Tab
	lastErr    error
	alert      timex.Timer
	// reload is the catalog flag generation opened by a saved edit; the next
	// applied profile load completes it.
	reload uint64
}

// NewProfileStore restores the viewed login and selected tab from kv. card is
// the profile loading flag; catalog is the recipe collection flag a
// successful edit marks as loading.
func NewProfileStore(ctx context.Context, client api.Client, kv *kvstore.Store, session *SessionStore, card, catalog *loading.Flag, opts ...Option) (*ProfileStore, error) {
	p := &ProfileStore{
		api:     client,
		kv:      kv,
		session: session,
		card:    card,
		catalog: catalog,
		opts:    newOptions(opts),
		tab:     TabAdded,
	}

	viewed, err := kv.String(ctx, kvstore.KeyParamsLogin, "")
	if err != nil {
		return nil, fmt.Errorf("hydrate profile: %w", err)
	}
	tab, err := kv.String(ctx, kvstore.KeySelectedTab, string(TabAdded))
	if err != nil {
		return nil, fmt.Errorf("hydrate profile: %w", err)
	}
	p.viewed = viewed
	if Tab(tab).Valid() {
		p.tab = Tab(tab)
	}
	return p, nil
}

// LoadProfile fetches login's profile and replaces the committed one. Errors
// are logged and kept in LastLoadErr; the previous profile stays in place.
func (p *ProfileStore) LoadProfile(ctx context.Context, login string) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.viewed = login
	p.mu.Unlock()

	if err := p.kv.SetString(ctx, kvstore.KeyParamsLogin, login); err != nil {
		p.opts.logger.Warn(ctx, "persist viewed login", "login", login, "err", err)
	}

	gen := p.card.Begin()
	defer p.card.Arrived(gen)

	prof, err := p.api.GetUser(ctx, login)

	var reload uint64
	defer func() {
		if reload != 0 {
			p.catalog.Arrived(reload)
		}
	}()

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.opts.lastArrivalWins && seq != p.seq {
		p.opts.logger.Debug(ctx, "stale profile response dropped", "login", login, "seq", seq, "latest", p.seq)
		return
	}
	reload, p.reload = p.reload, 0
	if err != nil {
		p.lastErr = err
		p.opts.logger.Warn(ctx, "profile load failed", "op", "load_profile", "login", login, "request_id", requestID(err), "err", err)
		return
	}

	next := prof.Normalized()
	if !p.hasProfile || p.profile.Login != next.Login {
		p.form = models.EditFormFrom(next)
	}
	p.profile = next
	p.hasProfile = true
	p.lastErr = nil
}

// Profile returns a copy of the committed profile.
func (p *ProfileStore) Profile() (models.UserProfile, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile.Clone(), p.hasProfile
}

// LastLoadErr is the error of the most recent applied load, nil on success.
func (p *ProfileStore) LastLoadErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *ProfileStore) ViewedLogin() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewed
}

// IsOwnProfile reports whether the viewed profile belongs to the signed-in
// user.
func (p *ProfileStore) IsOwnProfile(ctx context.Context) bool {
	viewed := p.ViewedLogin()
	return viewed != "" && p.session.IsAuthenticated(ctx) && p.session.Login() == viewed
}

func (p *ProfileStore) Loading() bool {
	return p.card.Loading()
}

// StageEdit merges patch into the edit form. The committed profile is not
// touched.
func (p *ProfileStore) StageEdit(patch models.EditPatch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = p.form.Apply(patch)
}

func (p *ProfileStore) EditForm() models.EditForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	f := p.form
	if f.Icon != nil {
		icon := *f.Icon
		f.Icon = &icon
	}
	return f
}

// CommitEdit saves form as login's profile. On success the session login and
// the viewed login follow the new value and the recipe collection is marked
// as loading. A taken login restores the form from the committed profile,
// reopens the editor and alerts after the configured delay.
func (p *ProfileStore) CommitEdit(ctx context.Context, login string, form models.EditForm) error {
	if !p.session.IsAuthenticated(ctx) {
		return apperror.Unauthenticated("edit profile")
	}

	err := p.api.UpdateUser(ctx, login, form)
	if err == nil {
		newLogin := form.Login
		if newLogin == "" {
			newLogin = login
		}
		if err := p.session.Rename(ctx, newLogin); err != nil {
			p.opts.logger.Warn(ctx, "persist renamed login", "login", newLogin, "err", err)
		}

		p.mu.Lock()
		p.viewed = newLogin
		p.mu.Unlock()
		if err := p.kv.SetString(ctx, kvstore.KeyParamsLogin, newLogin); err != nil {
			p.opts.logger.Warn(ctx, "persist viewed login", "login", newLogin, "err", err)
		}

		p.opts.navigator.Replace(UserPath(newLogin))
		gen := p.catalog.Begin()
		p.mu.Lock()
		p.reload = gen
		p.mu.Unlock()
		return nil
	}

	if isDuplicateLogin(err) {
		p.mu.Lock()
		p.form = models.EditFormFrom(p.profile)
		if p.alert != nil {
			p.alert.Stop()
		}
		p.alert = p.opts.clock.AfterFunc(p.opts.alertDelay, func() {
			p.opts.notifier.Alert(MsgLoginExists)
		})
		p.mu.Unlock()

		p.opts.navigator.Navigate(UserPath(login))
		p.opts.navigator.OpenEditor()
		return apperror.DuplicateLogin(form.Login, err)
	}

	p.opts.logger.Error(ctx, "profile update failed", "op", "commit_edit", "login", login, "request_id", requestID(err), "err", err)
	return apperror.Edit(serverMessage(err), err)
}

// ToggleSubscription flips the subscription to target before the request
// completes. Without a session it alerts and makes no call. A target other
// than the committed profile is fetched first to learn its current state;
// the committed profile is left alone.
func (p *ProfileStore) ToggleSubscription(ctx context.Context, target string) error {
	if !p.session.IsAuthenticated(ctx) {
		p.opts.notifier.Alert(MsgSignInRequired)
		return apperror.Unauthenticated("subscribe")
	}

	p.mu.Lock()
	current := p.hasProfile && p.profile.Login == target
	subscribed := current && p.profile.IsSubscribed
	p.mu.Unlock()

	if !current {
		prof, err := p.api.GetUser(ctx, target)
		if err != nil {
			p.opts.logger.Warn(ctx, "subscription state lookup failed", "op", "toggle_subscription", "login", target, "request_id", requestID(err), "err", err)
			return mutationError(err, "user", target)
		}
		subscribed = prof.IsSubscribed
	}
	want := !subscribed

	p.mu.Lock()
	if p.hasProfile && p.profile.Login == target {
		p.profile.IsSubscribed = want
	}
	p.mu.Unlock()

	var err error
	if want {
		err = p.api.Subscribe(ctx, target)
	} else {
		err = p.api.Unsubscribe(ctx, target)
	}
	if err == nil {
		return nil
	}

	p.opts.logger.Warn(ctx, "subscription change failed", "op", "toggle_subscription", "login", target, "subscribe", want, "request_id", requestID(err), "err", err)

	if current && p.opts.subscriptions == SubscriptionReconciling {
		p.mu.Lock()
		if p.hasProfile && p.profile.Login == target && p.profile.IsSubscribed == want {
			p.profile.IsSubscribed = !want
		}
		p.mu.Unlock()
		p.LoadProfile(ctx, target)
	}
	return mutationError(err, "user", target)
}

// ChangePassword sets a new password. The old session is invalid afterwards,
// so the session is reset and the user sent to sign in.
func (p *ProfileStore) ChangePassword(ctx context.Context, login, newPassword string) error {
	if !p.session.IsAuthenticated(ctx) {
		return apperror.Unauthenticated("change password")
	}
	if err := p.api.ChangePassword(ctx, login, newPassword); err != nil {
		p.opts.logger.Warn(ctx, "password change failed", "op", "change_password", "login", login, "request_id", requestID(err), "err", err)
		return authError(err)
	}

	p.opts.notifier.Alert(MsgPasswordChanged)
	if err := p.session.Reset(ctx); err != nil {
		return err
	}
	p.opts.navigator.Navigate(SignInPath)
	return nil
}

// SelectTab switches the visible recipe list and persists the choice.
func (p *ProfileStore) SelectTab(ctx context.Context, tab Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("unknown tab %q", tab)
	}
	p.mu.Lock()
	p.tab = tab
	p.mu.Unlock()
	return p.kv.SetString(ctx, kvstore.KeySelectedTab, string(tab))
}

func (p *ProfileStore) Tab() Tab {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tab
}

// VisibleRecipes returns a copy of the list for the selected tab.
func (p *ProfileStore) VisibleRecipes() []models.Recipe {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tab == TabLiked {
		return models.CloneRecipes(p.profile.LikedRecipes)
	}
	return models.CloneRecipes(p.profile.Recipes)
}
