package stores

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/recipes/internal/client/api"
	"github.com/dmitrijs2005/recipes/internal/client/apperror"
	"github.com/dmitrijs2005/recipes/internal/client/credential"
	"github.com/dmitrijs2005/recipes/internal/client/kvstore"
	"github.com/dmitrijs2005/recipes/internal/client/models"
)

// SessionStore owns the signed-in identity.
//
//	Anonymous --SignIn--> Authenticated --Logout/Reset--> Anonymous
//
// SignUp never changes state by itself; it chains into SignIn.
type SessionStore struct {
	api   api.Client
	kv    *kvstore.Store
	creds *credential.Store
	opts  options

	mu      sync.Mutex
	session models.Session
}

// NewSessionStore hydrates the session from kv. A persisted authenticated
// session without a live credential is reset to anonymous.
func NewSessionStore(ctx context.Context, client api.Client, kv *kvstore.Store, creds *credential.Store, opts ...Option) (*SessionStore, error) {
	s := &SessionStore{api: client, kv: kv, creds: creds, opts: newOptions(opts)}

	login, err := kv.String(ctx, kvstore.KeyLogin, "")
	if err != nil {
		return nil, fmt.Errorf("hydrate session: %w", err)
	}
	isAuth, err := kv.Bool(ctx, kvstore.KeyIsAuth)
	if err != nil {
		s.opts.logger.Warn(ctx, "malformed persisted auth flag", "err", err)
	}

	_, live := creds.Get(ctx)
	if isAuth && (login == "" || !live) {
		s.opts.logger.Info(ctx, "persisted session is stale, resetting", "login", login)
		if err := s.Reset(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.session = models.Session{Login: login, IsAuthenticated: isAuth}
	return s, nil
}

// SignUp registers an account and signs straight in with the same
// credentials.
func (s *SessionStore) SignUp(ctx context.Context, email, login, password string) error {
	if err := s.api.SignUp(ctx, email, login, password); err != nil {
		s.opts.logger.Warn(ctx, "sign up failed", "op", "signup", "login", login, "request_id", requestID(err), "err", err)
		return authError(err)
	}
	return s.SignIn(ctx, email, password)
}

func (s *SessionStore) SignIn(ctx context.Context, email, password string) error {
	res, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		s.opts.logger.Warn(ctx, "sign in failed", "op", "signin", "request_id", requestID(err), "err", err)
		return authError(err)
	}
	if res.Login == "" || res.SessionID == "" {
		return apperror.Auth("incomplete sign-in response", nil)
	}

	if err := s.creds.Set(ctx, res.SessionID, s.opts.sessionTTL); err != nil {
		return fmt.Errorf("store session credential: %w", err)
	}
	err = s.kv.Update(ctx, map[string]string{
		kvstore.KeyLogin:  res.Login,
		kvstore.KeyIsAuth: strconv.FormatBool(true),
	})
	if err != nil {
		_ = s.creds.Clear(ctx)
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.session = models.Session{Login: res.Login, Email: email, IsAuthenticated: true}
	s.mu.Unlock()

	s.opts.logger.Info(ctx, "signed in", "login", res.Login)
	s.opts.navigator.Navigate(UserPath(res.Login))
	return nil
}

// Logout ends the server session. Local state is cleared only after the
// server confirms.
func (s *SessionStore) Logout(ctx context.Context) error {
	if _, ok := s.creds.Get(ctx); !ok {
		return apperror.Unauthenticated("logout")
	}
	if err := s.api.Logout(ctx); err != nil {
		s.opts.logger.Warn(ctx, "logout failed", "op", "logout", "login", s.Login(), "request_id", requestID(err), "err", err)
		return authError(err)
	}
	if err := s.Reset(ctx); err != nil {
		return err
	}
	s.opts.navigator.Navigate(SignInPath)
	return nil
}

// Reset drops the session locally without calling the server.
func (s *SessionStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.session = models.Session{}
	s.mu.Unlock()

	if err := s.kv.Remove(ctx, kvstore.KeyLogin, kvstore.KeyIsAuth); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}

// Rename records a login change made through a profile edit.
func (s *SessionStore) Rename(ctx context.Context, login string) error {
	s.mu.Lock()
	s.session.Login = login
	s.mu.Unlock()

	return s.kv.SetString(ctx, kvstore.KeyLogin, login)
}

func (s *SessionStore) Snapshot() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *SessionStore) Login() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Login
}

// IsAuthenticated also checks that the credential has not expired.
func (s *SessionStore) IsAuthenticated(ctx context.Context) bool {
	s.mu.Lock()
	ok := s.session.IsAuthenticated
	s.mu.Unlock()
	if !ok {
		return false
	}
	_, live := s.creds.Get(ctx)
	return live
}
