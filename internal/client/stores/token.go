package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/recipes/internal/client/api"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// TokenClaims is the payload of the integration token.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// TokenStore holds the integration token used to link a chat bot account.
type TokenStore struct {
	api  api.Client
	opts options

	group singleflight.Group

	mu    sync.Mutex
	token string
}

func NewTokenStore(client api.Client, opts ...Option) *TokenStore {
	return &TokenStore{api: client, opts: newOptions(opts)}
}

// Fetch requests a fresh token. Concurrent calls share one request.
func (t *TokenStore) Fetch(ctx context.Context) (string, error) {
	v, err, _ := t.group.Do("token", func() (any, error) {
		return t.api.IntegrationToken(ctx)
	})
	if err != nil {
		t.opts.logger.Warn(ctx, "token fetch failed", "op", "token", "request_id", requestID(err), "err", err)
		return "", authError(err)
	}

	token := v.(string)
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
	return token, nil
}

func (t *TokenStore) Token() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.token
}

// Claims decodes the current token without verifying its signature; the
// signing key is server-side and the claims are for display only.
func (t *TokenStore) Claims() (TokenClaims, error) {
	token := t.Token()
	if token == "" {
		return TokenClaims{}, fmt.Errorf("no token fetched")
	}
	var claims TokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenClaims{}, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}
