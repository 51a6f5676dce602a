package stores

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipes/internal/client/api"
	"github.com/dmitrijs2005/recipes/internal/client/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, userID int) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID})
	s, err := tok.SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return s
}

func TestTokenStore_FetchAndClaims(t *testing.T) {
	e := newTestEnv(t)
	e.api.token = signedToken(t, 42)
	ts := NewTokenStore(e.api)

	_, err := ts.Claims()
	require.Error(t, err, "nothing fetched yet")

	tok, err := ts.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, e.api.token, tok)
	assert.Equal(t, tok, ts.Token())

	claims, err := ts.Claims()
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
}

func TestTokenStore_FetchError(t *testing.T) {
	e := newTestEnv(t)
	e.api.tokenErr = &api.StatusError{Status: 401, Message: "no session", Err: api.ErrUnauthorized}
	ts := NewTokenStore(e.api)

	_, err := ts.Fetch(context.Background())

	require.ErrorIs(t, err, apperror.ErrAuth)
	assert.Empty(t, ts.Token())
}

func TestTokenStore_MalformedToken(t *testing.T) {
	e := newTestEnv(t)
	e.api.token = "not-a-jwt"
	ts := NewTokenStore(e.api)

	_, err := ts.Fetch(context.Background())
	require.NoError(t, err)
	_, err = ts.Claims()
	require.Error(t, err)
}

func TestTokenStore_ConcurrentFetchesShareRequest(t *testing.T) {
	e := newTestEnv(t)
	e.api.token = signedToken(t, 7)
	e.api.tokenGate = make(chan struct{})
	ts := NewTokenStore(e.api)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]string, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = ts.Fetch(ctx)
	}()
	require.Equal(t, "token", <-e.api.entered)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = ts.Fetch(ctx)
	}()
	time.Sleep(50 * time.Millisecond)
	close(e.api.tokenGate)
	wg.Wait()

	assert.Equal(t, []string{"IntegrationToken"}, e.api.Calls())
	assert.Equal(t, results[0], results[1])
}
