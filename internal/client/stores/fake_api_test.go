package stores

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipes/internal/client/api"
	"github.com/dmitrijs2005/recipes/internal/client/credential"
	"github.com/dmitrijs2005/recipes/internal/client/kvstore"
	"github.com/dmitrijs2005/recipes/internal/client/loading"
	"github.com/dmitrijs2005/recipes/internal/client/models"
	"github.com/dmitrijs2005/recipes/internal/timex"
	"github.com/stretchr/testify/require"
)

/*************
 * Fake API client
 *************/

type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	// inputs captured
	lastSignUp      [3]string
	lastSignIn      [2]string
	lastUpdateLogin string
	lastUpdateForm  models.EditForm
	lastPassword    string
	lastFilter      models.RecipeFilter
	lastDraft       models.RecipeDraft
	lastDeleteLogin string
	lastDeleteID    int

	// outputs preset
	signUpErr    error
	signInResult api.SignInResult
	signInErr    error
	logoutErr    error
	token        string
	tokenErr     error
	users        map[string]models.UserProfile
	getUserErr   map[string]error
	updateErr    error
	passwordErr  error
	subscribeErr error
	recipes      []models.Recipe
	listErr      error
	detail       models.RecipeDetail
	detailErr    error
	mutationErr  error

	// gates block a call until closed; entered is signalled first
	userGates   map[string]chan struct{}
	searchGates map[string]chan struct{}
	tokenGate   chan struct{}
	entered     chan string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users:       map[string]models.UserProfile{},
		getUserErr:  map[string]error{},
		userGates:   map[string]chan struct{}{},
		searchGates: map[string]chan struct{}{},
		entered:     make(chan string, 16),
	}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) wait(gate chan struct{}, name string) {
	if gate == nil {
		return
	}
	f.entered <- name
	<-gate
}

func (f *fakeAPI) SignUp(_ context.Context, email, login, password string) error {
	f.record("SignUp")
	f.lastSignUp = [3]string{email, login, password}
	return f.signUpErr
}

func (f *fakeAPI) SignIn(_ context.Context, email, password string) (api.SignInResult, error) {
	f.record("SignIn")
	f.lastSignIn = [2]string{email, password}
	return f.signInResult, f.signInErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.record("Logout")
	return f.logoutErr
}

func (f *fakeAPI) IntegrationToken(context.Context) (string, error) {
	f.record("IntegrationToken")
	f.wait(f.tokenGate, "token")
	return f.token, f.tokenErr
}

func (f *fakeAPI) GetUser(_ context.Context, login string) (models.UserProfile, error) {
	f.record("GetUser " + login)
	f.mu.Lock()
	gate := f.userGates[login]
	p, ok := f.users[login]
	err := f.getUserErr[login]
	f.mu.Unlock()

	f.wait(gate, login)
	if err != nil {
		return models.UserProfile{}, err
	}
	if !ok {
		return models.UserProfile{}, &api.StatusError{Status: 404, Message: "user not found", Err: api.ErrNotFound}
	}
	return p, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, login string, form models.EditForm) error {
	f.record("UpdateUser " + login)
	f.lastUpdateLogin = login
	f.lastUpdateForm = form
	return f.updateErr
}

func (f *fakeAPI) ChangePassword(_ context.Context, login, password string) error {
	f.record("ChangePassword " + login)
	f.lastPassword = password
	return f.passwordErr
}

func (f *fakeAPI) Subscribe(_ context.Context, login string) error {
	f.record("Subscribe " + login)
	return f.subscribeErr
}

func (f *fakeAPI) Unsubscribe(_ context.Context, login string) error {
	f.record("Unsubscribe " + login)
	return f.subscribeErr
}

func (f *fakeAPI) ListRecipes(context.Context) ([]models.Recipe, error) {
	f.record("ListRecipes")
	return f.recipes, f.listErr
}

func (f *fakeAPI) SearchRecipes(_ context.Context, filter models.RecipeFilter) ([]models.Recipe, error) {
	f.record("SearchRecipes " + filter.Query)
	f.mu.Lock()
	f.lastFilter = filter
	gate := f.searchGates[filter.Query]
	f.mu.Unlock()

	f.wait(gate, filter.Query)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Recipe
	for _, r := range f.recipes {
		if filter.Query == "" || r.Title == filter.Query {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetRecipe(context.Context, int) (models.RecipeDetail, error) {
	f.record("GetRecipe")
	return f.detail, f.detailErr
}

func (f *fakeAPI) CreateRecipe(_ context.Context, login string, draft models.RecipeDraft) error {
	f.record("CreateRecipe " + login)
	f.lastDraft = draft
	return f.mutationErr
}

func (f *fakeAPI) UpdateRecipe(_ context.Context, login string, _ int, draft models.RecipeDraft) error {
	f.record("UpdateRecipe " + login)
	f.lastDraft = draft
	return f.mutationErr
}

func (f *fakeAPI) DeleteRecipe(_ context.Context, login string, id int) error {
	f.record("DeleteRecipe " + login)
	f.lastDeleteLogin = login
	f.lastDeleteID = id
	return f.mutationErr
}

func (f *fakeAPI) LikeRecipe(context.Context, int) error {
	f.record("LikeRecipe")
	return f.mutationErr
}

func (f *fakeAPI) UnlikeRecipe(context.Context, int) error {
	f.record("UnlikeRecipe")
	return f.mutationErr
}

/*************
 * Test environment
 *************/

type testEnv struct {
	api   *fakeAPI
	kv    *kvstore.Store
	creds *credential.Store
	clock *timex.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := kvstore.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := timex.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	kv := kvstore.NewStore(kvstore.NewSQLiteRepository(db))
	return &testEnv{
		api:   newFakeAPI(),
		kv:    kv,
		creds: credential.NewStore(kv, clock),
		clock: clock,
	}
}

func (e *testEnv) session(t *testing.T, opts ...Option) *SessionStore {
	t.Helper()
	opts = append([]Option{WithClock(e.clock)}, opts...)
	s, err := NewSessionStore(context.Background(), e.api, e.kv, e.creds, opts...)
	require.NoError(t, err)
	return s
}

// signedIn returns a session authenticated as login.
func (e *testEnv) signedIn(t *testing.T, login string) *SessionStore {
	t.Helper()
	e.api.signInResult = api.SignInResult{Login: login, SessionID: "sess-" + login}
	s := e.session(t)
	require.NoError(t, s.SignIn(context.Background(), login+"@example.com", "pw"))
	e.api.calls = nil
	return s
}

func (e *testEnv) flag(floor time.Duration) *loading.Flag {
	return loading.NewFlag(floor, e.clock)
}

func (e *testEnv) profileStore(t *testing.T, s *SessionStore, opts ...Option) (*ProfileStore, *loading.Flag) {
	t.Helper()
	catalog := e.flag(loading.CollectionFloor)
	opts = append([]Option{WithClock(e.clock)}, opts...)
	p, err := NewProfileStore(context.Background(), e.api, e.kv, s, e.flag(loading.ProfileFloor), catalog, opts...)
	require.NoError(t, err)
	return p, catalog
}

func (e *testEnv) kvString(t *testing.T, key string) string {
	t.Helper()
	v, err := e.kv.String(context.Background(), key, "")
	require.NoError(t, err)
	return v
}
