package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/recipes/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreds struct {
	id string
}

func (f fakeCreds) SessionID(context.Context) (string, bool) {
	return f.id, f.id != ""
}

func newTestClient(t *testing.T, r chi.Router, creds CredentialSource) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/api/v1", 0, creds, WithRequestIDs(func() string { return "req-1" }))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestHTTPClient_SignIn(t *testing.T) {
	var gotBody signInRequest
	var gotRequestID string

	r := chi.NewRouter()
	r.Post("/api/v1/auth/signin", func(w http.ResponseWriter, req *http.Request) {
		gotRequestID = req.Header.Get(RequestIDHeader)
		require.NoError(t, json.NewDecoder(req.Body).Decode(&gotBody))
		writeJSON(w, http.StatusOK, map[string]string{"login": "chef42", "session_id": "sess-1"})
	})

	c := newTestClient(t, r, nil)
	res, err := c.SignIn(context.Background(), "chef@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, SignInResult{Login: "chef42", SessionID: "sess-1"}, res)
	assert.Equal(t, signInRequest{Email: "chef@example.com", Password: "secret"}, gotBody)
	assert.Equal(t, "req-1", gotRequestID)
}

func TestHTTPClient_SendsSessionCookie(t *testing.T) {
	var cookie string
	r := chi.NewRouter()
	r.Post("/api/v1/auth/logout", func(w http.ResponseWriter, req *http.Request) {
		if c, err := req.Cookie(SessionCookieName); err == nil {
			cookie = c.Value
		}
		w.WriteHeader(http.StatusOK)
	})

	c := newTestClient(t, r, fakeCreds{id: "sess-9"})
	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, "sess-9", cookie)
}

func TestHTTPClient_GetUser(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/user/{login}", func(w http.ResponseWriter, req *http.Request) {
		login := chi.URLParam(req, "login")
		_, _ = io.WriteString(w, `{"user":{"id":7,"login":"`+login+`","about":"soups",
			"icon_url":"http://img/icon.png;","is_subscribed":true,
			"recipies":[{"id":1,"title":"Borscht","complexitiy":2,"photos_urls":"http://img/1.png;",
				"author":{"login":"chef42","icon_url":"http://img/icon.png;"}}],
			"liked_recipies":[{"id":2,"title":"Pie","complexity":3}]}}`)
	})

	c := newTestClient(t, r, nil)
	p, err := c.GetUser(context.Background(), "chef42")

	require.NoError(t, err)
	assert.Equal(t, 7, p.ID)
	assert.Equal(t, "chef42", p.Login)
	assert.True(t, p.IsSubscribed)
	require.Len(t, p.Recipes, 1)
	assert.Equal(t, models.ComplexityMedium, p.Recipes[0].Complexity)
	assert.Equal(t, "chef42", p.Recipes[0].Author.Login)
	require.Len(t, p.LikedRecipes, 1)
	assert.Equal(t, models.ComplexityHard, p.LikedRecipes[0].Complexity)
	// normalization is the store's job
	assert.Equal(t, "http://img/icon.png;", p.IconURL)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
		msg    string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"no session"}`, ErrUnauthorized, "no session"},
		{"forbidden", http.StatusForbidden, `{"error":"forbidden"}`, ErrUnauthorized, "forbidden"},
		{"not found", http.StatusNotFound, `{"error":"user not found"}`, ErrNotFound, "user not found"},
		{"conflict", http.StatusConflict, `{"error":"taken"}`, ErrConflict, "taken"},
		{"bad request", http.StatusBadRequest, `{"error":"user with this credentials already exists"}`, ErrBadRequest, "user with this credentials already exists"},
		{"plain body", http.StatusUnprocessableEntity, "nope\n", ErrBadRequest, "nope"},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, ErrUnavailable, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/api/v1/auth/signup", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			c := newTestClient(t, r, nil)

			err := c.SignUp(context.Background(), "e@x.io", "chef42", "pw")

			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.msg, Message(err))
			assert.Equal(t, tt.status, Status(err))

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "req-1", se.RequestID)
		})
	}
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, 0, nil)
	_, err := c.ListRecipes(context.Background())

	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, Status(err))
}

func TestHTTPClient_UpdateUserMultipart(t *testing.T) {
	var login, about, iconName string
	var iconData []byte

	r := chi.NewRouter()
	r.Put("/api/v1/user/{login}", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseMultipartForm(1<<20))
		login = req.FormValue("login")
		about = req.FormValue("about")
		f, h, err := req.FormFile("icon")
		require.NoError(t, err)
		defer f.Close()
		iconName = h.Filename
		iconData, _ = io.ReadAll(f)
		w.WriteHeader(http.StatusOK)
	})

	c := newTestClient(t, r, fakeCreds{id: "s"})
	err := c.UpdateUser(context.Background(), "chef42", models.EditForm{
		Login: "chef43",
		About: "stews",
		Icon:  &models.Image{Name: "me.png", Data: []byte("PNG")},
	})

	require.NoError(t, err)
	assert.Equal(t, "chef43", login)
	assert.Equal(t, "stews", about)
	assert.Equal(t, "me.png", iconName)
	assert.Equal(t, []byte("PNG"), iconData)
}

func TestHTTPClient_CreateRecipeMultipart(t *testing.T) {
	var title, complexity string
	var photos int

	r := chi.NewRouter()
	r.Post("/api/v1/user/{login}/recipe", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseMultipartForm(1<<20))
		title = req.FormValue("title")
		complexity = req.FormValue("complexitiy")
		photos = len(req.MultipartForm.File["photos"])
		w.WriteHeader(http.StatusCreated)
	})

	c := newTestClient(t, r, fakeCreds{id: "s"})
	err := c.CreateRecipe(context.Background(), "chef42", models.RecipeDraft{
		Title:      "Borscht",
		Complexity: models.ComplexityMedium,
		Photos: []models.Image{
			{Name: "a.jpg", Data: []byte{1}},
			{URL: "http://img/existing.png"},
			{Data: []byte{2}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Borscht", title)
	assert.Equal(t, "2", complexity)
	assert.Equal(t, 2, photos)
}

func TestHTTPClient_SearchRecipes(t *testing.T) {
	var got filterRequest
	r := chi.NewRouter()
	r.Post("/api/v1/recipe", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{"recipes": []map[string]any{{"id": 3, "title": "Soup"}}})
	})

	c := newTestClient(t, r, nil)
	recipes, err := c.SearchRecipes(context.Background(), models.RecipeFilter{Query: "soup", OrderBy: models.OrderDesc, OrderField: "title"})

	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Soup", recipes[0].Title)
	assert.Equal(t, filterRequest{Query: "soup", OrderBy: -1, OrderField: "title"}, got)
}

func TestHTTPClient_GetRecipe(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/recipe/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = io.WriteString(w, `{"info":{"recipe":{"id":5,"title":"Pie"},
			"author":{"login":"baker","icon_url":"http://img/b.png"},
			"likes_count":4,"is_liked":true,
			"comments":[{"id":1,"text":"yum","author":{"login":"chef42"}}]}}`)
	})

	c := newTestClient(t, r, nil)
	d, err := c.GetRecipe(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 5, d.Recipe.ID)
	assert.Equal(t, "baker", d.Recipe.Author.Login)
	assert.Equal(t, 4, d.LikesCount)
	assert.True(t, d.IsLiked)
	require.Len(t, d.Comments, 1)
	assert.Equal(t, "chef42", d.Comments[0].Author.Login)
}

func TestHTTPClient_IntegrationTokenAndMutations(t *testing.T) {
	var hits []string
	record := func(w http.ResponseWriter, req *http.Request) {
		hits = append(hits, req.Method+" "+req.URL.Path)
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Get("/api/v1/auth/tgtoken", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"token": "tok"})
	})
	r.Post("/api/v1/user/{login}/subscribe", record)
	r.Post("/api/v1/user/{login}/unsubscribe", record)
	r.Put("/api/v1/user/{login}/password", record)
	r.Delete("/api/v1/user/{login}/recipe/{id}", record)
	r.Post("/api/v1/recipe/{id}/like", record)
	r.Post("/api/v1/recipe/{id}/unlike", record)

	c := newTestClient(t, r, fakeCreds{id: "s"})
	ctx := context.Background()

	tok, err := c.IntegrationToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	require.NoError(t, c.Subscribe(ctx, "baker"))
	require.NoError(t, c.Unsubscribe(ctx, "baker"))
	require.NoError(t, c.ChangePassword(ctx, "chef42", "new"))
	require.NoError(t, c.DeleteRecipe(ctx, "chef42", 9))
	require.NoError(t, c.LikeRecipe(ctx, 9))
	require.NoError(t, c.UnlikeRecipe(ctx, 9))

	assert.Equal(t, []string{
		"POST /api/v1/user/baker/subscribe",
		"POST /api/v1/user/baker/unsubscribe",
		"PUT /api/v1/user/chef42/password",
		"DELETE /api/v1/user/chef42/recipe/9",
		"POST /api/v1/recipe/9/like",
		"POST /api/v1/recipe/9/unlike",
	}, hits)
}
