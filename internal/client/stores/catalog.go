package stores

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/recipes/internal/client/api"
	"github.com/dmitrijs2005/recipes/internal/client/apperror"
	"github.com/dmitrijs2005/recipes/internal/client/loading"
	"github.com/dmitrijs2005/recipes/internal/client/models"
)

// CatalogStore owns the global recipe collection.
type CatalogStore struct {
	api     api.Client
	session *SessionStore
	flag    *loading.Flag
	opts    options

	mu      sync.Mutex
	seq     uint64
	recipes []models.Recipe
	filter  models.RecipeFilter
	lastErr error
}

func NewCatalogStore(client api.Client, session *SessionStore, flag *loading.Flag, opts ...Option) *CatalogStore {
	return &CatalogStore{api: client, session: session, flag: flag, opts: newOptions(opts)}
}

// Search replaces the collection with the server's filtered result. There is
// no debounce. On failure the previous collection stays.
func (c *CatalogStore) Search(ctx context.Context, filter models.RecipeFilter) {
	c.load(ctx, "search", filter, func() ([]models.Recipe, error) {
		return c.api.SearchRecipes(ctx, filter)
	})
}

// LoadAll replaces the collection with the unfiltered list.
func (c *CatalogStore) LoadAll(ctx context.Context) {
	c.load(ctx, "load_all", models.RecipeFilter{}, func() ([]models.Recipe, error) {
		return c.api.ListRecipes(ctx)
	})
}

func (c *CatalogStore) load(ctx context.Context, op string, filter models.RecipeFilter, fetch func() ([]models.Recipe, error)) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.filter = filter
	c.mu.Unlock()

	gen := c.flag.Begin()
	defer c.flag.Arrived(gen)

	recipes, err := fetch()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.opts.lastArrivalWins && seq != c.seq {
		c.opts.logger.Debug(ctx, "stale catalog response dropped", "op", op, "seq", seq, "latest", c.seq)
		return
	}
	if err != nil {
		c.lastErr = err
		c.opts.logger.Warn(ctx, "catalog load failed", "op", op, "query", filter.Query, "request_id", requestID(err), "err", err)
		return
	}
	c.recipes = models.NormalizeRecipes(recipes)
	c.lastErr = nil
}

// Recipes returns a copy of the collection.
func (c *CatalogStore) Recipes() []models.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.CloneRecipes(c.recipes)
}

func (c *CatalogStore) Filter() models.RecipeFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *CatalogStore) LastLoadErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *CatalogStore) Loading() bool {
	return c.flag.Loading()
}

// Get fetches one recipe with its likes and comments.
func (c *CatalogStore) Get(ctx context.Context, id int) (models.RecipeDetail, error) {
	d, err := c.api.GetRecipe(ctx, id)
	if err != nil {
		c.opts.logger.Warn(ctx, "recipe load failed", "op", "get_recipe", "id", id, "request_id", requestID(err), "err", err)
		if errors.Is(err, api.ErrNotFound) {
			return models.RecipeDetail{}, notFound("recipe", strconv.Itoa(id), err)
		}
		if errors.Is(err, api.ErrUnavailable) && api.Status(err) == 0 {
			return models.RecipeDetail{}, apperror.Network(err)
		}
		return models.RecipeDetail{}, fmt.Errorf("get recipe %d: %w", id, err)
	}
	d.Recipe = d.Recipe.Normalized()
	return d, nil
}

// Remove deletes a recipe on the server. The local collection is left as is;
// callers refresh with Search or LoadAll. Ownership is checked server-side.
func (c *CatalogStore) Remove(ctx context.Context, login string, id int) error {
	return c.mutate(ctx, "delete_recipe", id, func() error {
		return c.api.DeleteRecipe(ctx, login, id)
	})
}

func (c *CatalogStore) Create(ctx context.Context, login string, draft models.RecipeDraft) error {
	if draft.Title == "" {
		return apperror.Edit("title is required", nil)
	}
	if !draft.Complexity.Valid() {
		return apperror.Edit("complexity must be 1, 2 or 3", nil)
	}
	return c.mutate(ctx, "create_recipe", 0, func() error {
		return c.api.CreateRecipe(ctx, login, draft)
	})
}

// Update sends the non-empty fields of draft.
func (c *CatalogStore) Update(ctx context.Context, login string, id int, draft models.RecipeDraft) error {
	if draft.Complexity != 0 && !draft.Complexity.Valid() {
		return apperror.Edit("complexity must be 1, 2 or 3", nil)
	}
	return c.mutate(ctx, "update_recipe", id, func() error {
		return c.api.UpdateRecipe(ctx, login, id, draft)
	})
}

func (c *CatalogStore) Like(ctx context.Context, id int) error {
	return c.mutate(ctx, "like", id, func() error {
		return c.api.LikeRecipe(ctx, id)
	})
}

func (c *CatalogStore) Unlike(ctx context.Context, id int) error {
	return c.mutate(ctx, "unlike", id, func() error {
		return c.api.UnlikeRecipe(ctx, id)
	})
}

func (c *CatalogStore) mutate(ctx context.Context, op string, id int, call func() error) error {
	if !c.session.IsAuthenticated(ctx) {
		return apperror.Unauthenticated(op)
	}
	if err := call(); err != nil {
		c.opts.logger.Warn(ctx, "recipe mutation failed", "op", op, "id", id, "request_id", requestID(err), "err", err)
		return mutationError(err, "recipe", strconv.Itoa(id))
	}
	return nil
}
