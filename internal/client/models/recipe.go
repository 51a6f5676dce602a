// Package models defines the client-side entities the stores hold in memory.
package models

import (
	"slices"
	"time"
)

// Complexity is the recipe difficulty rating, 1 to 3.
type Complexity int

const (
	ComplexityEasy   Complexity = 1
	ComplexityMedium Complexity = 2
	ComplexityHard   Complexity = 3
)

func (c Complexity) Valid() bool {
	return c >= ComplexityEasy && c <= ComplexityHard
}

type Author struct {
	Login   string
	IconURL string
}

// Recipe is an immutable snapshot. Every collection holds its own copy;
// nothing is shared between the catalog and profile lists.
type Recipe struct {
	ID           int
	Title        string
	About        string
	Instructions string
	Ingredients  string
	Complexity   Complexity
	NeedTime     string
	PhotoURLs    string
	Author       Author
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Normalized returns a copy with the photo and author icon URLs normalized.
func (r Recipe) Normalized() Recipe {
	r.PhotoURLs = NormalizeURL(r.PhotoURLs)
	r.Author.IconURL = NormalizeURL(r.Author.IconURL)
	return r
}

// NormalizeRecipes returns a normalized copy of rs. It never aliases rs.
func NormalizeRecipes(rs []Recipe) []Recipe {
	if rs == nil {
		return nil
	}
	out := make([]Recipe, len(rs))
	for i, r := range rs {
		out[i] = r.Normalized()
	}
	return out
}

// CloneRecipes copies rs so callers can't mutate store state.
func CloneRecipes(rs []Recipe) []Recipe {
	return slices.Clone(rs)
}

type Comment struct {
	ID        int
	Author    Author
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeDetail is the single-recipe view with social data.
type RecipeDetail struct {
	Recipe     Recipe
	LikesCount int
	IsLiked    bool
	Comments   []Comment
}

// OrderBy is the sort direction the search endpoint understands.
type OrderBy int

const (
	OrderDesc OrderBy = -1
	OrderNone OrderBy = 0
	OrderAsc  OrderBy = 1
)

// RecipeFilter is the body of a filtered catalog fetch.
type RecipeFilter struct {
	Query      string
	OrderBy    OrderBy
	OrderField string
	Limit      int
	Offset     int
}

// RecipeDraft carries the fields of a recipe being created or updated.
// Empty fields on update are left unchanged by the server.
type RecipeDraft struct {
	Title        string
	About        string
	Ingredients  string
	Instructions string
	NeedTime     string
	Complexity   Complexity
	Photos       []Image
}
