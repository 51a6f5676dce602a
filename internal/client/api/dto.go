package api

import (
	"time"

	"github.com/dmitrijs2005/recipes/internal/client/models"
)

type errorBody struct {
	Error string `json:"error"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	Login     string `json:"login"`
	SessionID string `json:"session_id"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type filterRequest struct {
	Query      string `json:"query"`
	OrderBy    int    `json:"order_by"`
	OrderField string `json:"order_field,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

func newFilterRequest(f models.RecipeFilter) filterRequest {
	return filterRequest{
		Query:      f.Query,
		OrderBy:    int(f.OrderBy),
		OrderField: f.OrderField,
		Limit:      f.Limit,
		Offset:     f.Offset,
	}
}

type authorDTO struct {
	Login   string `json:"login"`
	IconURL string `json:"icon_url"`
}

func (a *authorDTO) model() models.Author {
	if a == nil {
		return models.Author{}
	}
	return models.Author{Login: a.Login, IconURL: a.IconURL}
}

// recipeDTO accepts both spellings of the complexity field; the backend
// emits "complexitiy", older payloads use "complexity".
type recipeDTO struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	About        string     `json:"about"`
	Complexity   int        `json:"complexity"`
	Complexitiy  int        `json:"complexitiy"`
	NeedTime     string     `json:"need_time"`
	Ingredients  string     `json:"ingridients"`
	Instructions string     `json:"instructions"`
	PhotosURLs   string     `json:"photos_urls"`
	Author       *authorDTO `json:"author"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (r recipeDTO) model() models.Recipe {
	c := r.Complexity
	if c == 0 {
		c = r.Complexitiy
	}
	return models.Recipe{
		ID:           r.ID,
		Title:        r.Title,
		About:        r.About,
		Instructions: r.Instructions,
		Ingredients:  r.Ingredients,
		Complexity:   models.Complexity(c),
		NeedTime:     r.NeedTime,
		PhotoURLs:    r.PhotosURLs,
		Author:       r.Author.model(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func recipeModels(in []recipeDTO) []models.Recipe {
	out := make([]models.Recipe, 0, len(in))
	for _, r := range in {
		out = append(out, r.model())
	}
	return out
}

type recipesResponse struct {
	Recipes []recipeDTO `json:"recipes"`
}

type userDTO struct {
	ID           int         `json:"id"`
	Login        string      `json:"login"`
	About        string      `json:"about"`
	IconURL      string      `json:"icon_url"`
	CreatedAt    time.Time   `json:"created_at"`
	Recipes      []recipeDTO `json:"recipies"`
	LikedRecipes []recipeDTO `json:"liked_recipies"`
	IsSubscribed bool        `json:"is_subscribed"`
}

type userResponse struct {
	User *userDTO `json:"user"`
}

func (u *userDTO) model() models.UserProfile {
	return models.UserProfile{
		ID:           u.ID,
		Login:        u.Login,
		About:        u.About,
		IconURL:      u.IconURL,
		CreatedAt:    u.CreatedAt,
		Recipes:      recipeModels(u.Recipes),
		LikedRecipes: recipeModels(u.LikedRecipes),
		IsSubscribed: u.IsSubscribed,
	}
}

type commentDTO struct {
	ID        int        `json:"id"`
	Author    *authorDTO `json:"author"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type recipeInfoDTO struct {
	Recipe     *recipeDTO   `json:"recipe"`
	Author     *authorDTO   `json:"author"`
	LikesCount int          `json:"likes_count"`
	IsLiked    bool         `json:"is_liked"`
	Comments   []commentDTO `json:"comments"`
}

type recipeInfoResponse struct {
	Info *recipeInfoDTO `json:"info"`
}

func (i *recipeInfoDTO) model() models.RecipeDetail {
	var d models.RecipeDetail
	if i.Recipe != nil {
		d.Recipe = i.Recipe.model()
	}
	if i.Author != nil {
		d.Recipe.Author = i.Author.model()
	}
	d.LikesCount = i.LikesCount
	d.IsLiked = i.IsLiked
	for _, c := range i.Comments {
		d.Comments = append(d.Comments, models.Comment{
			ID:        c.ID,
			Author:    c.Author.model(),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return d
}
