package api

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks

import (
	"context"

	"github.com/dmitrijs2005/recipes/internal/client/models"
)

// CredentialSource supplies the session credential attached to requests.
type CredentialSource interface {
	SessionID(ctx context.Context) (string, bool)
}

// SignInResult is what /auth/signin returns.
type SignInResult struct {
	Login     string
	SessionID string
}

type Client interface {
	SignUp(ctx context.Context, email, login, password string) error
	SignIn(ctx context.Context, email, password string) (SignInResult, error)
	Logout(ctx context.Context) error
	IntegrationToken(ctx context.Context) (string, error)

	GetUser(ctx context.Context, login string) (models.UserProfile, error)
	UpdateUser(ctx context.Context, login string, form models.EditForm) error
	ChangePassword(ctx context.Context, login, password string) error
	Subscribe(ctx context.Context, login string) error
	Unsubscribe(ctx context.Context, login string) error

	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	SearchRecipes(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id int) (models.RecipeDetail, error)
	CreateRecipe(ctx context.Context, login string, draft models.RecipeDraft) error
	UpdateRecipe(ctx context.Context, login string, id int, draft models.RecipeDraft) error
	DeleteRecipe(ctx context.Context, login string, id int) error
	LikeRecipe(ctx context.Context, id int) error
	UnlikeRecipe(ctx context.Context, id int) error
}
