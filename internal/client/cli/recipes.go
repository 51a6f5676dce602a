package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recipes/internal/client/apperror"
	"github.com/dmitrijs2005/recipes/internal/client/models"
	"github.com/dmitrijs2005/recipes/internal/client/pagination"
)

// Search runs a filtered catalog fetch. An optional first argument
// by=field[:asc|:desc] sets the ordering.
func (a *App) Search(ctx context.Context, args []string) error {
	var filter models.RecipeFilter
	if len(args) > 0 && strings.HasPrefix(args[0], "by=") {
		field, dir, _ := strings.Cut(strings.TrimPrefix(args[0], "by="), ":")
		filter.OrderField = field
		switch dir {
		case "", "asc":
			filter.OrderBy = models.OrderAsc
		case "desc":
			filter.OrderBy = models.OrderDesc
		default:
			return errUsage
		}
		args = args[1:]
	}
	filter.Query = strings.Join(args, " ")

	return a.loadCatalog(ctx, filter)
}

func (a *App) All(ctx context.Context, _ []string) error {
	return a.loadCatalog(ctx, models.RecipeFilter{})
}

func (a *App) loadCatalog(ctx context.Context, filter models.RecipeFilter) error {
	if err := a.pager.SetFilter(ctx, filterKey(filter)); err != nil {
		a.log.Warn(ctx, "persist page", "err", err)
	}

	if filter == (models.RecipeFilter{}) {
		a.catalog.LoadAll(ctx)
	} else {
		a.catalog.Search(ctx, filter)
	}
	if err := a.catalog.LastLoadErr(); err != nil {
		return err
	}

	a.view = viewCatalog
	return a.printPage(ctx)
}

func filterKey(f models.RecipeFilter) string {
	return fmt.Sprintf("%s|%s|%d", f.Query, f.OrderField, f.OrderBy)
}

func (a *App) List(ctx context.Context, _ []string) error {
	return a.printPage(ctx)
}

func (a *App) Next(ctx context.Context, _ []string) error {
	if err := a.pager.Next(ctx); err != nil {
		return err
	}
	return a.printPage(ctx)
}

func (a *App) Prev(ctx context.Context, _ []string) error {
	if err := a.pager.Prev(ctx); err != nil {
		return err
	}
	return a.printPage(ctx)
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage
	}
	if err := a.pager.GoTo(ctx, n); err != nil {
		return err
	}
	return a.printPage(ctx)
}

// printPage prints the current page of the list being viewed.
func (a *App) printPage(ctx context.Context) error {
	var items []models.Recipe
	if a.view == viewProfile {
		items = a.profile.VisibleRecipes()
	} else {
		items = a.catalog.Recipes()
	}

	page, err := pagination.Paginate(ctx, a.pager, items)
	printRecipes(a.out, page)
	if len(items) > 0 {
		fmt.Fprintf(a.out, "page %d of %d\n", a.pager.Page(), a.pager.PageCount())
	}
	return err
}

// refresh reloads the list being viewed after a mutation.
func (a *App) refresh(ctx context.Context) error {
	if a.view == viewProfile && a.profile.ViewedLogin() != "" {
		return a.showProfile(ctx, a.profile.ViewedLogin())
	}
	return a.loadCatalog(ctx, a.catalog.Filter())
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	d, err := a.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	printDetail(a.out, d)
	return nil
}

func (a *App) Create(ctx context.Context, _ []string) error {
	if !a.session.IsAuthenticated(ctx) {
		return apperror.Unauthenticated("create recipe")
	}
	draft, err := a.readDraft(ctx, false)
	if err != nil {
		return err
	}
	if err := a.catalog.Create(ctx, a.session.Login(), draft); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Recipe added")
	return a.refresh(ctx)
}

func (a *App) Update(ctx context.Context, args []string) error {
	if !a.session.IsAuthenticated(ctx) {
		return apperror.Unauthenticated("update recipe")
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	draft, err := a.readDraft(ctx, true)
	if err != nil {
		return err
	}
	if err := a.catalog.Update(ctx, a.session.Login(), id, draft); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Recipe updated")
	return a.refresh(ctx)
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.session.IsAuthenticated(ctx) {
		return apperror.Unauthenticated("delete recipe")
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete recipe %d? [y/N]", id), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}
	if err := a.catalog.Remove(ctx, a.session.Login(), id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Recipe deleted")
	return a.refresh(ctx)
}

func (a *App) Like(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.catalog.Like(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Liked", id)
	return nil
}

func (a *App) Unlike(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.catalog.Unlike(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Unliked", id)
	return nil
}

// readDraft prompts for the recipe fields. With partial set, empty answers
// leave the field unchanged on the server.
func (a *App) readDraft(ctx context.Context, partial bool) (models.RecipeDraft, error) {
	var d models.RecipeDraft
	suffix := ""
	if partial {
		suffix = " (empty keeps)"
	}

	var err error
	if d.Title, err = getSimpleText(a.reader, "Title"+suffix, a.out); err != nil {
		return d, err
	}
	if d.About, err = getMultiline(a.reader, "About"+suffix, a.out); err != nil {
		return d, err
	}
	if d.Ingredients, err = getMultiline(a.reader, "Ingredients"+suffix, a.out); err != nil {
		return d, err
	}
	if d.Instructions, err = getMultiline(a.reader, "Instructions"+suffix, a.out); err != nil {
		return d, err
	}
	if d.NeedTime, err = getSimpleText(a.reader, "Cooking time, e.g. 40 min"+suffix, a.out); err != nil {
		return d, err
	}

	c, err := getSimpleText(a.reader, "Complexity 1-3"+suffix, a.out)
	if err != nil {
		return d, err
	}
	if c != "" {
		n, err := strconv.Atoi(c)
		if err != nil {
			return d, fmt.Errorf("complexity %q: not a number", c)
		}
		d.Complexity = models.Complexity(n)
	}

	photos, err := getSimpleText(a.reader, "Photos: file paths or s3://bucket/key, space separated", a.out)
	if err != nil {
		return d, err
	}
	if srcs := strings.Fields(photos); len(srcs) > 0 {
		if d.Photos, err = a.images.LoadAll(ctx, srcs); err != nil {
			return d, fmt.Errorf("photos: %w", err)
		}
		for i, img := range d.Photos {
			if err := checkUpload(srcs[i], img); err != nil {
				return d, fmt.Errorf("photos: %w", err)
			}
		}
	}
	return d, nil
}

var errNotUpload = errors.New("only local files and s3://bucket/key objects can be uploaded")

// checkUpload rejects sources that resolve to a bare URL or an empty file.
func checkUpload(src string, img models.Image) error {
	if !img.IsUpload() {
		return fmt.Errorf("%s: %w", src, errNotUpload)
	}
	return nil
}

func parseID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}
