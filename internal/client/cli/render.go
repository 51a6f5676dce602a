package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/recipes/internal/client/models"
)

func printRecipes(w io.Writer, rs []models.Recipe) {
	if len(rs) == 0 {
		fmt.Fprintln(w, "No recipes")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tCOMPLEXITY\tTIME")
	for _, r := range rs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Author.Login, complexityLabel(r.Complexity), r.NeedTime)
	}
	_ = tw.Flush()
}

func printProfile(w io.Writer, p models.UserProfile, own bool) {
	title := p.Login
	if own {
		title += " (you)"
	}
	fmt.Fprintln(w, title)
	if p.About != "" {
		fmt.Fprintln(w, "  "+p.About)
	}
	if p.IconURL != "" {
		fmt.Fprintln(w, "  icon:", p.IconURL)
	}
	if !p.CreatedAt.IsZero() {
		fmt.Fprintln(w, "  joined:", p.CreatedAt.Local().Format(time.DateOnly))
	}
	if !own {
		fmt.Fprintln(w, "  subscribed:", yesNo(p.IsSubscribed))
	}
	fmt.Fprintf(w, "  recipes: %d, liked: %d\n", len(p.Recipes), len(p.LikedRecipes))
}

func printDetail(w io.Writer, d models.RecipeDetail) {
	r := d.Recipe
	fmt.Fprintf(w, "#%d %s\n", r.ID, r.Title)
	fmt.Fprintf(w, "by %s, %s, %s\n", r.Author.Login, complexityLabel(r.Complexity), r.NeedTime)
	fmt.Fprintf(w, "likes: %d, liked by you: %s\n", d.LikesCount, yesNo(d.IsLiked))

	section(w, "About", r.About)
	section(w, "Ingredients", r.Ingredients)
	section(w, "Instructions", r.Instructions)
	if urls := models.SplitURLs(r.PhotoURLs); len(urls) > 0 {
		section(w, "Photos", strings.Join(urls, "\n"))
	}

	if len(d.Comments) > 0 {
		fmt.Fprintln(w, "\nComments:")
		for _, c := range d.Comments {
			fmt.Fprintf(w, "  %s (%s): %s\n", c.Author.Login, c.CreatedAt.Local().Format(time.DateTime), c.Text)
		}
	}
}

func section(w io.Writer, name, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(w, "\n%s:\n%s\n", name, body)
}

func complexityLabel(c models.Complexity) string {
	switch c {
	case models.ComplexityEasy:
		return "easy"
	case models.ComplexityMedium:
		return "medium"
	case models.ComplexityHard:
		return "hard"
	}
	return "-"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
