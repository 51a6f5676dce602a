package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		";",
		"http://img/1.png",
		"http://img/1.png;",
		"http://img/1.png;http://img/2.png;",
		"http://img/1.png;;",
	}
	for _, in := range inputs {
		once := NormalizeURL(in)
		assert.Equal(t, once, NormalizeURL(once), "input %q", in)
		assert.NotContains(t, once[max(len(once)-1, 0):], URLSeparator)
	}
	assert.Equal(t, "http://img/1.png", NormalizeURL("http://img/1.png;"))
}

func TestSplitURLs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitURLs("a;b;"))
	assert.Nil(t, SplitURLs(""))
	assert.Nil(t, SplitURLs(";"))
}

func TestUserProfile_NormalizedDoesNotAlias(t *testing.T) {
	p := UserProfile{
		Login:        "chef42",
		IconURL:      "http://img/icon.png;",
		Recipes:      []Recipe{{ID: 1, PhotoURLs: "http://img/r1.png;", Author: Author{IconURL: "http://img/a.png;"}}},
		LikedRecipes: []Recipe{{ID: 2, PhotoURLs: "http://img/r2.png;"}},
	}

	n := p.Normalized()

	assert.Equal(t, "http://img/icon.png", n.IconURL)
	assert.Equal(t, "http://img/r1.png", n.Recipes[0].PhotoURLs)
	assert.Equal(t, "http://img/a.png", n.Recipes[0].Author.IconURL)
	assert.Equal(t, "http://img/r2.png", n.LikedRecipes[0].PhotoURLs)
	assert.Equal(t, "http://img/r1.png;", p.Recipes[0].PhotoURLs, "source must stay untouched")
}

func TestEditForm_ApplyAndFrom(t *testing.T) {
	p := UserProfile{Login: "chef42", About: "soups", IconURL: "http://img/icon.png"}
	f := EditFormFrom(p)

	want := EditForm{Login: "chef42", About: "soups", Icon: &Image{URL: "http://img/icon.png"}}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Fatalf("EditFormFrom mismatch (-want +got):\n%s", diff)
	}

	login := "chef43"
	f2 := f.Apply(EditPatch{Login: &login})
	assert.Equal(t, "chef43", f2.Login)
	assert.Equal(t, "soups", f2.About)
	assert.Equal(t, "chef42", f.Login, "Apply works on a copy")

	f3 := f2.Apply(EditPatch{Icon: &Image{Name: "me.png", Data: []byte{1}}})
	assert.True(t, f3.Icon.IsUpload())
	assert.False(t, f2.Icon.IsUpload())

	var nilImage *Image
	assert.False(t, nilImage.IsUpload())
}

func TestComplexity_Valid(t *testing.T) {
	assert.True(t, ComplexityEasy.Valid())
	assert.True(t, ComplexityHard.Valid())
	assert.False(t, Complexity(0).Valid())
	assert.False(t, Complexity(4).Valid())
}
