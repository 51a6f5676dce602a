package models

import "time"

// Session is the authenticated identity of this client instance.
// IsAuthenticated implies a non-empty Login and a live session credential.
type Session struct {
	Login           string
	Email           string
	IsAuthenticated bool
}

// UserProfile is the currently viewed profile. It is replaced wholesale on
// every successful fetch.
type UserProfile struct {
	ID           int
	Login        string
	About        string
	IconURL      string
	CreatedAt    time.Time
	Recipes      []Recipe
	LikedRecipes []Recipe
	IsSubscribed bool
}

// Normalized returns a deep copy with every URL field normalized.
func (p UserProfile) Normalized() UserProfile {
	p.IconURL = NormalizeURL(p.IconURL)
	p.Recipes = NormalizeRecipes(p.Recipes)
	p.LikedRecipes = NormalizeRecipes(p.LikedRecipes)
	return p
}

// Clone returns a copy whose recipe slices do not alias p's.
func (p UserProfile) Clone() UserProfile {
	p.Recipes = CloneRecipes(p.Recipes)
	p.LikedRecipes = CloneRecipes(p.LikedRecipes)
	return p
}

// Image is an icon or photo payload. Either Data holds new content to upload
// or URL points at an image the server already has.
type Image struct {
	Name string
	Data []byte
	URL  string
}

// IsUpload reports whether the image carries new content.
func (i *Image) IsUpload() bool {
	return i != nil && len(i.Data) > 0
}

// EditForm is the staging copy of the editable profile fields. It is never
// the committed profile; a successful save is what makes it so.
type EditForm struct {
	Icon  *Image
	Login string
	About string
}

// EditFormFrom stages p's current values.
func EditFormFrom(p UserProfile) EditForm {
	f := EditForm{Login: p.Login, About: p.About}
	if p.IconURL != "" {
		f.Icon = &Image{URL: p.IconURL}
	}
	return f
}

// EditPatch is a partial update of the form; nil fields are left alone.
type EditPatch struct {
	Icon  *Image
	Login *string
	About *string
}

// Apply merges the non-nil fields of patch into f.
func (f EditForm) Apply(patch EditPatch) EditForm {
	if patch.Icon != nil {
		icon := *patch.Icon
		f.Icon = &icon
	}
	if patch.Login != nil {
		f.Login = *patch.Login
	}
	if patch.About != nil {
		f.About = *patch.About
	}
	return f
}
