package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/dmitrijs2005/recipes/internal/client/models"
)

// userForm encodes the profile edit: login, about and icon. The icon is a
// file part only when new content is staged.
func userForm(form models.EditForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("login", form.Login); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("about", form.About); err != nil {
		return nil, "", err
	}
	if form.Icon.IsUpload() {
		if err := writeFile(w, "icon", *form.Icon); err != nil {
			return nil, "", err
		}
	} else if err := w.WriteField("icon", ""); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// recipeForm encodes a recipe draft with one "photos" part per new image.
// Empty fields are omitted so updates leave them unchanged.
func recipeForm(d models.RecipeDraft) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"title", d.Title},
		{"about", d.About},
		{"ingridients", d.Ingredients},
		{"instructions", d.Instructions},
		{"need_time", d.NeedTime},
	}
	if d.Complexity != 0 {
		fields = append(fields, struct{ name, value string }{"complexitiy", strconv.Itoa(int(d.Complexity))})
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	for i, p := range d.Photos {
		if !p.IsUpload() {
			continue
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("photo%d", i+1)
		}
		if err := writeFile(w, "photos", p); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, field string, img models.Image) error {
	name := img.Name
	if name == "" {
		name = field
	}
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		return fmt.Errorf("multipart %s: %w", field, err)
	}
	_, err = part.Write(img.Data)
	return err
}
