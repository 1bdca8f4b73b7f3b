package cardentry

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/alovak/cardentry-playground/cardentry/models"
)

//go:embed templates/*.html
var templates embed.FS

type formField struct {
	ID          string
	Label       string
	Placeholder string
	Value       string
	Error       models.FieldError
	Hint        string
}

var page = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"field": func(id, label, placeholder, value string, fe models.FieldError, hint string) formField {
		return formField{ID: id, Label: label, Placeholder: placeholder, Value: value, Error: fe, Hint: hint}
	},
}).ParseFS(templates, "templates/index.html"))

// RenderPage writes the HTML projection of v.
func RenderPage(w http.ResponseWriter, v models.View) error {
	var buf bytes.Buffer
	if err := page.Execute(&buf, v); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}
