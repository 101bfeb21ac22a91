// Package views holds the HTML templates of the control panel.
package views

import (
	"droboapp-panel/models"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names
const (
	PageTemplate  = "page"
	LoginTemplate = "login"
)

// LoginPage is the data of the login form
type LoginPage struct {
	App   models.AppIdentity
	Error string
}

type panelHeader struct {
	ID       string
	Title    string
	Expanded bool
}

var funcs = template.FuncMap{
	"panel": func(id, title string, expanded bool) panelHeader {
		return panelHeader{ID: id, Title: title, Expanded: expanded}
	},
}

var templates = template.Must(template.New("views").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))

// Templates returns the parsed template set
func Templates() *template.Template {
	return templates
}

// Render writes the status page for page to w. It reads nothing but page.
func Render(w io.Writer, page *models.Page) error {
	return templates.ExecuteTemplate(w, PageTemplate, page)
}

// RenderLogin writes the login form to w
func RenderLogin(w io.Writer, page *LoginPage) error {
	return templates.ExecuteTemplate(w, LoginTemplate, page)
}
