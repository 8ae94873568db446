// Package view renders the server-side HTML pages from embedded templates.
package view

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "guidemyai/internal/delivery/context"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// Assets exposes the embedded static files rooted at the assets directory.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}

	return sub
}

// pages maps template names to their page file; every page shares layout.html.
var pages = []string{
	"home",
	"auth_signup",
	"auth_login",
	"oauth_login",
	"rules_index",
	"rules_new",
	"rules_show",
	"mcps_index",
	"mcps_new",
	"mcps_show",
	"profiles_index",
	"profiles_new",
	"profiles_show",
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page against the shared layout.
func New() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse template %q", page)
		}
		templates[page] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

// PageData is the payload every template receives.
type PageData struct {
	Identity *deliverycontext.Identity
	Data     any
}

// Render implements echo.Renderer. The identity comes from the request
// context so every page can show the signed-in user.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("unknown template %q", name)
	}

	return tmpl.ExecuteTemplate(w, "layout", PageData{
		Identity: deliverycontext.GetIdentity(c.Request().Context()),
		Data:     data,
	})
}
