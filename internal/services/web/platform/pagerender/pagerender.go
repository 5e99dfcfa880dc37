// Package pagerender centralizes full-page rendering for web handlers.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/cgpa/internal/services/web/platform/httpx"
	webtemplates "github.com/louisbranch/cgpa/internal/services/web/templates"
)

// Page describes one full-page response.
type Page struct {
	Title      string
	StatusCode int
	Scripts    []string
	Body       templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page inside the shared layout. Rendering happens into a
// buffer first so a template failure never leaves a half-written response.
func WritePage(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}

	ctx := templ.WithChildren(httpx.RequestContext(r), body)
	layout := webtemplates.Layout(webtemplates.LayoutOptions{Title: page.Title, Scripts: page.Scripts}, loc)
	var buf bytes.Buffer
	if err := layout.Render(ctx, &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
