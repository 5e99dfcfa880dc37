package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/cgpa/internal/services/web/routepath"
)

// LayoutOptions configures the document shell around a page body.
type LayoutOptions struct {
	// Title is the page-specific title; blank renders the application name.
	Title string
	// Scripts lists static script paths loaded at the end of the body.
	Scripts []string
}

// Layout renders the HTML document shell and its children.
func Layout(opts LayoutOptions, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<meta name="description"`)
		h.attr("content", T(loc, "meta.description"))
		h.raw(`><title>`)
		h.text(PageTitle(loc, opts.Title))
		h.raw(`</title><link rel="stylesheet"`)
		h.attr("href", routepath.StaticFile("app.css"))
		h.raw(`></head><body>`)
		if h.err != nil {
			return h.err
		}

		children := templ.GetChildren(ctx)
		if err := children.Render(templ.ClearChildren(ctx), w); err != nil {
			return err
		}

		for _, script := range opts.Scripts {
			h.raw(`<script defer`)
			h.attr("src", script)
			h.raw(`></script>`)
		}
		h.raw(`</body></html>`)
		return h.err
	})
}
