package templates

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"
)

// Localizer provides translated strings for web templ components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

// PageTitle returns the document title for a page, or the application name
// when title is blank.
func PageTitle(loc Localizer, title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return T(loc, "app.name")
	}
	return T(loc, "title.page", title)
}
