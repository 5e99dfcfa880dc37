package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/cgpa/internal/services/web/routepath"
)

const (
	errorPageTitleNotFoundKey    = "web.error.page_title_not_found"
	errorPageTitleServerErrKey   = "web.error.page_title_server_error"
	errorHeadingNotFoundKey      = "web.error.title_not_found"
	errorHeadingServerErrKey     = "web.error.title_server_error"
	errorMessageNotFoundKey      = "web.error.message_not_found"
	errorMessageServerErrKey     = "web.error.message_server_error"
	errorBackToCalculatorTextKey = "web.error.action_back_to_calculator"
)

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, errorPageTitleNotFoundKey)
	}
	return T(loc, errorPageTitleServerErrKey)
}

func errorHeading(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, errorHeadingNotFoundKey)
	}
	return T(loc, errorHeadingServerErrKey)
}

func errorMessage(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, errorMessageNotFoundKey)
	}
	return T(loc, errorMessageServerErrKey)
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ErrorState renders the body of an error page.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		status := normalizeErrorStatus(statusCode)
		h := &htmlWriter{w: w}
		h.raw(`<main class="error-state" id="error-state"`)
		h.attr("data-status", itoa(status))
		h.raw(`><h1>`)
		h.text(errorHeading(status, loc))
		h.raw(`</h1><p>`)
		h.text(errorMessage(status, loc))
		h.raw(`</p><a class="back"`)
		h.attr("href", routepath.Root)
		h.raw(`>`)
		h.text(T(loc, errorBackToCalculatorTextKey))
		h.raw(`</a></main>`)
		return h.err
	})
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
