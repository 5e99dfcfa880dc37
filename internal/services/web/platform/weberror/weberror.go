// Package weberror renders shared error responses for web handlers.
package weberror

import (
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/cgpa/internal/services/web/platform/errors"
	"github.com/louisbranch/cgpa/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/cgpa/internal/services/web/templates"
)

// ShouldRenderErrorPage reports whether status should use the error page.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if statusCode < http.StatusInternalServerError {
		if appErr := strings.TrimSpace(err.Error()); appErr != "" && apperrors.KindOf(err) != apperrors.KindUnknown {
			return appErr
		}
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteErrorPage writes the full error page for statusCode.
func WriteErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, loc webtemplates.Localizer) {
	if w == nil {
		return
	}
	if !ShouldRenderErrorPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	err := pagerender.WritePage(w, r, loc, pagerender.Page{
		Title:      webtemplates.ErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Body:       webtemplates.ErrorState(statusCode, loc),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteError writes a page for 404 and 5xx failures and plain text for the
// remaining client errors.
func WriteError(w http.ResponseWriter, r *http.Request, err error, loc webtemplates.Localizer) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderErrorPage(statusCode) {
		WriteErrorPage(w, r, statusCode, loc)
		return
	}
	http.Error(w, PublicMessage(loc, err), statusCode)
}
