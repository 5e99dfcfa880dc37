package web

import (
	"net/http"

	"github.com/louisbranch/cgpa/internal/grade"
	apperrors "github.com/louisbranch/cgpa/internal/services/web/platform/errors"
	"github.com/louisbranch/cgpa/internal/services/web/platform/httpx"
)

// handleAPIGrade scores a JSON mark sheet without touching the profile
// snapshot.
func (h *handler) handleAPIGrade(w http.ResponseWriter, r *http.Request) {
	var marks grade.Marks
	if err := httpx.DecodeJSON(w, r, &marks); err != nil {
		_ = httpx.WriteJSONError(w, apperrors.HTTPStatus(err), err.Error())
		return
	}
	report := grade.Explain(marks)
	_ = httpx.WriteJSON(w, http.StatusOK, report)
}
