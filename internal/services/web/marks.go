package web

import (
	"net/http"

	"github.com/go-kit/log/level"
	apperrors "github.com/louisbranch/cgpa/internal/services/web/platform/errors"
	"github.com/louisbranch/cgpa/internal/session"
)

// MarkValueHeader echoes the digits kept by an autosave.
const MarkValueHeader = "X-Mark-Value"

// handleMarks stores one field. The browser posts on every keystroke.
func (h *handler) handleMarks(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form body", err))
		return
	}
	field, ok := session.LookupField(r.PostForm.Get("category"), r.PostForm.Get("subject"))
	if !ok {
		h.writeError(w, r, apperrors.EK(apperrors.KindInvalidInput, "web.error.unknown_field", "unknown mark field"))
		return
	}

	c, release, err := h.editCollector(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer release()
	kept, err := c.Update(r.Context(), field, r.PostForm.Get("value"))
	if err != nil {
		_ = level.Error(h.logger).Log("msg", "autosave failed", "field", field.Name(), "err", err)
		h.writeError(w, r, apperrors.Wrap(apperrors.KindUnavailable, "", err))
		return
	}
	w.Header().Set(MarkValueHeader, kept)
	w.WriteHeader(http.StatusNoContent)
}
