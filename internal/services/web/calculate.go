package web

import (
	"net/http"

	"github.com/go-kit/log/level"
	"github.com/louisbranch/cgpa/internal/grade"
	apperrors "github.com/louisbranch/cgpa/internal/services/web/platform/errors"
	"github.com/louisbranch/cgpa/internal/services/web/platform/httpx"
	"github.com/louisbranch/cgpa/internal/services/web/routepath"
	"github.com/louisbranch/cgpa/internal/session"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// handleCalculate stores any submitted fields, runs the grade engine and
// redirects to the result page.
func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "web.calculate")
	defer span.End()
	r = r.WithContext(ctx)

	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form body", err))
		return
	}
	values := make(map[session.Field]string)
	for name, submitted := range r.PostForm {
		field, ok := session.ParseField(name)
		if !ok || len(submitted) == 0 {
			continue
		}
		values[field] = submitted[0]
	}

	c, release, err := h.editCollector(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load snapshot")
		h.writeError(w, r, err)
		return
	}
	defer release()
	if len(values) > 0 {
		if _, err := c.UpdateMany(ctx, values); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "save marks")
			h.writeError(w, r, apperrors.Wrap(apperrors.KindUnavailable, "", err))
			return
		}
	}
	result, err := c.Submit(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save result")
		h.writeError(w, r, apperrors.Wrap(apperrors.KindUnavailable, "", err))
		return
	}

	display := grade.FormatResult(result)
	span.SetAttributes(
		attribute.Int("cgpa.fields_submitted", len(values)),
		attribute.Float64("cgpa.result", result),
		attribute.String("cgpa.display", display),
	)
	_ = level.Info(h.logger).Log("msg", "cgpa calculated", "profile_id", c.ProfileID(), "display", display)
	httpx.WriteRedirect(w, r, routepath.ScoreWithResult(display))
}
