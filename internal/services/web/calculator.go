package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/cgpa/internal/grade"
	apperrors "github.com/louisbranch/cgpa/internal/services/web/platform/errors"
	"github.com/louisbranch/cgpa/internal/services/web/platform/pagerender"
	"github.com/louisbranch/cgpa/internal/services/web/platform/profilecookie"
	"github.com/louisbranch/cgpa/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/cgpa/internal/services/web/templates"
	"github.com/louisbranch/cgpa/internal/session"
)

// collector loads the snapshot of the request profile for reading.
func (h *handler) collector(r *http.Request) (*session.Collector, error) {
	profileID, ok := profilecookie.ProfileID(r.Context())
	if !ok {
		return nil, apperrors.E(apperrors.KindUnknown, "profile is not resolved")
	}
	return h.loadCollector(r, profileID)
}

// editCollector loads the snapshot of the request profile and holds the
// profile lock until the returned release is called, so concurrent edits
// from one browser apply in turn instead of overwriting each other.
func (h *handler) editCollector(r *http.Request) (*session.Collector, func(), error) {
	profileID, ok := profilecookie.ProfileID(r.Context())
	if !ok {
		return nil, nil, apperrors.E(apperrors.KindUnknown, "profile is not resolved")
	}
	release := h.locks.lock(profileID)
	c, err := h.loadCollector(r, profileID)
	if err != nil {
		release()
		return nil, nil, err
	}
	return c, release, nil
}

func (h *handler) loadCollector(r *http.Request, profileID string) (*session.Collector, error) {
	c, err := session.NewCollector(r.Context(), h.store, profileID, session.WithLogger(h.logger))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "", err)
	}
	return c, nil
}

func (h *handler) handleCalculator(w http.ResponseWriter, r *http.Request) {
	c, err := h.collector(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view := calculatorView(c.Snapshot(), h.loc)
	err = pagerender.WritePage(w, r, h.loc, pagerender.Page{
		Scripts: []string{routepath.StaticFile("calculator.js")},
		Body:    webtemplates.CalculatorPage(view, h.loc),
	})
	if err != nil {
		h.writeError(w, r, err)
	}
}

var sectionTitleKeys = map[grade.Category]string{
	grade.CategoryIA1:        "calculator.section.ia1",
	grade.CategoryIA2:        "calculator.section.ia2",
	grade.CategoryAssignment: "calculator.section.assignment",
	grade.CategorySEE:        "calculator.section.see",
}

// calculatorView lays out the 24 fields in focus order with their stored
// values.
func calculatorView(snapshot session.Snapshot, loc webtemplates.Localizer) webtemplates.CalculatorView {
	marks := snapshot.Marks()
	view := webtemplates.CalculatorView{}
	if snapshot.CGPA != nil {
		view.LastResult = grade.FormatResult(*snapshot.CGPA)
	}

	sections := make(map[grade.Category]int, len(grade.Categories()))
	for _, field := range session.Fields() {
		idx, ok := sections[field.Category]
		if !ok {
			idx = len(view.Sections)
			sections[field.Category] = idx
			view.Sections = append(view.Sections, webtemplates.CalculatorSection{
				Title: webtemplates.T(loc, sectionTitleKeys[field.Category]),
			})
		}
		item := webtemplates.CalculatorField{
			Name:     field.Name(),
			ID:       fieldID(field),
			Label:    webtemplates.T(loc, "calculator.field_label", field.Subject.Label(), fieldMaximum(field)),
			Category: string(field.Category),
			Subject:  string(field.Subject),
			Value:    marks.Value(field.Category, field.Subject),
		}
		if next, ok := session.NextField(field); ok {
			item.NextID = fieldID(next)
		}
		view.Sections[idx].Fields = append(view.Sections[idx].Fields, item)
	}
	return view
}

// fieldID returns the DOM id of a field input.
func fieldID(f session.Field) string {
	return "field-" + strings.ReplaceAll(f.Name(), ".", "-")
}

// fieldMaximum returns the label suffix shown next to each input. IA fields
// of full-scale subjects are entered as a percentage.
func fieldMaximum(f session.Field) string {
	switch f.Category {
	case grade.CategoryAssignment:
		return strconv.Itoa(grade.AssignmentMax)
	case grade.CategorySEE:
		return strconv.Itoa(grade.SEEMax)
	default:
		if f.Subject.FullScaleIA() {
			return "100%"
		}
		return strconv.Itoa(grade.StandardIAMax / 2)
	}
}
