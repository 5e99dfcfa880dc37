package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/cgpa/internal/services/web/routepath"
)

// CalculatorField is one mark input on the calculator form.
type CalculatorField struct {
	// Name is the form field name, for example "ia1.DSA".
	Name     string
	ID       string
	Label    string
	Category string
	Subject  string
	Value    string
	// NextID is the input focused when Enter is pressed; empty on the last
	// field, where Enter submits the form.
	NextID string
}

// CalculatorSection groups the fields of one mark category.
type CalculatorSection struct {
	Title  string
	Fields []CalculatorField
}

// CalculatorView is the calculator page model.
type CalculatorView struct {
	Sections []CalculatorSection
	// LastResult is the formatted result of the previous calculation, if any.
	LastResult string
}

// CalculatorPage renders the mark entry form.
func CalculatorPage(view CalculatorView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<main class="calculator"><h1>`)
		h.text(T(loc, "calculator.heading"))
		h.raw(`</h1><form id="cgpa-form" method="post"`)
		h.attr("action", routepath.Calculate)
		h.attr("data-autosave", routepath.Marks)
		h.raw(` novalidate>`)

		for idx, section := range view.Sections {
			if idx > 0 {
				h.raw(`<hr class="separator">`)
			}
			h.raw(`<section class="marks-section"><h2>`)
			h.text(section.Title)
			h.raw(`</h2>`)
			for _, field := range section.Fields {
				writeMarkField(h, field)
			}
			h.raw(`</section>`)
		}

		h.raw(`<button type="submit" class="submit">`)
		h.text(T(loc, "calculator.submit"))
		h.raw(`</button></form>`)
		if view.LastResult != "" {
			h.raw(`<p class="last-result" id="last-result">`)
			h.text(T(loc, "calculator.last_result", view.LastResult))
			h.raw(`</p>`)
		}
		h.raw(`</main>`)
		return h.err
	})
}

func writeMarkField(h *htmlWriter, field CalculatorField) {
	h.raw(`<div class="mark"><label`)
	h.attr("for", field.ID)
	h.raw(`>`)
	h.text(field.Label)
	h.raw(`</label><input type="text" inputmode="numeric" pattern="[0-9]*" autocomplete="off"`)
	h.attr("id", field.ID)
	h.attr("name", field.Name)
	h.attr("value", field.Value)
	h.attr("data-category", field.Category)
	h.attr("data-subject", field.Subject)
	if field.NextID != "" {
		h.attr("data-next", field.NextID)
	} else {
		h.raw(` data-submit`)
	}
	h.raw(`></div>`)
}
