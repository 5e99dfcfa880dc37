package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/cgpa/internal/services/web/routepath"
)

// Confetti burst parameters for the score page.
const (
	ConfettiParticles = 1000
	ConfettiSpread    = 100
	ConfettiOriginY   = "0.6"
)

// ScoreView is the result page model.
type ScoreView struct {
	// Score is the navigation parameter, shown verbatim.
	Score string
	// Celebrate is set when the parameter was present.
	Celebrate bool
}

// ScorePage renders the result view.
func ScorePage(view ScoreView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<main class="score" id="score"><h1 class="score-label">`)
		h.text(T(loc, "score.heading"))
		h.raw(`</h1><h2 class="score-value" id="score-value">`)
		h.text(view.Score)
		h.raw(`</h2><a class="back"`)
		h.attr("href", routepath.Root)
		h.raw(`>`)
		h.text(T(loc, "score.back"))
		h.raw(`</a>`)
		if view.Celebrate {
			h.raw(`<canvas id="confetti" class="confetti"`)
			h.attr("data-particles", itoa(ConfettiParticles))
			h.attr("data-spread", itoa(ConfettiSpread))
			h.attr("data-origin-y", ConfettiOriginY)
			h.raw(`></canvas>`)
		}
		h.raw(`</main>`)
		return h.err
	})
}
