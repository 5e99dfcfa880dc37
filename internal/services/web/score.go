package web

import (
	"net/http"

	"github.com/louisbranch/cgpa/internal/services/web/platform/pagerender"
	"github.com/louisbranch/cgpa/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/cgpa/internal/services/web/templates"
)

// handleScore renders the s parameter verbatim. The confetti burst plays only
// when s is non-empty.
func (h *handler) handleScore(w http.ResponseWriter, r *http.Request) {
	score := r.URL.Query().Get(routepath.ScoreParam)
	view := webtemplates.ScoreView{Score: score, Celebrate: score != ""}
	page := pagerender.Page{
		Title: webtemplates.T(h.loc, "score.title"),
		Body:  webtemplates.ScorePage(view, h.loc),
	}
	if view.Celebrate {
		page.Scripts = []string{routepath.StaticFile("confetti.js")}
	}
	if err := pagerender.WritePage(w, r, h.loc, page); err != nil {
		h.writeError(w, r, err)
	}
}
