package templates

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/cgpa/internal/services/web/i18n"
	"golang.org/x/net/html"
)

func testLocalizer(t *testing.T) Localizer {
	t.Helper()
	return webi18n.Printer()
}

func render(t *testing.T, c templ.Component, ctx context.Context) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attrValue(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func TestLayoutWrapsChildrenAndScripts(t *testing.T) {
	t.Parallel()

	loc := testLocalizer(t)
	child := ScorePage(ScoreView{Score: "9.10", Celebrate: true}, loc)
	ctx := templ.WithChildren(context.Background(), child)
	doc := render(t, Layout(LayoutOptions{Title: "Your Score", Scripts: []string{"/static/confetti.js"}}, loc), ctx)

	titles := findAll(doc, "title")
	if len(titles) != 1 || textOf(titles[0]) != "Your Score | CGPA Calculator" {
		t.Fatalf("title = %v", titles)
	}
	if findByID(doc, "score-value") == nil {
		t.Fatal("layout did not render children")
	}
	scripts := findAll(doc, "script")
	if len(scripts) != 1 || attrValue(scripts[0], "src") != "/static/confetti.js" {
		t.Fatalf("scripts = %d", len(scripts))
	}
}

func TestCalculatorPageRendersFieldsInOrder(t *testing.T) {
	t.Parallel()

	view := CalculatorView{
		Sections: []CalculatorSection{
			{Title: "IA 1 Marks", Fields: []CalculatorField{
				{Name: "ia1.DSA", ID: "field-ia1-DSA", Label: "DSA (60)", Category: "ia1", Subject: "DSA", Value: "50", NextID: "field-ia1-DDCO"},
				{Name: "ia1.DDCO", ID: "field-ia1-DDCO", Label: "DDCO (60)", Category: "ia1", Subject: "DDCO", Value: `"><b>`},
			}},
		},
		LastResult: "8.68",
	}
	doc := render(t, CalculatorPage(view, testLocalizer(t)), context.Background())

	inputs := findAll(doc, "input")
	if len(inputs) != 2 {
		t.Fatalf("inputs = %d, want 2", len(inputs))
	}
	if got := attrValue(inputs[0], "data-next"); got != "field-ia1-DDCO" {
		t.Fatalf("first data-next = %q", got)
	}
	if !hasAttr(inputs[1], "data-submit") || hasAttr(inputs[1], "data-next") {
		t.Fatal("last field should submit instead of advancing")
	}
	if got := attrValue(inputs[1], "value"); got != `"><b>` {
		t.Fatalf("escaped value round trip = %q", got)
	}
	if len(findAll(doc, "b")) != 0 {
		t.Fatal("field value was not escaped")
	}
	if attrValue(inputs[0], "inputmode") != "numeric" || attrValue(inputs[0], "pattern") != "[0-9]*" {
		t.Fatal("numeric input hints missing")
	}

	form := findByID(doc, "cgpa-form")
	if form == nil || attrValue(form, "action") != "/calculate" || attrValue(form, "data-autosave") != "/marks" {
		t.Fatalf("form attributes wrong: %+v", form)
	}
	if got := textOf(findByID(doc, "last-result")); got != "Last result: 8.68" {
		t.Fatalf("last result = %q", got)
	}
	labels := findAll(doc, "label")
	if textOf(labels[0]) != "DSA (60)" || attrValue(labels[0], "for") != "field-ia1-DSA" {
		t.Fatalf("label = %q for %q", textOf(labels[0]), attrValue(labels[0], "for"))
	}
}

func TestScorePageConfettiOnlyWhenCelebrating(t *testing.T) {
	t.Parallel()

	loc := testLocalizer(t)
	doc := render(t, ScorePage(ScoreView{Score: "10.00", Celebrate: true}, loc), context.Background())
	confetti := findByID(doc, "confetti")
	if confetti == nil {
		t.Fatal("expected confetti canvas")
	}
	if attrValue(confetti, "data-particles") != "1000" || attrValue(confetti, "data-spread") != "100" || attrValue(confetti, "data-origin-y") != "0.6" {
		t.Fatalf("confetti attrs = %+v", confetti.Attr)
	}
	if got := textOf(findByID(doc, "score-value")); got != "10.00" {
		t.Fatalf("score = %q", got)
	}

	doc = render(t, ScorePage(ScoreView{}, loc), context.Background())
	if findByID(doc, "confetti") != nil {
		t.Fatal("confetti rendered without a score")
	}
	links := findAll(doc, "a")
	if len(links) != 1 || attrValue(links[0], "href") != "/" || textOf(links[0]) != "Go back" {
		t.Fatal("missing back link")
	}
}

func TestErrorStateNormalizesStatus(t *testing.T) {
	t.Parallel()

	loc := testLocalizer(t)
	doc := render(t, ErrorState(http.StatusNotFound, loc), context.Background())
	state := findByID(doc, "error-state")
	if state == nil || attrValue(state, "data-status") != "404" {
		t.Fatal("missing 404 error state")
	}
	if got := ErrorPageTitle(http.StatusNotFound, loc); got != "Page not found" {
		t.Fatalf("ErrorPageTitle(404) = %q", got)
	}

	doc = render(t, ErrorState(http.StatusBadGateway, loc), context.Background())
	if attrValue(findByID(doc, "error-state"), "data-status") != "500" {
		t.Fatal("5xx status should normalize to 500")
	}
}
