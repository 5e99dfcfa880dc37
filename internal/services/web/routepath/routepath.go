// Package routepath stores canonical HTTP paths for the web service.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Marks        = "/marks"
	Calculate    = "/calculate"
	Score        = "/score"
	APIGrade     = "/api/grade"
	Health       = "/health"
	StaticPrefix = "/static/"
)

// ScoreParam is the query parameter carrying the formatted result.
const ScoreParam = "s"

// ScoreWithResult returns the result route carrying display verbatim.
func ScoreWithResult(display string) string {
	return Score + "?" + url.Values{ScoreParam: []string{display}}.Encode()
}

// StaticFile returns the route of an embedded static asset.
func StaticFile(name string) string {
	return StaticPrefix + escapeSegment(strings.TrimPrefix(name, "/"))
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
