// Package web serves the calculator form, the autosave and submit endpoints,
// the result page and the JSON grade API.
//
// Every request is bound to a browser profile through the signed profile
// cookie; the profile's snapshot is loaded into a session.Collector, changed
// and saved back before the response is written.
package web
