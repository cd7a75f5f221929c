package main

import (
	"net/http"
	"regexp"
)

// The article URL space mirrors the canonical path layout: a slug on its own,
// a slug qualified by its publication date, a bare date prefix that redirects
// to the earliest matching article, and a legacy "-redirect" form that 301s to
// the canonical path.
var (
	articlePathRX    = regexp.MustCompile(`^/(\d{4})/(\d{2})/(\d{2})/([\w-]+)/$`)
	dayPathRX        = regexp.MustCompile(`^/(\d{4})/(\d{2})/(\d{2})/$`)
	monthPathRX      = regexp.MustCompile(`^/(\d{4})/(\d{2})/$`)
	yearPathRX       = regexp.MustCompile(`^/(\d{4})/$`)
	legacyPathRX     = regexp.MustCompile(`^/([\w-]+)-redirect$`)
	shortTitlePathRX = regexp.MustCompile(`^/([\w-]+)/$`)
)

func (app *application) dispatchPath(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if m := articlePathRX.FindStringSubmatch(path); m != nil {
		app.articlePageHandler(w, r, m[4])
		return
	}
	if m := dayPathRX.FindStringSubmatch(path); m != nil {
		app.dateRedirectHandler(w, r, m[1], m[2], m[3])
		return
	}
	if m := monthPathRX.FindStringSubmatch(path); m != nil {
		app.dateRedirectHandler(w, r, m[1], m[2], "")
		return
	}
	if m := yearPathRX.FindStringSubmatch(path); m != nil {
		app.dateRedirectHandler(w, r, m[1], "", "")
		return
	}
	if m := legacyPathRX.FindStringSubmatch(path); m != nil {
		app.legacyRedirectHandler(w, r, m[1])
		return
	}
	if m := shortTitlePathRX.FindStringSubmatch(path); m != nil {
		app.articlePageHandler(w, r, m[1])
		return
	}

	app.notFoundErrorResponse(w, r)
}
