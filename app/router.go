package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()
	// Article and date paths live at the root of the URL space, which
	// httprouter cannot express alongside the static routes. Anything the
	// static routes do not claim falls through to the path dispatcher.
	router.HandleMethodNotAllowed = false
	router.NotFound = http.HandlerFunc(app.dispatchPath)

	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	router.HandlerFunc(http.MethodGet, "/nav/:direction/:timestamp", app.navListHandler)

	router.HandlerFunc(http.MethodGet, "/search", app.searchRootHandler)
	router.HandlerFunc(http.MethodPost, "/search", app.searchRootHandler)
	router.HandlerFunc(http.MethodGet, "/search/:term/", app.searchHandler)
	router.HandlerFunc(http.MethodPost, "/search/:term/", app.searchHandler)
	router.HandlerFunc(http.MethodGet, "/search/:term/page/:page/", app.searchHandler)
	router.HandlerFunc(http.MethodPost, "/search/:term/page/:page/", app.searchHandler)

	router.HandlerFunc(http.MethodPost, "/locator", app.locatorHandler)
	router.HandlerFunc(http.MethodGet, "/location/", app.locationHandler)
	router.HandlerFunc(http.MethodHead, "/location/", app.locationHandler)

	return app.recoverPanic(app.logRequest(app.rateLimit(router)))
}
