package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/growse/www.growse.com/internal/articleservice"
	"github.com/growse/www.growse.com/internal/commentservice"
	"github.com/growse/www.growse.com/internal/common"
	"github.com/growse/www.growse.com/internal/locationservice"
)

// sidebarData is shared by every rendered page.
type sidebarData struct {
	NavItems     []articleservice.NavItem
	Archives     []articleservice.Archive
	LastLocation *locationservice.Location
}

type articlePageData struct {
	sidebarData
	Article  *articleservice.Article
	Comments []commentservice.Comment
}

type searchPageData struct {
	sidebarData
	Page *articleservice.SearchPage
}

func (d searchPageData) PrevPage() int { return d.Page.Page - 1 }
func (d searchPageData) NextPage() int { return d.Page.Page + 1 }

func (app *application) sidebar(ctx context.Context) (sidebarData, error) {
	var data sidebarData
	var err error

	if data.NavItems, err = app.articleService.NavItems(ctx); err != nil {
		return data, err
	}
	if data.Archives, err = app.articleService.Archives(ctx); err != nil {
		return data, err
	}

	location, err := app.locateService.GetLatest(ctx)
	if err != nil && !errors.Is(err, locationservice.ErrRecordNotFound) {
		return data, err
	}
	data.LastLocation = location

	return data, nil
}

func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	app.articlePageHandler(w, r, "")
}

// articlePageHandler serves the article identified by shortTitle, or the most
// recent article when shortTitle is empty. GET renders the page; POST submits
// a comment.
func (app *application) articlePageHandler(w http.ResponseWriter, r *http.Request, shortTitle string) {
	ctx := r.Context()

	var article *articleservice.Article
	var err error
	if shortTitle == "" {
		article, err = app.articleService.GetLatest(ctx)
	} else {
		article, err = app.articleService.GetByShortTitle(ctx, shortTitle)
	}
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if r.Method == http.MethodPost {
		app.submitCommentHandler(w, r, article)
		return
	}

	data := articlePageData{Article: article}
	if data.Comments, err = app.commentService.GetByArticleID(ctx, article.ID); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if data.sidebarData, err = app.sidebar(ctx); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "article.html", data)
}

// submitCommentHandler accepts a comment form post. Spam rejections are
// indistinguishable from acceptance: either way the client is sent back to
// the article's canonical URL.
func (app *application) submitCommentHandler(w http.ResponseWriter, r *http.Request, article *articleservice.Article) {
	if err := r.ParseForm(); err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := &commentservice.SubmitCommentRequest{
		ArticleID:    article.ID,
		ArticleTitle: article.Title,
		ArticleURL:   app.config.BaseURL + article.CanonicalPath(),
		Name:         r.PostFormValue("name"),
		Website:      r.PostFormValue("website"),
		Comment:      r.PostFormValue("comment"),
		Honeypot:     r.PostFormValue("email"),
		IP:           clientIP(r),
	}

	if _, err := app.commentService.SubmitComment(r.Context(), req); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, article.CanonicalPath(), http.StatusFound)
}

// dateRedirectHandler resolves a bare date path to the earliest matching
// article and permanently redirects to its canonical path.
func (app *application) dateRedirectHandler(w http.ResponseWriter, r *http.Request, year, month, day string) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	article, err := app.articleService.ResolveByDate(r.Context(), y, m, d)
	if err != nil {
		var ve common.ValidationError
		switch {
		case errors.Is(err, articleservice.ErrRecordNotFound), errors.As(err, &ve):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, article.CanonicalPath(), http.StatusMovedPermanently)
}

func (app *application) legacyRedirectHandler(w http.ResponseWriter, r *http.Request, shortTitle string) {
	article, err := app.articleService.GetByShortTitle(r.Context(), shortTitle)
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, article.CanonicalPath(), http.StatusMovedPermanently)
}

func (app *application) navListHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	ts, err := parseNavTimestamp(params.ByName("timestamp"))
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var items []articleservice.NavItem
	switch params.ByName("direction") {
	case "before":
		items, err = app.articleService.NavListBefore(r.Context(), ts)
	case "since":
		items, err = app.articleService.NavListSince(r.Context(), ts)
	default:
		app.notFoundErrorResponse(w, r)
		return
	}
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if items == nil {
		items = []articleservice.NavItem{}
	}
	if err := app.writeJSON(w, http.StatusOK, items, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// parseNavTimestamp accepts either an epoch-seconds value or an RFC 3339 /
// "2006-01-02 15:04:05" datestamp.
func parseNavTimestamp(s string) (time.Time, error) {
	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC(), nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}

// searchRootHandler handles /search without a term: a POSTed search form is
// redirected to the term's results page, anything else goes home.
func (app *application) searchRootHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		term := strings.TrimSpace(r.PostFormValue("a"))
		if term == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/search/"+url.PathEscape(term)+"/", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/", http.StatusMovedPermanently)
}

func (app *application) searchHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	term := params.ByName("term")

	page := 1
	if p := params.ByName("page"); p != "" {
		var err error
		if page, err = strconv.Atoi(p); err != nil || page < 1 {
			app.notFoundErrorResponse(w, r)
			return
		}
	}

	result, err := app.articleService.Search(r.Context(), term, page)
	if err != nil {
		var ve common.ValidationError
		switch {
		case errors.As(err, &ve):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	data := searchPageData{Page: result}
	if data.sidebarData, err = app.sidebar(r.Context()); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "search.html", data)
}

// locatorHandler records a device ping. Malformed pings are rejected with a
// 404 rather than a validation response, matching what the device expects.
func (app *application) locatorHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := &locationservice.RecordPingRequest{
		Lat:  r.PostFormValue("lat"),
		Long: r.PostFormValue("long"),
		Acc:  r.PostFormValue("acc"),
		Time: r.PostFormValue("time"),
	}

	if _, err := app.locateService.RecordPing(r.Context(), req); err != nil {
		var ve common.ValidationError
		switch {
		case errors.Is(err, locationservice.ErrMissingField), errors.As(err, &ve):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (app *application) locationHandler(w http.ResponseWriter, r *http.Request) {
	location, err := app.locateService.GetLatest(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, locationservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.Header().Set("Last-Modified", location.Timestamp.UTC().Format(http.TimeFormat))

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	env := envelope{
		"name":      location.Name(),
		"latitude":  fmt.Sprintf("%.2f", location.Latitude.InexactFloat64()),
		"longitude": fmt.Sprintf("%.2f", location.Longitude.InexactFloat64()),
	}
	if err := app.writeJSON(w, http.StatusOK, env, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
