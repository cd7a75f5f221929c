package main

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/growse/www.growse.com/internal/articleservice"
	"github.com/growse/www.growse.com/internal/commentservice"
	"github.com/growse/www.growse.com/internal/common"
	"github.com/growse/www.growse.com/internal/locationservice"
)

type nopProducer struct{}

func (nopProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	return nil
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &Config{
		Environment: "test",
		Version:     "test",
		BaseURL:     "http://www.growse.com",
	}

	app := &application{
		config:         cfg,
		logger:         logger,
		articleService: articleservice.NewArticleService(db, common.NewCache(gocache.NoExpiration, 0)),
		commentService: commentservice.NewCommentService(db, nopProducer{}, logger),
		locateService:  locationservice.NewLocationService(db),
	}

	return app, db
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	// Redirects are assertions in these tests, never followed.
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{ts}
}

func (ts *testServer) get(t *testing.T, urlPath string) (int, http.Header, string) {
	rs, err := ts.Client().Get(ts.URL + urlPath)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}

	return rs.StatusCode, rs.Header, string(body)
}

func (ts *testServer) postForm(t *testing.T, urlPath string, form url.Values) (int, http.Header, string) {
	rs, err := ts.Client().Post(ts.URL+urlPath, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}

	return rs.StatusCode, rs.Header, string(body)
}

func insertArticle(t *testing.T, db *sql.DB, title, shortTitle, body string, datestamp time.Time) int {
	var id int
	err := db.QueryRow(`INSERT INTO articles (title, shorttitle, markdown, searchtext, published, datestamp) VALUES ($1, $2, $3, $4, true, $5) RETURNING id`,
		title, shortTitle, body, body, datestamp).Scan(&id)
	if err != nil {
		t.Fatalf("could not insert article: %v", err)
	}
	return id
}
