package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticlePathPatterns(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		rx      string
		matches []string
	}{
		{name: "canonical article path", path: "/2020/02/01/first-post/", rx: "article", matches: []string{"2020", "02", "01", "first-post"}},
		{name: "day path", path: "/2020/02/01/", rx: "day", matches: []string{"2020", "02", "01"}},
		{name: "month path", path: "/2020/02/", rx: "month", matches: []string{"2020", "02"}},
		{name: "year path", path: "/2020/", rx: "year", matches: []string{"2020"}},
		{name: "legacy redirect path", path: "/first-post-redirect", rx: "legacy", matches: []string{"first-post"}},
		{name: "short title path", path: "/first-post/", rx: "shorttitle", matches: []string{"first-post"}},
		{name: "underscore slug", path: "/first_post/", rx: "shorttitle", matches: []string{"first_post"}},
		{name: "missing trailing slash", path: "/first-post", rx: "none"},
		{name: "two digit year falls back to slug", path: "/20/", rx: "shorttitle", matches: []string{"20"}},
		{name: "slash only", path: "/", rx: "none"},
		{name: "nested junk", path: "/a/b/c/d/e/", rx: "none"},
		{name: "dotted path", path: "/favicon.ico", rx: "none"},
	}

	rxs := map[string]interface{ FindStringSubmatch(string) []string }{
		"article":    articlePathRX,
		"day":        dayPathRX,
		"month":      monthPathRX,
		"year":       yearPathRX,
		"legacy":     legacyPathRX,
		"shorttitle": shortTitlePathRX,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for name, rx := range rxs {
				m := rx.FindStringSubmatch(tt.path)
				if name == tt.rx {
					assert.NotNil(t, m)
					assert.Equal(t, tt.matches, m[1:])
				} else if tt.rx == "none" {
					assert.Nil(t, m, "path %q should not match %s", tt.path, name)
				}
			}
		})
	}
}
