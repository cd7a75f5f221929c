package articleservice

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/growse/www.growse.com/internal/common"
)

type Article struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	ShortTitle string `json:"shorttitle"`
	// Markdown is the authored source; SearchText is the plain-text
	// rendition indexed for full-text search.
	Markdown   string     `json:"markdown"`
	SearchText string     `json:"searchtext"`
	Published  bool       `json:"published"`
	Datestamp  *time.Time `json:"datestamp"`
}

// CanonicalPath returns the authoritative URL form /YYYY/MM/DD/shorttitle/.
// Only meaningful for articles with a datestamp.
func (a Article) CanonicalPath() string {
	d := a.Datestamp
	return fmt.Sprintf("/%04d/%02d/%02d/%s/", d.Year(), int(d.Month()), d.Day(), a.ShortTitle)
}

// NavItem is the article summary used by the sidebar and the /nav endpoint.
type NavItem struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	ShortTitle string    `json:"shorttitle"`
	Datestamp  time.Time `json:"datestamp"`
	Year       string    `json:"year"`
	Month      string    `json:"month"`
	Day        string    `json:"day"`
}

// Archive is one month's worth of published articles. NewYear marks the
// first month of each calendar year in newest-first order, for display.
type Archive struct {
	Month   time.Time `json:"month"`
	Count   int       `json:"count"`
	NewYear bool      `json:"newyear"`
}

type SearchResult struct {
	Article
	Rank    float64 `json:"rank"`
	Snippet string  `json:"snippet"`
}

// SearchPage is one page of ranked search results.
type SearchPage struct {
	Term      string         `json:"term"`
	Results   []SearchResult `json:"results"`
	Page      int            `json:"page"`
	PageCount int            `json:"page_count"`
	Total     int            `json:"total"`
}

type ArticleModel struct {
	db *sql.DB
}

type ArticleService struct {
	m *ArticleModel
	c *common.Cache
}
