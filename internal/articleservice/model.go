package articleservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrRecordNotFound = errors.New("record not found")

func newArticleModel(db *sql.DB) *ArticleModel {
	return &ArticleModel{db: db}
}

func scanArticle(row *sql.Row) (*Article, error) {
	var article Article
	var datestamp sql.NullTime

	err := row.Scan(&article.ID, &article.Title, &article.ShortTitle, &article.Markdown, &article.SearchText, &article.Published, &datestamp)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	if datestamp.Valid {
		t := datestamp.Time
		article.Datestamp = &t
	}

	return &article, nil
}

func (m *ArticleModel) getByShortTitle(ctx context.Context, shortTitle string) (*Article, error) {
	query := `
		SELECT id, title, shorttitle, markdown, searchtext, published, datestamp
		FROM articles
		WHERE shorttitle = $1 AND published AND datestamp IS NOT NULL`

	return scanArticle(m.db.QueryRowContext(ctx, query, shortTitle))
}

// getLatest returns the most recently dated published article.
func (m *ArticleModel) getLatest(ctx context.Context) (*Article, error) {
	query := `
		SELECT id, title, shorttitle, markdown, searchtext, published, datestamp
		FROM articles
		WHERE published AND datestamp IS NOT NULL
		ORDER BY datestamp DESC
		LIMIT 1`

	return scanArticle(m.db.QueryRowContext(ctx, query))
}

// getEarliestBetween returns the earliest-by-datestamp published article in
// the half-open range [lower, upper).
func (m *ArticleModel) getEarliestBetween(ctx context.Context, lower, upper time.Time) (*Article, error) {
	query := `
		SELECT id, title, shorttitle, markdown, searchtext, published, datestamp
		FROM articles
		WHERE published AND datestamp IS NOT NULL AND datestamp >= $1 AND datestamp < $2
		ORDER BY datestamp ASC
		LIMIT 1`

	return scanArticle(m.db.QueryRowContext(ctx, query, lower, upper))
}

func navItemFromScan(rows *sql.Rows) (NavItem, error) {
	var item NavItem
	err := rows.Scan(&item.ID, &item.Title, &item.ShortTitle, &item.Datestamp)
	if err != nil {
		return item, err
	}

	item.Year = fmt.Sprintf("%04d", item.Datestamp.Year())
	item.Month = fmt.Sprintf("%02d", int(item.Datestamp.Month()))
	item.Day = fmt.Sprintf("%02d", item.Datestamp.Day())

	return item, nil
}

func (m *ArticleModel) collectNavItems(rows *sql.Rows) ([]NavItem, error) {
	defer rows.Close()

	var items []NavItem
	for rows.Next() {
		item, err := navItemFromScan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// navItems returns published article summaries, newest first.
func (m *ArticleModel) navItems(ctx context.Context) ([]NavItem, error) {
	query := `
		SELECT id, title, shorttitle, datestamp
		FROM articles
		WHERE published AND datestamp IS NOT NULL
		ORDER BY datestamp DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return m.collectNavItems(rows)
}

func (m *ArticleModel) navBefore(ctx context.Context, ts time.Time) ([]NavItem, error) {
	query := `
		SELECT id, title, shorttitle, datestamp
		FROM articles
		WHERE published AND datestamp IS NOT NULL AND date_trunc('second', datestamp) < $1
		ORDER BY datestamp DESC`

	rows, err := m.db.QueryContext(ctx, query, ts)
	if err != nil {
		return nil, err
	}

	return m.collectNavItems(rows)
}

func (m *ArticleModel) navSince(ctx context.Context, ts time.Time) ([]NavItem, error) {
	query := `
		SELECT id, title, shorttitle, datestamp
		FROM articles
		WHERE published AND datestamp IS NOT NULL AND date_trunc('second', datestamp) > $1
		ORDER BY datestamp ASC`

	rows, err := m.db.QueryContext(ctx, query, ts)
	if err != nil {
		return nil, err
	}

	return m.collectNavItems(rows)
}

// archives groups published articles by truncated month, newest first. The
// NewYear flags are filled in afterwards by flagNewYears.
func (m *ArticleModel) archives(ctx context.Context) ([]Archive, error) {
	query := `
		SELECT date_trunc('month', datestamp) AS month, count(*)
		FROM articles
		WHERE published AND datestamp IS NOT NULL
		GROUP BY month
		ORDER BY month DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var archives []Archive
	for rows.Next() {
		var archive Archive
		if err := rows.Scan(&archive.Month, &archive.Count); err != nil {
			return nil, err
		}
		archives = append(archives, archive)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return archives, nil
}

// search runs a ranked full-text query against the idxfti tsvector column.
func (m *ArticleModel) search(ctx context.Context, term string, limit, offset int) ([]SearchResult, error) {
	query := `
		SELECT id, title, shorttitle, markdown, searchtext, published, datestamp,
			ts_rank(idxfti, plainto_tsquery('english', $1)) AS rank
		FROM articles
		WHERE published AND datestamp IS NOT NULL AND idxfti @@ plainto_tsquery('english', $1)
		ORDER BY rank DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, term, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var result SearchResult
		var datestamp sql.NullTime
		err := rows.Scan(&result.ID, &result.Title, &result.ShortTitle, &result.Markdown, &result.SearchText, &result.Published, &datestamp, &result.Rank)
		if err != nil {
			return nil, err
		}
		if datestamp.Valid {
			t := datestamp.Time
			result.Datestamp = &t
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (m *ArticleModel) searchCount(ctx context.Context, term string) (int, error) {
	query := `
		SELECT count(*)
		FROM articles
		WHERE published AND datestamp IS NOT NULL AND idxfti @@ plainto_tsquery('english', $1)`

	var count int
	err := m.db.QueryRowContext(ctx, query, term).Scan(&count)
	return count, err
}
