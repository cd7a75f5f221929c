package articleservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/growse/www.growse.com/internal/common"
)

func setupTestEnvironment(t *testing.T) (*ArticleService, *sql.DB, func() error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(0, 0)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM articles")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewArticleService(db, cache), db, cleanup
}

func insertTestArticle(db *sql.DB, title, shortTitle, searchText string, datestamp time.Time) (int, error) {
	query := `
		INSERT INTO articles (title, shorttitle, markdown, searchtext, published, datestamp)
		VALUES ($1, $2, $3, $4, true, $5)
		RETURNING id`

	var id int
	err := db.QueryRow(query, title, shortTitle, searchText, searchText, datestamp).Scan(&id)
	return id, err
}

func TestGetByShortTitle(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	defer cleanup()

	_, err := insertTestArticle(db, "First Post", "first-post", "hello world", time.Date(2020, 2, 1, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	article, err := s.GetByShortTitle(context.Background(), "first-post")
	assert.NoError(t, err)
	assert.Equal(t, "First Post", article.Title)
	assert.Equal(t, "/2020/02/01/first-post/", article.CanonicalPath())

	_, err = s.GetByShortTitle(context.Background(), "no-such-post")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGetLatest(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	defer cleanup()

	_, err := insertTestArticle(db, "Older", "older", "text", time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	_, err = insertTestArticle(db, "Newer", "newer", "text", time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	article, err := s.GetLatest(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Newer", article.ShortTitle)
}

func TestResolveByDate(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	defer cleanup()

	_, err := insertTestArticle(db, "March One", "march-one", "text", time.Date(2021, 3, 2, 9, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	_, err = insertTestArticle(db, "March Two", "march-two", "text", time.Date(2021, 3, 10, 9, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	testCases := []struct {
		name             string
		year, month, day int
		wantShortTitle   string
		wantErr          error
	}{
		{name: "year only returns earliest", year: 2021, wantShortTitle: "march-one"},
		{name: "year and month", year: 2021, month: 3, wantShortTitle: "march-one"},
		{name: "full date", year: 2021, month: 3, day: 10, wantShortTitle: "march-two"},
		{name: "no match for month", year: 2020, month: 2, wantErr: ErrRecordNotFound},
		{name: "no match for year", year: 1999, wantErr: ErrRecordNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			article, err := s.ResolveByDate(context.Background(), tc.year, tc.month, tc.day)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantShortTitle, article.ShortTitle)
		})
	}
}

func TestNavItemsCached(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	defer cleanup()

	_, err := insertTestArticle(db, "Cached Post", "cached-post", "text", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	items, err := s.NavItems(context.Background())
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "2023", items[0].Year)
	assert.Equal(t, "01", items[0].Month)

	// Removing the rows must not be visible through the cache.
	_, err = db.Exec("DELETE FROM articles")
	assert.NoError(t, err)

	cached, err := s.NavItems(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, items, cached)
}

func TestArchives(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	defer cleanup()

	dates := []time.Time{
		time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 12, 25, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		_, err := insertTestArticle(db, "Post", string(rune('a'+i))+"-post", "text", d)
		assert.NoError(t, err)
	}

	archives, err := s.Archives(context.Background())
	assert.NoError(t, err)
	assert.Len(t, archives, 3)

	assert.Equal(t, 2, archives[0].Count)
	assert.True(t, archives[0].NewYear)
	assert.False(t, archives[1].NewYear)
	assert.True(t, archives[2].NewYear)
}

func TestNavListBeforeAndSince(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	defer cleanup()

	_, err := insertTestArticle(db, "Old", "old", "text", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	_, err = insertTestArticle(db, "New", "new", "text", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	pivot := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	before, err := s.NavListBefore(context.Background(), pivot)
	assert.NoError(t, err)
	assert.Len(t, before, 1)
	assert.Equal(t, "old", before[0].ShortTitle)

	since, err := s.NavListSince(context.Background(), pivot)
	assert.NoError(t, err)
	assert.Len(t, since, 1)
	assert.Equal(t, "new", since[0].ShortTitle)
}

func TestSearch(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	defer cleanup()

	_, err := insertTestArticle(db, "Sailing", "sailing", "a long post about sailing boats across the channel", time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	_, err = insertTestArticle(db, "Cooking", "cooking", "a post about cooking dinner", time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	page, err := s.Search(context.Background(), "sailing", 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Results, 1)
	assert.Equal(t, "sailing", page.Results[0].ShortTitle)
	assert.Contains(t, page.Results[0].Snippet, "sailing")

	// an out of range page clamps to the last page
	clamped, err := s.Search(context.Background(), "post", 99)
	assert.NoError(t, err)
	assert.Equal(t, clamped.PageCount, clamped.Page)

	_, err = s.Search(context.Background(), "   ", 1)
	assert.ErrorAs(t, err, &common.ValidationError{})
}
