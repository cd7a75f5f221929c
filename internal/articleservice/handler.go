package articleservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/growse/www.growse.com/internal/common"
)

// PageSize is the number of search results rendered per page.
const PageSize = 10

func NewArticleService(db *sql.DB, c *common.Cache) *ArticleService {
	return &ArticleService{m: newArticleModel(db), c: c}
}

// GetLatest returns the most recently published article.
func (s *ArticleService) GetLatest(ctx context.Context) (*Article, error) {
	return s.m.getLatest(ctx)
}

// GetByShortTitle returns the published article with the given slug.
func (s *ArticleService) GetByShortTitle(ctx context.Context, shortTitle string) (*Article, error) {
	v := common.NewValidator()
	v.Check(shortTitle != "", "shorttitle", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByShortTitle(ctx, shortTitle)
}

// ResolveByDate returns the earliest published article matching the given
// year, and month/day when non-zero. The caller redirects to the result's
// canonical path.
func (s *ArticleService) ResolveByDate(ctx context.Context, year, month, day int) (*Article, error) {
	v := common.NewValidator()
	v.Check(year >= 1 && year <= 9999, "year", "must be a four digit year")
	v.Check(month >= 0 && month <= 12, "month", "must be between 01 and 12")
	v.Check(day >= 0 && day <= 31, "day", "must be between 01 and 31")
	v.Check(month != 0 || day == 0, "day", "requires a month")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	lower, upper := dateRange(year, month, day)
	return s.m.getEarliestBetween(ctx, lower, upper)
}

// dateRange converts year/month/day URL segments (0 meaning unspecified) to
// a half-open timestamp range.
func dateRange(year, month, day int) (time.Time, time.Time) {
	switch {
	case month == 0:
		lower := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return lower, lower.AddDate(1, 0, 0)
	case day == 0:
		lower := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return lower, lower.AddDate(0, 1, 0)
	default:
		lower := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return lower, lower.AddDate(0, 0, 1)
	}
}

// NavItems returns published article summaries newest first, via the
// process-wide cache. A miss recomputes from the store; concurrent misses
// may recompute redundantly and the last write wins.
func (s *ArticleService) NavItems(ctx context.Context) ([]NavItem, error) {
	if blob, ok := s.c.Get(common.CacheKeyNavItems); ok {
		var items []NavItem
		if err := decodeBlob(blob.([]byte), &items); err == nil {
			return items, nil
		}
	}

	items, err := s.m.navItems(ctx)
	if err != nil {
		return nil, err
	}

	if blob, err := encodeBlob(items); err == nil {
		s.c.Set(common.CacheKeyNavItems, blob)
	}

	return items, nil
}

// Archives returns the per-month article counts newest first, with
// first-month-of-year flags, via the process-wide cache.
func (s *ArticleService) Archives(ctx context.Context) ([]Archive, error) {
	if blob, ok := s.c.Get(common.CacheKeyArchives); ok {
		var archives []Archive
		if err := decodeBlob(blob.([]byte), &archives); err == nil {
			return archives, nil
		}
	}

	archives, err := s.m.archives(ctx)
	if err != nil {
		return nil, err
	}
	archives = flagNewYears(archives)

	if blob, err := encodeBlob(archives); err == nil {
		s.c.Set(common.CacheKeyArchives, blob)
	}

	return archives, nil
}

// NavListBefore returns summaries of articles dated strictly before ts,
// newest first. Datestamps are compared at second precision.
func (s *ArticleService) NavListBefore(ctx context.Context, ts time.Time) ([]NavItem, error) {
	return s.m.navBefore(ctx, ts)
}

// NavListSince returns summaries of articles dated strictly after ts,
// oldest first.
func (s *ArticleService) NavListSince(ctx context.Context, ts time.Time) ([]NavItem, error) {
	return s.m.navSince(ctx, ts)
}

// Search returns one page of full-text results ranked by relevance, each
// with a snippet extracted around the search term. An out-of-range page
// clamps to the last page rather than erroring.
func (s *ArticleService) Search(ctx context.Context, term string, page int) (*SearchPage, error) {
	v := common.NewValidator()
	v.Check(common.NotBlank(term), "term", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	total, err := s.m.searchCount(ctx, term)
	if err != nil {
		return nil, err
	}

	pageCount := (total + PageSize - 1) / PageSize
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	results, err := s.m.search(ctx, term, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Snippet = extractSnippet(results[i].SearchText, term, defaultSurroundingWords, defaultSuffix)
	}

	return &SearchPage{
		Term:      term,
		Results:   results,
		Page:      page,
		PageCount: pageCount,
		Total:     total,
	}, nil
}
