package mock

import (
	"context"

	"github.com/fwojciec/wikicollect"
)

var _ wikicollect.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher is a mock implementation of wikicollect.ContentFetcher.
type ContentFetcher struct {
	FetchPageFn func(ctx context.Context, pageName string) (*wikicollect.Page, error)
}

func (f *ContentFetcher) FetchPage(ctx context.Context, pageName string) (*wikicollect.Page, error) {
	return f.FetchPageFn(ctx, pageName)
}

var _ wikicollect.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of wikicollect.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]wikicollect.SearchResultEntry, error)
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]wikicollect.SearchResultEntry, error) {
	return s.SearchFn(ctx, query, limit)
}
