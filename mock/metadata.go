package mock

import (
	"context"

	"github.com/fwojciec/wikicollect"
)

var _ wikicollect.MetadataStore = (*MetadataStore)(nil)

// MetadataStore is a mock implementation of wikicollect.MetadataStore.
type MetadataStore struct {
	LoadSearchResultsFn func(ctx context.Context) (wikicollect.SearchResults, error)
	LoadBlacklistFn     func(ctx context.Context) (wikicollect.Blacklist, error)
}

func (s *MetadataStore) LoadSearchResults(ctx context.Context) (wikicollect.SearchResults, error) {
	return s.LoadSearchResultsFn(ctx)
}

func (s *MetadataStore) LoadBlacklist(ctx context.Context) (wikicollect.Blacklist, error) {
	return s.LoadBlacklistFn(ctx)
}

var _ wikicollect.SearchResultWriter = (*SearchResultWriter)(nil)

// SearchResultWriter is a mock implementation of wikicollect.SearchResultWriter.
type SearchResultWriter struct {
	SaveSearchResultsFn func(ctx context.Context, term string, entries []wikicollect.SearchResultEntry) error
}

func (w *SearchResultWriter) SaveSearchResults(ctx context.Context, term string, entries []wikicollect.SearchResultEntry) error {
	return w.SaveSearchResultsFn(ctx, term, entries)
}
