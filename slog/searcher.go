package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicollect"
)

// Ensure LoggingSearcher implements wikicollect.Searcher.
var _ wikicollect.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   wikicollect.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next wikicollect.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

func (s *LoggingSearcher) Search(ctx context.Context, query string, limit int) (entries []wikicollect.SearchResultEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"limit", limit,
			"hits", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit)
}
