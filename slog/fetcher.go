// Package slog provides logging decorators for the wikicollect services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicollect"
)

// Ensure LoggingFetcher implements wikicollect.ContentFetcher.
var _ wikicollect.ContentFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a ContentFetcher with logging.
type LoggingFetcher struct {
	next   wikicollect.ContentFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next wikicollect.ContentFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchPage fetches the page and logs the outcome.
func (f *LoggingFetcher) FetchPage(ctx context.Context, pageName string) (page *wikicollect.Page, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("fetch page",
				"page", pageName,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Debug("fetch page",
			"page", pageName,
			"bytes", len(page.Body),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.FetchPage(ctx, pageName)
}
