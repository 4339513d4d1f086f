package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicollect"
)

// Ensure LoggingPublisher implements wikicollect.DatasetPublisher.
var _ wikicollect.DatasetPublisher = (*LoggingPublisher)(nil)

// LoggingPublisher wraps a DatasetPublisher with logging.
type LoggingPublisher struct {
	next   wikicollect.DatasetPublisher
	logger *slog.Logger
}

// NewLoggingPublisher creates a new LoggingPublisher.
func NewLoggingPublisher(next wikicollect.DatasetPublisher, logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{next: next, logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, ds *wikicollect.Dataset) (location string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			p.logger.Error("publish dataset",
				"dataset", ds.Name,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		p.logger.Info("publish dataset",
			"dataset", ds.Name,
			"records", len(ds.Records),
			"location", location,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.Publish(ctx, ds)
}
