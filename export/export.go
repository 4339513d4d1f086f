// Package export provides export orchestration.
// It drives one search term from filtered results through the content
// fetcher into a write-once artifact and records it in the ledger.
package export

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicollect"
	"golang.org/x/sync/errgroup"
)

// State is the lifecycle position of one export.
type State int

const (
	StateNotStarted State = iota
	StatePathChecked
	StateWriting
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StatePathChecked:
		return "path_checked"
	case StateWriting:
		return "writing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProgressEvent reports progress during an export.
type ProgressEvent struct {
	State     State
	Term      string
	Completed int
	Total     int
	Page      string
	Error     error
}

// ProgressFunc is a callback for reporting export progress.
type ProgressFunc func(event ProgressEvent)

// Exporter writes the pages of one search term to an artifact.
type Exporter struct {
	Fetcher   wikicollect.ContentFetcher
	Artifacts wikicollect.ArtifactStore
	Exports   wikicollect.ExportService // optional ledger
	Logger    *slog.Logger

	// Concurrency bounds parallel fetches. Values below 2 fetch
	// sequentially and stream each record as it arrives.
	Concurrency int

	Progress ProgressFunc
}

// Export fetches every entry results holds for term and commits them as
// the term's artifact. No fetch happens if the artifact already exists
// (EEXISTS) or the term is unknown (ENOTFOUND). On any failure before
// Commit no artifact is left behind. A ledger failure after Commit keeps
// the artifact and returns the error.
func (e *Exporter) Export(ctx context.Context, results *wikicollect.FilteredResults, term string) (*wikicollect.Artifact, error) {
	if err := wikicollect.ValidateSearchTerm(term); err != nil {
		return nil, err
	}
	path := e.Artifacts.Path(term)

	exists, err := e.Artifacts.Exists(term)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, wikicollect.Errorf(wikicollect.EEXISTS, "output file %s already exists", path)
	}
	e.report(ProgressEvent{State: StatePathChecked, Term: term})

	entries, err := results.Entries(term)
	if err != nil {
		return nil, err
	}

	w, err := e.Artifacts.Create(ctx, term)
	if err != nil {
		return nil, err
	}
	defer func() { _ = w.Abort() }()

	logger := e.logger()
	logger.Info("export started", "term", term, "pages", len(entries), "path", path)
	start := time.Now()
	e.report(ProgressEvent{State: StateWriting, Term: term, Total: len(entries)})

	if e.Concurrency > 1 {
		err = e.writeParallel(ctx, w, term, entries)
	} else {
		err = e.writeSequential(ctx, w, term, entries)
	}
	if err != nil {
		return nil, e.fail(term, err)
	}

	artifact, err := w.Commit()
	if err != nil {
		return nil, e.fail(term, err)
	}

	if e.Exports != nil {
		if err := e.Exports.CreateExport(ctx, wikicollect.NewExport(artifact)); err != nil {
			return nil, e.fail(term, err)
		}
	}

	logger.Info("export finished",
		"term", term,
		"records", artifact.Records,
		"path", artifact.Path,
		"duration", time.Since(start),
	)
	e.report(ProgressEvent{State: StateCompleted, Term: term, Completed: artifact.Records, Total: len(entries)})
	return artifact, nil
}

func (e *Exporter) fail(term string, err error) error {
	e.logger().Error("export failed", "term", term, "err", err)
	e.report(ProgressEvent{State: StateFailed, Term: term, Error: err})
	return err
}

func (e *Exporter) writeSequential(ctx context.Context, w wikicollect.ArtifactWriter, term string, entries []wikicollect.SearchResultEntry) error {
	for i, entry := range entries {
		page, err := e.Fetcher.FetchPage(ctx, entry.PageName)
		if err != nil {
			return err
		}
		if err := w.Write(wikicollect.NewPageRecord(page)); err != nil {
			return err
		}
		e.report(ProgressEvent{State: StateWriting, Term: term, Completed: i + 1, Total: len(entries), Page: entry.PageName})
	}
	return nil
}

// writeParallel fetches with a bounded pool and writes once every fetch
// has succeeded, in input order.
func (e *Exporter) writeParallel(ctx context.Context, w wikicollect.ArtifactWriter, term string, entries []wikicollect.SearchResultEntry) error {
	pages := make([]*wikicollect.Page, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Concurrency)
	for i, entry := range entries {
		g.Go(func() error {
			page, err := e.Fetcher.FetchPage(gctx, entry.PageName)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, page := range pages {
		if err := w.Write(wikicollect.NewPageRecord(page)); err != nil {
			return err
		}
		e.report(ProgressEvent{State: StateWriting, Term: term, Completed: i + 1, Total: len(entries), Page: entries[i].PageName})
	}
	return nil
}

func (e *Exporter) report(event ProgressEvent) {
	if e.Progress != nil {
		e.Progress(event)
	}
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}
