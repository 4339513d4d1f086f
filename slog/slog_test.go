package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/wikicollect"
	"github.com/fwojciec/wikicollect/mock"
	wcslog "github.com/fwojciec/wikicollect/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher_FetchPage(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ContentFetcher{
			FetchPageFn: func(_ context.Context, name string) (*wikicollect.Page, error) {
				return &wikicollect.Page{Name: name, Title: "lion", Body: "The lion."}, nil
			},
		}

		fetcher := wcslog.NewLoggingFetcher(inner, newLogger(&buf))
		page, err := fetcher.FetchPage(context.Background(), "Lion")

		require.NoError(t, err)
		assert.Equal(t, "The lion.", page.Body)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "page=Lion")
		assert.Contains(t, output, "bytes=9")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ContentFetcher{
			FetchPageFn: func(context.Context, string) (*wikicollect.Page, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := wcslog.NewLoggingFetcher(inner, newLogger(&buf))
		_, err := fetcher.FetchPage(context.Background(), "Lion")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "err=\"network error\"")
		assert.NotContains(t, output, "bytes=")
	})
}

func TestLoggingSearcher_Search(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Searcher{
		SearchFn: func(_ context.Context, query string, limit int) ([]wikicollect.SearchResultEntry, error) {
			return []wikicollect.SearchResultEntry{{PageName: "Lion", PageID: 1}}, nil
		},
	}

	searcher := wcslog.NewLoggingSearcher(inner, newLogger(&buf))
	entries, err := searcher.Search(context.Background(), "lions", 10)

	require.NoError(t, err)
	assert.Len(t, entries, 1)
	output := buf.String()
	assert.Contains(t, output, "query=lions")
	assert.Contains(t, output, "limit=10")
	assert.Contains(t, output, "hits=1")
}

func TestLoggingPublisher_Publish(t *testing.T) {
	t.Parallel()

	t.Run("logs location on success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DatasetPublisher{
			PublishFn: func(context.Context, *wikicollect.Dataset) (string, error) {
				return "s3://datasets/cats/train.jsonl", nil
			},
		}

		publisher := wcslog.NewLoggingPublisher(inner, newLogger(&buf))
		location, err := publisher.Publish(context.Background(), &wikicollect.Dataset{
			Name:    "cats",
			Records: []*wikicollect.PageRecord{{Title: "tiger"}},
		})

		require.NoError(t, err)
		assert.Equal(t, "s3://datasets/cats/train.jsonl", location)
		output := buf.String()
		assert.Contains(t, output, "dataset=cats")
		assert.Contains(t, output, "records=1")
		assert.Contains(t, output, "location=s3://datasets/cats/train.jsonl")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DatasetPublisher{
			PublishFn: func(context.Context, *wikicollect.Dataset) (string, error) {
				return "", errors.New("access denied")
			},
		}

		publisher := wcslog.NewLoggingPublisher(inner, newLogger(&buf))
		_, err := publisher.Publish(context.Background(), &wikicollect.Dataset{Name: "cats"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "err=\"access denied\"")
	})
}
