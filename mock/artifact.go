package mock

import (
	"context"

	"github.com/fwojciec/wikicollect"
)

var _ wikicollect.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of wikicollect.ArtifactStore.
type ArtifactStore struct {
	PathFn   func(term string) string
	ExistsFn func(term string) (bool, error)
	CreateFn func(ctx context.Context, term string) (wikicollect.ArtifactWriter, error)
}

func (s *ArtifactStore) Path(term string) string {
	return s.PathFn(term)
}

func (s *ArtifactStore) Exists(term string) (bool, error) {
	return s.ExistsFn(term)
}

func (s *ArtifactStore) Create(ctx context.Context, term string) (wikicollect.ArtifactWriter, error) {
	return s.CreateFn(ctx, term)
}

var _ wikicollect.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of wikicollect.ArtifactWriter.
type ArtifactWriter struct {
	WriteFn  func(rec *wikicollect.PageRecord) error
	CommitFn func() (*wikicollect.Artifact, error)
	AbortFn  func() error
}

func (w *ArtifactWriter) Write(rec *wikicollect.PageRecord) error {
	return w.WriteFn(rec)
}

func (w *ArtifactWriter) Commit() (*wikicollect.Artifact, error) {
	return w.CommitFn()
}

func (w *ArtifactWriter) Abort() error {
	return w.AbortFn()
}
