// Package fs provides file-based storage for NDJSON artifacts and datasets.
package fs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wikicollect"
)

// ArtifactExt is the file extension of per-term artifacts.
const ArtifactExt = ".json"

// Ensure ArtifactStore implements wikicollect.ArtifactStore at compile time.
var _ wikicollect.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore implements wikicollect.ArtifactStore with write-once,
// atomic semantics. Each writer streams into its own temp file, which is
// hard-linked to the final path on Commit. Linking fails if the path
// exists, so a committed artifact is never replaced.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates an ArtifactStore rooted at dir.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir}
}

// Path returns dir/<term>.json.
func (s *ArtifactStore) Path(term string) string {
	return filepath.Join(s.dir, term+ArtifactExt)
}

// Exists reports whether dir/<term>.json exists.
func (s *ArtifactStore) Exists(term string) (bool, error) {
	_, err := os.Stat(s.Path(term))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Create opens the temp file for term.
func (s *ArtifactStore) Create(ctx context.Context, term string) (wikicollect.ArtifactWriter, error) {
	if err := wikicollect.ValidateSearchTerm(term); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(term)
	if err := checkAbsent(path); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(s.dir, term+ArtifactExt+".*.tmp")
	if err != nil {
		return nil, err
	}
	if err := f.Chmod(0644); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}

	digest := xxhash.New()
	buf := bufio.NewWriter(io.MultiWriter(f, digest))
	return &artifactWriter{
		term:   term,
		path:   path,
		tmp:    f.Name(),
		file:   f,
		buf:    buf,
		digest: digest,
		enc:    wikicollect.NewRecordEncoder(buf),
	}, nil
}

// checkAbsent returns EEXISTS if path exists.
func checkAbsent(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return wikicollect.Errorf(wikicollect.EEXISTS, "output file %s already exists", path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

type artifactWriter struct {
	term   string
	path   string
	tmp    string
	file   *os.File
	buf    *bufio.Writer
	digest hash.Hash64
	enc    *wikicollect.RecordEncoder

	records int
	done    bool
}

func (w *artifactWriter) Write(rec *wikicollect.PageRecord) error {
	if w.done {
		return wikicollect.Errorf(wikicollect.ESTATE, "artifact %s is closed", w.term)
	}
	if err := w.enc.Encode(rec); err != nil {
		return err
	}
	w.records++
	return nil
}

func (w *artifactWriter) Commit() (*wikicollect.Artifact, error) {
	if w.done {
		return nil, wikicollect.Errorf(wikicollect.ESTATE, "artifact %s is closed", w.term)
	}

	if err := w.buf.Flush(); err != nil {
		return nil, err
	}
	if err := w.file.Sync(); err != nil {
		return nil, err
	}
	if err := w.file.Close(); err != nil {
		return nil, err
	}
	w.file = nil

	// Another writer may have committed the same term meanwhile.
	if err := os.Link(w.tmp, w.path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, wikicollect.Errorf(wikicollect.EEXISTS, "output file %s already exists", w.path)
		}
		return nil, err
	}
	w.done = true
	_ = os.Remove(w.tmp)

	return &wikicollect.Artifact{
		SearchTerm:  w.term,
		Path:        w.path,
		Records:     w.records,
		ContentHash: fmt.Sprintf("%016x", w.digest.Sum64()),
	}, nil
}

func (w *artifactWriter) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	if w.file != nil {
		_ = w.file.Close()
	}
	if err := os.Remove(w.tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
