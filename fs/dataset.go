package fs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/wikicollect"
)

// Ensure DatasetWriter implements wikicollect.DatasetPublisher at compile time.
var _ wikicollect.DatasetPublisher = (*DatasetWriter)(nil)

// DatasetWriter publishes datasets to a local directory as
// <dir>/<name>/train.jsonl. An existing split file is replaced.
type DatasetWriter struct {
	dir string
}

// NewDatasetWriter creates a DatasetWriter rooted at dir.
func NewDatasetWriter(dir string) *DatasetWriter {
	return &DatasetWriter{dir: dir}
}

// Publish writes the dataset and returns the path of the split file.
func (w *DatasetWriter) Publish(ctx context.Context, ds *wikicollect.Dataset) (string, error) {
	if err := ds.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, filepath.FromSlash(ds.SplitKey()))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	tmp := path + ".tmp"
	if err := writeRecords(tmp, ds.Records); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path, nil
}

func writeRecords(path string, records []*wikicollect.PageRecord) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	enc := wikicollect.NewRecordEncoder(buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	return f.Sync()
}
