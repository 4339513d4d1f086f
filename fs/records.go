package fs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/wikicollect"
)

// LoadRecords reads every artifact in dir, in file name order, and returns
// their records concatenated.
// Returns ENOTFOUND if dir does not exist.
func LoadRecords(dir string) ([]*wikicollect.PageRecord, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, wikicollect.Errorf(wikicollect.ENOTFOUND, "artifact directory %s not found", dir)
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ArtifactExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var records []*wikicollect.PageRecord
	for _, name := range names {
		recs, err := readArtifact(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

func readArtifact(path string) ([]*wikicollect.PageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := wikicollect.ReadRecords(f)
	if err != nil {
		return nil, wikicollect.WrapError(wikicollect.EINVALID, err, "read %s", path)
	}
	return recs, nil
}
