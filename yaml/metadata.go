// Package yaml provides the YAML-file implementation of the metadata store:
// one search-result file per term plus a single page blacklist.
package yaml

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wikicollect"
	"gopkg.in/yaml.v3"
)

// Ensure MetadataStore implements the domain interfaces at compile time.
var (
	_ wikicollect.MetadataStore      = (*MetadataStore)(nil)
	_ wikicollect.SearchResultWriter = (*MetadataStore)(nil)
)

// MetadataStore reads and writes search metadata as YAML files.
type MetadataStore struct {
	searchesDir   string
	blacklistPath string
}

// NewMetadataStore creates a MetadataStore over a searches folder and a
// blacklist file.
func NewMetadataStore(searchesDir, blacklistPath string) *MetadataStore {
	return &MetadataStore{
		searchesDir:   searchesDir,
		blacklistPath: blacklistPath,
	}
}

// LoadSearchResults reads every search-result file in the searches folder.
// Terms are returned in file name order.
func (s *MetadataStore) LoadSearchResults(ctx context.Context) (wikicollect.SearchResults, error) {
	dirEntries, err := os.ReadDir(s.searchesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, wikicollect.Errorf(wikicollect.ENOTFOUND, "searches folder %s does not exist", s.searchesDir)
	}
	if err != nil {
		return nil, err
	}

	var results wikicollect.SearchResults
	for _, de := range dirEntries {
		if de.IsDir() || !isYAML(de.Name()) {
			continue
		}

		path := filepath.Join(s.searchesDir, de.Name())
		var entries []wikicollect.SearchResultEntry
		if err := decodeFile(path, &entries); err != nil {
			return nil, err
		}

		results = append(results, wikicollect.TermResults{
			Term:    termFromFileName(de.Name()),
			Entries: entries,
		})
	}

	if len(results) == 0 {
		return nil, wikicollect.Errorf(wikicollect.ECONFIG, "no searches performed yet in %s", s.searchesDir)
	}

	return results, nil
}

// LoadBlacklist reads the page blacklist. A term mapped to nothing has an
// empty exclusion set.
func (s *MetadataStore) LoadBlacklist(ctx context.Context) (wikicollect.Blacklist, error) {
	var raw map[string][]string
	if err := decodeFile(s.blacklistPath, &raw); err != nil {
		return nil, err
	}
	return wikicollect.NewBlacklist(raw), nil
}

// SaveSearchResults writes the results of one search, replacing any
// earlier search for the same term.
func (s *MetadataStore) SaveSearchResults(ctx context.Context, term string, entries []wikicollect.SearchResultEntry) error {
	if err := wikicollect.ValidateSearchTerm(term); err != nil {
		return err
	}
	if entries == nil {
		entries = []wikicollect.SearchResultEntry{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.searchesDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(s.searchesDir, term+".yaml")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// decodeFile decodes a YAML document into v. An empty file leaves v unset.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return wikicollect.Errorf(wikicollect.ENOTFOUND, "file %s does not exist", path)
	}
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return wikicollect.WrapError(wikicollect.EINVALID, err, "parse %s", path)
	}
	return nil
}

func isYAML(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

func termFromFileName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
