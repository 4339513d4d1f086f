package yaml_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wikicollect"
	wcyaml "github.com/fwojciec/wikicollect/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestMetadataStore_LoadSearchResults(t *testing.T) {
	t.Parallel()

	t.Run("loads one term per file in name order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		searches := filepath.Join(dir, "searches")
		writeFile(t, filepath.Join(searches, "lions.yaml"), `
- page_name: Lion
  page_id: 36896
  size: 180000
  word_count: 15000
`)
		writeFile(t, filepath.Join(searches, "cats.yml"), `
- page_name: Tiger
  page_id: 30367
  size: 170000
  word_count: 14000
- page_name: Lion
  page_id: 36896
  size: 180000
  word_count: 15000
`)
		writeFile(t, filepath.Join(searches, "notes.txt"), "ignored")

		store := wcyaml.NewMetadataStore(searches, filepath.Join(dir, "page_blacklist.yaml"))

		results, err := store.LoadSearchResults(context.Background())

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "cats", results[0].Term)
		assert.Equal(t, "lions", results[1].Term)
		assert.Equal(t, []wikicollect.SearchResultEntry{
			{PageName: "Tiger", PageID: 30367, Size: 170000, WordCount: 14000},
			{PageName: "Lion", PageID: 36896, Size: 180000, WordCount: 15000},
		}, results[0].Entries)
	})

	t.Run("returns ECONFIG when no search files exist", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		searches := filepath.Join(dir, "searches")
		require.NoError(t, os.MkdirAll(searches, 0755))

		store := wcyaml.NewMetadataStore(searches, filepath.Join(dir, "page_blacklist.yaml"))

		_, err := store.LoadSearchResults(context.Background())

		require.Error(t, err)
		assert.Equal(t, wikicollect.ECONFIG, wikicollect.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when folder is missing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := wcyaml.NewMetadataStore(filepath.Join(dir, "missing"), filepath.Join(dir, "page_blacklist.yaml"))

		_, err := store.LoadSearchResults(context.Background())

		require.Error(t, err)
		assert.Equal(t, wikicollect.ENOTFOUND, wikicollect.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		searches := filepath.Join(dir, "searches")
		writeFile(t, filepath.Join(searches, "cats.yaml"), "page_name: [unclosed")

		store := wcyaml.NewMetadataStore(searches, filepath.Join(dir, "page_blacklist.yaml"))

		_, err := store.LoadSearchResults(context.Background())

		require.Error(t, err)
		assert.Equal(t, wikicollect.EINVALID, wikicollect.ErrorCode(err))
	})

	t.Run("treats empty file as term without results", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		searches := filepath.Join(dir, "searches")
		writeFile(t, filepath.Join(searches, "cats.yaml"), "")

		store := wcyaml.NewMetadataStore(searches, filepath.Join(dir, "page_blacklist.yaml"))

		results, err := store.LoadSearchResults(context.Background())

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "cats", results[0].Term)
		assert.Empty(t, results[0].Entries)
	})
}

func TestMetadataStore_LoadBlacklist(t *testing.T) {
	t.Parallel()

	t.Run("loads page names per term", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page_blacklist.yaml")
		writeFile(t, path, `
cats:
  - Tiger
  - Cat_(disambiguation)
lions:
`)

		store := wcyaml.NewMetadataStore(filepath.Join(dir, "searches"), path)

		blacklist, err := store.LoadBlacklist(context.Background())

		require.NoError(t, err)
		assert.True(t, blacklist.Excludes("cats", "Tiger"))
		assert.True(t, blacklist.Excludes("cats", "Cat_(disambiguation)"))
		assert.False(t, blacklist.Excludes("cats", "Lion"))
		assert.False(t, blacklist.Excludes("lions", "Lion"))
		assert.False(t, blacklist.Excludes("dogs", "Tiger"))
	})

	t.Run("returns ENOTFOUND when file is missing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := wcyaml.NewMetadataStore(filepath.Join(dir, "searches"), filepath.Join(dir, "page_blacklist.yaml"))

		_, err := store.LoadBlacklist(context.Background())

		require.Error(t, err)
		assert.Equal(t, wikicollect.ENOTFOUND, wikicollect.ErrorCode(err))
	})

	t.Run("treats empty file as empty blacklist", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page_blacklist.yaml")
		writeFile(t, path, "")

		store := wcyaml.NewMetadataStore(filepath.Join(dir, "searches"), path)

		blacklist, err := store.LoadBlacklist(context.Background())

		require.NoError(t, err)
		assert.False(t, blacklist.Excludes("cats", "Tiger"))
	})
}

func TestMetadataStore_SaveSearchResults(t *testing.T) {
	t.Parallel()

	t.Run("writes a file that loads back", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		searches := filepath.Join(dir, "metadata", "searches")
		store := wcyaml.NewMetadataStore(searches, filepath.Join(dir, "page_blacklist.yaml"))
		entries := []wikicollect.SearchResultEntry{
			{PageName: "Climate_change", PageID: 5042951, Size: 250000, WordCount: 20000},
			{PageName: "Global_warming_potential", PageID: 1002, Size: 30000, WordCount: 2500},
		}

		err := store.SaveSearchResults(context.Background(), "climate_change", entries)
		require.NoError(t, err)

		results, err := store.LoadSearchResults(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "climate_change", results[0].Term)
		assert.Equal(t, entries, results[0].Entries)

		data, err := os.ReadFile(filepath.Join(searches, "climate_change.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "page_name: Climate_change")
		assert.Contains(t, string(data), "word_count: 20000")
		assert.NoFileExists(t, filepath.Join(searches, "climate_change.yaml.tmp"))
	})

	t.Run("replaces an earlier search", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		searches := filepath.Join(dir, "searches")
		store := wcyaml.NewMetadataStore(searches, filepath.Join(dir, "page_blacklist.yaml"))
		ctx := context.Background()

		require.NoError(t, store.SaveSearchResults(ctx, "cats", []wikicollect.SearchResultEntry{{PageName: "Tiger", PageID: 1}}))
		require.NoError(t, store.SaveSearchResults(ctx, "cats", []wikicollect.SearchResultEntry{{PageName: "Lion", PageID: 2}}))

		results, err := store.LoadSearchResults(ctx)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Lion", results[0].Entries[0].PageName)
	})

	t.Run("rejects invalid term", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := wcyaml.NewMetadataStore(filepath.Join(dir, "searches"), filepath.Join(dir, "page_blacklist.yaml"))

		err := store.SaveSearchResults(context.Background(), "../escape", nil)

		require.Error(t, err)
		assert.Equal(t, wikicollect.EINVALID, wikicollect.ErrorCode(err))
	})
}
