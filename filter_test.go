package wikicollect_test

import (
	"testing"

	"github.com/fwojciec/wikicollect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, id int) wikicollect.SearchResultEntry {
	return wikicollect.SearchResultEntry{PageName: name, PageID: id}
}

func pageNames(entries []wikicollect.SearchResultEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.PageName
	}
	return names
}

func TestResultFilter_Filter(t *testing.T) {
	t.Parallel()

	t.Run("removes blacklisted pages", func(t *testing.T) {
		t.Parallel()

		results := wikicollect.SearchResults{
			{Term: "cats", Entries: []wikicollect.SearchResultEntry{entry("Tiger", 1), entry("Lion", 2)}},
		}
		blacklist := wikicollect.NewBlacklist(map[string][]string{"cats": {"Tiger"}})

		filtered := wikicollect.NewResultFilter(results, blacklist).Filter()

		got, err := filtered.Entries("cats")
		require.NoError(t, err)
		assert.Equal(t, []wikicollect.SearchResultEntry{entry("Lion", 2)}, got)
		assert.Equal(t, 1, filtered.Stats().Blacklisted)
	})

	t.Run("treats term without blacklist entry as nothing excluded", func(t *testing.T) {
		t.Parallel()

		results := wikicollect.SearchResults{
			{Term: "dogs", Entries: []wikicollect.SearchResultEntry{entry("Wolf", 1), entry("Dingo", 2)}},
		}
		blacklist := wikicollect.NewBlacklist(map[string][]string{"cats": {"Wolf"}})

		filtered := wikicollect.NewResultFilter(results, blacklist).Filter()

		got, err := filtered.Entries("dogs")
		require.NoError(t, err)
		assert.Equal(t, []string{"Wolf", "Dingo"}, pageNames(got))
	})

	t.Run("accepts nil blacklist", func(t *testing.T) {
		t.Parallel()

		results := wikicollect.SearchResults{
			{Term: "dogs", Entries: []wikicollect.SearchResultEntry{entry("Wolf", 1)}},
		}

		filtered := wikicollect.NewResultFilter(results, nil).Filter()

		got, err := filtered.Entries("dogs")
		require.NoError(t, err)
		assert.Equal(t, []string{"Wolf"}, pageNames(got))
	})

	t.Run("preserves relative order of surviving entries", func(t *testing.T) {
		t.Parallel()

		results := wikicollect.SearchResults{
			{Term: "cats", Entries: []wikicollect.SearchResultEntry{
				entry("Ocelot", 1), entry("Tiger", 2), entry("Lynx", 3), entry("Puma", 4), entry("Serval", 5),
			}},
		}
		blacklist := wikicollect.NewBlacklist(map[string][]string{"cats": {"Tiger", "Puma"}})

		filtered := wikicollect.NewResultFilter(results, blacklist).Filter()

		got, err := filtered.Entries("cats")
		require.NoError(t, err)
		assert.Equal(t, []string{"Ocelot", "Lynx", "Serval"}, pageNames(got))
	})

	t.Run("drops later occurrences of a page id across terms", func(t *testing.T) {
		t.Parallel()

		results := wikicollect.SearchResults{
			{Term: "big_cats", Entries: []wikicollect.SearchResultEntry{entry("Lion", 10), entry("Tiger", 11)}},
			{Term: "cats", Entries: []wikicollect.SearchResultEntry{entry("Cat", 12), entry("Lion", 10)}},
			{Term: "savanna", Entries: []wikicollect.SearchResultEntry{entry("Tiger", 11), entry("Zebra", 13)}},
		}

		filtered := wikicollect.NewResultFilter(results, wikicollect.Blacklist{}).Filter()

		bigCats, err := filtered.Entries("big_cats")
		require.NoError(t, err)
		cats, err := filtered.Entries("cats")
		require.NoError(t, err)
		savanna, err := filtered.Entries("savanna")
		require.NoError(t, err)

		assert.Equal(t, []string{"Lion", "Tiger"}, pageNames(bigCats))
		assert.Equal(t, []string{"Cat"}, pageNames(cats))
		assert.Equal(t, []string{"Zebra"}, pageNames(savanna))
		assert.Equal(t, 2, filtered.Stats().Duplicates)
		assert.Equal(t, 4, filtered.Len())
	})

	t.Run("drops repeated page id within one term", func(t *testing.T) {
		t.Parallel()

		results := wikicollect.SearchResults{
			{Term: "cats", Entries: []wikicollect.SearchResultEntry{entry("Lion", 10), entry("Lion_(animal)", 10)}},
		}

		filtered := wikicollect.NewResultFilter(results, nil).Filter()

		got, err := filtered.Entries("cats")
		require.NoError(t, err)
		assert.Equal(t, []string{"Lion"}, pageNames(got))
	})

	t.Run("blacklisted entry does not claim its page id", func(t *testing.T) {
		t.Parallel()

		results := wikicollect.SearchResults{
			{Term: "cats", Entries: []wikicollect.SearchResultEntry{entry("Lion", 10)}},
			{Term: "savanna", Entries: []wikicollect.SearchResultEntry{entry("Lion", 10)}},
		}
		blacklist := wikicollect.NewBlacklist(map[string][]string{"cats": {"Lion"}})

		filtered := wikicollect.NewResultFilter(results, blacklist).Filter()

		cats, err := filtered.Entries("cats")
		require.NoError(t, err)
		savanna, err := filtered.Entries("savanna")
		require.NoError(t, err)
		assert.Empty(t, cats)
		assert.Equal(t, []string{"Lion"}, pageNames(savanna))
	})

	t.Run("keeps terms in search order", func(t *testing.T) {
		t.Parallel()

		results := wikicollect.SearchResults{
			{Term: "zebras"},
			{Term: "antelopes"},
		}

		filtered := wikicollect.NewResultFilter(results, nil).Filter()

		assert.Equal(t, []string{"zebras", "antelopes"}, filtered.Terms())
	})

	t.Run("never mutates the input", func(t *testing.T) {
		t.Parallel()

		results := wikicollect.SearchResults{
			{Term: "cats", Entries: []wikicollect.SearchResultEntry{entry("Tiger", 1), entry("Lion", 2)}},
		}
		blacklist := wikicollect.NewBlacklist(map[string][]string{"cats": {"Tiger"}})

		_ = wikicollect.NewResultFilter(results, blacklist).Filter()

		assert.Equal(t, []string{"Tiger", "Lion"}, pageNames(results[0].Entries))
	})
}

func TestFilteredResults_Entries(t *testing.T) {
	t.Parallel()

	t.Run("returns ESTATE before filtering", func(t *testing.T) {
		t.Parallel()

		var filtered wikicollect.FilteredResults

		_, err := filtered.Entries("cats")

		require.Error(t, err)
		assert.Equal(t, wikicollect.ESTATE, wikicollect.ErrorCode(err))
	})

	t.Run("returns ESTATE for nil results", func(t *testing.T) {
		t.Parallel()

		var filtered *wikicollect.FilteredResults

		_, err := filtered.Entries("cats")

		require.Error(t, err)
		assert.Equal(t, wikicollect.ESTATE, wikicollect.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown term", func(t *testing.T) {
		t.Parallel()

		filtered := wikicollect.NewResultFilter(wikicollect.SearchResults{{Term: "cats"}}, nil).Filter()

		_, err := filtered.Entries("dogs")

		require.Error(t, err)
		assert.Equal(t, wikicollect.ENOTFOUND, wikicollect.ErrorCode(err))
	})

	t.Run("returned slice does not alias internal state", func(t *testing.T) {
		t.Parallel()

		results := wikicollect.SearchResults{
			{Term: "cats", Entries: []wikicollect.SearchResultEntry{entry("Lion", 1)}},
		}
		filtered := wikicollect.NewResultFilter(results, nil).Filter()

		got, err := filtered.Entries("cats")
		require.NoError(t, err)
		got[0].PageName = "changed"

		again, err := filtered.Entries("cats")
		require.NoError(t, err)
		assert.Equal(t, "Lion", again[0].PageName)
	})
}

func TestNormalizeSearchTerm(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "climate_change", wikicollect.NormalizeSearchTerm("  climate change "))
	assert.Equal(t, "lions", wikicollect.NormalizeSearchTerm("lions"))
}

func TestValidateSearchTerm(t *testing.T) {
	t.Parallel()

	require.NoError(t, wikicollect.ValidateSearchTerm("climate_change"))

	for _, term := range []string{"", "a/b", `a\b`, "..", "../etc"} {
		err := wikicollect.ValidateSearchTerm(term)
		require.Error(t, err, "term %q", term)
		assert.Equal(t, wikicollect.EINVALID, wikicollect.ErrorCode(err))
	}
}
