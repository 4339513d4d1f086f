package wikicollect

import (
	"context"
	"strings"
)

// SearchResultEntry is one page returned by a search.
type SearchResultEntry struct {
	PageName  string `yaml:"page_name" json:"page_name"`
	PageID    int    `yaml:"page_id" json:"page_id"`
	Size      int    `yaml:"size" json:"size"`
	WordCount int    `yaml:"word_count" json:"word_count"`
}

// TermResults holds the entries found for one search term, in search order.
type TermResults struct {
	Term    string
	Entries []SearchResultEntry
}

// SearchResults is the ordered set of search results for all terms.
type SearchResults []TermResults

// Blacklist maps a search term to the page names excluded for that term.
type Blacklist map[string]map[string]struct{}

// NewBlacklist builds a Blacklist from term to page name lists.
func NewBlacklist(m map[string][]string) Blacklist {
	b := make(Blacklist, len(m))
	for term, names := range m {
		set := make(map[string]struct{}, len(names))
		for _, name := range names {
			set[name] = struct{}{}
		}
		b[term] = set
	}
	return b
}

// Excludes reports whether pageName is blacklisted for term.
// A term without a blacklist entry excludes nothing.
func (b Blacklist) Excludes(term, pageName string) bool {
	_, ok := b[term][pageName]
	return ok
}

// MetadataStore loads search results and the page blacklist.
type MetadataStore interface {
	// LoadSearchResults reads every search-result file.
	// Returns ECONFIG if no search has been performed yet.
	LoadSearchResults(ctx context.Context) (SearchResults, error)

	// LoadBlacklist reads the page blacklist.
	// Returns ENOTFOUND if the blacklist file does not exist.
	LoadBlacklist(ctx context.Context) (Blacklist, error)
}

// SearchResultWriter persists the results of one search.
type SearchResultWriter interface {
	SaveSearchResults(ctx context.Context, term string, entries []SearchResultEntry) error
}

// Searcher runs a full-text search against the remote encyclopedia.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResultEntry, error)
}

// NormalizeSearchTerm trims a query and replaces inner spaces with
// underscores. The result keys search-result files, the blacklist and
// output artifacts.
func NormalizeSearchTerm(query string) string {
	return strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
}

// ValidateSearchTerm returns EINVALID if term cannot be used as a file name.
func ValidateSearchTerm(term string) error {
	if term == "" {
		return Errorf(EINVALID, "search term required")
	}
	if strings.ContainsAny(term, `/\`) || term == "." || strings.Contains(term, "..") {
		return Errorf(EINVALID, "search term %q is not a valid file name", term)
	}
	return nil
}
