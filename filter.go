package wikicollect

// FilterStats counts the entries dropped while filtering.
type FilterStats struct {
	Blacklisted int
	Duplicates  int
}

// ResultFilter combines search results with a blacklist.
// Call Filter to obtain the immutable FilteredResults.
type ResultFilter struct {
	results   SearchResults
	blacklist Blacklist
}

// NewResultFilter returns a filter over results and blacklist.
func NewResultFilter(results SearchResults, blacklist Blacklist) *ResultFilter {
	return &ResultFilter{results: results, blacklist: blacklist}
}

// Filter removes blacklisted entries and applies waterfall deduplication on
// page ids: the first occurrence in term-then-entry order is kept, every
// later occurrence is dropped, across all terms.
func (f *ResultFilter) Filter() *FilteredResults {
	out := &FilteredResults{
		built:   true,
		entries: make(map[string][]SearchResultEntry, len(f.results)),
	}
	seen := make(map[int]struct{})

	for _, tr := range f.results {
		kept := make([]SearchResultEntry, 0, len(tr.Entries))
		for _, e := range tr.Entries {
			if f.blacklist.Excludes(tr.Term, e.PageName) {
				out.stats.Blacklisted++
				continue
			}
			if _, ok := seen[e.PageID]; ok {
				out.stats.Duplicates++
				continue
			}
			seen[e.PageID] = struct{}{}
			kept = append(kept, e)
		}

		if _, ok := out.entries[tr.Term]; !ok {
			out.terms = append(out.terms, tr.Term)
		}
		out.entries[tr.Term] = append(out.entries[tr.Term], kept...)
		out.total += len(kept)
	}

	return out
}

// FilteredResults maps each search term to the pages eligible for retrieval.
// It is only valid when returned by ResultFilter.Filter.
type FilteredResults struct {
	built   bool
	terms   []string
	entries map[string][]SearchResultEntry
	stats   FilterStats
	total   int
}

// Terms returns the search terms in filtering order.
func (r *FilteredResults) Terms() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.terms...)
}

// Entries returns the eligible pages for term in search order.
// Returns ESTATE if r was not produced by a filter and ENOTFOUND if term
// has no search results.
func (r *FilteredResults) Entries(term string) ([]SearchResultEntry, error) {
	if r == nil || !r.built {
		return nil, Errorf(ESTATE, "search results have not been filtered")
	}
	entries, ok := r.entries[term]
	if !ok {
		return nil, Errorf(ENOTFOUND, "no search results for term %q", term)
	}
	return append([]SearchResultEntry(nil), entries...), nil
}

// Len returns the number of eligible pages across all terms.
func (r *FilteredResults) Len() int {
	if r == nil {
		return 0
	}
	return r.total
}

// Stats returns the drop counts of the filtering pass.
func (r *FilteredResults) Stats() FilterStats {
	if r == nil {
		return FilterStats{}
	}
	return r.stats
}
