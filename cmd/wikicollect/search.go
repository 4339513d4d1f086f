package main

import (
	"fmt"

	"github.com/fwojciec/wikicollect"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	term := wikicollect.NormalizeSearchTerm(c.Query)
	if err := wikicollect.ValidateSearchTerm(term); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicollect.ErrorMessage(err))
		return err
	}

	entries, err := deps.Searcher.Search(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicollect.ErrorMessage(err))
		return err
	}

	if err := deps.SearchWriter.SaveSearchResults(deps.Ctx, term, entries); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicollect.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d results for %q\n", len(entries), term)
	return nil
}
