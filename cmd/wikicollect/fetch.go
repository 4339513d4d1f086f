package main

import (
	"fmt"

	"github.com/fwojciec/wikicollect"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	results, err := c.filter(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicollect.ErrorMessage(err))
		return err
	}

	terms, err := c.terms(results)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicollect.ErrorMessage(err))
		return err
	}

	if c.Preview {
		return c.preview(deps, results, terms)
	}

	for _, term := range terms {
		artifact, err := deps.Exporter.Export(deps.Ctx, results, term)
		if c.All && wikicollect.ErrorCode(err) == wikicollect.EEXISTS {
			fmt.Fprintf(deps.Stdout, "Skipped %s: already exported\n", term)
			continue
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wikicollect.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d records to %s\n", artifact.Records, artifact.Path)
	}

	return nil
}

func (c *FetchCmd) filter(deps *Dependencies) (*wikicollect.FilteredResults, error) {
	searches, err := deps.Metadata.LoadSearchResults(deps.Ctx)
	if err != nil {
		return nil, err
	}
	blacklist, err := deps.Metadata.LoadBlacklist(deps.Ctx)
	if err != nil {
		return nil, err
	}
	return wikicollect.NewResultFilter(searches, blacklist).Filter(), nil
}

func (c *FetchCmd) terms(results *wikicollect.FilteredResults) ([]string, error) {
	if c.All {
		return results.Terms(), nil
	}
	if c.Term == "" {
		return nil, wikicollect.Errorf(wikicollect.EINVALID, "a search term or --all is required")
	}
	term := wikicollect.NormalizeSearchTerm(c.Term)
	if err := wikicollect.ValidateSearchTerm(term); err != nil {
		return nil, err
	}
	return []string{term}, nil
}

func (c *FetchCmd) preview(deps *Dependencies, results *wikicollect.FilteredResults, terms []string) error {
	for _, term := range terms {
		entries, err := results.Entries(term)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wikicollect.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s (%d pages)\n", term, len(entries))
		for _, e := range entries {
			fmt.Fprintf(deps.Stdout, "  %s\n", e.PageName)
		}
	}

	stats := results.Stats()
	fmt.Fprintf(deps.Stdout, "Dropped %d blacklisted, %d duplicate\n", stats.Blacklisted, stats.Duplicates)
	return nil
}
