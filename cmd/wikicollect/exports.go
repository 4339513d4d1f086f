package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/wikicollect"
)

// Run executes the exports command.
func (c *ExportsCmd) Run(deps *Dependencies) error {
	filter := wikicollect.ExportFilter{Limit: c.Limit}
	if c.Term != "" {
		term := wikicollect.NormalizeSearchTerm(c.Term)
		filter.SearchTerm = &term
	}

	exports, err := deps.Exports.FindExports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicollect.ErrorMessage(err))
		return err
	}

	if len(exports) == 0 {
		fmt.Fprintln(deps.Stdout, "No exports found. Use 'wikicollect fetch' to create one.")
		return nil
	}

	for _, e := range exports {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d records  %s  %s\n",
			e.ExportedAt.Format(time.DateTime), e.SearchTerm, e.Records, e.ContentHash, e.Path)
	}

	return nil
}
