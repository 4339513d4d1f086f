package main

import (
	"fmt"

	"github.com/fwojciec/wikicollect"
	"github.com/fwojciec/wikicollect/fs"
)

// Run executes the dataset command.
func (c *DatasetCmd) Run(deps *Dependencies) error {
	records, err := fs.LoadRecords(deps.Config.DataDir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicollect.ErrorMessage(err))
		return err
	}

	ds := &wikicollect.Dataset{Name: c.Name, Records: records}
	location, err := deps.Publisher.Publish(deps.Ctx, ds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicollect.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Published %d records to %s\n", len(records), location)
	return nil
}
