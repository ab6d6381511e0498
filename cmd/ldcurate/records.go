package main

import (
	"fmt"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/crawl"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	filter := ldcurate.RecordFilter{Limit: c.Limit}
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}
	if c.Type != "" {
		filter.SchemaType = &c.Type
	}
	if c.Accepted || c.Rejected {
		passed := c.Accepted
		filter.Passed = &passed
	}
	if c.MinScore > 0 {
		filter.MinScore = &c.MinScore
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldcurate.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching records.")
		return nil
	}
	for _, r := range records {
		schemaType := r.SchemaType
		if schemaType == "" {
			schemaType = "-"
		}
		fmt.Fprintf(deps.Stdout, "%5.1f  %-20s %s\n", r.Score, schemaType, crawl.TruncateURL(r.URL, 80))
	}
	return nil
}
