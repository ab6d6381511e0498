package main

import (
	"fmt"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/fs"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	domains, err := fs.LoadDomains(c.Domains)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldcurate.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Discovering URLs from %d domains\n", domains.Len())

	candidates, err := deps.Discoverer.Discover(deps.Ctx, domains)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if err := fs.WriteCandidates(c.Out, candidates); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintln(deps.Stdout, RenderDiscovery(candidates, c.Out))
	return nil
}
