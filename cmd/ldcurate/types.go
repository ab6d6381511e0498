package main

import (
	"fmt"

	"github.com/fwojciec/ldcurate/validate"
)

// Run executes the types command.
func (c *TypesCmd) Run(deps *Dependencies) error {
	for _, t := range deps.Registry.Types() {
		rules := deps.Registry.Rules(t)
		priority := ""
		if deps.Registry.IsPriorityType(t) {
			priority = "priority"
		}
		fmt.Fprintf(deps.Stdout, "%-28s %2d  %2d required  %s\n",
			t, validate.Specificity(len(rules.ParentTypes)), len(rules.Required), priority)
	}
	return nil
}
