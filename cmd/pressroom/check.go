package main

import (
	"fmt"

	"github.com/fwojciec/pressroom"
)

// Run executes the check command. It fails when any issue is found so it
// can gate a publishing pipeline.
func (c *CheckCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressroom.ErrorMessage(err))
		return err
	}

	if !c.Raw {
		content = deps.Processor.Process(content).ProcessedContent
	}

	issues, err := deps.Checker.Check(content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressroom.ErrorMessage(err))
		return err
	}

	if len(issues) == 0 {
		fmt.Fprintln(deps.Stdout, "No issues found.")
		return nil
	}

	for _, issue := range issues {
		fmt.Fprintf(deps.Stdout, "%-14s %-20s %s\n", issue.Kind, issue.Target, issue.Message)
	}
	return pressroom.Errorf(pressroom.EINVALID, "%d issue(s) found", len(issues))
}
