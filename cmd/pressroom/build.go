package main

import (
	"fmt"

	"github.com/fwojciec/pressroom/publish"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	b := &publish.Builder{
		Articles:    deps.Articles,
		Processor:   deps.Processor,
		Estimator:   deps.Estimator,
		Store:       deps.NewPageStore(c.Dir),
		Concurrency: c.Concurrency,
	}
	if c.Markdown {
		b.Converter = deps.Converter
	}

	result, err := b.Build(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error building: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built %d pages with %d headings (%s) in %s\n",
		result.Pages, result.Headings, publish.FormatBytes(result.Bytes), c.Dir)
	return nil
}
