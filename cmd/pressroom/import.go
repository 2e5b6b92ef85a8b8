package main

import (
	"fmt"

	"github.com/fwojciec/pressroom"
	"github.com/fwojciec/pressroom/publish"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	filter, err := pressroom.CompileURLFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressroom.ErrorMessage(err))
		return err
	}

	progress := func(event publish.ProgressEvent) {
		switch event.Type {
		case publish.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case publish.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", publish.TruncateURL(event.URL, 60), event.Error)
		}
	}

	var total publish.ImportResult
	add := func(r *publish.ImportResult) {
		total.Created += r.Created
		total.Updated += r.Updated
		total.Unchanged += r.Unchanged
		total.Failed += r.Failed
		total.Bytes += r.Bytes
	}

	if c.Sitemap || c.Index {
		discover := deps.Importer.ImportSitemap
		if c.Index {
			discover = deps.Importer.ImportIndex
		}
		for _, location := range c.URLs {
			fmt.Fprintf(deps.Stdout, "Reading %s\n", location)
			result, err := discover(deps.Ctx, location, filter, progress)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error importing %s: %v\n", location, err)
				return err
			}
			add(result)
		}
	} else {
		var urls []string
		for _, u := range c.URLs {
			if filter.Match(u) {
				urls = append(urls, u)
			}
		}
		result, err := deps.Importer.Import(deps.Ctx, urls, progress)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error importing: %v\n", err)
			return err
		}
		add(result)
	}

	fmt.Fprintf(deps.Stdout, "Imported %d articles (%d new, %d updated, %d unchanged, %s)\n",
		total.Created+total.Updated+total.Unchanged, total.Created, total.Updated, total.Unchanged,
		publish.FormatBytes(total.Bytes))
	if total.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "%d URLs failed\n", total.Failed)
	}
	return nil
}
