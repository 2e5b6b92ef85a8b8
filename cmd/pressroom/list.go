package main

import (
	"fmt"

	"github.com/fwojciec/pressroom"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	articles, err := deps.Articles.FindArticles(deps.Ctx, pressroom.ArticleFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressroom.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'pressroom import' to add some.")
		return nil
	}

	for _, a := range articles {
		title := a.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", a.Slug, title, a.UpdatedAt.Format("2006-01-02"), a.SourceURL)
	}

	return nil
}
