package main

import (
	"fmt"

	"github.com/fwojciec/pressroom"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pressroom.Errorf(pressroom.EINVALID, "use --force to confirm deletion")
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, pressroom.ArticleFilter{Slug: &c.Slug})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressroom.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'pressroom list' to see stored articles.\n", c.Slug)
		return pressroom.Errorf(pressroom.ENOTFOUND, "article %q not found", c.Slug)
	}

	if err := deps.Articles.DeleteArticle(deps.Ctx, articles[0].ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressroom.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %q\n", c.Slug)
	return nil
}
