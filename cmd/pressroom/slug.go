package main

import (
	"fmt"

	"github.com/fwojciec/pressroom"
)

// Run executes the slug command.
func (c *SlugCmd) Run(deps *Dependencies) error {
	existing := pressroom.IDSet{}
	for _, text := range c.Texts {
		fmt.Fprintln(deps.Stdout, pressroom.GenerateID(text, existing))
	}
	return nil
}
