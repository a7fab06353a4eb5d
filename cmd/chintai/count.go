package main

import (
	"fmt"

	"github.com/onobori/chintai"
)

// Run executes the count command.
func (c *CountCmd) Run(deps *Dependencies) error {
	n, err := deps.Properties.CountProperties(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chintai.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "%d properties\n", n)
	return nil
}
