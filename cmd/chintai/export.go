package main

import (
	"fmt"

	"github.com/onobori/chintai"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	props, err := deps.Properties.FindProperties(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chintai.ErrorMessage(err))
		return err
	}
	if err := deps.Exporter.Export(c.Output, props); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chintai.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Exported %d properties to %s\n", len(props), c.Output)
	return nil
}
