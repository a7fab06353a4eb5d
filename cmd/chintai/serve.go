package main

import (
	"fmt"

	"github.com/onobori/chintai"
	"github.com/onobori/chintai/web"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if err := web.ListenAndServe(deps.Ctx, c.Addr, deps.Server.Handler(), deps.Logger); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chintai.ErrorMessage(err))
		return err
	}
	return nil
}
