package main

import (
	"fmt"

	"github.com/onobori/chintai"
)

// Run executes the suggest command.
func (c *SuggestCmd) Run(deps *Dependencies) error {
	s, err := deps.Suggester.Suggest(deps.Ctx, c.Station, c.Minutes)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chintai.ErrorMessage(err))
		return err
	}
	if s.Diagnostic != "" {
		fmt.Fprintf(deps.Stderr, "error: %s\n", s.Diagnostic)
		return fmt.Errorf("suggestion failed: %s", s.Diagnostic)
	}
	if len(s.Stations) == 0 {
		fmt.Fprintln(deps.Stdout, "No stations suggested.")
		return nil
	}

	for i, line := range s.Stations {
		fmt.Fprintln(deps.Stdout, line)
		if reason := s.Reason(i); reason != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", reason)
		}
	}
	return nil
}
