package main

import (
	"fmt"

	"github.com/onobori/chintai"
	"github.com/onobori/chintai/scrape"
	"github.com/prometheus/client_golang/prometheus"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if c.Pages < 1 {
		err := chintai.Errorf(chintai.EINVALID, "pages must be at least 1")
		fmt.Fprintf(deps.Stderr, "error: %s\n", chintai.ErrorMessage(err))
		return err
	}
	last := c.Start + c.Pages - 1

	fmt.Fprintf(deps.Stdout, "Scraping pages %d-%d...\n", c.Start, last)

	result, err := deps.Scraper.Run(deps.Ctx, c.URL, c.Start, last, func(e scrape.ProgressEvent) {
		if e.Error != nil {
			fmt.Fprintf(deps.Stdout, "  page %d: failed: %v\n", e.Page, e.Error)
			return
		}
		fmt.Fprintf(deps.Stdout, "  page %d: %d listings", e.Page, e.Listings)
		if e.Skipped > 0 {
			fmt.Fprintf(deps.Stdout, " (%d skipped)", e.Skipped)
		}
		fmt.Fprintln(deps.Stdout)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chintai.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored %d records from %d listings (%d pages, %d failed)\n",
		result.Stored, result.Listings, result.Pages, result.FailedPages)

	if c.MetricsFile != "" && deps.Metrics != nil {
		if err := prometheus.WriteToTextfile(c.MetricsFile, deps.Metrics); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chintai.ErrorMessage(err))
			return err
		}
	}
	return nil
}
