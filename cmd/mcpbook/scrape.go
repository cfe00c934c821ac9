package main

import (
	"fmt"

	"github.com/tcsenpai/mcpbook"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if err := deps.Crawler.ScrapeAll(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mcpbook.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stderr)

	count, err := deps.Pages.PageCount(deps.Ctx)
	if err != nil {
		return err
	}

	failures := deps.Crawler.FailureStats()
	fmt.Fprintf(deps.Stdout, "Indexed %d pages.\n", count)
	if len(failures.FailedPaths) > 0 {
		fmt.Fprintf(deps.Stdout, "Failed paths (%d, %d retries spent):\n", len(failures.FailedPaths), failures.TotalRetryAttempts)
		for _, path := range failures.FailedPaths {
			fmt.Fprintf(deps.Stdout, "  %s\n", path)
		}
	}

	return nil
}
