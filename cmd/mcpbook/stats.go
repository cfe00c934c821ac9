package main

import (
	"fmt"
	"time"

	"github.com/tcsenpai/mcpbook"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Pages.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mcpbook.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Pages:    %d\n", stats.PageCount)
	fmt.Fprintf(deps.Stdout, "Sections: %d\n", stats.SectionCount)
	if !stats.LastUpdated.IsZero() {
		fmt.Fprintf(deps.Stdout, "Updated:  %s\n", stats.LastUpdated.Format("2006-01-02 15:04:05 MST"))
	}
	if stats.AvgContentAge > 0 {
		fmt.Fprintf(deps.Stdout, "Avg age:  %s\n", stats.AvgContentAge.Round(time.Second))
	}

	return nil
}
