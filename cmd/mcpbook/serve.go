package main

import (
	"fmt"

	"github.com/tcsenpai/mcpbook"
	"github.com/tcsenpai/mcpbook/mcp"
)

const serverVersion = "1.0.0"

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if c.Refresh {
		if err := deps.Crawler.ScrapeAll(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mcpbook.ErrorMessage(err))
			return err
		}
	}

	count, err := deps.Pages.PageCount(deps.Ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Fprintln(deps.Stderr, "Warning: the index is empty. Run 'mcpbook scrape' or pass --refresh.")
	}

	server := mcp.NewServer(deps.Pages, deps.Crawler, "mcpbook", serverVersion)
	return server.Run(deps.Ctx)
}
