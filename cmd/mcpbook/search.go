package main

import (
	"fmt"

	"github.com/tcsenpai/mcpbook"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Pages.Search(deps.Ctx, c.Query, c.Limit, c.Offset)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mcpbook.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches. Run 'mcpbook scrape' first if the index is empty.")
		return nil
	}

	for i, r := range results {
		title := r.Title
		if title == "" {
			title = r.Path
		}
		fmt.Fprintf(deps.Stdout, "%d. %s  [%s]\n   %s\n   %s\n", c.Offset+i+1, title, r.Section, r.Path, r.Snippet)
	}

	return nil
}
