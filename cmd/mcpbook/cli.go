package main

import (
	"context"
	"io"

	"github.com/tcsenpai/mcpbook"
	"github.com/tcsenpai/mcpbook/crawl"
	"github.com/tcsenpai/mcpbook/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Pages   mcpbook.PageStore
	Crawler *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL   string `help:"Documentation site base URL" env:"MCPBOOK_URL"`
	DB    string `help:"Database path" env:"MCPBOOK_DB"`
	Quiet bool   `short:"q" help:"Suppress progress output"`

	Scrape ScrapeCmd `cmd:"" help:"Crawl the documentation site and build the index"`
	Search SearchCmd `cmd:"" help:"Search the indexed documentation"`
	Stats  StatsCmd  `cmd:"" help:"Show index statistics"`
	Serve  ServeCmd  `cmd:"" help:"Serve the index over MCP on stdio"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Concurrency int  `short:"c" default:"8" help:"Concurrent fetch limit"`
	Force       bool `short:"f" help:"Ignore the cache TTL and re-check every page"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Limit  int    `short:"n" default:"10" help:"Maximum number of results"`
	Offset int    `default:"0" help:"Number of results to skip"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Refresh bool `help:"Crawl before serving if the index is stale or empty"`
}
