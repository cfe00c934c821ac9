package mcpbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tcsenpai/mcpbook"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := mcpbook.DefaultConfig("https://docs.example.com")
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*mcpbook.Config)
	}{
		{"relative base URL", func(c *mcpbook.Config) { c.BaseURL = "docs.example.com" }},
		{"bad scheme", func(c *mcpbook.Config) { c.BaseURL = "ftp://docs.example.com" }},
		{"negative TTL", func(c *mcpbook.Config) { c.CacheTTL = -time.Hour }},
		{"negative delay", func(c *mcpbook.Config) { c.ScrapingDelay = -time.Second }},
		{"negative retries", func(c *mcpbook.Config) { c.MaxRetries = -1 }},
		{"sub-second timeout", func(c *mcpbook.Config) { c.RequestTimeout = 500 * time.Millisecond }},
		{"zero concurrency", func(c *mcpbook.Config) { c.MaxConcurrent = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := mcpbook.DefaultConfig("https://docs.example.com")
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Equal(t, mcpbook.EINVALID, mcpbook.ErrorCode(err))
		})
	}
}
