package mcpbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tcsenpai/mcpbook"
)

func TestDeriveSection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path           string
		wantSection    string
		wantSubsection string
	}{
		{"/", "General", ""},
		{"/api", "API Reference", ""},
		{"/api/authentication", "API Reference", "Authentication"},
		{"/faq", "FAQ", ""},
		{"/getting-started/install", "Getting Started", "Install"},
		{"/custom-topic", "Custom Topic", ""},
		{"/custom-topic/sub_page", "Custom Topic", "Sub Page"},
		{"/guides/advanced/tuning", "Guides", "Advanced"},
		{"/reference/cli.html", "Reference", "Cli"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			section, subsection := mcpbook.DeriveSection(tt.path)
			assert.Equal(t, tt.wantSection, section)
			assert.Equal(t, tt.wantSubsection, subsection)
		})
	}
}
