package mcpbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tcsenpai/mcpbook"
)

func TestFingerprint_sensitive_to_text_and_title(t *testing.T) {
	t.Parallel()

	base := mcpbook.Fingerprint("Guide", "install the package")

	assert.Equal(t, base, mcpbook.Fingerprint("Guide", "install the package"),
		"same inputs must produce the same fingerprint")
	assert.NotEqual(t, base, mcpbook.Fingerprint("Guide", "install the library"),
		"text change must change the fingerprint")
	assert.NotEqual(t, base, mcpbook.Fingerprint("Setup", "install the package"),
		"title change must change the fingerprint")
}

func TestFingerprint_field_boundaries_do_not_alias(t *testing.T) {
	t.Parallel()

	a := mcpbook.Fingerprint("ab", "c")
	b := mcpbook.Fingerprint("a", "bc")

	assert.NotEqual(t, a, b)
}

func TestPage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     mcpbook.Page
		wantCode string
	}{
		{
			name: "valid",
			page: mcpbook.Page{Path: "/guide", SourceURL: "https://docs.example.com/guide"},
		},
		{
			name:     "missing path",
			page:     mcpbook.Page{SourceURL: "https://docs.example.com/guide"},
			wantCode: mcpbook.EINVALID,
		},
		{
			name:     "non-relative path",
			page:     mcpbook.Page{Path: "guide", SourceURL: "https://docs.example.com/guide"},
			wantCode: mcpbook.EINVALID,
		},
		{
			name:     "missing source URL",
			page:     mcpbook.Page{Path: "/guide"},
			wantCode: mcpbook.EINVALID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, mcpbook.ErrorCode(err))
			}
		})
	}
}

func TestBuildSearchableText_normalizes(t *testing.T) {
	t.Parallel()

	got := mcpbook.BuildSearchableText("Getting  Started!", "Guides", "", "Run `npm install` first.")

	assert.Equal(t, "getting started guides run npm install first", got)
}
