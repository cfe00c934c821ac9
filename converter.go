package mcpbook

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. The input should be
	// clean HTML (e.g., from an Extractor). Callers treat a conversion
	// failure as recoverable and fall back to plain text.
	Convert(html string) (string, error)
}
