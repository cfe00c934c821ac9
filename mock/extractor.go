package mock

import "github.com/tcsenpai/mcpbook"

var _ mcpbook.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of mcpbook.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*mcpbook.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*mcpbook.ExtractResult, error) {
	return e.ExtractFn(html)
}
