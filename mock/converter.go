package mock

import "github.com/tcsenpai/mcpbook"

var _ mcpbook.Converter = (*Converter)(nil)

// Converter is a mock implementation of mcpbook.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
