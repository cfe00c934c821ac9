package mock

import (
	"context"

	"github.com/tcsenpai/mcpbook"
)

var _ mcpbook.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of mcpbook.Pacer.
type Pacer struct {
	WaitFn func(ctx context.Context) error
}

func (p *Pacer) Wait(ctx context.Context) error {
	if p.WaitFn == nil {
		return nil
	}
	return p.WaitFn(ctx)
}
