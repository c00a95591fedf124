package parentwork

import (
	"context"

	"parentwork/internal/library"
	"parentwork/internal/services"
)

// ImportHook runs the processor over newly imported items when automatic
// processing is enabled.
type ImportHook struct {
	Processor *Processor
	Auto      bool
	Force     bool
}

// Imported handles items that were just added to the library. It is a no-op
// when Auto is false.
func (h ImportHook) Imported(ctx context.Context, items []*library.Item) (Summary, error) {
	if !h.Auto || h.Processor == nil || len(items) == 0 {
		return Summary{}, nil
	}
	ctx = services.WithOrigin(ctx, "import")
	return h.Processor.Run(ctx, items, h.Force)
}
