package parentwork

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"parentwork/internal/library"
	"parentwork/internal/logging"
	"parentwork/internal/services"
)

// Summary counts per-outcome results of a batch run.
type Summary struct {
	CorrelationID string        `json:"correlation_id"`
	Total         int           `json:"total"`
	Updated       int           `json:"updated"`
	Cached        int           `json:"cached"`
	NoWork        int           `json:"no_work"`
	Unreachable   int           `json:"unreachable"`
	Failed        int           `json:"failed"`
	Duration      time.Duration `json:"duration"`
}

func (s *Summary) count(outcome Outcome) {
	s.Total++
	switch outcome {
	case OutcomeUpdated:
		s.Updated++
	case OutcomeCached:
		s.Cached++
	case OutcomeNoWork:
		s.NoWork++
	case OutcomeUnreachable:
		s.Unreachable++
	default:
		s.Failed++
	}
}

// String renders a one-line summary for CLI output.
func (s Summary) String() string {
	return fmt.Sprintf("%d items: %d updated, %d cached, %d without work, %d unreachable, %d failed",
		s.Total, s.Updated, s.Cached, s.NoWork, s.Unreachable, s.Failed)
}

// Run processes items one at a time. Per-item failures are logged and
// counted; only context cancellation stops the batch early, in which case
// the partial summary is returned with the context error.
func (p *Processor) Run(ctx context.Context, items []*library.Item, force bool) (Summary, error) {
	summary := Summary{CorrelationID: uuid.NewString()}
	ctx = services.WithRequestID(ctx, summary.CorrelationID)
	logger := logging.WithContext(ctx, p.logger)
	started := time.Now()

	logger.Info("parent work run started",
		logging.Int("items", len(items)),
		logging.Bool("force", force),
	)
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(started)
			return summary, err
		}
		outcome, err := p.Process(ctx, item, force)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				summary.Duration = time.Since(started)
				return summary, err
			}
			logging.ErrorWithContext(logger, "parent work processing failed", "item_failed",
				logging.Int64(logging.FieldItemID, item.ID),
				logging.String("item", item.Label()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the library database"),
			)
		}
		summary.count(outcome)
	}
	summary.Duration = time.Since(started)

	logger.Info("parent work run finished",
		logging.Int("updated", summary.Updated),
		logging.Int("cached", summary.Cached),
		logging.Int("no_work", summary.NoWork),
		logging.Int("unreachable", summary.Unreachable),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}
