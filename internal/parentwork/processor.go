package parentwork

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"parentwork/internal/curation"
	"parentwork/internal/library"
	"parentwork/internal/logging"
	"parentwork/internal/musicbrainz"
	"parentwork/internal/services"
)

// Outcome describes what Process did with an item.
type Outcome int

const (
	// OutcomeFailed means the item could not be read or persisted.
	OutcomeFailed Outcome = iota
	// OutcomeNoWork means the item has no associated work.
	OutcomeNoWork
	// OutcomeCached means parent data was already stored and not refetched.
	OutcomeCached
	// OutcomeUpdated means fresh parent data was written.
	OutcomeUpdated
	// OutcomeUnreachable means MusicBrainz could not resolve a work.
	OutcomeUnreachable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoWork:
		return "no_work"
	case OutcomeCached:
		return "cached"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnreachable:
		return "unreachable"
	default:
		return "failed"
	}
}

// ItemStore is the persistence the processor needs.
type ItemStore interface {
	Reload(ctx context.Context, item *library.Item) error
	StoreParentFields(ctx context.Context, item *library.Item) error
}

// CurationRecorder receives missing MusicBrainz links.
type CurationRecorder interface {
	Record(entry curation.Entry) error
}

// Processor resolves and stores parent work metadata for library items.
type Processor struct {
	resolver *Resolver
	store    ItemStore
	curation CurationRecorder
	logger   *slog.Logger
}

// NewProcessor builds a processor. curation may be nil.
func NewProcessor(mb musicbrainz.Lookup, store ItemStore, recorder CurationRecorder, logger *slog.Logger) *Processor {
	return &Processor{
		resolver: NewResolver(mb),
		store:    store,
		curation: recorder,
		logger:   logging.NewComponentLogger(logger, "parentwork"),
	}
}

// Process refreshes item from the store and, unless parent data is already
// present and force is false, resolves every work on the item and overwrites
// its four parent fields. MusicBrainz failures leave the item untouched and
// are reported as OutcomeUnreachable with a nil error; only store failures
// and context cancellation are returned.
func (p *Processor) Process(ctx context.Context, item *library.Item, force bool) (Outcome, error) {
	if item == nil {
		return OutcomeFailed, errors.New("item is nil")
	}
	ctx = services.WithItemID(ctx, item.ID)
	logger := logging.WithContext(ctx, p.logger)

	if err := p.store.Reload(ctx, item); err != nil {
		return OutcomeFailed, fmt.Errorf("reload item %d: %w", item.ID, err)
	}

	if !item.HasWork() {
		logger.Info("no work attached",
			logging.String("item", item.Label()),
			logging.String("recording_id", item.RecordingID),
			logging.String("add_url", musicbrainz.RecordingURL(item.RecordingID)),
		)
		p.recordMissing(logger, curation.Entry{
			Kind:   curation.KindWork,
			MBID:   item.RecordingID,
			URL:    musicbrainz.RecordingURL(item.RecordingID),
			Artist: item.Artist,
			Title:  item.Title,
		})
		return OutcomeNoWork, nil
	}

	if !force && item.HasParentWork() {
		logger.Debug("work already in library, not fetching",
			logging.String("item", item.Label()),
			logging.String("parent_work", item.ParentFields.Work),
		)
		return OutcomeCached, nil
	}

	var acc Accumulator
	for _, workID := range item.WorkIDs() {
		work, err := p.resolver.FetchParentMetadata(ctx, workID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return OutcomeFailed, ctxErr
			}
			logger.Debug("work unreachable",
				logging.String(logging.FieldWorkID, workID),
				logging.String(logging.FieldErrorKind, services.Kind(err)),
				logging.Error(err),
			)
			return OutcomeUnreachable, nil
		}

		var composerFound bool
		acc, composerFound = acc.Add(work)
		if !composerFound {
			logger.Info("no composer on root work",
				logging.String("item", item.Label()),
				logging.String(logging.FieldWorkID, work.ID),
				logging.String("add_url", musicbrainz.WorkURL(work.ID)),
			)
			p.recordMissing(logger, curation.Entry{
				Kind:   curation.KindComposer,
				MBID:   work.ID,
				URL:    musicbrainz.WorkURL(work.ID),
				Artist: item.Artist,
				Title:  work.Title,
			})
		}
	}

	previous := item.ParentFields
	item.ParentFields = acc.Fields()
	if err := p.store.StoreParentFields(ctx, item); err != nil {
		item.ParentFields = previous
		return OutcomeFailed, fmt.Errorf("store parent fields for item %d: %w", item.ID, err)
	}

	logger.Debug("parent work stored",
		logging.String("item", item.Label()),
		logging.String("parent_work", item.ParentFields.Work),
		logging.String("parent_composer", item.ParentFields.Composer),
		logging.Int("root_works", acc.Len()),
	)
	return OutcomeUpdated, nil
}

func (p *Processor) recordMissing(logger *slog.Logger, entry curation.Entry) {
	if p.curation == nil || strings.TrimSpace(entry.MBID) == "" {
		return
	}
	if err := p.curation.Record(entry); err != nil {
		logging.WarnWithContext(logger, "failed to record curation entry", "curation_record_failed",
			logging.Error(err),
			logging.String("kind", string(entry.Kind)),
			logging.String("mbid", entry.MBID),
			logging.String(logging.FieldErrorHint, "check curation_path permissions"),
			logging.String(logging.FieldImpact, "missing link will not appear in curation list"),
		)
	}
}
