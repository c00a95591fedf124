package logging

import (
	"context"
	"log/slog"

	"parentwork/internal/services"
)

const (
	// FieldComponent names the package that emitted the line.
	FieldComponent = "component"
	// FieldItemID is the library item being processed.
	FieldItemID = "item_id"
	// FieldOrigin records what triggered processing (fetch, add, import).
	FieldOrigin = "origin"
	// FieldWorkID is a MusicBrainz work id.
	FieldWorkID = "work_id"
	// FieldCorrelationID groups the lines of one batch run.
	FieldCorrelationID = "correlation_id"
	// FieldEventType categorizes a warning or error for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldErrorKind carries the services error classification.
	FieldErrorKind = "error_kind"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts the item, origin, and correlation attributes stored
// on ctx by the services package.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.ItemIDFromContext(ctx); ok {
		fields = append(fields, slog.Int64(FieldItemID, id))
	}
	if origin, ok := services.OriginFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldOrigin, origin))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns logger augmented with the fields from ContextFields.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields))
	for _, field := range fields {
		args = append(args, field)
	}
	return logger.With(args...)
}
