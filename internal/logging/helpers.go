package logging

import (
	"context"
	"maps"

	"github.com/google/uuid"

	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

const fieldRunID = "run_id"

// WithFields attaches structured fields when the logger implements
// interfaces.FieldsLogger. Nil loggers and empty maps pass through unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// WithRun tags ctx with a run identifier so every entry logged through a
// context-aware logger during one pipeline run can be correlated. A zero
// runID is replaced with a freshly generated one.
func WithRun(ctx context.Context, runID uuid.UUID) (context.Context, uuid.UUID) {
	if ctx == nil {
		ctx = context.Background()
	}
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	return ContextWithFields(ctx, map[string]any{fieldRunID: runID.String()}), runID
}
