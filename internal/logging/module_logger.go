package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

const (
	rootModule      = "tripdata"
	markdownModule  = "tripdata.markdown"
	gazetteerModule = "tripdata.gazetteer"
	itineraryModule = "tripdata.itinerary"
	tripMetaModule  = "tripdata.tripmeta"
	syncModule      = "tripdata.sync"
	emitModule      = "tripdata.emit"
	snapshotModule  = "tripdata.snapshot"
	generatorModule = "tripdata.generator"
)

const (
	fieldDocumentPath = "document"
	fieldDay          = "day"
	fieldDate         = "date"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkdownLogger returns the logger namespace reserved for document parsing.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// GazetteerLogger returns the logger namespace reserved for gazetteer IO and indexing.
func GazetteerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, gazetteerModule)
}

// ItineraryLogger returns the logger namespace reserved for the day builder.
func ItineraryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, itineraryModule)
}

// TripMetaLogger returns the logger namespace reserved for the trip-meta builder.
func TripMetaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, tripMetaModule)
}

// SyncLogger returns the logger namespace reserved for gazetteer synchronization.
func SyncLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, syncModule)
}

// EmitLogger returns the logger namespace reserved for output writers.
func EmitLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, emitModule)
}

// SnapshotLogger returns the logger namespace reserved for the relational snapshot.
func SnapshotLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, snapshotModule)
}

// GeneratorLogger returns the logger namespace reserved for pipeline runs.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// WithDayContext enriches the logger with the document path and the day being
// built. Empty values are ignored.
func WithDayContext(logger interfaces.Logger, path string, day int, date string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if day > 0 {
		fields[fieldDay] = day
	}
	if trimmed := strings.TrimSpace(date); trimmed != "" {
		fields[fieldDate] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
