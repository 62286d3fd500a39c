// Package generator runs the trip document pipeline: load, build, sync,
// validate, then write every output together.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/emit"
	"github.com/goliatone/go-tripdata/internal/gazetteer"
	"github.com/goliatone/go-tripdata/internal/itinerary"
	"github.com/goliatone/go-tripdata/internal/logging"
	"github.com/goliatone/go-tripdata/internal/markdown"
	"github.com/goliatone/go-tripdata/internal/resolve"
	"github.com/goliatone/go-tripdata/internal/runtimeconfig"
	"github.com/goliatone/go-tripdata/internal/snapshot"
	"github.com/goliatone/go-tripdata/internal/tripmeta"
	"github.com/goliatone/go-tripdata/internal/validation"
	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

// Service describes the trip data generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
}

// BuildOptions narrows a single run.
type BuildOptions struct {
	DryRun bool
	// RunID correlates log entries. A zero value is replaced.
	RunID uuid.UUID
}

// Dependencies lists the collaborators a run needs. Zero values fall back
// to defaults.
type Dependencies struct {
	Logging   interfaces.LoggerProvider
	Validator *validation.Validator
	Parser    *markdown.Parser
	Writer    emit.Writer
	// OpenSnapshot opens the snapshot database. Defaults to snapshot.Open.
	OpenSnapshot func(ctx context.Context, driver, dsn string) (*bun.DB, error)
	Now          func() time.Time
}

// NewService wires a generator with the provided configuration and dependencies.
func NewService(cfg runtimeconfig.Config, deps Dependencies) Service {
	if deps.Parser == nil {
		deps.Parser = markdown.NewParser(markdown.ParserOptions{})
	}
	if deps.Writer == nil {
		deps.Writer = emit.NewFileWriter()
	}
	if deps.OpenSnapshot == nil {
		deps.OpenSnapshot = snapshot.Open
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &service{cfg: cfg, deps: deps}
}

type service struct {
	cfg  runtimeconfig.Config
	deps Dependencies
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}

	ctx, runID := logging.WithRun(ctx, opts.RunID)
	logger := logging.GeneratorLogger(s.deps.Logging).WithContext(ctx)
	start := s.deps.Now()

	validator := s.deps.Validator
	if validator == nil {
		v, err := validation.Default()
		if err != nil {
			return nil, err
		}
		validator = v
	}

	logger.Info("generator.build.started",
		"document", s.cfg.Inputs.Document,
		"gazetteer", s.cfg.Inputs.Gazetteer,
		"dry_run", opts.DryRun || s.cfg.Outputs.DryRun,
	)

	doc, err := s.loadDocument(ctx)
	if err != nil {
		logger.Error("generator.document.failed", "error", err)
		return nil, err
	}

	store := gazetteer.NewStore(s.cfg.Inputs.Gazetteer, validator, logging.GazetteerLogger(s.deps.Logging).WithContext(ctx))
	loaded, err := store.Load(ctx)
	if err != nil {
		logger.Error("generator.gazetteer.failed", "error", err)
		var invalid *gazetteer.InvalidError
		if errors.As(err, &invalid) {
			return nil, gazetteerError(err, "gazetteer failed validation")
		}
		return nil, err
	}

	convention := s.cfg.Convention.Apply(runtimeconfig.ConventionOverrides{
		Year:            doc.FrontMatter.YearString(),
		DefaultSegment:  doc.FrontMatter.DefaultSegment,
		SubgroupMarkers: doc.FrontMatter.SubgroupMarkers,
		BaseSegments:    doc.FrontMatter.BaseSegments,
	})
	if err := convention.Validate(); err != nil {
		return nil, documentError(err, "document frontmatter overrides are invalid")
	}

	meta := tripmeta.NewBuilder(tripmeta.Options{
		FallbackYear:   convention.FallbackYear,
		Year:           doc.FrontMatter.YearString(),
		DefaultSegment: convention.DefaultSegment,
		BaseSegments:   convention.BaseSegments,
		Labels: tripmeta.Labels{
			Overview:  convention.Sections.Overview,
			Itinerary: convention.Sections.Itinerary,
			DayByDay:  convention.Sections.DayByDay,
			Flights:   convention.Sections.Flights,
			Lodging:   convention.Sections.Lodging,
		},
	}, logging.TripMetaLogger(s.deps.Logging).WithContext(ctx)).Build(doc.Tree)

	index := gazetteer.NewIndex(loaded.Document.Locations)
	logger.Debug("generator.index.built", "locations", len(loaded.Document.Locations), "aliases", index.Len())
	builder := itinerary.NewBuilder(resolve.New(index), itinerary.Options{
		DocumentPath:    doc.Path,
		Year:            meta.Year,
		DefaultSegment:  convention.DefaultSegment,
		SubgroupMarkers: convention.SubgroupMarkers,
		TravelModes:     convention.TravelModes,
	}, logging.ItineraryLogger(s.deps.Logging).WithContext(ctx))

	days, err := builder.Build(doc.Tree, meta.DayNodes, meta.Meta.DailySchedule)
	if err != nil {
		logger.Error("generator.itinerary.failed", "error", err)
		return nil, documentError(err, "day-by-day section could not be parsed")
	}

	report := gazetteer.NewSynchronizer(logging.SyncLogger(s.deps.Logging).WithContext(ctx)).Sync(loaded.Document.Locations, days)
	synced := &gazetteer.Document{Locations: report.Locations, Extra: loaded.Document.Extra}

	if err := validator.ValidateValue(validation.SchemaItinerary, days); err != nil {
		return nil, outputError(err, "generated itinerary failed schema validation")
	}
	if err := validator.ValidateValue(validation.SchemaTripMeta, meta.Meta); err != nil {
		return nil, outputError(err, "generated trip meta failed schema validation")
	}
	if err := gazetteer.Validate(synced); err != nil {
		return nil, outputError(err, "synced gazetteer failed validation")
	}

	result := newBuildResult(runID, days, meta.Meta, report)
	result.DryRun = opts.DryRun || s.cfg.Outputs.DryRun
	if len(days) == 0 {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Level:   DiagnosticWarning,
			Code:    "no_days",
			Message: ErrNoDays.Error(),
		})
		logger.Warn("generator.itinerary.empty")
	}

	writer := s.deps.Writer
	if result.DryRun {
		writer = emit.NoopWriter()
	}
	emitter := emit.New(emit.Options{
		Dir:      s.cfg.Outputs.Dir,
		Format:   s.cfg.Outputs.Format,
		Source:   filepath.Base(doc.Path),
		Manifest: s.cfg.Outputs.Manifest,
	}, writer, logging.EmitLogger(s.deps.Logging).WithContext(ctx))

	artifacts, err := emitter.Emit(ctx, emit.Payload{
		Days:          days,
		Meta:          meta.Meta,
		Gazetteer:     synced,
		GazetteerPath: s.cfg.Inputs.Gazetteer,
		Manifest: &emit.Manifest{
			Document:  emit.ManifestSource{Path: doc.Path, Checksum: doc.Checksum},
			Gazetteer: emit.ManifestSource{Path: loaded.Path, Checksum: markdown.Checksum(loaded.Raw)},
			Counts: emit.ManifestCounts{
				Days:         result.Days,
				Activities:   result.Activities,
				ScheduleRows: result.ScheduleRows,
				Lodging:      result.Lodging,
				Locations:    result.Locations,
			},
			Stubs:   result.Stubs,
			Orphans: result.Orphans,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generator: write outputs: %w", err)
	}
	for _, artifact := range artifacts {
		result.Outputs = append(result.Outputs, artifact.Path)
	}

	if s.cfg.Snapshot.Enabled() && !result.DryRun {
		stats, err := s.writeSnapshot(ctx, days, report)
		if err != nil {
			return nil, err
		}
		result.Snapshot = &stats
	}

	result.Duration = s.deps.Now().Sub(start)
	logger.Info("generator.build.completed",
		"days", result.Days,
		"activities", result.Activities,
		"locations", result.Locations,
		"stubs", len(result.Stubs),
		"orphans", len(result.Orphans),
		"dry_run", result.DryRun,
	)
	return result, nil
}

func (s *service) loadDocument(ctx context.Context) (*markdown.Document, error) {
	path := s.cfg.Inputs.Document
	loader := markdown.NewLoader(os.DirFS(filepath.Dir(path)), s.deps.Parser)
	doc, err := loader.LoadFile(ctx, filepath.Base(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, documentError(err, "trip document could not be parsed")
	}
	doc.Path = path
	logging.WithFields(logging.MarkdownLogger(s.deps.Logging).WithContext(ctx), map[string]any{
		"document": path,
		"checksum": doc.Checksum,
	}).Debug("markdown.document.loaded")
	return doc, nil
}

func (s *service) writeSnapshot(ctx context.Context, days []domain.TripDay, report gazetteer.SyncReport) (snapshot.Stats, error) {
	db, err := s.deps.OpenSnapshot(ctx, s.cfg.Snapshot.Driver, s.cfg.Snapshot.DSN)
	if err != nil {
		return snapshot.Stats{}, fmt.Errorf("generator: open snapshot: %w", err)
	}
	defer db.Close()

	store := snapshot.NewStore(db, logging.SnapshotLogger(s.deps.Logging).WithContext(ctx))
	stats, err := store.Write(ctx, days, report.Locations, report.Created)
	if err != nil {
		return snapshot.Stats{}, fmt.Errorf("generator: write snapshot: %w", err)
	}
	return stats, nil
}
