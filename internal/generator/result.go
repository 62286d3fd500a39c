package generator

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/gazetteer"
	"github.com/goliatone/go-tripdata/internal/snapshot"
)

type DiagnosticLevel string

const (
	DiagnosticWarning DiagnosticLevel = "warning"
)

// Diagnostic is a soft data-quality finding. Runs with diagnostics still
// write their outputs.
type Diagnostic struct {
	Level      DiagnosticLevel
	Code       string
	LocationID string
	Message    string
}

// BuildResult reports aggregated run metadata.
type BuildResult struct {
	RunID        uuid.UUID
	TripDays     []domain.TripDay
	Meta         domain.TripMeta
	Days         int
	Activities   int
	ScheduleRows int
	Lodging      int
	Locations    int
	Stubs        []string
	Orphans      []string
	Diagnostics  []Diagnostic
	Outputs      []string
	Snapshot     *snapshot.Stats
	Duration     time.Duration
	DryRun       bool
}

func newBuildResult(runID uuid.UUID, days []domain.TripDay, meta domain.TripMeta, report gazetteer.SyncReport) *BuildResult {
	result := &BuildResult{
		RunID:        runID,
		TripDays:     days,
		Meta:         meta,
		Days:         len(days),
		Activities:   domain.ActivityCount(days),
		ScheduleRows: len(meta.DailySchedule),
		Lodging:      len(meta.LodgingConfirmations),
		Locations:    len(report.Locations),
		Stubs:        append([]string{}, report.Created...),
		Orphans:      append([]string{}, report.Cleared...),
	}
	for _, id := range report.Created {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Level:      DiagnosticWarning,
			Code:       "stub_created",
			LocationID: id,
			Message:    "new location needs manual enrichment",
		})
	}
	for _, id := range report.Cleared {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Level:      DiagnosticWarning,
			Code:       "orphan_cleared",
			LocationID: id,
			Message:    "location no longer referenced; trip_parts cleared",
		})
	}
	return result
}
