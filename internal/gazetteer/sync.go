package gazetteer

import (
	"cmp"
	"slices"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/logging"
	"github.com/goliatone/go-tripdata/internal/patterns"
	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

// References maps each referenced location id to its distinct visits, in
// order of first reference.
type References struct {
	order []string
	parts map[string][]domain.TripPart
}

// CollectReferences walks the itinerary and gathers the distinct
// (day, date, segment) visits of every referenced location. Visits are sorted
// by day, then date, then segment.
func CollectReferences(days []domain.TripDay) References {
	refs := References{parts: map[string][]domain.TripPart{}}
	seen := map[string]map[domain.TripPart]struct{}{}

	for _, day := range days {
		part := domain.TripPart{Day: day.Day, Date: day.Date, SegmentID: day.SegmentID}
		for _, activity := range day.Activities {
			for _, id := range activity.LocationIDs {
				visits, ok := seen[id]
				if !ok {
					visits = map[domain.TripPart]struct{}{}
					seen[id] = visits
					refs.order = append(refs.order, id)
				}
				if _, dup := visits[part]; dup {
					continue
				}
				visits[part] = struct{}{}
				refs.parts[id] = append(refs.parts[id], part)
			}
		}
	}

	for _, id := range refs.order {
		slices.SortStableFunc(refs.parts[id], compareTripParts)
	}
	return refs
}

func compareTripParts(a, b domain.TripPart) int {
	return cmp.Or(
		cmp.Compare(a.Day, b.Day),
		cmp.Compare(a.Date, b.Date),
		cmp.Compare(a.SegmentID, b.SegmentID),
	)
}

// IDs returns referenced ids in order of first reference.
func (r References) IDs() []string {
	return slices.Clone(r.order)
}

// Parts returns a copy of the visits recorded for id.
func (r References) Parts(id string) []domain.TripPart {
	return slices.Clone(r.parts[id])
}

// Has reports whether id was referenced.
func (r References) Has(id string) bool {
	_, ok := r.parts[id]
	return ok
}

// SyncReport is the outcome of one synchronization. Locations is a new
// collection; the input is never modified.
type SyncReport struct {
	Locations []domain.Location
	Updated   []string
	Created   []string
	Cleared   []string
}

// Synchronizer recomputes trip_parts from an itinerary.
type Synchronizer struct {
	logger interfaces.Logger
}

// NewSynchronizer constructs a Synchronizer. A nil logger discards output.
func NewSynchronizer(logger interfaces.Logger) *Synchronizer {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Synchronizer{logger: logger}
}

// Sync rebuilds trip_parts for every location. Referenced locations get
// their collected visits, unreferenced ones get an empty list, and ids with
// no gazetteer entry become stubs appended after the existing entries.
func (s *Synchronizer) Sync(locations []domain.Location, days []domain.TripDay) SyncReport {
	refs := CollectReferences(days)

	report := SyncReport{Locations: make([]domain.Location, 0, len(locations)+len(refs.order))}
	known := make(map[string]struct{}, len(locations))

	for _, existing := range locations {
		location := existing.Clone()
		known[location.ID] = struct{}{}

		if refs.Has(location.ID) {
			location.TripParts = refs.Parts(location.ID)
			report.Updated = append(report.Updated, location.ID)
		} else {
			if len(location.TripParts) > 0 {
				s.logger.Warn("gazetteer.sync.orphan_cleared", "location_id", location.ID, "name", location.Name)
				report.Cleared = append(report.Cleared, location.ID)
			}
			location.TripParts = []domain.TripPart{}
		}
		report.Locations = append(report.Locations, withEmptyLists(location))
	}

	for _, id := range refs.order {
		if _, ok := known[id]; ok {
			continue
		}
		stub := NewStub(id, refs.Parts(id))
		s.logger.Warn("gazetteer.sync.stub_created", "location_id", id, "name", stub.Name)
		report.Created = append(report.Created, id)
		report.Locations = append(report.Locations, stub)
	}

	s.logger.Info("gazetteer.sync.completed",
		"locations", len(report.Locations),
		"updated", len(report.Updated),
		"created", len(report.Created),
		"cleared", len(report.Cleared),
	)
	return report
}

// NewStub builds the placeholder entry for an id the gazetteer does not know.
func NewStub(id string, parts []domain.TripPart) domain.Location {
	if parts == nil {
		parts = []domain.TripPart{}
	}
	return withEmptyLists(domain.Location{
		ID:        id,
		Name:      patterns.StubName(id),
		Type:      domain.LocationAttraction,
		TripParts: parts,
	})
}
