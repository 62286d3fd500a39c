// Package snapshot mirrors a run's itinerary and gazetteer into a relational
// database.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/identity"
	"github.com/goliatone/go-tripdata/internal/logging"
	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrUnsupportedDriver = errors.New("snapshot: unsupported driver")
	ErrLocationNotFound  = errors.New("snapshot: location not found")
)

// Open connects to the snapshot database and pings it.
func Open(ctx context.Context, driver, dsn string) (*bun.DB, error) {
	var db *bun.DB
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "sqlite3":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("snapshot: open sqlite: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
	case DriverPostgres:
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("snapshot: open postgres: %w", err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("snapshot: ping: %w", err)
	}
	return db, nil
}

// Stats counts the rows written by one snapshot.
type Stats struct {
	Locations  int
	TripParts  int
	Days       int
	Activities int
}

// Store writes and reads snapshots.
type Store struct {
	db        *bun.DB
	locations repository.Repository[*LocationRecord]
	days      repository.Repository[*TripDayRecord]
	logger    interfaces.Logger
}

// NewStore wraps db. A nil logger discards output.
func NewStore(db *bun.DB, logger interfaces.Logger) *Store {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{
		db:        db,
		locations: NewLocationRepository(db),
		days:      NewTripDayRepository(db),
		logger:    logger,
	}
}

// Write drops and recreates every snapshot table and fills them in one
// transaction. Row ids are derived from slugs and day numbers so repeated
// runs over the same data produce the same keys.
func (s *Store) Write(ctx context.Context, days []domain.TripDay, locations []domain.Location, stubs []string) (Stats, error) {
	locationRows, partRows := locationRecords(locations, stubs)
	dayRows, activityRows := dayRecords(days)

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range models {
			if _, err := tx.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
		for i := len(models) - 1; i >= 0; i-- {
			if _, err := tx.NewCreateTable().Model(models[i]).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("create table: %w", err)
			}
		}
		if len(locationRows) > 0 {
			if _, err := tx.NewInsert().Model(&locationRows).Exec(ctx); err != nil {
				return fmt.Errorf("insert locations: %w", err)
			}
		}
		if len(partRows) > 0 {
			if _, err := tx.NewInsert().Model(&partRows).Exec(ctx); err != nil {
				return fmt.Errorf("insert trip parts: %w", err)
			}
		}
		if len(dayRows) > 0 {
			if _, err := tx.NewInsert().Model(&dayRows).Exec(ctx); err != nil {
				return fmt.Errorf("insert trip days: %w", err)
			}
		}
		if len(activityRows) > 0 {
			if _, err := tx.NewInsert().Model(&activityRows).Exec(ctx); err != nil {
				return fmt.Errorf("insert activities: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("snapshot.write.failed", "error", err)
		return Stats{}, err
	}

	stats := Stats{
		Locations:  len(locationRows),
		TripParts:  len(partRows),
		Days:       len(dayRows),
		Activities: len(activityRows),
	}
	s.logger.Info("snapshot.write.completed",
		"locations", stats.Locations,
		"trip_parts", stats.TripParts,
		"days", stats.Days,
		"activities", stats.Activities,
	)
	return stats, nil
}

// Locations lists every location ordered by slug with its trip parts.
func (s *Store) Locations(ctx context.Context) ([]*LocationRecord, error) {
	records, _, err := s.locations.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("TripParts", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("day ASC", "date ASC", "segment_id ASC")
		}).Order("slug ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("snapshot: list locations: %w", err)
	}
	return records, nil
}

// LocationBySlug loads one location.
func (s *Store) LocationBySlug(ctx context.Context, slug string) (*LocationRecord, error) {
	record, err := s.locations.GetByIdentifier(ctx, slug)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, slug)
		}
		return nil, fmt.Errorf("snapshot: get location %q: %w", slug, err)
	}
	return record, nil
}

// Days lists trip days in order with their activities.
func (s *Store) Days(ctx context.Context) ([]*TripDayRecord, error) {
	records, _, err := s.days.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Activities", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("position ASC")
		}).Order("day ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("snapshot: list days: %w", err)
	}
	return records, nil
}

func locationRecords(locations []domain.Location, stubs []string) ([]*LocationRecord, []*TripPartRecord) {
	stubSet := make(map[string]struct{}, len(stubs))
	for _, id := range stubs {
		stubSet[id] = struct{}{}
	}

	rows := make([]*LocationRecord, 0, len(locations))
	var parts []*TripPartRecord
	for _, location := range locations {
		id := identity.LocationUUID(location.ID)
		_, stub := stubSet[location.ID]
		rows = append(rows, &LocationRecord{
			ID:            id,
			Slug:          location.ID,
			Name:          location.Name,
			Address:       location.Address,
			Type:          string(location.Type),
			Lat:           location.Geo.Lat,
			Lng:           location.Geo.Lng,
			Notes:         location.Notes,
			OfficialURL:   append([]string(nil), location.OfficialURL...),
			GoogleMapsURL: append([]string(nil), location.GoogleMapsURL...),
			ReviewURL:     append([]string(nil), location.ReviewURL...),
			Stub:          stub,
		})
		for _, part := range location.TripParts {
			parts = append(parts, &TripPartRecord{
				ID:         identity.TripPartUUID(id, part.Day, part.Date, part.SegmentID),
				LocationID: id,
				Day:        part.Day,
				Date:       part.Date,
				SegmentID:  part.SegmentID,
			})
		}
	}
	return rows, parts
}

func dayRecords(days []domain.TripDay) ([]*TripDayRecord, []*ActivityRecord) {
	rows := make([]*TripDayRecord, 0, len(days))
	var activities []*ActivityRecord
	for _, day := range days {
		id := identity.TripDayUUID(day.Day, day.Date)
		rows = append(rows, &TripDayRecord{
			ID:        id,
			Day:       day.Day,
			Date:      day.Date,
			DayOfWeek: day.DayOfWeek,
			Title:     day.Title,
			Summary:   day.Summary,
			SegmentID: day.SegmentID,
		})
		for position, activity := range day.Activities {
			record := &ActivityRecord{
				ID:          identity.ActivityUUID(id, position),
				TripDayID:   id,
				Position:    position,
				Time:        activity.Time,
				Name:        activity.Name,
				Description: activity.Description,
				Subgroup:    activity.Subgroup,
				LocationIDs: append([]string{}, activity.LocationIDs...),
			}
			if leg := activity.TravelAfter; leg != nil {
				record.TravelMode = leg.Mode
				record.TravelDuration = leg.Duration
				record.TravelFrom = leg.From
				record.TravelTo = leg.To
			}
			activities = append(activities, record)
		}
	}
	return rows, activities
}
