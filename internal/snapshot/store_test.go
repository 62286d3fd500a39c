package snapshot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/identity"
	"github.com/goliatone/go-tripdata/internal/snapshot"
	"github.com/goliatone/go-tripdata/pkg/testsupport"
)

func openStore(t *testing.T, name string) *snapshot.Store {
	t.Helper()
	db, err := snapshot.Open(context.Background(), snapshot.DriverSQLite, testsupport.SQLiteMemoryDSN(name))
	if err != nil {
		t.Fatalf("open snapshot db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return snapshot.NewStore(db, nil)
}

func sampleData() ([]domain.TripDay, []domain.Location) {
	days := []domain.TripDay{{
		Day:       1,
		Date:      "2026-04-03",
		DayOfWeek: "Friday",
		Title:     "Arrival",
		SegmentID: "napa",
		Activities: []domain.Activity{
			{
				Time:        "10:45am",
				Name:        "Lunch",
				LocationIDs: []string{"sausalito-bakery"},
				Subgroup:    "Susan",
				TravelAfter: &domain.TravelLeg{Mode: "drive", Duration: "~45 min", From: "Sausalito", To: "Muir Woods"},
			},
			{
				Time:        "1:00pm",
				Name:        "Muir Woods",
				LocationIDs: []string{"muir-woods"},
			},
		},
	}}
	locations := []domain.Location{
		{
			ID:            "muir-woods",
			Name:          "Muir Woods National Monument",
			Type:          domain.LocationType("park"),
			Geo:           domain.GeoPoint{Lat: 37.89, Lng: -122.57},
			OfficialURL:   []string{"https://www.nps.gov/muwo/"},
			GoogleMapsURL: []string{"https://maps.google.com/?q=Muir+Woods", "https://maps.google.com/?q=Muir+Woods+Visitor+Center"},
			TripParts:     []domain.TripPart{{Day: 1, Date: "2026-04-03", SegmentID: "napa"}},
		},
		{
			ID:        "sausalito-bakery",
			Name:      "Sausalito Bakery",
			Type:      domain.LocationType("restaurant"),
			TripParts: []domain.TripPart{{Day: 1, Date: "2026-04-03", SegmentID: "napa"}},
		},
	}
	return days, locations
}

func TestStoreWrite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, "snapshot_roundtrip")
	days, locations := sampleData()

	stats, err := store.Write(ctx, days, locations, []string{"sausalito-bakery"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if stats.Locations != 2 || stats.TripParts != 2 || stats.Days != 1 || stats.Activities != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	records, err := store.Locations(ctx)
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(records) != 2 || records[0].Slug != "muir-woods" {
		t.Fatalf("expected locations ordered by slug, got %d", len(records))
	}
	if records[0].ID != identity.LocationUUID("muir-woods") {
		t.Fatalf("expected deterministic id, got %s", records[0].ID)
	}
	if len(records[0].TripParts) != 1 || records[0].TripParts[0].SegmentID != "napa" {
		t.Fatalf("expected trip parts to load, got %+v", records[0].TripParts)
	}
	if records[0].Stub || !records[1].Stub {
		t.Fatalf("unexpected stub flags %v %v", records[0].Stub, records[1].Stub)
	}

	bakery, err := store.LocationBySlug(ctx, "sausalito-bakery")
	if err != nil {
		t.Fatalf("LocationBySlug: %v", err)
	}
	if bakery.Name != "Sausalito Bakery" {
		t.Fatalf("unexpected name %q", bakery.Name)
	}
	if !bakery.Stub {
		t.Fatal("expected stub flag to persist for sausalito-bakery")
	}

	woods, err := store.LocationBySlug(ctx, "muir-woods")
	if err != nil {
		t.Fatalf("LocationBySlug: %v", err)
	}
	if woods.Stub {
		t.Fatal("expected muir-woods not to be a stub")
	}
	if len(woods.OfficialURL) != 1 || woods.OfficialURL[0] != "https://www.nps.gov/muwo/" {
		t.Fatalf("unexpected official urls %v", woods.OfficialURL)
	}
	if len(woods.GoogleMapsURL) != 2 || woods.GoogleMapsURL[1] != "https://maps.google.com/?q=Muir+Woods+Visitor+Center" {
		t.Fatalf("unexpected map urls %v", woods.GoogleMapsURL)
	}
	if len(woods.ReviewURL) != 0 {
		t.Fatalf("expected no review urls, got %v", woods.ReviewURL)
	}

	stored, err := store.Days(ctx)
	if err != nil {
		t.Fatalf("Days: %v", err)
	}
	if len(stored) != 1 || len(stored[0].Activities) != 2 {
		t.Fatalf("expected one day with two activities, got %+v", stored)
	}
	first := stored[0].Activities[0]
	if first.Position != 0 || first.TravelMode != "drive" || first.TravelTo != "Muir Woods" {
		t.Fatalf("unexpected first activity %+v", first)
	}
	if len(first.LocationIDs) != 1 || first.LocationIDs[0] != "sausalito-bakery" {
		t.Fatalf("unexpected location ids %v", first.LocationIDs)
	}
	if stored[0].Activities[1].TravelMode != "" {
		t.Fatal("expected empty travel columns without a leg")
	}
}

func TestStoreWrite_RecreatesTables(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, "snapshot_recreate")
	days, locations := sampleData()

	if _, err := store.Write(ctx, days, locations, nil); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if _, err := store.Write(ctx, days, locations[:1], nil); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	records, err := store.Locations(ctx)
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected previous rows to be replaced, got %d", len(records))
	}
}

func TestStoreLocationBySlug_NotFound(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, "snapshot_missing")
	days, locations := sampleData()
	if _, err := store.Write(ctx, days, locations, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, err := store.LocationBySlug(ctx, "nowhere"); !errors.Is(err, snapshot.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := snapshot.Open(context.Background(), "mysql", "dsn"); !errors.Is(err, snapshot.ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}
