package itinerary_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/gazetteer"
	"github.com/goliatone/go-tripdata/internal/itinerary"
	"github.com/goliatone/go-tripdata/internal/markdown"
	"github.com/goliatone/go-tripdata/internal/patterns"
	"github.com/goliatone/go-tripdata/internal/resolve"
)

func build(t *testing.T, source string, schedule []domain.DailyScheduleRow, locations ...domain.Location) ([]domain.TripDay, error) {
	t.Helper()
	tree := markdown.NewParser(markdown.ParserOptions{}).Parse([]byte(source))
	builder := itinerary.NewBuilder(resolve.New(gazetteer.NewIndex(locations)), itinerary.Options{
		Year:            "2026",
		DefaultSegment:  "napa",
		SubgroupMarkers: []string{"Susan", "Ted", "Dan", "Jen", "Ava"},
		TravelModes:     []string{"drive"},
	}, nil)
	return builder.Build(tree, tree.Blocks, schedule)
}

func lines(values ...string) string {
	return strings.Join(values, "\n\n") + "\n"
}

func TestBuild_AttachesTravelToPrecedingActivity(t *testing.T) {
	days, err := build(t, lines(
		"## Fri Apr 3 — Arrival",
		"**9:00am — Breakfast**",
		"Eggs at the inn.",
		"*Travel (drive): ~45 min — Hotel → Trailhead*",
		"**10:00am — Hike**",
	), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	activities := days[0].Activities
	if len(activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(activities))
	}
	want := &domain.TravelLeg{Mode: "drive", Duration: "~45 min", From: "Hotel", To: "Trailhead"}
	if !reflect.DeepEqual(activities[0].TravelAfter, want) {
		t.Fatalf("unexpected travel leg %+v", activities[0].TravelAfter)
	}
	if activities[0].Description != "Eggs at the inn." {
		t.Fatalf("unexpected description %q", activities[0].Description)
	}
	if activities[1].TravelAfter != nil {
		t.Fatalf("expected no travel on second activity, got %+v", activities[1].TravelAfter)
	}
}

func TestBuild_DayFieldsAndSummary(t *testing.T) {
	days, err := build(t, lines(
		"## Fri Apr 3 — Arrival + Redwoods",
		"Land and head north.",
		"- a list is not summary",
		"Pack layers.",
		"**10:45am–12:15pm — Lunch (Susan, Ted)**",
		"**Evening — Dinner (by the pool)**",
	), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	day := days[0]
	if day.Day != 1 || day.Date != "2026-04-03" || day.DayOfWeek != "Friday" || day.Title != "Arrival + Redwoods" {
		t.Fatalf("unexpected day header %+v", day)
	}
	if day.Summary != "Land and head north. Pack layers." {
		t.Fatalf("unexpected summary %q", day.Summary)
	}
	if len(day.Activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(day.Activities))
	}
	lunch, dinner := day.Activities[0], day.Activities[1]
	if lunch.Time != "10:45am–12:15pm" || lunch.Name != "Lunch" || lunch.Subgroup != "Susan, Ted" {
		t.Fatalf("unexpected lunch %+v", lunch)
	}
	if dinner.Name != "Dinner (by the pool)" || dinner.Subgroup != "" {
		t.Fatalf("unexpected dinner %+v", dinner)
	}
	if lunch.LocationIDs == nil {
		t.Fatal("expected non-nil location ids")
	}
}

func TestBuild_SegmentsFromScheduleWithDefault(t *testing.T) {
	schedule := []domain.DailyScheduleRow{{SegmentID: "napa"}, {SegmentID: "yosemite"}}
	days, err := build(t, lines(
		"## Fri Apr 3 — One",
		"## Sat Apr 4 — Two",
		"## Sun Apr 5 — Three",
	), schedule)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var got []string
	for _, day := range days {
		got = append(got, day.SegmentID)
		if day.Activities == nil {
			t.Fatalf("day %d: expected empty, non-nil activities", day.Day)
		}
	}
	if !reflect.DeepEqual(got, []string{"napa", "yosemite", "napa"}) {
		t.Fatalf("unexpected segments %v", got)
	}
}

func TestBuild_DropsTravelWithoutOpenActivity(t *testing.T) {
	days, err := build(t, lines(
		"## Fri Apr 3 — Arrival",
		"*Travel (drive): ~10 min — Airport → Hotel*",
		"**9:00am — Breakfast**",
		"*Travel (drive): ~45 min — Hotel → Trailhead*",
		"*Travel (drive): ~5 min — Trailhead → Lot*",
		"Afterwards we rest.",
	), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	day := days[0]
	if len(day.Activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(day.Activities))
	}
	if leg := day.Activities[0].TravelAfter; leg == nil || leg.To != "Trailhead" {
		t.Fatalf("expected the first travel leg after breakfast, got %+v", leg)
	}
	if day.Summary != "Afterwards we rest." {
		t.Fatalf("expected trailing paragraph in summary, got %q", day.Summary)
	}
}

func TestBuild_NonDriveTravelIsDescription(t *testing.T) {
	days, err := build(t, lines(
		"## Fri Apr 3 — Arrival",
		"**9:00am — Ferry**",
		"*Travel (ferry): ~30 min — Pier → Island*",
	), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	activity := days[0].Activities[0]
	if activity.TravelAfter != nil || activity.Description != "Travel (ferry): ~30 min — Pier → Island" {
		t.Fatalf("expected ferry line as description, got %+v", activity)
	}
}

func TestBuild_ResolvesLocations(t *testing.T) {
	days, err := build(t, lines(
		"## Fri Apr 3 — Arrival",
		"**1:00pm — Muir Woods National Monument**",
		"Walk under the redwoods, then coffee at **Sausalito Bakery**.",
	), nil,
		domain.Location{ID: "muir-woods", Name: "Muir Woods National Monument"},
		domain.Location{ID: "sausalito-bakery", Name: "Sausalito Bakery"},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := days[0].Activities[0].LocationIDs
	if !reflect.DeepEqual(got, []string{"sausalito-bakery", "muir-woods"}) {
		t.Fatalf("unexpected ids %v", got)
	}
}

func TestBuild_InvalidHeadingIsFatal(t *testing.T) {
	_, err := build(t, lines(
		"## Fri Apr 3 — Arrival",
		"## Someday — Later",
	), nil)
	if !errors.Is(err, patterns.ErrInvalidDayHeading) {
		t.Fatalf("expected ErrInvalidDayHeading, got %v", err)
	}
	if !strings.Contains(err.Error(), "day 2") {
		t.Fatalf("expected day number in error, got %v", err)
	}
}
