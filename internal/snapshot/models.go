package snapshot

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LocationRecord is a gazetteer entry as of the last run.
type LocationRecord struct {
	bun.BaseModel `bun:"table:locations,alias:l"`

	ID            uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Slug          string            `bun:"slug,notnull,unique" json:"slug"`
	Name          string            `bun:"name,notnull" json:"name"`
	Address       string            `bun:"address" json:"address"`
	Type          string            `bun:"type,notnull" json:"type"`
	Lat           float64           `bun:"lat" json:"lat"`
	Lng           float64           `bun:"lng" json:"lng"`
	Notes         string            `bun:"notes" json:"notes"`
	OfficialURL   []string          `bun:"official_url" json:"official_url"`
	GoogleMapsURL []string          `bun:"google_maps_url" json:"google_maps_url"`
	ReviewURL     []string          `bun:"review_url" json:"review_url"`
	Stub          bool              `bun:"stub,notnull" json:"stub"`
	TripParts     []*TripPartRecord `bun:"rel:has-many,join:id=location_id" json:"trip_parts,omitempty"`
}

// TripPartRecord is one visit of a location.
type TripPartRecord struct {
	bun.BaseModel `bun:"table:location_trip_parts,alias:ltp"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	LocationID uuid.UUID `bun:"location_id,notnull,type:uuid" json:"location_id"`
	Day        int       `bun:"day,notnull" json:"day"`
	Date       string    `bun:"date,notnull" json:"date"`
	SegmentID  string    `bun:"segment_id,notnull" json:"segment_id"`
}

// TripDayRecord is one itinerary day.
type TripDayRecord struct {
	bun.BaseModel `bun:"table:trip_days,alias:td"`

	ID         uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Day        int               `bun:"day,notnull,unique" json:"day"`
	Date       string            `bun:"date,notnull" json:"date"`
	DayOfWeek  string            `bun:"day_of_week" json:"day_of_week"`
	Title      string            `bun:"title" json:"title"`
	Summary    string            `bun:"summary" json:"summary"`
	SegmentID  string            `bun:"segment_id,notnull" json:"segment_id"`
	Activities []*ActivityRecord `bun:"rel:has-many,join:id=trip_day_id" json:"activities,omitempty"`
}

// ActivityRecord is one activity of a day. Travel columns are empty when the
// activity has no following leg.
type ActivityRecord struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID             uuid.UUID `bun:",pk,type:uuid" json:"id"`
	TripDayID      uuid.UUID `bun:"trip_day_id,notnull,type:uuid" json:"trip_day_id"`
	Position       int       `bun:"position,notnull" json:"position"`
	Time           string    `bun:"time" json:"time"`
	Name           string    `bun:"name,notnull" json:"name"`
	Description    string    `bun:"description" json:"description"`
	Subgroup       string    `bun:"subgroup" json:"subgroup,omitempty"`
	LocationIDs    []string  `bun:"location_ids" json:"location_ids"`
	TravelMode     string    `bun:"travel_mode" json:"travel_mode,omitempty"`
	TravelDuration string    `bun:"travel_duration" json:"travel_duration,omitempty"`
	TravelFrom     string    `bun:"travel_from" json:"travel_from,omitempty"`
	TravelTo       string    `bun:"travel_to" json:"travel_to,omitempty"`
}

var models = []any{
	(*ActivityRecord)(nil),
	(*TripDayRecord)(nil),
	(*TripPartRecord)(nil),
	(*LocationRecord)(nil),
}
