package domain

import "encoding/json"

// LocationType tags a gazetteer entry with one of a small closed set of
// categories.
type LocationType string

const (
	LocationAirport    LocationType = "airport"
	LocationLodging    LocationType = "lodging"
	LocationRestaurant LocationType = "restaurant"
	LocationPark       LocationType = "park"
	LocationAttraction LocationType = "attraction"
	LocationTrailhead  LocationType = "trailhead"
	LocationOther      LocationType = "other"
)

// LocationTypes lists every accepted category in declaration order.
func LocationTypes() []LocationType {
	return []LocationType{
		LocationAirport,
		LocationLodging,
		LocationRestaurant,
		LocationPark,
		LocationAttraction,
		LocationTrailhead,
		LocationOther,
	}
}

// GeoPoint is a WGS84 coordinate. The zero value marks an unplaced stub.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether the point is the (0,0) stub sentinel.
func (g GeoPoint) IsZero() bool {
	return g.Lat == 0 && g.Lng == 0
}

// TripPart records one day-level visit of a location.
type TripPart struct {
	Day       int    `json:"day"`
	Date      string `json:"date"`
	SegmentID string `json:"segment_id"`
}

// Location is a curated gazetteer entry. TripParts is owned by the
// synchronizer; every other field belongs to curators.
type Location struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Address       string       `json:"address"`
	Geo           GeoPoint     `json:"geo"`
	Type          LocationType `json:"type"`
	Notes         string       `json:"notes"`
	Images        []string     `json:"images"`
	OfficialURL   []string     `json:"official_url"`
	GoogleMapsURL []string     `json:"google_maps_url"`
	ReviewURL     []string     `json:"review_url"`
	TripParts     []TripPart   `json:"trip_parts"`

	// Extra keeps fields the pipeline does not know about so they survive a
	// read-modify-write cycle.
	Extra map[string]json.RawMessage `json:"-"`
}

// Clone returns a deep copy of the location.
func (l Location) Clone() Location {
	out := l
	out.Images = cloneStrings(l.Images)
	out.OfficialURL = cloneStrings(l.OfficialURL)
	out.GoogleMapsURL = cloneStrings(l.GoogleMapsURL)
	out.ReviewURL = cloneStrings(l.ReviewURL)
	if l.TripParts != nil {
		out.TripParts = append([]TripPart(nil), l.TripParts...)
	}
	if l.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(l.Extra))
		for key, value := range l.Extra {
			out.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}

// TravelLeg describes the transit that follows an activity.
type TravelLeg struct {
	Mode     string `json:"mode"`
	Duration string `json:"duration"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// Activity is one scheduled item within a day.
type Activity struct {
	Time        string     `json:"time"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	LocationIDs []string   `json:"locationIds"`
	Subgroup    string     `json:"subgroup,omitempty"`
	TravelAfter *TravelLeg `json:"travelAfter,omitempty"`
}

// TripDay is a single itinerary day. Day numbers are 1-based and follow
// document order.
type TripDay struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	DayOfWeek  string     `json:"dayOfWeek"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	SegmentID  string     `json:"segmentId"`
	Activities []Activity `json:"activities"`
}

// Flight captures one leg of the flight pair.
type Flight struct {
	Number    string `json:"number"`
	Date      string `json:"date"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

// FlightInfo groups the outbound and return flights.
type FlightInfo struct {
	Airline      string `json:"airline"`
	Confirmation string `json:"confirmation"`
	Outbound     Flight `json:"outbound"`
	Return       Flight `json:"return"`
}

// DailyScheduleRow is one body row of the daily schedule table.
type DailyScheduleRow struct {
	Date      string `json:"date"`
	Base      string `json:"base"`
	Logistics string `json:"logistics"`
	SegmentID string `json:"segmentId"`
}

// LodgingConfirmation is one lodging block.
type LodgingConfirmation struct {
	Name          string   `json:"name"`
	Dates         string   `json:"dates"`
	Address       string   `json:"address"`
	Confirmations []string `json:"confirmations"`
}

// TripMeta carries whole-trip metadata.
type TripMeta struct {
	Title                string                `json:"title"`
	Subtitle             string                `json:"subtitle"`
	Overview             string                `json:"overview"`
	Dates                string                `json:"dates"`
	Duration             string                `json:"duration"`
	Flights              FlightInfo            `json:"flights"`
	DailySchedule        []DailyScheduleRow    `json:"dailySchedule"`
	LodgingConfirmations []LodgingConfirmation `json:"lodgingConfirmations"`
}

// ActivityCount totals activities across days.
func ActivityCount(days []TripDay) int {
	total := 0
	for _, day := range days {
		total += len(day.Activities)
	}
	return total
}
