package gazetteer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/goliatone/go-tripdata/internal/domain"
)

// Document is the gazetteer file: the location list plus any envelope keys
// the pipeline does not own.
type Document struct {
	Locations []domain.Location
	Extra     map[string]json.RawMessage
}

var locationKeys = []string{
	"id", "name", "address", "geo", "type", "notes", "images",
	"official_url", "google_maps_url", "review_url", "trip_parts",
}

// Decode parses gazetteer JSON. Unknown keys on the envelope and on each
// record are kept in Extra.
func Decode(data []byte) (*Document, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode gazetteer: %w", err)
	}

	var rawLocations []json.RawMessage
	if raw, ok := envelope["locations"]; ok {
		if err := json.Unmarshal(raw, &rawLocations); err != nil {
			return nil, fmt.Errorf("decode gazetteer locations: %w", err)
		}
	}
	delete(envelope, "locations")

	doc := &Document{
		Locations: make([]domain.Location, 0, len(rawLocations)),
		Extra:     envelope,
	}
	for i, raw := range rawLocations {
		location, err := decodeLocation(raw)
		if err != nil {
			return nil, fmt.Errorf("decode gazetteer location %d: %w", i, err)
		}
		doc.Locations = append(doc.Locations, location)
	}
	return doc, nil
}

func decodeLocation(raw json.RawMessage) (domain.Location, error) {
	var location domain.Location
	if err := json.Unmarshal(raw, &location); err != nil {
		return domain.Location{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.Location{}, err
	}
	for _, key := range locationKeys {
		delete(fields, key)
	}
	if len(fields) > 0 {
		location.Extra = fields
	}
	return withEmptyLists(location), nil
}

// withEmptyLists replaces nil slices so they encode as [].
func withEmptyLists(location domain.Location) domain.Location {
	if location.Images == nil {
		location.Images = []string{}
	}
	if location.OfficialURL == nil {
		location.OfficialURL = []string{}
	}
	if location.GoogleMapsURL == nil {
		location.GoogleMapsURL = []string{}
	}
	if location.ReviewURL == nil {
		location.ReviewURL = []string{}
	}
	if location.TripParts == nil {
		location.TripParts = []domain.TripPart{}
	}
	return location
}

// Encode renders the document as 2-space indented JSON with a trailing
// newline. Known record fields come first in their canonical order, unknown
// fields follow sorted by key.
func Encode(doc *Document) ([]byte, error) {
	if doc == nil {
		doc = &Document{}
	}

	var compact bytes.Buffer
	compact.WriteString(`{"locations":[`)
	for i, location := range doc.Locations {
		if i > 0 {
			compact.WriteByte(',')
		}
		encoded, err := encodeLocation(location)
		if err != nil {
			return nil, fmt.Errorf("encode gazetteer location %q: %w", location.ID, err)
		}
		compact.Write(encoded)
	}
	compact.WriteByte(']')
	if err := writeExtra(&compact, doc.Extra); err != nil {
		return nil, fmt.Errorf("encode gazetteer envelope: %w", err)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent gazetteer: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func encodeLocation(location domain.Location) ([]byte, error) {
	encoded, err := marshal(withEmptyLists(location))
	if err != nil {
		return nil, err
	}
	if len(location.Extra) == 0 {
		return encoded, nil
	}

	var buf bytes.Buffer
	buf.Write(encoded[:len(encoded)-1])
	if err := writeExtra(&buf, location.Extra); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeExtra(buf *bytes.Buffer, extra map[string]json.RawMessage) error {
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		name, err := marshal(key)
		if err != nil {
			return err
		}
		if !json.Valid(extra[key]) {
			return fmt.Errorf("field %q holds invalid JSON", key)
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[key])
	}
	return nil
}

// marshal encodes without HTML escaping so names such as "Inn & Spa" stay
// readable in the curated file.
func marshal(value any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
