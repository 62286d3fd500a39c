package validation_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-tripdata/internal/validation"
)

func mustValidator(t *testing.T) *validation.Validator {
	t.Helper()
	v, err := validation.Default()
	if err != nil {
		t.Fatalf("compile schemas: %v", err)
	}
	return v
}

func TestValidateJSON_GazetteerAcceptsUnknownFields(t *testing.T) {
	v := mustValidator(t)
	payload := `{"locations":[{"id":"muir-woods","name":"Muir Woods","type":"park","geo":{"lat":37.89,"lng":-122.57},"curator":"ana"}],"version":2}`

	if err := v.ValidateJSON(validation.SchemaGazetteer, []byte(payload)); err != nil {
		t.Fatalf("expected valid gazetteer, got %v", err)
	}
}

func TestValidateJSON_GazetteerRejectsUnknownType(t *testing.T) {
	v := mustValidator(t)
	payload := `{"locations":[{"id":"x","name":"X","type":"castle"}]}`

	err := v.ValidateJSON(validation.SchemaGazetteer, []byte(payload))
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := validation.Issues(err)
	if len(issues) == 0 || issues[0].Pointer != "/locations/0/type" {
		t.Fatalf("expected issue on /locations/0/type, got %+v", issues)
	}
}

func TestValidateJSON_InvalidJSON(t *testing.T) {
	v := mustValidator(t)
	err := v.ValidateJSON(validation.SchemaTripMeta, []byte(`{"title":`))
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestValidateValue_Itinerary(t *testing.T) {
	v := mustValidator(t)

	valid := []map[string]any{{
		"day": 1, "date": "2026-04-03", "dayOfWeek": "Friday", "title": "Arrival",
		"summary": "", "segmentId": "napa",
		"activities": []map[string]any{{
			"time": "9:00am", "name": "Breakfast", "description": "", "locationIds": []string{},
		}},
	}}
	if err := v.ValidateValue(validation.SchemaItinerary, valid); err != nil {
		t.Fatalf("expected valid itinerary, got %v", err)
	}

	invalid := []map[string]any{{"day": 0, "date": "April 3"}}
	if err := v.ValidateValue(validation.SchemaItinerary, invalid); err == nil {
		t.Fatal("expected invalid itinerary")
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	v := mustValidator(t)
	if err := v.Validate("nope.json", map[string]any{}); !errors.Is(err, validation.ErrSchemaUnknown) {
		t.Fatalf("expected ErrSchemaUnknown, got %v", err)
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	err := &validation.SchemaError{Issues: []validation.Issue{
		{Pointer: "/title", Message: "expected string"},
		{Message: "missing dates"},
	}}
	want := "#/title: expected string; #: missing dates"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatal("expected SchemaError to match ErrSchemaValidation")
	}
}
