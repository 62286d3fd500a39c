// Package smoketest checks that generated outputs exist, decode, and have
// plausible shapes.
package smoketest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-tripdata/internal/emit"
	"github.com/goliatone/go-tripdata/internal/validation"
)

// Check is one named assertion.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Report collects checks in the order they ran. Notes are informational
// lines printed under the checks.
type Report struct {
	Dir    string
	Format string
	Checks []Check
	Notes  []string
}

// Failures counts failed checks.
func (r *Report) Failures() int {
	failed := 0
	for _, check := range r.Checks {
		if !check.Passed {
			failed++
		}
	}
	return failed
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	return r.Failures() == 0
}

func (r *Report) check(ok bool, name string) bool {
	r.Checks = append(r.Checks, Check{Name: name, Passed: ok})
	return ok
}

func (r *Report) fail(name string, err error) {
	r.Checks = append(r.Checks, Check{Name: name, Detail: err.Error()})
}

func (r *Report) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// Options points the checks at an output directory.
type Options struct {
	Dir string
	// Format of the generated files. Empty reads it from the manifest and
	// falls back to JSON.
	Format    string
	Validator *validation.Validator
}

// Run executes every check. The error is reserved for setup failures; check
// failures are recorded in the report.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	validator := opts.Validator
	if validator == nil {
		v, err := validation.Default()
		if err != nil {
			return nil, err
		}
		validator = v
	}

	format := strings.TrimSpace(opts.Format)
	if format == "" {
		format = detectFormat(opts.Dir)
	}
	report := &Report{Dir: opts.Dir, Format: format}

	itineraryName, err := emit.FileName(emit.ItineraryBase, format)
	if err != nil {
		return nil, err
	}
	metaName, err := emit.FileName(emit.TripMetaBase, format)
	if err != nil {
		return nil, err
	}

	itineraryRaw, itineraryErr := os.ReadFile(filepath.Join(opts.Dir, itineraryName))
	report.check(itineraryErr == nil, itineraryName+" exists")
	metaRaw, metaErr := os.ReadFile(filepath.Join(opts.Dir, metaName))
	report.check(metaErr == nil, metaName+" exists")

	if itineraryErr == nil {
		checkItinerary(report, validator, format, itineraryName, itineraryRaw)
	}
	if metaErr == nil {
		checkTripMeta(report, validator, format, metaName, metaRaw)
	}
	return report, nil
}

func detectFormat(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, emit.ManifestFileName))
	if err != nil {
		return emit.FormatJSON
	}
	manifest, err := emit.ParseManifest(data)
	if err != nil || manifest.Format == "" {
		return emit.FormatJSON
	}
	return manifest.Format
}

func decode(format string, raw []byte) (any, []byte, error) {
	body, err := emit.Unwrap(format, raw)
	if err != nil {
		return nil, nil, err
	}
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, nil, err
	}
	return value, body, nil
}

func checkItinerary(report *Report, validator *validation.Validator, format, name string, raw []byte) {
	value, body, err := decode(format, raw)
	if err != nil {
		report.fail("failed to load "+name, err)
		return
	}

	days, isArray := value.([]any)
	report.check(isArray, "itinerary is an array")
	report.check(len(days) > 0, fmt.Sprintf("itinerary has %d days", len(days)))

	var first map[string]any
	if len(days) > 0 {
		first, _ = days[0].(map[string]any)
	}
	_, numeric := first["day"].(float64)
	report.check(numeric, "day has numeric day field")
	_, isString := first["date"].(string)
	report.check(isString, "day has date string")
	_, hasActivities := first["activities"].([]any)
	report.check(hasActivities, "day has activities array")

	if err := validator.ValidateJSON(validation.SchemaItinerary, body); err != nil {
		report.fail("itinerary matches schema", err)
	} else {
		report.check(true, "itinerary matches schema")
	}

	activities := 0
	for _, day := range days {
		if entry, ok := day.(map[string]any); ok {
			if list, ok := entry["activities"].([]any); ok {
				activities += len(list)
			}
		}
	}
	report.note("%d days, %d activities", len(days), activities)
}

func checkTripMeta(report *Report, validator *validation.Validator, format, name string, raw []byte) {
	value, body, err := decode(format, raw)
	if err != nil {
		report.fail("failed to load "+name, err)
		return
	}

	meta, isObject := value.(map[string]any)
	report.check(isObject, "tripMeta is an object")
	title, hasTitle := meta["title"].(string)
	report.check(hasTitle, "tripMeta has title")
	schedule, hasSchedule := meta["dailySchedule"].([]any)
	report.check(hasSchedule, "tripMeta has dailySchedule")
	_, hasFlights := meta["flights"].(map[string]any)
	report.check(hasFlights, "tripMeta has flights object")

	if err := validator.ValidateJSON(validation.SchemaTripMeta, body); err != nil {
		report.fail("tripMeta matches schema", err)
	} else {
		report.check(true, "tripMeta matches schema")
	}

	report.note("%q", title)
	report.note("%d schedule rows", len(schedule))
}
