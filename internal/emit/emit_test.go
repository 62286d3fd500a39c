package emit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/emit"
	"github.com/goliatone/go-tripdata/internal/gazetteer"
)

func samplePayload(dir string) emit.Payload {
	return emit.Payload{
		Days: []domain.TripDay{{
			Day:        1,
			Date:       "2026-04-03",
			DayOfWeek:  "Friday",
			Title:      "Arrival & Redwoods",
			SegmentID:  "napa",
			Activities: []domain.Activity{},
		}},
		Meta: domain.TripMeta{Title: "Trip", DailySchedule: []domain.DailyScheduleRow{}, LodgingConfirmations: []domain.LodgingConfirmation{}},
		Gazetteer: &gazetteer.Document{Locations: []domain.Location{{
			ID:   "sfo",
			Name: "San Francisco International Airport",
			Type: domain.LocationType("airport"),
		}}},
		GazetteerPath: filepath.Join(dir, "locations.json"),
		Manifest: &emit.Manifest{
			Document: emit.ManifestSource{Path: "full-trip.md", Checksum: "abc"},
			Stubs:    []string{"zeta", "alpha"},
		},
	}
}

func TestEmit_WritesJSONOutputs(t *testing.T) {
	dir := t.TempDir()
	emitter := emit.New(emit.Options{Dir: dir, Format: emit.FormatJSON, Manifest: true}, nil, nil)

	artifacts, err := emitter.Emit(context.Background(), samplePayload(dir))
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(artifacts) != 4 {
		t.Fatalf("expected 4 artifacts, got %d", len(artifacts))
	}

	data, err := os.ReadFile(filepath.Join(dir, "itinerary.generated.json"))
	if err != nil {
		t.Fatalf("read itinerary: %v", err)
	}
	if !strings.Contains(string(data), `"title": "Arrival & Redwoods"`) {
		t.Fatalf("expected unescaped ampersand and two-space indent, got %s", data)
	}
	if !bytes.HasSuffix(data, []byte("]\n")) {
		t.Fatalf("expected trailing newline, got %q", data[len(data)-3:])
	}

	if _, err := os.Stat(filepath.Join(dir, "locations.json")); err != nil {
		t.Fatalf("expected gazetteer to be written: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tripgen-") && entry.Name() != emit.ManifestFileName {
			t.Fatalf("staged file left behind: %s", entry.Name())
		}
	}
}

func TestEmit_ManifestIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	emitter := emit.New(emit.Options{Dir: dir, Format: emit.FormatJSON, Manifest: true}, nil, nil)

	if _, err := emitter.Emit(context.Background(), samplePayload(dir)); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, emit.ManifestFileName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if _, err := emitter.Emit(context.Background(), samplePayload(dir)); err != nil {
		t.Fatalf("second Emit: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, emit.ManifestFileName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected identical manifests for identical inputs")
	}

	manifest, err := emit.ParseManifest(first)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if manifest.Format != emit.FormatJSON {
		t.Fatalf("unexpected format %q", manifest.Format)
	}
	if len(manifest.Stubs) != 2 || manifest.Stubs[0] != "alpha" {
		t.Fatalf("expected sorted stubs, got %v", manifest.Stubs)
	}
	if len(manifest.Outputs) != 3 || manifest.Outputs[0].Name != "itinerary.generated.json" {
		t.Fatalf("unexpected outputs %+v", manifest.Outputs)
	}
	gaz, ok := manifest.Output(emit.CategoryGazetteer)
	if !ok || gaz.Name != "locations.json" || len(gaz.Checksum) != 64 {
		t.Fatalf("unexpected gazetteer entry %+v", gaz)
	}
}

func TestEmit_TypeScriptModules(t *testing.T) {
	dir := t.TempDir()
	emitter := emit.New(emit.Options{Dir: dir, Format: emit.FormatTypeScript, Source: "full-trip.md"}, nil, nil)

	if _, err := emitter.Emit(context.Background(), samplePayload(dir)); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "itinerary.generated.ts"))
	if err != nil {
		t.Fatalf("read module: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "// AUTO-GENERATED by tripgen") {
		t.Fatalf("missing header: %q", text)
	}
	if !strings.Contains(text, "import type { TripDay } from './types';\n\n") {
		t.Fatalf("missing type import: %q", text)
	}
	if !strings.Contains(text, "export const itinerary: TripDay[] = [") || !strings.HasSuffix(text, "];\n") {
		t.Fatalf("unexpected export shape: %q", text)
	}

	body, err := emit.Unwrap(emit.FormatTypeScript, data)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	var days []domain.TripDay
	if err := json.Unmarshal(body, &days); err != nil {
		t.Fatalf("unwrapped body is not JSON: %v", err)
	}
	if len(days) != 1 || days[0].SegmentID != "napa" {
		t.Fatalf("unexpected decoded days %+v", days)
	}

	meta, err := os.ReadFile(filepath.Join(dir, "trip-meta.generated.ts"))
	if err != nil {
		t.Fatalf("read meta module: %v", err)
	}
	if !strings.Contains(string(meta), "export const tripMeta: TripMeta = {") {
		t.Fatalf("unexpected meta module: %s", meta)
	}
	if _, err := os.Stat(filepath.Join(dir, emit.ManifestFileName)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("manifest should be skipped when disabled, stat err=%v", err)
	}
}

func TestFileWriter_FailureLeavesTargetsUntouched(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "itinerary.generated.json")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("seed blocker: %v", err)
	}

	err := emit.NewFileWriter().Commit(context.Background(), []emit.Artifact{
		{Path: existing, Data: []byte("new")},
		{Path: filepath.Join(blocker, "nested", "out.json"), Data: []byte("x")},
	})
	if err == nil {
		t.Fatal("expected commit to fail")
	}

	data, readErr := os.ReadFile(existing)
	if readErr != nil {
		t.Fatalf("read existing: %v", readErr)
	}
	if string(data) != "old" {
		t.Fatalf("expected existing output untouched, got %q", data)
	}
	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tripgen-") {
			t.Fatalf("staged file left behind: %s", entry.Name())
		}
	}
}

func TestFileName_UnknownFormat(t *testing.T) {
	if _, err := emit.FileName(emit.ItineraryBase, "yaml"); !errors.Is(err, emit.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestNoopWriter_WritesNothing(t *testing.T) {
	dir := t.TempDir()
	emitter := emit.New(emit.Options{Dir: dir, Manifest: true}, emit.NoopWriter(), nil)

	artifacts, err := emitter.Emit(context.Background(), samplePayload(dir))
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(artifacts) == 0 {
		t.Fatal("expected planned artifacts")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, found %d entries", len(entries))
	}
}

func TestFileWriter_RenameFailureRestoresReplacedTargets(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "itinerary.generated.json")
	if err := os.WriteFile(first, []byte("old itinerary"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	fresh := filepath.Join(dir, "trip-meta.generated.json")
	// A non-empty directory at the last target makes its rename fail after
	// the earlier targets were already replaced.
	occupied := filepath.Join(dir, "gazetteer.json")
	if err := os.MkdirAll(filepath.Join(occupied, "keep"), 0o755); err != nil {
		t.Fatalf("seed dir: %v", err)
	}

	err := emit.NewFileWriter().Commit(context.Background(), []emit.Artifact{
		{Path: first, Data: []byte("new itinerary")},
		{Path: fresh, Data: []byte("new meta")},
		{Path: occupied, Data: []byte("new gazetteer")},
	})
	if err == nil {
		t.Fatal("expected commit to fail")
	}

	data, readErr := os.ReadFile(first)
	if readErr != nil {
		t.Fatalf("read first: %v", readErr)
	}
	if string(data) != "old itinerary" {
		t.Fatalf("expected replaced target restored, got %q", data)
	}
	if _, statErr := os.Stat(fresh); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected new target removed on rollback, stat err=%v", statErr)
	}
	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tripgen-") {
			t.Fatalf("staged file left behind: %s", entry.Name())
		}
	}
}

func TestFileWriter_SuccessRemovesBackups(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "itinerary.generated.json")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := emit.NewFileWriter().Commit(context.Background(), []emit.Artifact{
		{Path: target, Data: []byte("new")},
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil || string(data) != "new" {
		t.Fatalf("expected new content, got %q err=%v", data, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the target to remain, got %d entries", len(entries))
	}
}
