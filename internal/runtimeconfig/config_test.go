package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-tripdata/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresInputs(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Inputs.Document = " "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDocumentPathRequired) {
		t.Fatalf("expected ErrDocumentPathRequired, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Inputs.Gazetteer = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrGazetteerPathRequired) {
		t.Fatalf("expected ErrGazetteerPathRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Outputs.Format = "yaml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrOutputFormatInvalid) {
		t.Fatalf("expected ErrOutputFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidConvention(t *testing.T) {
	cases := map[string]func(*runtimeconfig.Config){
		"year":    func(cfg *runtimeconfig.Config) { cfg.Convention.FallbackYear = "26" },
		"segment": func(cfg *runtimeconfig.Config) { cfg.Convention.DefaultSegment = "Big Sur" },
		"modes":   func(cfg *runtimeconfig.Config) { cfg.Convention.TravelModes = nil },
		"base": func(cfg *runtimeconfig.Config) {
			cfg.Convention.BaseSegments["tahoe"] = "Lake Tahoe"
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrConventionInvalid) {
				t.Fatalf("expected ErrConventionInvalid, got %v", err)
			}
		})
	}
}

func TestConfigValidate_SnapshotRequiresDSN(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Snapshot.Driver = "sqlite"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrSnapshotDSNRequired) {
		t.Fatalf("expected ErrSnapshotDSNRequired, got %v", err)
	}

	cfg.Snapshot.Driver = "mysql"
	cfg.Snapshot.DSN = "root@/trip"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrSnapshotDriverInvalid) {
		t.Fatalf("expected ErrSnapshotDriverInvalid, got %v", err)
	}
}

func TestConfigValidate_Logging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestConventionApply_LayersOverrides(t *testing.T) {
	base := runtimeconfig.DefaultConfig().Convention

	got := base.Apply(runtimeconfig.ConventionOverrides{
		Year:            "2027",
		SubgroupMarkers: []string{"Maya"},
		BaseSegments:    map[string]string{" Lake Tahoe ": "tahoe"},
	})

	if got.FallbackYear != "2027" {
		t.Fatalf("expected year override, got %q", got.FallbackYear)
	}
	if got.DefaultSegment != "napa" {
		t.Fatalf("expected default segment to be kept, got %q", got.DefaultSegment)
	}
	if len(got.SubgroupMarkers) != 1 || got.SubgroupMarkers[0] != "Maya" {
		t.Fatalf("expected marker override, got %v", got.SubgroupMarkers)
	}
	if got.BaseSegments["lake tahoe"] != "tahoe" || got.BaseSegments["yosemite"] != "yosemite" {
		t.Fatalf("expected merged base segments, got %v", got.BaseSegments)
	}
	if _, leaked := base.BaseSegments["lake tahoe"]; leaked {
		t.Fatal("Apply mutated the receiver's base segments")
	}
}

func TestLoadEnv_FileThenProcess(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "TRIPGEN_DOCUMENT=trip/full.md\nTRIPGEN_FORMAT=ts\nTRIPGEN_SUBGROUP_MARKERS=Ann, Bo ,\nTRIPGEN_MANIFEST=false\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	env := map[string]string{"TRIPGEN_FORMAT": "json", "TRIPGEN_LOG_LEVEL": "debug"}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	cfg := runtimeconfig.DefaultConfig()
	if err := runtimeconfig.LoadEnv(&cfg, envFile, lookup); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	if cfg.Inputs.Document != "trip/full.md" {
		t.Fatalf("expected document from env file, got %q", cfg.Inputs.Document)
	}
	if cfg.Outputs.Format != "json" {
		t.Fatalf("expected process env to win, got %q", cfg.Outputs.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected log level override, got %q", cfg.Logging.Level)
	}
	if len(cfg.Convention.SubgroupMarkers) != 2 || cfg.Convention.SubgroupMarkers[1] != "Bo" {
		t.Fatalf("unexpected markers %v", cfg.Convention.SubgroupMarkers)
	}
	if cfg.Outputs.Manifest {
		t.Fatal("expected manifest disabled")
	}
}

func TestLoadEnv_MissingFileIsIgnored(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	lookup := func(string) (string, bool) { return "", false }

	if err := runtimeconfig.LoadEnv(&cfg, filepath.Join(t.TempDir(), "absent.env"), lookup); err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
}

func TestLoadEnv_InvalidBool(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	lookup := func(key string) (string, bool) {
		if key == "TRIPGEN_MANIFEST" {
			return "sometimes", true
		}
		return "", false
	}
	if err := runtimeconfig.LoadEnv(&cfg, "", lookup); err == nil {
		t.Fatal("expected error for invalid boolean")
	}
}
