package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "TRIPGEN_"

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// LoadEnv layers overrides onto cfg. Values from envFile are read first and
// the process environment, resolved through lookup, wins over them. A
// missing envFile is not an error.
func LoadEnv(cfg *Config, envFile string, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	fileValues := map[string]string{}
	if strings.TrimSpace(envFile) != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileValues = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("tripdata config: read env file %s: %w", envFile, err)
		}
	}

	get := func(name string) (string, bool) {
		key := EnvPrefix + name
		if value, ok := lookup(key); ok {
			return value, true
		}
		value, ok := fileValues[key]
		return value, ok
	}

	setString := func(name string, target *string) {
		if value, ok := get(name); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}

	setString("DOCUMENT", &cfg.Inputs.Document)
	setString("GAZETTEER", &cfg.Inputs.Gazetteer)
	setString("OUTPUT_DIR", &cfg.Outputs.Dir)
	setString("FORMAT", &cfg.Outputs.Format)
	setString("FALLBACK_YEAR", &cfg.Convention.FallbackYear)
	setString("DEFAULT_SEGMENT", &cfg.Convention.DefaultSegment)
	setString("SNAPSHOT_DRIVER", &cfg.Snapshot.Driver)
	setString("SNAPSHOT_DSN", &cfg.Snapshot.DSN)
	setString("LOG_PROVIDER", &cfg.Logging.Provider)
	setString("LOG_LEVEL", &cfg.Logging.Level)
	setString("LOG_FORMAT", &cfg.Logging.Format)

	if value, ok := get("SUBGROUP_MARKERS"); ok {
		if markers := SplitList(value); len(markers) > 0 {
			cfg.Convention.SubgroupMarkers = markers
		}
	}
	if value, ok := get("TRAVEL_MODES"); ok {
		if modes := SplitList(value); len(modes) > 0 {
			cfg.Convention.TravelModes = modes
		}
	}
	if value, ok := get("MANIFEST"); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("tripdata config: %sMANIFEST: %w", EnvPrefix, err)
		}
		cfg.Outputs.Manifest = enabled
	}
	return nil
}

// SplitList splits a comma separated list, dropping blank entries.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
