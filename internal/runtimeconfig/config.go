package runtimeconfig

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

var (
	ErrDocumentPathRequired   = errors.New("tripdata config: document path is required")
	ErrGazetteerPathRequired  = errors.New("tripdata config: gazetteer path is required")
	ErrOutputDirRequired      = errors.New("tripdata config: output directory is required")
	ErrOutputFormatInvalid    = errors.New("tripdata config: output format is invalid")
	ErrConventionInvalid      = errors.New("tripdata config: document convention is invalid")
	ErrSnapshotDriverInvalid  = errors.New("tripdata config: snapshot driver is invalid")
	ErrSnapshotDSNRequired    = errors.New("tripdata config: snapshot dsn is required when a driver is set")
	ErrLoggingProviderUnknown = errors.New("tripdata config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("tripdata config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("tripdata config: logging format is invalid")
)

// Output formats understood by the emitter.
const (
	FormatJSON       = "json"
	FormatTypeScript = "ts"
)

// Config aggregates everything a generation run needs.
type Config struct {
	Inputs     InputsConfig
	Outputs    OutputsConfig
	Convention ConventionConfig
	Snapshot   SnapshotConfig
	Logging    LoggingConfig
}

// InputsConfig points at the source document and the curated gazetteer.
type InputsConfig struct {
	Document  string
	Gazetteer string
}

// OutputsConfig controls where and how derived records are written.
type OutputsConfig struct {
	Dir      string
	Format   string
	Manifest bool
	// DryRun computes and validates everything but writes nothing.
	DryRun bool
}

// ConventionConfig holds the document-specific knobs of the house format.
type ConventionConfig struct {
	FallbackYear    string
	DefaultSegment  string
	SubgroupMarkers []string
	BaseSegments    map[string]string
	TravelModes     []string
	Sections        SectionLabels
}

// SectionLabels are matched case-insensitively against heading text.
type SectionLabels struct {
	Overview  string
	Itinerary string
	DayByDay  string
	Flights   string
	Lodging   string
}

// SnapshotConfig enables an optional relational copy of the run.
type SnapshotConfig struct {
	Driver string
	DSN    string
}

// Enabled reports whether a snapshot store was configured.
func (s SnapshotConfig) Enabled() bool {
	return strings.TrimSpace(s.Driver) != ""
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings the trip document was written against.
func DefaultConfig() Config {
	return Config{
		Inputs: InputsConfig{
			Document:  "data/full-trip.md",
			Gazetteer: "data/locations.json",
		},
		Outputs: OutputsConfig{
			Dir:      "data",
			Format:   FormatJSON,
			Manifest: true,
		},
		Convention: ConventionConfig{
			FallbackYear:    "2026",
			DefaultSegment:  "napa",
			SubgroupMarkers: []string{"Susan", "Ted", "Dan", "Jen", "Ava"},
			BaseSegments: map[string]string{
				"sfo + muir woods":  "napa",
				"napa / sonoma":     "napa",
				"napa":              "napa",
				"yosemite":          "yosemite",
				"yosemite area":     "yosemite",
				"monterey / carmel": "carmel",
				"carmel / big sur":  "carmel",
				"carmel":            "carmel",
			},
			TravelModes: []string{"drive"},
			Sections: SectionLabels{
				Overview:  "Overview",
				Itinerary: "Trip Itinerary",
				DayByDay:  "Day-by-day",
				Flights:   "flight",
				Lodging:   "lodging",
			},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// ConventionOverrides carries per-document values, typically read from the
// document frontmatter. Empty fields leave the configured value in place.
type ConventionOverrides struct {
	Year            string
	DefaultSegment  string
	SubgroupMarkers []string
	BaseSegments    map[string]string
}

// Apply returns a copy of the convention with overrides layered on top.
// Base segment overrides are merged key by key.
func (c ConventionConfig) Apply(overrides ConventionOverrides) ConventionConfig {
	out := c
	out.SubgroupMarkers = append([]string(nil), c.SubgroupMarkers...)
	out.TravelModes = append([]string(nil), c.TravelModes...)
	out.BaseSegments = maps.Clone(c.BaseSegments)
	if out.BaseSegments == nil {
		out.BaseSegments = map[string]string{}
	}

	if year := strings.TrimSpace(overrides.Year); year != "" {
		out.FallbackYear = year
	}
	if segment := strings.TrimSpace(overrides.DefaultSegment); segment != "" {
		out.DefaultSegment = segment
	}
	if len(overrides.SubgroupMarkers) > 0 {
		out.SubgroupMarkers = append([]string(nil), overrides.SubgroupMarkers...)
	}
	for base, segment := range overrides.BaseSegments {
		out.BaseSegments[strings.ToLower(strings.TrimSpace(base))] = segment
	}
	return out
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// Validate checks the convention values with ozzo rules.
func (c ConventionConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.FallbackYear, validation.Required, validation.Match(yearPattern)),
		validation.Field(&c.DefaultSegment, validation.Required, validation.By(segmentRule)),
		validation.Field(&c.TravelModes, validation.Required, validation.Each(validation.Required)),
		validation.Field(&c.SubgroupMarkers, validation.Each(validation.Required)),
		validation.Field(&c.BaseSegments, validation.By(func(value any) error {
			bases, _ := value.(map[string]string)
			for base, segment := range bases {
				if err := segmentRule(segment); err != nil {
					return fmt.Errorf("base %q: %w", base, err)
				}
			}
			return nil
		})),
		validation.Field(&c.Sections, validation.By(func(value any) error {
			labels, _ := value.(SectionLabels)
			return validation.ValidateStruct(&labels,
				validation.Field(&labels.Overview, validation.Required),
				validation.Field(&labels.Itinerary, validation.Required),
				validation.Field(&labels.DayByDay, validation.Required),
				validation.Field(&labels.Flights, validation.Required),
				validation.Field(&labels.Lodging, validation.Required),
			)
		})),
	)
}

func segmentRule(value any) error {
	segment, _ := value.(string)
	if segment == "" {
		return nil
	}
	if !slug.IsValid(segment) {
		return validation.NewError("tripdata.config.segment_invalid", "segment id must be a valid slug")
	}
	return nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Inputs.Document) == "" {
		return ErrDocumentPathRequired
	}
	if strings.TrimSpace(cfg.Inputs.Gazetteer) == "" {
		return ErrGazetteerPathRequired
	}
	if strings.TrimSpace(cfg.Outputs.Dir) == "" {
		return ErrOutputDirRequired
	}
	if !isSupportedOutputFormat(cfg.Outputs.Format) {
		return fmt.Errorf("%w: %s", ErrOutputFormatInvalid, cfg.Outputs.Format)
	}
	if err := cfg.Convention.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConventionInvalid, err)
	}
	if cfg.Snapshot.Enabled() {
		if !isSupportedSnapshotDriver(cfg.Snapshot.Driver) {
			return fmt.Errorf("%w: %s", ErrSnapshotDriverInvalid, cfg.Snapshot.Driver)
		}
		if strings.TrimSpace(cfg.Snapshot.DSN) == "" {
			return ErrSnapshotDSNRequired
		}
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedOutputFormat(format string) bool {
	switch normalize(format) {
	case FormatJSON, FormatTypeScript:
		return true
	default:
		return false
	}
}

func isSupportedSnapshotDriver(driver string) bool {
	switch normalize(driver) {
	case "sqlite", "sqlite3", "postgres":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
