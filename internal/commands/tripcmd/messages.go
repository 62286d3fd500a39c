package tripcmd

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-tripdata/internal/emit"
)

const (
	generateMessageType = "tripdata.trip.generate"
	validateMessageType = "tripdata.trip.validate"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// GenerateCommand runs the pipeline once. Empty fields keep the configured
// value.
type GenerateCommand struct {
	Document       string `json:"document"`
	Gazetteer      string `json:"gazetteer"`
	OutputDir      string `json:"output_dir"`
	Format         string `json:"format,omitempty"`
	FallbackYear   string `json:"fallback_year,omitempty"`
	DefaultSegment string `json:"default_segment,omitempty"`
	SnapshotDriver string `json:"snapshot_driver,omitempty"`
	SnapshotDSN    string `json:"snapshot_dsn,omitempty"`
	DryRun         bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (GenerateCommand) Type() string { return generateMessageType }

// Validate checks the paths and the optional overrides.
func (cmd GenerateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Document, validation.Required, validation.By(notBlank("tripdata.trip.generate.document_required", "document is required"))),
		validation.Field(&cmd.Gazetteer, validation.Required, validation.By(notBlank("tripdata.trip.generate.gazetteer_required", "gazetteer is required"))),
		validation.Field(&cmd.OutputDir, validation.Required, validation.By(notBlank("tripdata.trip.generate.output_dir_required", "output directory is required"))),
		validation.Field(&cmd.Format, validation.In(emit.FormatJSON, emit.FormatTypeScript)),
		validation.Field(&cmd.FallbackYear, validation.Match(yearPattern)),
		validation.Field(&cmd.SnapshotDriver, validation.In("sqlite", "sqlite3", "postgres")),
		validation.Field(&cmd.SnapshotDSN, validation.When(strings.TrimSpace(cmd.SnapshotDriver) != "", validation.Required)),
	)
}

// ValidateCommand runs the smoke test against a directory of generated
// outputs.
type ValidateCommand struct {
	Dir    string `json:"dir"`
	Format string `json:"format,omitempty"`
}

// Type implements command.Message.
func (ValidateCommand) Type() string { return validateMessageType }

// Validate ensures the output directory is present.
func (cmd ValidateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Dir, validation.Required, validation.By(notBlank("tripdata.trip.validate.dir_required", "directory is required"))),
		validation.Field(&cmd.Format, validation.In(emit.FormatJSON, emit.FormatTypeScript)),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
