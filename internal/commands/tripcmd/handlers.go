// Package tripcmd exposes the trip pipeline as go-command handlers.
package tripcmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-tripdata/internal/commands"
	"github.com/goliatone/go-tripdata/internal/generator"
	"github.com/goliatone/go-tripdata/internal/logging"
	"github.com/goliatone/go-tripdata/internal/runtimeconfig"
	"github.com/goliatone/go-tripdata/internal/smoketest"
	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

const (
	generateOperation = "trip.generate"
	validateOperation = "trip.validate"
)

// ErrChecksFailed is returned when the smoke test recorded failures.
var ErrChecksFailed = errors.New("trip command: validation checks failed")

var (
	_ command.Commander[GenerateCommand] = (*GenerateHandler)(nil)
	_ command.Commander[ValidateCommand] = (*ValidateHandler)(nil)
)

// ServiceFactory builds a generator for the effective configuration of one
// command.
type ServiceFactory func(cfg runtimeconfig.Config) generator.Service

// GenerateHandler runs the generator with the command's overrides layered
// on a base configuration.
type GenerateHandler struct {
	inner *commands.Handler[GenerateCommand]
}

// NewGenerateHandler creates a handler bound to base. onResult, when set,
// receives every successful build result.
func NewGenerateHandler(base runtimeconfig.Config, factory ServiceFactory, logger interfaces.Logger, onResult func(*generator.BuildResult), opts ...commands.HandlerOption[GenerateCommand]) *GenerateHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}
	if factory == nil {
		factory = func(cfg runtimeconfig.Config) generator.Service {
			return generator.NewService(cfg, generator.Dependencies{})
		}
	}

	exec := func(ctx context.Context, msg GenerateCommand) error {
		cfg := ApplyGenerate(base, msg)
		result, err := factory(cfg).Build(ctx, generator.BuildOptions{DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"days":       result.Days,
			"activities": result.Activities,
			"stubs":      len(result.Stubs),
			"orphans":    len(result.Orphans),
			"dry_run":    result.DryRun,
		}).Info("trip.command.generate.completed")
		if onResult != nil {
			onResult(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[GenerateCommand]{
		commands.WithLogger[GenerateCommand](baseLogger),
		commands.WithOperation[GenerateCommand](generateOperation),
		commands.WithMessageFields(func(msg GenerateCommand) map[string]any {
			fields := map[string]any{
				"document":  msg.Document,
				"gazetteer": msg.Gazetteer,
			}
			if msg.Format != "" {
				fields["format"] = msg.Format
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[GenerateCommand].
func (h *GenerateHandler) Execute(ctx context.Context, msg GenerateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ApplyGenerate layers the non-empty command fields over base.
func ApplyGenerate(base runtimeconfig.Config, msg GenerateCommand) runtimeconfig.Config {
	cfg := base
	cfg.Convention = base.Convention.Apply(runtimeconfig.ConventionOverrides{
		Year:           msg.FallbackYear,
		DefaultSegment: msg.DefaultSegment,
	})
	if v := strings.TrimSpace(msg.Document); v != "" {
		cfg.Inputs.Document = v
	}
	if v := strings.TrimSpace(msg.Gazetteer); v != "" {
		cfg.Inputs.Gazetteer = v
	}
	if v := strings.TrimSpace(msg.OutputDir); v != "" {
		cfg.Outputs.Dir = v
	}
	if v := strings.TrimSpace(msg.Format); v != "" {
		cfg.Outputs.Format = v
	}
	if v := strings.TrimSpace(msg.SnapshotDriver); v != "" {
		cfg.Snapshot.Driver = v
		cfg.Snapshot.DSN = msg.SnapshotDSN
	}
	if msg.DryRun {
		cfg.Outputs.DryRun = true
	}
	return cfg
}

// ValidateHandler runs the smoke test.
type ValidateHandler struct {
	inner *commands.Handler[ValidateCommand]
}

// NewValidateHandler creates a smoke test handler. onReport, when set,
// receives the report whether or not checks passed.
func NewValidateHandler(logger interfaces.Logger, onReport func(*smoketest.Report), opts ...commands.HandlerOption[ValidateCommand]) *ValidateHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ValidateCommand) error {
		report, err := smoketest.Run(ctx, smoketest.Options{Dir: msg.Dir, Format: msg.Format})
		if err != nil {
			return err
		}
		if onReport != nil {
			onReport(report)
		}
		if failures := report.Failures(); failures > 0 {
			baseLogger.Warn("trip.command.validate.failed", "failures", failures, "dir", msg.Dir)
			return ErrChecksFailed
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateCommand]{
		commands.WithLogger[ValidateCommand](baseLogger),
		commands.WithOperation[ValidateCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateCommand) map[string]any {
			return map[string]any{"dir": msg.Dir}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ValidateCommand].
func (h *ValidateHandler) Execute(ctx context.Context, msg ValidateCommand) error {
	return h.inner.Execute(ctx, msg)
}
