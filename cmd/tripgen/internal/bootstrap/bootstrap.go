package bootstrap

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-tripdata/internal/commands"
	"github.com/goliatone/go-tripdata/internal/logging/console"
	"github.com/goliatone/go-tripdata/internal/logging/gologger"
	"github.com/goliatone/go-tripdata/internal/runtimeconfig"
	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

// Options captures the process-level inputs of a CLI run.
type Options struct {
	EnvFile string
	// Lookup resolves environment variables. Defaults to os.LookupEnv.
	Lookup      runtimeconfig.LookupFunc
	LogProvider string
	LogLevel    string
	LogFormat   string
	// LogWriter receives console provider output. Defaults to stderr.
	LogWriter io.Writer
}

// Runtime is the resolved configuration plus the logging stack built from it.
// Logger is scoped to the trip command handlers.
type Runtime struct {
	Config   runtimeconfig.Config
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
}

// Build layers defaults, the env file, the process environment and the
// logging flags, in that order, and constructs the logger provider.
func Build(opts Options) (*Runtime, error) {
	cfg := runtimeconfig.DefaultConfig()
	if err := runtimeconfig.LoadEnv(&cfg, opts.EnvFile, opts.Lookup); err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(opts.LogProvider); v != "" {
		cfg.Logging.Provider = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(opts.LogFormat); v != "" {
		cfg.Logging.Format = v
	}

	provider, err := NewLoggerProvider(cfg.Logging, opts.LogWriter)
	if err != nil {
		return nil, err
	}
	return &Runtime{
		Config:   cfg,
		Provider: provider,
		Logger:   commands.CommandLogger(provider, "trip"),
	}, nil
}

// NewLoggerProvider selects the console or go-logger backend.
func NewLoggerProvider(cfg runtimeconfig.LoggingConfig, w io.Writer) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		opts := console.Options{Writer: w}
		if strings.TrimSpace(cfg.Level) != "" {
			level, ok := console.ParseLevel(cfg.Level)
			if !ok {
				return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingLevelInvalid, cfg.Level)
			}
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}
