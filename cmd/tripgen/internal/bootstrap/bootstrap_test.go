package bootstrap

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-tripdata/internal/runtimeconfig"
)

func lookupFrom(values map[string]string) runtimeconfig.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestBuildLayersEnvAndFlags(t *testing.T) {
	var logs bytes.Buffer
	rt, err := Build(Options{
		EnvFile: filepath.Join(t.TempDir(), "missing.env"),
		Lookup: lookupFrom(map[string]string{
			"TRIPGEN_DOCUMENT":  "trips/spring.md",
			"TRIPGEN_LOG_LEVEL": "error",
		}),
		LogLevel:  "debug",
		LogWriter: &logs,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rt.Config.Inputs.Document != "trips/spring.md" {
		t.Fatalf("expected env document, got %q", rt.Config.Inputs.Document)
	}
	if rt.Config.Logging.Level != "debug" {
		t.Fatalf("expected flag level to win, got %q", rt.Config.Logging.Level)
	}

	rt.Logger.Debug("bootstrap.ready")
	if !strings.Contains(logs.String(), "bootstrap.ready") {
		t.Fatalf("expected debug entry in console output, got %q", logs.String())
	}
}

func TestNewLoggerProviderRejectsUnknownProvider(t *testing.T) {
	_, err := NewLoggerProvider(runtimeconfig.LoggingConfig{Provider: "syslog"}, nil)
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}

func TestNewLoggerProviderRejectsUnknownLevel(t *testing.T) {
	_, err := NewLoggerProvider(runtimeconfig.LoggingConfig{Provider: "console", Level: "loud"}, nil)
	if !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected invalid level error, got %v", err)
	}
}

func TestNewLoggerProviderGoLogger(t *testing.T) {
	provider, err := NewLoggerProvider(runtimeconfig.LoggingConfig{Provider: "gologger", Format: "console"}, nil)
	if err != nil {
		t.Fatalf("NewLoggerProvider: %v", err)
	}
	if provider.GetLogger("tripdata.commands.trip") == nil {
		t.Fatal("expected a logger")
	}
}
