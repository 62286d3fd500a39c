package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-tripdata/cmd/tripgen/internal/bootstrap"
	"github.com/goliatone/go-tripdata/internal/commands/tripcmd"
	"github.com/goliatone/go-tripdata/internal/emit"
	"github.com/goliatone/go-tripdata/internal/generator"
	"github.com/goliatone/go-tripdata/internal/runtimeconfig"
	"github.com/goliatone/go-tripdata/pkg/testsupport"
)

type stubService struct {
	calls int
	cfg   runtimeconfig.Config
	opts  generator.BuildOptions
}

func (s *stubService) Build(_ context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	s.calls++
	s.opts = opts
	return &generator.BuildResult{
		Days:       3,
		Activities: 4,
		Stubs:      []string{"hidden-cellar"},
		DryRun:     opts.DryRun,
	}, nil
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateUsesCommandHandler(t *testing.T) {
	original := serviceFactory
	defer func() { serviceFactory = original }()

	svc := &stubService{}
	serviceFactory = func(*bootstrap.Runtime) tripcmd.ServiceFactory {
		return func(cfg runtimeconfig.Config) generator.Service {
			svc.cfg = cfg
			return svc
		}
	}

	out, err := execute(t, "generate",
		"--document", "trips/spring.md",
		"--out", "site/data",
		"--format", "ts",
		"--year", "2027",
		"--no-manifest",
		"--dry-run",
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if svc.calls != 1 {
		t.Fatalf("expected one build, got %d", svc.calls)
	}
	if svc.cfg.Inputs.Document != "trips/spring.md" || svc.cfg.Inputs.Gazetteer != "data/locations.json" {
		t.Fatalf("unexpected inputs %+v", svc.cfg.Inputs)
	}
	if svc.cfg.Outputs.Dir != "site/data" || svc.cfg.Outputs.Format != "ts" || svc.cfg.Outputs.Manifest {
		t.Fatalf("unexpected outputs %+v", svc.cfg.Outputs)
	}
	if svc.cfg.Convention.FallbackYear != "2027" || !svc.opts.DryRun {
		t.Fatalf("expected year and dry run to reach the service")
	}
	for _, want := range []string{"3 days, 4 activities", "stub created: hidden-cellar", "dry run"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary, got:\n%s", want, out)
		}
	}
}

func TestGenerateRejectsInvalidFormat(t *testing.T) {
	original := serviceFactory
	defer func() { serviceFactory = original }()

	svc := &stubService{}
	serviceFactory = func(*bootstrap.Runtime) tripcmd.ServiceFactory {
		return func(runtimeconfig.Config) generator.Service { return svc }
	}

	if _, err := execute(t, "generate", "--format", "yaml"); err == nil {
		t.Fatal("expected invalid format to fail")
	}
	if svc.calls != 0 {
		t.Fatal("service must not run for invalid flags")
	}
}

func TestGenerateThenValidate(t *testing.T) {
	dir := testsupport.CopyFixtures(t, filepath.Join("..", "..", "internal", "generator", "testdata"), "trip.md", "locations.json")
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "generate",
		"--document", filepath.Join(dir, "trip.md"),
		"--gazetteer", filepath.Join(dir, "locations.json"),
		"--out", outDir,
		"--log-level", "error",
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "3 days, 4 activities") {
		t.Fatalf("unexpected summary:\n%s", out)
	}

	var manifest emit.Manifest
	if err := testsupport.LoadJSON(filepath.Join(outDir, emit.ManifestFileName), &manifest); err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if manifest.Counts.Days != 3 || manifest.Format != emit.FormatJSON {
		t.Fatalf("unexpected manifest %+v", manifest)
	}

	out, err = execute(t, "validate", "--dir", outDir)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "All validation checks passed") {
		t.Fatalf("expected passing report, got:\n%s", out)
	}
}

func TestValidateFailsOnEmptyDir(t *testing.T) {
	out, err := execute(t, "validate", "--dir", t.TempDir())
	if !errors.Is(err, tripcmd.ErrChecksFailed) {
		t.Fatalf("expected ErrChecksFailed, got %v", err)
	}
	if !strings.Contains(out, "2 validation error(s) found") {
		t.Fatalf("expected failure summary, got:\n%s", out)
	}
}
