package emit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Category classifies an artifact for logging and the manifest.
type Category string

const (
	CategoryItinerary Category = "itinerary"
	CategoryTripMeta  Category = "trip_meta"
	CategoryGazetteer Category = "gazetteer"
	CategoryManifest  Category = "manifest"
)

// Artifact is one encoded output file.
type Artifact struct {
	Path     string
	Category Category
	Data     []byte
	Checksum string
}

// Writer commits a set of artifacts.
type Writer interface {
	Commit(ctx context.Context, artifacts []Artifact) error
}

// NewFileWriter returns a Writer that stages every artifact as a temp file
// beside its target and renames the whole set once all of them were
// written. Existing targets are moved aside during the rename step and put
// back if any rename fails, so a failed commit leaves the previous set.
func NewFileWriter() Writer {
	return fileWriter{}
}

// NoopWriter discards artifacts. It backs dry runs.
func NoopWriter() Writer {
	return noopWriter{}
}

type fileWriter struct{}

type staged struct {
	temp   string
	target string
	backup string
}

func (fileWriter) Commit(ctx context.Context, artifacts []Artifact) (err error) {
	var pending []staged
	defer func() {
		if err == nil {
			return
		}
		for _, entry := range pending {
			_ = os.Remove(entry.temp)
		}
	}()

	for _, artifact := range artifacts {
		if err = ctx.Err(); err != nil {
			return err
		}
		if strings.TrimSpace(artifact.Path) == "" {
			return errors.New("emit: write requires path")
		}
		var temp string
		temp, err = stage(artifact)
		if err != nil {
			return err
		}
		pending = append(pending, staged{temp: temp, target: artifact.Path})
	}

	if err = ctx.Err(); err != nil {
		return err
	}
	for i := range pending {
		if err = swap(&pending[i]); err != nil {
			rollback(pending[:i])
			pending = pending[i:]
			return err
		}
	}
	for _, entry := range pending {
		if entry.backup != "" {
			_ = os.Remove(entry.backup)
		}
	}
	return nil
}

// swap moves an existing regular file aside and renames the staged temp
// into its place. The previous file is put back when the rename fails.
func swap(entry *staged) error {
	if info, err := os.Lstat(entry.target); err == nil && info.Mode().IsRegular() {
		backup := entry.temp + ".bak"
		if err := os.Rename(entry.target, backup); err != nil {
			return fmt.Errorf("emit: backup %s: %w", entry.target, err)
		}
		entry.backup = backup
	}
	if err := os.Rename(entry.temp, entry.target); err != nil {
		if entry.backup != "" {
			_ = os.Rename(entry.backup, entry.target)
			entry.backup = ""
		}
		return fmt.Errorf("emit: rename %s: %w", entry.target, err)
	}
	return nil
}

// rollback restores targets that were already replaced, newest first.
func rollback(done []staged) {
	for i := len(done) - 1; i >= 0; i-- {
		entry := done[i]
		if entry.backup != "" {
			_ = os.Rename(entry.backup, entry.target)
			continue
		}
		_ = os.Remove(entry.target)
	}
}

func stage(artifact Artifact) (string, error) {
	dir := filepath.Dir(artifact.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("emit: ensure dir %s: %w", dir, err)
	}
	file, err := os.CreateTemp(dir, ".tripgen-*")
	if err != nil {
		return "", fmt.Errorf("emit: stage %s: %w", artifact.Path, err)
	}
	name := file.Name()
	if _, err := file.Write(artifact.Data); err != nil {
		file.Close()
		os.Remove(name)
		return "", fmt.Errorf("emit: stage %s: %w", artifact.Path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("emit: stage %s: %w", artifact.Path, err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("emit: stage %s: %w", artifact.Path, err)
	}
	return name, nil
}

type noopWriter struct{}

func (noopWriter) Commit(context.Context, []Artifact) error { return nil }
