// Package emit encodes the generated outputs and writes them as one set.
package emit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/gazetteer"
	"github.com/goliatone/go-tripdata/internal/logging"
	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

// Options selects the output directory and format.
type Options struct {
	Dir    string
	Format string
	// Source names the document in the TypeScript header.
	Source   string
	Manifest bool
}

// Payload is everything a run writes. Gazetteer is written to
// GazetteerPath; everything else lands in Options.Dir.
type Payload struct {
	Days          []domain.TripDay
	Meta          domain.TripMeta
	Gazetteer     *gazetteer.Document
	GazetteerPath string
	// Manifest, when set and enabled, is completed with the output entries
	// and written last.
	Manifest *Manifest
}

// Emitter turns a payload into artifacts and hands them to a Writer.
type Emitter struct {
	opts   Options
	writer Writer
	logger interfaces.Logger
}

// New constructs an Emitter. A nil writer writes to disk.
func New(opts Options, writer Writer, logger interfaces.Logger) *Emitter {
	if writer == nil {
		writer = NewFileWriter()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	return &Emitter{opts: opts, writer: writer, logger: logger}
}

// Plan encodes every output. Nothing is written.
func (e *Emitter) Plan(payload Payload) ([]Artifact, error) {
	itineraryName, err := FileName(ItineraryBase, e.opts.Format)
	if err != nil {
		return nil, err
	}
	metaName, err := FileName(TripMetaBase, e.opts.Format)
	if err != nil {
		return nil, err
	}

	days := payload.Days
	if days == nil {
		days = []domain.TripDay{}
	}

	var itineraryData, metaData []byte
	switch e.opts.Format {
	case FormatTypeScript:
		itineraryData, err = encodeModule(itineraryModule, e.opts.Source, days)
		if err == nil {
			metaData, err = encodeModule(tripMetaModule, e.opts.Source, payload.Meta)
		}
	default:
		itineraryData, err = encodeJSONFile(days)
		if err == nil {
			metaData, err = encodeJSONFile(payload.Meta)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("emit: encode outputs: %w", err)
	}

	artifacts := []Artifact{
		newArtifact(filepath.Join(e.opts.Dir, itineraryName), CategoryItinerary, itineraryData),
		newArtifact(filepath.Join(e.opts.Dir, metaName), CategoryTripMeta, metaData),
	}

	if payload.Gazetteer != nil && payload.GazetteerPath != "" {
		data, err := gazetteer.Encode(payload.Gazetteer)
		if err != nil {
			return nil, fmt.Errorf("emit: %w", err)
		}
		artifacts = append(artifacts, newArtifact(payload.GazetteerPath, CategoryGazetteer, data))
	}

	if e.opts.Manifest && payload.Manifest != nil {
		manifest := *payload.Manifest
		manifest.Format = e.opts.Format
		manifest.Outputs = nil
		for _, artifact := range artifacts {
			manifest.Outputs = append(manifest.Outputs, ManifestOutput{
				Name:     filepath.Base(artifact.Path),
				Category: artifact.Category,
				Checksum: artifact.Checksum,
			})
		}
		data, err := manifest.marshal()
		if err != nil {
			return nil, fmt.Errorf("emit: encode manifest: %w", err)
		}
		artifacts = append(artifacts, newArtifact(filepath.Join(e.opts.Dir, ManifestFileName), CategoryManifest, data))
	}

	return artifacts, nil
}

// Write commits artifacts through the configured writer.
func (e *Emitter) Write(ctx context.Context, artifacts []Artifact) error {
	if err := e.writer.Commit(ctx, artifacts); err != nil {
		e.logger.Error("emit.write.failed", "error", err)
		return err
	}
	for _, artifact := range artifacts {
		e.logger.Debug("emit.write.completed",
			"path", artifact.Path,
			"category", string(artifact.Category),
			"bytes", len(artifact.Data),
		)
	}
	return nil
}

// Emit plans and writes payload.
func (e *Emitter) Emit(ctx context.Context, payload Payload) ([]Artifact, error) {
	artifacts, err := e.Plan(payload)
	if err != nil {
		return nil, err
	}
	if err := e.Write(ctx, artifacts); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func newArtifact(path string, category Category, data []byte) Artifact {
	sum := sha256.Sum256(data)
	return Artifact{
		Path:     path,
		Category: category,
		Data:     data,
		Checksum: hex.EncodeToString(sum[:]),
	}
}
