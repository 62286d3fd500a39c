package gazetteer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-tripdata/internal/logging"
	"github.com/goliatone/go-tripdata/internal/validation"
	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

// Loaded is a gazetteer read from disk together with the raw bytes it came
// from.
type Loaded struct {
	Path     string
	Raw      []byte
	Document *Document
}

// Store reads the gazetteer file. Writing happens through the emitter so the
// gazetteer is replaced together with the generated outputs.
type Store struct {
	path      string
	validator *validation.Validator
	logger    interfaces.Logger
}

// NewStore constructs a Store for path. A nil validator uses the embedded
// schemas.
func NewStore(path string, validator *validation.Validator, logger interfaces.Logger) *Store {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{path: path, validator: validator, logger: logger}
}

// Path returns the gazetteer file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads, schema-checks, decodes and validates the gazetteer.
func (s *Store) Load(ctx context.Context) (*Loaded, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer %s: %w", s.path, err)
	}

	doc, err := s.Parse(raw)
	if err != nil {
		var invalid *InvalidError
		if errors.As(err, &invalid) {
			invalid.Path = s.path
		}
		return nil, err
	}

	s.logger.Debug("gazetteer.loaded", "path", s.path, "locations", len(doc.Locations))
	return &Loaded{Path: s.path, Raw: raw, Document: doc}, nil
}

// Parse schema-checks, decodes and validates raw gazetteer bytes.
func (s *Store) Parse(raw []byte) (*Document, error) {
	validator := s.validator
	if validator == nil {
		v, err := validation.Default()
		if err != nil {
			return nil, err
		}
		validator = v
	}

	if err := validator.ValidateJSON(validation.SchemaGazetteer, raw); err != nil {
		issues := validation.Issues(err)
		out := make([]Issue, 0, len(issues))
		for _, issue := range issues {
			out = append(out, Issue{Location: issue.Pointer, Message: issue.Message})
		}
		return nil, &InvalidError{Issues: out}
	}

	doc, err := Decode(raw)
	if err != nil {
		return nil, &InvalidError{Issues: []Issue{{Message: err.Error()}}}
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
