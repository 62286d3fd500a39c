// Package validation checks JSON payloads against the embedded gazetteer and
// output schemas.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Embedded schema names.
const (
	SchemaGazetteer = "gazetteer.schema.json"
	SchemaItinerary = "itinerary.schema.json"
	SchemaTripMeta  = "trip-meta.schema.json"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrSchemaUnknown    = errors.New("schema unknown")
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Issue is one leaf failure. Pointer is the JSON pointer of the offending
// value, empty for the document root.
type Issue struct {
	Pointer string
	Message string
}

func (i Issue) String() string {
	pointer := "#" + strings.TrimPrefix(strings.TrimSpace(i.Pointer), "#")
	if i.Message == "" {
		return pointer
	}
	return pointer + ": " + i.Message
}

// SchemaError reports every issue found while validating against Schema.
// It matches ErrSchemaValidation with errors.Is.
type SchemaError struct {
	Schema string
	Issues []Issue
	Cause  error
}

func (e *SchemaError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaValidation
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Issues returns the issues carried by err. Errors that are not schema
// failures become a single root issue.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return leafIssues(validationErr)
	}
	return []Issue{{Message: err.Error()}}
}

// Validator holds the compiled embedded schemas.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

var defaultValidator = sync.OnceValues(NewValidator)

// Default returns a process-wide validator compiled on first use.
func Default() (*Validator, error) {
	return defaultValidator()
}

// NewValidator compiles every schema under schemas/.
func NewValidator() (*Validator, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		data, err := schemaFS.ReadFile(path.Join("schemas", name))
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrSchemaInvalid, name, err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
		}
		names = append(names, name)
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		compiled, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
		}
		v.schemas[name] = compiled
	}
	return v, nil
}

// ValidateJSON decodes data and validates it against the named schema.
func (v *Validator) ValidateJSON(name string, data []byte) error {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return &SchemaError{
			Schema: name,
			Issues: []Issue{{Message: "invalid JSON: " + err.Error()}},
			Cause:  err,
		}
	}
	return v.Validate(name, payload)
}

// Validate checks an already decoded payload against the named schema.
func (v *Validator) Validate(name string, payload any) error {
	compiled, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemaUnknown, name)
	}
	if err := compiled.Validate(payload); err != nil {
		return &SchemaError{Schema: name, Issues: Issues(err), Cause: err}
	}
	return nil
}

// ValidateValue encodes value as JSON and validates the result, so Go
// structs are checked exactly as they will be written.
func (v *Validator) ValidateValue(name string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return &SchemaError{Schema: name, Issues: []Issue{{Message: "encode: " + err.Error()}}, Cause: err}
	}
	return v.ValidateJSON(name, encoded)
}

// leafIssues flattens the cause tree depth first, keeping only leaves.
func leafIssues(root *jsonschema.ValidationError) []Issue {
	issues := []Issue{}
	stack := []*jsonschema.ValidationError{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Pointer: strings.TrimSpace(node.InstanceLocation),
				Message: strings.TrimSpace(node.Message),
			})
			continue
		}
		for i := len(node.Causes) - 1; i >= 0; i-- {
			stack = append(stack, node.Causes[i])
		}
	}
	return issues
}
