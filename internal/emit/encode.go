package emit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	FormatJSON       = "json"
	FormatTypeScript = "ts"
)

const (
	ItineraryBase = "itinerary.generated"
	TripMetaBase  = "trip-meta.generated"
)

var (
	ErrUnknownFormat = errors.New("emit: unknown output format")
	ErrModuleShape   = errors.New("emit: generated module has no exported value")
)

const moduleHeader = "// AUTO-GENERATED by tripgen — do not edit.\n" +
	"// Run `tripgen generate` to regenerate from %s.\n\n"

// moduleSpec names the exported binding and its type for a TypeScript module.
type moduleSpec struct {
	Binding string
	Type    string
}

var (
	itineraryModule = moduleSpec{Binding: "itinerary", Type: "TripDay[]"}
	tripMetaModule  = moduleSpec{Binding: "tripMeta", Type: "TripMeta"}
)

// FileName returns the output file name for base in the given format.
func FileName(base, format string) (string, error) {
	switch format {
	case FormatJSON:
		return base + ".json", nil
	case FormatTypeScript:
		return base + ".ts", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// MarshalJSON encodes value with two-space indentation and no HTML escaping.
// The result has no trailing newline.
func MarshalJSON(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func encodeJSONFile(value any) ([]byte, error) {
	data, err := MarshalJSON(value)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeModule(spec moduleSpec, source string, value any) ([]byte, error) {
	data, err := MarshalJSON(value)
	if err != nil {
		return nil, err
	}
	typeName := strings.TrimSuffix(spec.Type, "[]")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, moduleHeader, source)
	fmt.Fprintf(&buf, "import type { %s } from './types';\n\n", typeName)
	fmt.Fprintf(&buf, "export const %s: %s = ", spec.Binding, spec.Type)
	buf.Write(data)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// Unwrap returns the JSON payload of a generated file. TypeScript modules
// are reduced to the literal assigned by their export statement.
func Unwrap(format string, data []byte) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatTypeScript:
		idx := bytes.Index(data, []byte("export const "))
		if idx < 0 {
			return nil, ErrModuleShape
		}
		rest := data[idx:]
		eq := bytes.Index(rest, []byte("= "))
		if eq < 0 {
			return nil, ErrModuleShape
		}
		body := bytes.TrimSpace(rest[eq+2:])
		body = bytes.TrimSuffix(body, []byte(";"))
		return body, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
