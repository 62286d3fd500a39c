package generator

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	CodeDocumentParse    = "DOCUMENT_PARSE_FAILED"
	CodeGazetteerInvalid = "GAZETTEER_INVALID"
	CodeOutputInvalid    = "OUTPUT_INVALID"
)

var (
	// ErrNoDays is reported as a diagnostic when the document has no day sections.
	ErrNoDays = errors.New("generator: document has no day sections")
	errConfig = errors.New("generator: invalid configuration")
)

func documentError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(CodeDocumentParse)
}

func gazetteerError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(CodeGazetteerInvalid)
}

func outputError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(CodeOutputInvalid)
}

// Code returns the text code attached to a categorized pipeline error.
func Code(err error) string {
	var categorized *goerrors.Error
	if errors.As(err, &categorized) {
		return categorized.TextCode
	}
	return ""
}
