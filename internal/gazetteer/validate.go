package gazetteer

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-tripdata/internal/domain"
)

// ErrInvalidGazetteer matches every InvalidError through errors.Is.
var ErrInvalidGazetteer = errors.New("gazetteer invalid")

// Issue is one problem found in the gazetteer file.
type Issue struct {
	Location string
	Message  string
}

// InvalidError lists every problem found in the gazetteer file.
type InvalidError struct {
	Path   string
	Issues []Issue
}

func (e *InvalidError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Location == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Location+": "+issue.Message)
	}
	prefix := "gazetteer invalid"
	if e.Path != "" {
		prefix += " (" + e.Path + ")"
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

func (e *InvalidError) Unwrap() error {
	return ErrInvalidGazetteer
}

var locationTypes = func() []any {
	types := domain.LocationTypes()
	out := make([]any, len(types))
	for i, value := range types {
		out[i] = value
	}
	return out
}()

// ValidateLocation applies record level rules.
func ValidateLocation(location domain.Location) error {
	return validation.ValidateStruct(&location,
		validation.Field(&location.ID, validation.Required, validation.By(func(value any) error {
			id, _ := value.(string)
			if !slug.IsValid(id) {
				return validation.NewError("tripdata.gazetteer.id_invalid", "id must be a valid slug")
			}
			return nil
		})),
		validation.Field(&location.Name, validation.Required),
		validation.Field(&location.Type, validation.Required, validation.In(locationTypes...)),
	)
}

// Validate checks every record and the uniqueness of ids. All issues are
// collected before returning.
func Validate(doc *Document) error {
	if doc == nil {
		return &InvalidError{Issues: []Issue{{Message: "document is empty"}}}
	}

	var issues []Issue
	seen := make(map[string]int, len(doc.Locations))
	for i, location := range doc.Locations {
		where := fmt.Sprintf("/locations/%d", i)
		if err := ValidateLocation(location); err != nil {
			var fieldErrs validation.Errors
			if errors.As(err, &fieldErrs) {
				for _, key := range fieldOrder(fieldErrs) {
					issues = append(issues, Issue{Location: where + "/" + key, Message: fieldErrs[key].Error()})
				}
			} else {
				issues = append(issues, Issue{Location: where, Message: err.Error()})
			}
		}
		if location.ID == "" {
			continue
		}
		if first, ok := seen[location.ID]; ok {
			issues = append(issues, Issue{
				Location: where + "/id",
				Message:  fmt.Sprintf("duplicate id %q (first at /locations/%d)", location.ID, first),
			})
			continue
		}
		seen[location.ID] = i
	}

	if len(issues) > 0 {
		return &InvalidError{Issues: issues}
	}
	return nil
}

func fieldOrder(errs validation.Errors) []string {
	keys := make([]string, 0, len(errs))
	for _, key := range []string{"id", "name", "type"} {
		if _, ok := errs[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}
