package cloudglue

import "fmt"

// Operator compares a criterion path against its value.
type Operator string

// Operators accepted by the API.
const (
	OperatorEqual       Operator = "Equal"
	OperatorNotEqual    Operator = "NotEqual"
	OperatorIn          Operator = "In"
	OperatorContainsAny Operator = "ContainsAny"
	OperatorLessThan    Operator = "LessThan"
	OperatorGreaterThan Operator = "GreaterThan"
)

// Criterion is one path/operator/value comparison. Exactly one of ValueText
// and ValueTextArray must be set.
type Criterion struct {
	Path           string   `json:"path"`
	Operator       Operator `json:"operator"`
	ValueText      string   `json:"valueText,omitempty"`
	ValueTextArray []string `json:"valueTextArray,omitempty"`
}

// Filter constrains which videos a completion or response searches over.
// Criteria are combined conjunctively by the server; the client only
// assembles and validates the shape.
type Filter struct {
	// Metadata criteria match against user-supplied file metadata.
	Metadata []Criterion `json:"metadata,omitempty"`

	// VideoInfo criteria match against intrinsic video properties
	// (e.g., duration_seconds).
	VideoInfo []Criterion `json:"video_info,omitempty"`

	// File criteria match against file attributes (e.g., filename,
	// created_at).
	File []Criterion `json:"file,omitempty"`
}

// validate checks the filter's shape. Values are never evaluated
// client-side.
func (f *Filter) validate() error {
	if f == nil {
		return nil
	}
	for _, group := range [][]Criterion{f.Metadata, f.VideoInfo, f.File} {
		for _, c := range group {
			if err := c.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c Criterion) validate() error {
	if c.Path == "" {
		return newValidationError("filter criterion path must be provided")
	}
	if c.Operator == "" {
		return newValidationError(fmt.Sprintf("filter criterion %q: operator must be provided", c.Path))
	}
	hasText := c.ValueText != ""
	hasArray := len(c.ValueTextArray) > 0
	if hasText == hasArray {
		return newValidationError(fmt.Sprintf(
			"filter criterion %q: exactly one of valueText and valueTextArray must be set", c.Path))
	}
	return nil
}
