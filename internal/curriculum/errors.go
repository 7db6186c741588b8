package curriculum

import (
	"errors"
	"fmt"
)

// ErrEmptyResult reports that no course matched the selection. It is a normal
// outcome: callers skip report generation and tell the user.
var ErrEmptyResult = errors.New("no matching rows")

// TransportError wraps a failure to retrieve raw course records. No partial
// dataset is ever built after one.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SchemaError reports a dataset that cannot feed any report: no records at
// all, or a composite source column missing from every record.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema: " + e.Reason
}

// FormatError reports a single value the pipeline refuses to coerce: a course
// code that is not a number, or a composite source value that is not text.
type FormatError struct {
	Row    int
	Code   string
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format: row %d (course %q) field %s: %s", e.Row, e.Code, e.Field, e.Reason)
}

// IsTransport, IsSchema and IsFormat classify pipeline errors for callers that
// map them to user-facing outcomes.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsSchema(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

func IsFormat(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
