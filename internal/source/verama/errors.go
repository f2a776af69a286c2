package verama

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SchemaViolationError means the upstream payload did not match the expected
// shape. Fields holds the violating field paths.
type SchemaViolationError struct {
	Fields []string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("upstream payload schema violation: %s", strings.Join(e.Fields, ", "))
}

// UpstreamUnavailableError means the upstream answered with a non-2xx status.
type UpstreamUnavailableError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("upstream unavailable: %s", e.Status)
}

// UpstreamUnreachableError means the request never produced an HTTP response
// (DNS failure, connection refused, timeout).
type UpstreamUnreachableError struct {
	Err error
}

func (e *UpstreamUnreachableError) Error() string {
	return fmt.Sprintf("upstream unreachable: %v", e.Err)
}

func (e *UpstreamUnreachableError) Unwrap() error {
	return e.Err
}

func newSchemaViolation(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Namespace())
		}
		return &SchemaViolationError{Fields: fields}
	}
	return &SchemaViolationError{Fields: []string{err.Error()}}
}
