package gen

import (
	"fmt"
	"strings"
)

// GenerationError wraps a transport or API failure from the model backend.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MalformedResponseError means the model returned something that is not a
// JSON object at all.
type MalformedResponseError struct {
	Stage string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response at %s: %v", e.Stage, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaViolationError means the response parsed but required fields are
// missing, empty or of the wrong type.
type SchemaViolationError struct {
	Stage  string
	Fields []string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation at %s: fields %s", e.Stage, strings.Join(e.Fields, ", "))
}
