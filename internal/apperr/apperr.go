package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when a quiz or chat session id is unknown.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedMode is returned when a prompt mode has no template.
	ErrUnsupportedMode = errors.New("unsupported mode")
)

// NotFound builds an ErrNotFound carrying the resource kind and id,
// e.g. "Quiz with ID 'abc' not found".
func NotFound(kind, id string) error {
	return fmt.Errorf("%s with ID '%s' %w", kind, id, ErrNotFound)
}

// GenerationParseError reports a model completion that is not the expected JSON shape.
type GenerationParseError struct {
	Reason string
	Err    error
}

func (e *GenerationParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse model output: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse model output: %s", e.Reason)
}

func (e *GenerationParseError) Unwrap() error { return e.Err }

// UpstreamError reports a failed or timed out completion call.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// HTTPStatus maps a domain error to the status code the HTTP surface returns.
func HTTPStatus(err error) int {
	if IsNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
