// Package apperr defines the failure kinds a request pipeline can surface.
// Every kind wraps its cause so errors.Is keeps working through it.
package apperr

import "fmt"

// ValidationError reports a malformed or missing question.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UpstreamError reports a failure of the model or speech backend.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s service failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MissingArtifactError reports an input file that is absent before composition.
type MissingArtifactError struct {
	Kind string // "audio" or "image"
	Path string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s file not found: %s", e.Kind, e.Path)
}

// EncodingError reports a muxing, transcoding or decoding failure.
type EncodingError struct {
	Stage  string
	Stderr string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("encoding failed at %s: %v: %s", e.Stage, e.Err, e.Stderr)
	}
	return fmt.Sprintf("encoding failed at %s: %v", e.Stage, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Upstream wraps err as an UpstreamError for service. A nil err stays nil.
func Upstream(service string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Service: service, Err: err}
}
