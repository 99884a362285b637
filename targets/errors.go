package targets

import "fmt"

// ParseTargetError is returned when a target specification cannot be
// parsed into the addresses or ports it is meant to describe. It carries
// the offending spec string so callers can report exactly which entry in
// a larger list failed.
type ParseTargetError struct {
	Spec  string
	Cause error
}

func (e *ParseTargetError) Error() string {
	return fmt.Sprintf("invalid target %q: %s", e.Spec, e.Cause)
}

func (e *ParseTargetError) Unwrap() error {
	return e.Cause
}

func newParseError(spec string, cause error) *ParseTargetError {
	return &ParseTargetError{Spec: spec, Cause: cause}
}
