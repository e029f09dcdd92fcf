// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoCandidates is the sentinel error wrapped by NoCandidatesError.
	ErrNoCandidates = errors.New("no module candidates found")
	// ErrInvalidExclusion is the sentinel error wrapped by InvalidExclusionError.
	ErrInvalidExclusion = errors.New("invalid exclusion")
	// ErrListener is the sentinel error wrapped by ListenerError.
	ErrListener = errors.New("resolution listener failed")
	// ErrFilterResult is the sentinel error wrapped by FilterResultError.
	ErrFilterResult = errors.New("invalid filter result")
)

type (
	// NoCandidatesError is returned when the registry has no modules under
	// the queried capability. This signals a packaging defect (missing or
	// broken manifests), not an empty-but-valid configuration.
	NoCandidatesError struct {
		Capability string
	}

	// InvalidExclusionError is returned when excluded identifiers name real,
	// discoverable modules that are not candidates under the queried
	// capability. All offenders are collected and reported together.
	InvalidExclusionError struct {
		Invalid []string
	}

	// ListenerError is returned when a resolution listener fails. Listener
	// failures abort the pass: downstream consumers may depend on every
	// listener having observed the event.
	ListenerError struct {
		Listener string
		Cause    error
	}

	// FilterResultError is returned when a filter's match vector does not
	// line up with the candidate vector.
	FilterResultError struct {
		Filter string
		Got    int
		Want   int
	}
)

// Error implements the error interface for NoCandidatesError.
func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf(
		"no module candidates registered under capability %q: verify that unit manifests are present on the search path",
		e.Capability)
}

// Unwrap returns ErrNoCandidates for errors.Is() compatibility.
func (e *NoCandidatesError) Unwrap() error { return ErrNoCandidates }

// Error implements the error interface for InvalidExclusionError.
func (e *InvalidExclusionError) Error() string {
	var msg strings.Builder
	msg.WriteString("the following modules could not be excluded because they are not candidates under the queried capability:")
	for _, id := range e.Invalid {
		msg.WriteString("\n\t- ")
		msg.WriteString(id)
	}
	return msg.String()
}

// Unwrap returns ErrInvalidExclusion for errors.Is() compatibility.
func (e *InvalidExclusionError) Unwrap() error { return ErrInvalidExclusion }

// Error implements the error interface for ListenerError.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("resolution listener %q failed: %v", e.Listener, e.Cause)
}

// Unwrap returns the listener's underlying error.
func (e *ListenerError) Unwrap() error { return e.Cause }

// Is reports sentinel identity so errors.Is(err, ErrListener) holds even
// though Unwrap exposes the cause.
func (e *ListenerError) Is(target error) bool { return target == ErrListener }

// Error implements the error interface for FilterResultError.
func (e *FilterResultError) Error() string {
	return fmt.Sprintf("filter %q returned %d results for %d candidates", e.Filter, e.Got, e.Want)
}

// Unwrap returns ErrFilterResult for errors.Is() compatibility.
func (e *FilterResultError) Unwrap() error { return ErrFilterResult }
