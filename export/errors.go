package export

import (
	"errors"
	"fmt"
)

// ValidationError reports missing or invalid export inputs. Surfaced
// immediately, never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid export request: " + e.Reason
}

// ErrEndpointUnavailable marks a not-found-class response from the merge
// endpoint: the server-side muxer is not deployed. It triggers the video-only
// fallback instead of failing the export.
var ErrEndpointUnavailable = errors.New("merge endpoint not available")

// MergeError carries the merge endpoint's JSON error body. Details holds the
// transcoding engine's diagnostic text verbatim.
type MergeError struct {
	Message string
	Details string
}

func (e *MergeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}
