// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubchem

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the name lookup returned no compounds. This is
	// an expected outcome for misspelled or unknown names.
	ErrNotFound = errors.New("pubchem: compound not found")

	// ErrNoStructure indicates PubChem has no usable 3D structure for the
	// compound: the payload was missing, empty, or implausibly short.
	ErrNoStructure = errors.New("pubchem: no 3D structure available")

	// ErrEmpty indicates an optional sub-document came back without content.
	ErrEmpty = errors.New("pubchem: empty document")
)

// NetworkError represents a transport failure, a server-side HTTP error, or
// a response body that could not be decoded.
type NetworkError struct {
	// Op names the client operation, e.g. "lookup" or "structure".
	Op string

	// StatusCode is the HTTP status, or zero when no response was received.
	StatusCode int

	Err error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("pubchem: %s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("pubchem: %s: HTTP %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("pubchem: %s: %v", e.Op, e.Err)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetwork reports whether err is, or wraps, a *NetworkError.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
