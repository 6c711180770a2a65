// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import "github.com/pdiddy/moluxis/pkg/types"

// State is the orchestrator's search state.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateSuccess
	StateNotFound
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateSuccess:
		return "success"
	case StateNotFound:
		return "not_found"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends a search.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateNotFound || s == StateFailed
}

// Snapshot is a read-only view of the orchestrator state handed to the
// rendering layer. Record is shared and must not be modified.
type Snapshot struct {
	State State

	// Query is the trimmed term of the current search.
	Query string

	// Generation numbers searches; higher is newer.
	Generation uint64

	// Record is set only in StateSuccess.
	Record *types.CompoundRecord

	// Notice is the user-facing message for StateNotFound and StateFailed.
	Notice string

	// Err is the mandatory call's error for StateNotFound and StateFailed.
	Err error
}

// Loading reports whether a search is in flight.
func (s Snapshot) Loading() bool {
	return s.State == StateSearching
}
