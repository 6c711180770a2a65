// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/moluxis/internal/aggregate"
	"github.com/pdiddy/moluxis/pkg/types"
)

// suggestionsUpdated is sent when an autocomplete request for Text finished.
type suggestionsUpdated struct {
	Text string
	Err  error
}

// searchCompleted is sent when a search for Query returned.
type searchCompleted struct {
	Query  string
	Record *types.CompoundRecord
	Err    error
}

// SnapshotChanged tells the model that the orchestrator state changed.
type SnapshotChanged struct {
	Snapshot aggregate.Snapshot
}

// Notify returns an orchestrator listener that forwards every transition
// to p so in-flight searches are redrawn.
func Notify(p *tea.Program) aggregate.Listener {
	return func(s aggregate.Snapshot) {
		p.Send(SnapshotChanged{Snapshot: s})
	}
}
