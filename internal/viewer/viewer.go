// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package viewer drives a 3D structure renderer from the current compound
// record and the user's display settings.
package viewer

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdiddy/moluxis/internal/aggregate"
	"github.com/pdiddy/moluxis/pkg/types"
)

// Renderer displays one SDF structure with a style and optional atom labels.
// Clear removes the displayed structure.
type Renderer interface {
	LoadStructure(sdf string) error
	UpdateSettings(style Style, labels bool) error
	Clear() error
}

// Controller forwards records and settings changes to a Renderer. A new
// structure is always followed by the current settings; settings changes
// reach the renderer only while a structure is loaded. It is safe for
// concurrent use.
type Controller struct {
	r Renderer

	mu     sync.Mutex
	style  Style
	labels bool
	sdf    string
	loaded bool
}

// NewController returns a Controller with the given initial settings.
func NewController(r Renderer, style Style, labels bool) *Controller {
	if style == "" {
		style = StyleBallStick
	}
	return &Controller{r: r, style: style, labels: labels}
}

// Show loads rec's structure and applies the current settings. Showing the
// structure that is already loaded does nothing. A nil record clears the
// renderer.
func (c *Controller) Show(rec *types.CompoundRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rec == nil {
		return c.clear()
	}
	if c.loaded && c.sdf == rec.SDF {
		return nil
	}
	if err := c.r.LoadStructure(rec.SDF); err != nil {
		c.loaded = false
		return err
	}
	c.sdf, c.loaded = rec.SDF, true
	return c.r.UpdateSettings(c.style, c.labels)
}

// Clear removes the loaded structure from the renderer, as when a new search
// starts. Clearing an empty renderer does nothing.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clear()
}

// clear is Clear with mu held.
func (c *Controller) clear() error {
	if !c.loaded {
		return nil
	}
	c.sdf, c.loaded = "", false
	return c.r.Clear()
}

// SetStyle changes the visualization style.
func (c *Controller) SetStyle(s Style) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s == c.style {
		return nil
	}
	c.style = s
	return c.apply()
}

// SetLabels shows or hides atom labels.
func (c *Controller) SetLabels(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on == c.labels {
		return nil
	}
	c.labels = on
	return c.apply()
}

// ToggleLabels flips atom labels and returns the new setting.
func (c *Controller) ToggleLabels() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels = !c.labels
	return c.labels, c.apply()
}

// Settings returns the current style and label setting.
func (c *Controller) Settings() (Style, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.style, c.labels
}

// Loaded reports whether a structure is loaded.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// apply pushes the settings to the renderer. Callers hold mu.
func (c *Controller) apply() error {
	if !c.loaded {
		return nil
	}
	return c.r.UpdateSettings(c.style, c.labels)
}

// Listener adapts c to orchestrator snapshots: a new search clears the
// viewer and a successful one shows its record. Renderer errors are logged.
func (c *Controller) Listener(log zerolog.Logger) aggregate.Listener {
	return func(s aggregate.Snapshot) {
		switch s.State {
		case aggregate.StateSearching:
			if err := c.Clear(); err != nil {
				log.Error().Err(err).Uint64("generation", s.Generation).Msg("Clearing structure")
			}
		case aggregate.StateSuccess:
			if err := c.Show(s.Record); err != nil {
				log.Error().Err(err).Uint64("generation", s.Generation).Msg("Rendering structure")
			}
		}
	}
}
