// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewer

import "fmt"

// Style is a molecule visualization style token understood by the viewer
// page.
type Style string

const (
	StyleBallStick Style = "ballStick"
	StyleStick     Style = "stick"
	StyleSphere    Style = "sphere"
	StyleWireframe Style = "wireframe"
)

// Styles lists every style in display order.
func Styles() []Style {
	return []Style{StyleBallStick, StyleStick, StyleSphere, StyleWireframe}
}

// ParseStyle returns the Style for token s. An empty token yields the
// default, StyleBallStick.
func ParseStyle(s string) (Style, error) {
	if s == "" {
		return StyleBallStick, nil
	}
	for _, st := range Styles() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown style %q (want ballStick, stick, sphere or wireframe)", s)
}

func (s Style) String() string { return string(s) }

// Label is the human-readable name of s.
func (s Style) Label() string {
	switch s {
	case StyleBallStick:
		return "Ball & Stick"
	case StyleStick:
		return "Sticks"
	case StyleSphere:
		return "Space-Fill"
	case StyleWireframe:
		return "Wireframe"
	default:
		return string(s)
	}
}
