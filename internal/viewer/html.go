// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewer

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"
)

// Script3Dmol is the 3Dmol.js build loaded by the viewer page.
const Script3Dmol = "https://3Dmol.csb.pitt.edu/build/3Dmol-min.js"

//go:embed viewer.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("viewer").Parse(pageSource))

type pageData struct {
	Title      string
	ScriptURL  string
	Background string
	Loaded     bool
	SDF        string
	Style      string
	Labels     bool
}

// HTMLRenderer writes a standalone 3Dmol.js page to a file and rewrites it
// on every change. Open the file in a browser to view the structure.
type HTMLRenderer struct {
	path  string
	title string

	mu     sync.Mutex
	sdf    string
	loaded bool
	style  Style
	labels bool
}

// NewHTMLRenderer returns a renderer writing to path.
func NewHTMLRenderer(path, title string) *HTMLRenderer {
	if title == "" {
		title = "moluxis"
	}
	return &HTMLRenderer{path: path, title: title, style: StyleBallStick}
}

// Path returns the output file path.
func (h *HTMLRenderer) Path() string { return h.path }

// LoadStructure replaces the structure and rewrites the page.
func (h *HTMLRenderer) LoadStructure(sdf string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sdf, h.loaded = sdf, true
	return h.write()
}

// Clear drops the structure and rewrites the page without one.
func (h *HTMLRenderer) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sdf, h.loaded = "", false
	return h.write()
}

// UpdateSettings changes style and labels and rewrites the page.
func (h *HTMLRenderer) UpdateSettings(style Style, labels bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.style, h.labels = style, labels
	return h.write()
}

// Render returns the page for the current state.
func (h *HTMLRenderer) Render() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.render()
}

func (h *HTMLRenderer) render() ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Title:      h.title,
		ScriptURL:  Script3Dmol,
		Background: "#121212",
		Loaded:     h.loaded,
		SDF:        h.sdf,
		Style:      string(h.style),
		Labels:     h.labels,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering viewer page: %w", err)
	}
	return buf.Bytes(), nil
}

// write replaces the output file atomically. Callers hold mu.
func (h *HTMLRenderer) write() error {
	data, err := h.render()
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(h.path), ".viewer-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	if writeErr == nil {
		writeErr = tmpFile.Chmod(0o644)
	}
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing viewer page: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, h.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
