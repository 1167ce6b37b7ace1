// Package types holds the JSON manifest shared by the generator and the
// preview server.
package types

import (
	"time"

	"github.com/samber/lo"
)

// Artifact describes one written animation.
type Artifact struct {
	Rule       string `json:"rule"`
	File       string `json:"file"`
	Title      string `json:"title"`
	Violation  string `json:"violation"`
	Frames     int    `json:"frames"`
	DurationMS int    `json:"durationMs"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Size       int64  `json:"size"`
}

// Manifest lists the artifacts of one generation run.
type Manifest struct {
	RunID       string     `json:"runId"`
	GeneratedAt time.Time  `json:"generatedAt"`
	FontName    string     `json:"fontName"`
	Artifacts   []Artifact `json:"artifacts"`
}

// Find returns the artifact written to file.
func (m *Manifest) Find(file string) (Artifact, bool) {
	if m == nil {
		return Artifact{}, false
	}
	return lo.Find(m.Artifacts, func(a Artifact) bool { return a.File == file })
}

// Files returns the artifact file names in manifest order.
func (m *Manifest) Files() []string {
	if m == nil {
		return nil
	}
	return lo.Map(m.Artifacts, func(a Artifact, _ int) string { return a.File })
}
