// Package level saves and loads painted surfaces as JSON.
package level

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/milk9111/tiledesigner/render"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultCell   = 16
)

// Level is the on-disk form of a surface.
type Level struct {
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Cell       int                `json:"cell"`
	Placements []render.Placement `json:"placements"`
}

// FromSurface snapshots a surface.
func FromSurface(s *render.Surface) *Level {
	return &Level{
		Width:      s.Width(),
		Height:     s.Height(),
		Cell:       s.Cell(),
		Placements: s.Placements(),
	}
}

// Surface builds a fresh surface holding the level's placements. Placements
// that do not fit are dropped.
func (l *Level) Surface() *render.Surface {
	s := render.NewSurface(l.Width, l.Height, l.Cell)
	s.Restore(l.Placements)
	return s
}

// Apply replaces the contents of s with the level's placements and returns
// how many were restored.
func (l *Level) Apply(s *render.Surface) int {
	return s.Restore(l.Placements)
}

func (l *Level) fillDefaults() {
	if l.Width <= 0 {
		l.Width = DefaultWidth
	}
	if l.Height <= 0 {
		l.Height = DefaultHeight
	}
	if l.Cell <= 0 {
		l.Cell = DefaultCell
	}
	if l.Placements == nil {
		l.Placements = []render.Placement{}
	}
}

// NewPath returns a fresh timestamped file name inside dir.
func NewPath(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("level_%d.json", time.Now().Unix()))
}

// Marshal encodes l as indented JSON.
func Marshal(l *Level) ([]byte, error) {
	out := *l
	out.fillDefaults()
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("level: marshal: %w", err)
	}
	return data, nil
}

// Save writes l to path, creating its directory.
func Save(path string, l *Level) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("level: save %s: %w", path, err)
	}
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("level: save %s: %w", path, err)
	}
	return nil
}

// Load reads a level file. Missing sizes take the defaults.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	var l Level
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("level: unmarshal %s: %w", path, err)
	}
	l.fillDefaults()
	return &l, nil
}
