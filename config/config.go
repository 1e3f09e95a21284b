// Package config loads the editor configuration. A user file is merged over
// the built-in defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Keymap actions.
const (
	ActionToggleEdit   = "toggle_edit"
	ActionToggleClip   = "toggle_clip"
	ActionToggleDrag   = "toggle_drag"
	ActionToggleTrash  = "toggle_trash"
	ActionToggleSafety = "toggle_safety"
	ActionDeleteAll    = "delete_all"
	ActionSave         = "save"
	ActionCopy         = "copy"
)

// Actions lists every action a keymap entry may name.
var Actions = []string{
	ActionToggleEdit, ActionToggleClip, ActionToggleDrag, ActionToggleTrash, ActionToggleSafety,
	ActionDeleteAll, ActionSave, ActionCopy,
}

type Window struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	PanelWidth int    `yaml:"panel_width"`
}

type Surface struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Cell   int `yaml:"cell"`
}

// Binding maps an action to a key chord.
type Binding struct {
	Keys   []string `yaml:"keys"`
	On     string   `yaml:"on,omitempty"`
	Repeat *bool    `yaml:"repeat,omitempty"`
}

// Event returns the event type the binding fires on, keydown by default.
func (b Binding) Event() string {
	if b.On == "" {
		return "keydown"
	}
	return b.On
}

// Repeats reports whether the binding stays armed after firing. Keymap
// bindings repeat unless told otherwise.
func (b Binding) Repeats() bool {
	return b.Repeat == nil || *b.Repeat
}

// Macro names a script and the chord that runs it. File overrides the
// built-in script of the same name.
type Macro struct {
	Name string   `yaml:"name"`
	File string   `yaml:"file,omitempty"`
	Keys []string `yaml:"keys,omitempty"`
}

type Config struct {
	Window    Window             `yaml:"window"`
	Surface   Surface            `yaml:"surface"`
	Tilesets  string             `yaml:"tilesets"`
	LevelsDir string             `yaml:"levels_dir"`
	Debug     bool               `yaml:"debug"`
	Keymap    map[string]Binding `yaml:"keymap"`
	Macros    []Macro            `yaml:"macros"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return &c
}

// Load reads path over the defaults and validates the result. An empty path
// returns the defaults. Keymap entries merge per action; a macros list
// replaces the default list.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Validate checks sizes, keymap actions and macro names.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.PanelWidth < 0 || c.Window.PanelWidth >= c.Window.Width {
		return fmt.Errorf("%w: panel width %d", ErrInvalid, c.Window.PanelWidth)
	}
	s := c.Surface
	if s.Width <= 0 || s.Height <= 0 || s.Cell <= 0 {
		return fmt.Errorf("%w: surface %dx%d cell %d", ErrInvalid, s.Width, s.Height, s.Cell)
	}
	if s.Cell > s.Width || s.Cell > s.Height {
		return fmt.Errorf("%w: cell %d larger than surface", ErrInvalid, s.Cell)
	}
	for action, b := range c.Keymap {
		if !slices.Contains(Actions, action) {
			return fmt.Errorf("%w: unknown action %q", ErrInvalid, action)
		}
		if ev := b.Event(); ev != "keydown" && ev != "keyup" {
			return fmt.Errorf("%w: action %q: unsupported event %q", ErrInvalid, action, ev)
		}
	}
	seen := make(map[string]struct{}, len(c.Macros))
	for _, m := range c.Macros {
		if m.Name == "" {
			return fmt.Errorf("%w: macro without a name", ErrInvalid)
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("%w: duplicate macro %q", ErrInvalid, m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return nil
}
