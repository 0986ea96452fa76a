package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/siderun/internal/surface"
	"gopkg.in/yaml.v3"
)

var sheetExts = map[string]bool{
	".yaml": true,
	".yml":  true,
}

// IsSheetExt returns true if the extension names a scene sheet.
func IsSheetExt(ext string) bool {
	return sheetExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of sheet extensions.
func SupportedExtsList() string {
	return ".yaml, .yml"
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// HostSheet describes one host element of a scene.
type HostSheet struct {
	ID      string            `yaml:"id"`
	Label   string            `yaml:"label"`
	Rect    surface.Rect      `yaml:"rect"`
	Style   map[string]string `yaml:"style"`
	Options Options           `yaml:"options"`
	Links   []LinkSheet       `yaml:"links"`
}

// LinkSheet is a hover zone inside a host.
type LinkSheet struct {
	Label string       `yaml:"label"`
	Rect  surface.Rect `yaml:",inline"`
}

// Sheet describes a whole scene.
type Sheet struct {
	Name          string      `yaml:"name"`
	Viewport      Size        `yaml:"viewport"`
	ReducedMotion bool        `yaml:"reduced_motion"`
	Touch         bool        `yaml:"touch"`
	Hosts         []HostSheet `yaml:"hosts"`
}

// LoadSheet reads and validates a sheet file.
func LoadSheet(path string) (Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("reading sheet: %w", err)
	}
	s, err := ParseSheet(data)
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseSheet decodes and validates sheet YAML.
func ParseSheet(data []byte) (Sheet, error) {
	var s Sheet
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Sheet{}, fmt.Errorf("parsing sheet: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Sheet{}, err
	}
	return s, nil
}

// Validate checks that host ids are present and unique and that no size is
// negative.
func (s Sheet) Validate() error {
	if s.Viewport.Width < 0 || s.Viewport.Height < 0 {
		return fmt.Errorf("viewport size must not be negative")
	}
	if len(s.Hosts) == 0 {
		return fmt.Errorf("sheet has no hosts")
	}
	seen := make(map[string]bool, len(s.Hosts))
	for i, h := range s.Hosts {
		if h.ID == "" {
			return fmt.Errorf("host %d: missing id", i)
		}
		if seen[h.ID] {
			return fmt.Errorf("host %q: duplicate id", h.ID)
		}
		seen[h.ID] = true
		if h.Rect.Width < 0 || h.Rect.Height < 0 {
			return fmt.Errorf("host %q: size must not be negative", h.ID)
		}
		for j, l := range h.Links {
			if l.Rect.Width < 0 || l.Rect.Height < 0 {
				return fmt.Errorf("host %q link %d: size must not be negative", h.ID, j)
			}
		}
	}
	return nil
}

// DefaultSheet is the built-in demo scene: a navigation bar whose links
// steer the runners, and a card that tracks the pointer.
func DefaultSheet() Sheet {
	return Sheet{
		Name:     "demo",
		Viewport: Size{Width: 640, Height: 384},
		Hosts: []HostSheet{
			{
				ID:    "nav",
				Label: "navigation",
				Rect:  surface.Rect{Left: 48, Top: 48, Width: 480, Height: 48},
				Style: map[string]string{PropBorderRadius: "12px", PropTail: "14"},
				Links: []LinkSheet{
					{Label: "home", Rect: surface.Rect{Left: 80, Top: 64, Width: 64, Height: 16}},
					{Label: "work", Rect: surface.Rect{Left: 200, Top: 64, Width: 64, Height: 16}},
					{Label: "about", Rect: surface.Rect{Left: 320, Top: 64, Width: 64, Height: 16}},
					{Label: "contact", Rect: surface.Rect{Left: 424, Top: 64, Width: 80, Height: 16}},
				},
			},
			{
				ID:      "card",
				Label:   "card",
				Rect:    surface.Rect{Left: 48, Top: 176, Width: 320, Height: 128},
				Style:   map[string]string{PropBorderRadius: "16px", PropGap: "12"},
				Options: Options{TrackPointer: Bool(true)},
			},
		},
	}
}
