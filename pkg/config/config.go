// Package config loads the table layout and layout settings from YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// SlotConfig places one slot on the surface.
type SlotConfig struct {
	ID   string  `yaml:"id" json:"id" mapstructure:"id"`
	Type string  `yaml:"type" json:"type" mapstructure:"type"`
	X    float64 `yaml:"x" json:"x" mapstructure:"x"`
	Y    float64 `yaml:"y" json:"y" mapstructure:"y"`
}

// CameraConfig configures the orthographic camera.
type CameraConfig struct {
	Scale   float64 `yaml:"scale" json:"scale" mapstructure:"scale"`
	OriginX float64 `yaml:"origin_x" json:"origin_x" mapstructure:"origin_x"`
	OriginY float64 `yaml:"origin_y" json:"origin_y" mapstructure:"origin_y"`
}

// CardConfig holds the size of a card on the surface.
type CardConfig struct {
	Width  float64 `yaml:"width" json:"width" mapstructure:"width"`
	Height float64 `yaml:"height" json:"height" mapstructure:"height"`
}

// Config represents the structure of tableau.yaml.
type Config struct {
	// TableauOffset is the vertical spacing of Tableau slots. Nil means "not configured".
	TableauOffset *float64 `yaml:"tableau_offset" json:"tableau_offset" mapstructure:"tableau_offset"`

	// DeckSize is the number of cards put in the deck slot at setup.
	DeckSize int `yaml:"deck_size" json:"deck_size" mapstructure:"deck_size"`

	// DeckSlot names the slot receiving the initial cards (default: the first Deck slot).
	DeckSlot string `yaml:"deck_slot" json:"deck_slot" mapstructure:"deck_slot"`

	Camera CameraConfig `yaml:"camera" json:"camera" mapstructure:"camera"`
	Card   CardConfig   `yaml:"card" json:"card" mapstructure:"card"`
	Slots  []SlotConfig `yaml:"slots" json:"slots" mapstructure:"slots"`
}

// Settings returns the layout settings, or nil when no spacing is configured.
func (c *Config) Settings() *domain.Settings {
	if c.TableauOffset == nil {
		return nil
	}
	return &domain.Settings{TableauOffset: *c.TableauOffset}
}

// Default returns the classic solitaire layout: a deck, four receivers and
// seven tableau columns.
func Default() *Config {
	offset := domain.DefaultTableauOffset
	cfg := &Config{
		TableauOffset: &offset,
		DeckSize:      52,
		Camera:        CameraConfig{Scale: 100, OriginX: 60, OriginY: 70},
		Card:          CardConfig{Width: 0.7, Height: 1.0},
	}
	cfg.Slots = append(cfg.Slots, SlotConfig{ID: "deck", Type: "deck", X: 0, Y: 0})
	for i := 0; i < 4; i++ {
		cfg.Slots = append(cfg.Slots, SlotConfig{
			ID:   fmt.Sprintf("receiver-%d", i+1),
			Type: "receiver",
			X:    float64(3+i) * 0.9,
			Y:    0,
		})
	}
	for i := 0; i < 7; i++ {
		cfg.Slots = append(cfg.Slots, SlotConfig{
			ID:   fmt.Sprintf("tableau-%d", i+1),
			Type: "tableau",
			X:    float64(i) * 0.9,
			Y:    -1.3,
		})
	}
	return cfg
}

// Load reads a configuration file (YAML or JSON) and applies overrides.
//
// Missing files are not an error: the defaults are used. Overrides are
// "key=value" pairs addressing top-level or nested keys with dots
// (e.g. "camera.scale=80"); they are applied before decoding, so values are
// converted like the file's own.
func Load(path string, overrides ...string) (*Config, error) {
	raw, err := defaultMap()
	if err != nil {
		return nil, err
	}

	if path != "" {
		fileMap, err := readFile(path)
		if err != nil {
			return nil, err
		}
		for k, v := range fileMap {
			raw[k] = v
		}
	}

	for _, o := range overrides {
		if err := applyOverride(raw, o); err != nil {
			return nil, err
		}
	}

	return decode(raw)
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	out := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return out, nil
	}
	// Default to YAML
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// defaultMap renders Default() as a generic map so files only need to set
// the keys they change.
func defaultMap() (map[string]any, error) {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("failed to encode defaults: %w", err)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode defaults: %w", err)
	}
	return out, nil
}

func applyOverride(raw map[string]any, override string) error {
	key, value, ok := strings.Cut(override, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("invalid override %q: want key=value", override)
	}

	parts := strings.Split(key, ".")
	m := raw
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}

	value = strings.TrimSpace(value)
	last := parts[len(parts)-1]
	if value == "" || value == "null" {
		m[last] = nil
		return nil
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		m[last] = f
		return nil
	}
	m[last] = value
	return nil
}

func decode(raw map[string]any) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks slot definitions and sizes.
func (c *Config) Validate() error {
	if c.DeckSize < 0 {
		return fmt.Errorf("invalid config: deck_size must not be negative")
	}
	seen := make(map[string]bool, len(c.Slots))
	for _, s := range c.Slots {
		if s.ID == "" {
			return fmt.Errorf("invalid config: slot without id")
		}
		if seen[s.ID] {
			return fmt.Errorf("invalid config: %w: slot %q", domain.ErrDuplicateID, s.ID)
		}
		seen[s.ID] = true
		if _, err := domain.ParseSlotType(s.Type); err != nil {
			return fmt.Errorf("invalid config: slot %q: %w", s.ID, err)
		}
	}
	return nil
}
