package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tableau/pkg/config"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	def := config.Default()
	assert.Equal(t, def.DeckSize, cfg.DeckSize)
	assert.Len(t, cfg.Slots, 12)
	require.NotNil(t, cfg.Settings())
	assert.InDelta(t, domain.DefaultTableauOffset, cfg.Settings().TableauOffset, 1e-9)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "tableau.yaml", `
tableau_offset: 0.5
deck_size: 10
slots:
  - id: stock
    type: deck
  - id: pile
    type: Tableau
    x: 1
    y: -2
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DeckSize)
	require.Len(t, cfg.Slots, 2)
	assert.Equal(t, "pile", cfg.Slots[1].ID)
	assert.Equal(t, -2.0, cfg.Slots[1].Y)
	assert.InDelta(t, 0.5, cfg.Settings().TableauOffset, 1e-9)
	// Keys not present in the file keep their defaults.
	assert.Equal(t, 100.0, cfg.Camera.Scale)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "tableau.json", `{"deck_size": 3, "card": {"width": 2, "height": 3}}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.DeckSize)
	assert.Equal(t, 2.0, cfg.Card.Width)
}

func TestLoad_NullOffsetDisablesLayout(t *testing.T) {
	path := writeFile(t, "tableau.yaml", "tableau_offset: null\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Settings())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := config.Load("", "deck_size=7", "camera.scale=40", "deck_slot=deck")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.DeckSize)
	assert.Equal(t, 40.0, cfg.Camera.Scale)
	assert.Equal(t, "deck", cfg.DeckSlot)

	cfg, err = config.Load("", "tableau_offset=")
	require.NoError(t, err)
	assert.Nil(t, cfg.Settings())
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load("", "no-equals-sign")
	assert.Error(t, err)

	_, err = config.Load("", "unknown_key=1")
	assert.Error(t, err)

	bad := writeFile(t, "tableau.yaml", "slots:\n  - id: a\n    type: pyramid\n")
	_, err = config.Load(bad)
	assert.ErrorIs(t, err, domain.ErrUnknownSlotType)

	dup := writeFile(t, "tableau.yaml", "slots:\n  - {id: a, type: deck}\n  - {id: a, type: tableau}\n")
	_, err = config.Load(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)

	broken := writeFile(t, "tableau.yaml", "slots: [\n")
	_, err = config.Load(broken)
	assert.Error(t, err)
}
