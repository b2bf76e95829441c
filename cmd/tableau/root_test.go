package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tableau version "))
}

func TestShowCmd(t *testing.T) {
	out, _, err := run(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# Table `cli`")
	assert.Contains(t, out, "| deck | deck | 52 |")
}

func TestShowCmd_Overrides(t *testing.T) {
	out, _, err := run(t, "show", "--json", "--set", "deck_size=3")
	require.NoError(t, err)

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Len(t, snap.Slots[0].Cards, 3)
}

func TestShowCmd_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
deck_size: 2
slots:
  - {id: pile, type: deck, x: 0, y: 0}
  - {id: col, type: tableau, x: 1, y: 0}
`), 0o644))

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"show", "--json", "--config", path})
	require.NoError(t, cmd.Execute())

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &snap))
	require.Len(t, snap.Slots, 2)
	assert.Equal(t, "pile", snap.Slots[0].ID)
	assert.Len(t, snap.Slots[0].Cards, 2)
}

func TestMoveCmd(t *testing.T) {
	out, log, err := run(t, "move", "Card52:tableau-1", "Card51:deck", "--json")
	require.NoError(t, err)
	assert.Contains(t, log, "Card52:tableau-1: moved Card52")
	assert.Contains(t, log, "Card51:deck: reverted (deck_rejects)")

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	for _, s := range snap.Slots {
		switch s.ID {
		case "deck":
			assert.Len(t, s.Cards, 51)
		case "tableau-1":
			require.Len(t, s.Cards, 1)
			assert.Equal(t, "Card52", s.Cards[0].ID)
		}
	}
}

func TestMoveCmd_Errors(t *testing.T) {
	_, _, err := run(t, "move", "Card52")
	assert.ErrorContains(t, err, "expected CARD:SLOT")

	_, _, err = run(t, "move", "Card52:nowhere")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)

	_, _, err = run(t, "show", "--log-level", "loud")
	assert.Error(t, err)
}
