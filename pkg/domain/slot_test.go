package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardIDs(s *domain.Slot) []string {
	var ids []string
	for _, c := range s.Cards() {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestParseSlotType(t *testing.T) {
	tests := []struct {
		in   string
		want domain.SlotType
	}{
		{"deck", domain.SlotDeck},
		{"Tableau", domain.SlotTableau},
		{" RECEIVER ", domain.SlotReceiver},
	}
	for _, tt := range tests {
		got, err := domain.ParseSlotType(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := domain.ParseSlotType("foundation")
	assert.ErrorIs(t, err, domain.ErrUnknownSlotType)
}

func TestSlotType_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]domain.SlotType{"type": domain.SlotReceiver})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"receiver"}`, string(b))

	var out struct{ Type domain.SlotType }
	require.Error(t, json.Unmarshal([]byte(`{"Type":"pile"}`), &out))
	require.NoError(t, json.Unmarshal([]byte(`{"Type":"tableau"}`), &out))
	assert.Equal(t, domain.SlotTableau, out.Type)
}

func TestSlot_AppendMovesOwnership(t *testing.T) {
	a := domain.NewSlot("a", domain.SlotTableau, domain.Vec3{X: 1})
	b := domain.NewSlot("b", domain.SlotTableau, domain.Vec3{X: 5})
	c := domain.NewCard("c")
	c.Position = domain.Vec3{X: 2, Y: 2}

	a.Append(c)
	assert.Same(t, a, c.Slot())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, domain.Vec3{X: 2, Y: 2}, c.World(), "appending keeps the world position")
	assert.Equal(t, domain.Vec3{X: 1, Y: 2}, c.Position)

	b.Append(c)
	assert.Zero(t, a.Len())
	assert.Equal(t, []string{"c"}, cardIDs(b))
	assert.Equal(t, domain.Vec3{X: 2, Y: 2}, c.World())

	assert.True(t, b.Remove(c))
	assert.False(t, b.Remove(c))
	assert.Nil(t, c.Slot())
	assert.Equal(t, -1, c.Index())
	assert.Equal(t, domain.Vec3{X: 2, Y: 2}, c.Position)
}

func TestSlot_IndicesStayContiguous(t *testing.T) {
	s := domain.NewSlot("s", domain.SlotTableau, domain.Vec3{})
	cards := make([]*domain.Card, 5)
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		cards[i] = domain.NewCard(id)
		s.Append(cards[i])
	}

	s.Remove(cards[1])
	s.MoveTo(cards[4], 0)
	s.MoveTo(cards[0], 99)
	s.MoveTo(cards[2], -3)

	assert.Equal(t, []string{"c", "e", "d", "a"}, cardIDs(s))
	for i, c := range s.Cards() {
		assert.Equal(t, i, c.Index())
		assert.Same(t, c, s.At(i))
	}
}

func TestSlot_Suffix(t *testing.T) {
	s := domain.NewSlot("s", domain.SlotDeck, domain.Vec3{})
	for _, id := range []string{"a", "b", "c"} {
		s.Append(domain.NewCard(id))
	}

	assert.Len(t, s.Suffix(0), 3)
	assert.Equal(t, "b", s.Suffix(1)[0].ID)
	assert.Len(t, s.Suffix(2), 1)
	assert.Nil(t, s.Suffix(3))
	assert.Nil(t, s.Suffix(-1))

	// The suffix is a copy.
	suffix := s.Suffix(0)
	suffix[0] = nil
	assert.NotNil(t, s.At(0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, domain.Clamp(-1, 0, 3))
	assert.Equal(t, 3, domain.Clamp(7, 0, 3))
	assert.Equal(t, 2, domain.Clamp(2, 0, 3))
	assert.Equal(t, 0, domain.Clamp(5, 0, -1), "empty range clamps to the lower bound")
}

func TestRect(t *testing.T) {
	r := domain.CenteredRect(domain.Vec3{X: 1, Y: 1}, 2, 4)
	assert.True(t, r.Contains(domain.Vec3{X: 0, Y: -1}))
	assert.True(t, r.Contains(domain.Vec3{X: 2, Y: 3}))
	assert.False(t, r.Contains(domain.Vec3{X: 2.1, Y: 1}))

	u := r.Union(domain.CenteredRect(domain.Vec3{X: 10}, 2, 2))
	assert.Equal(t, domain.Rect{X: 0, Y: -1, W: 11, H: 4}, u)
	assert.Equal(t, domain.Rect{X: 5, Y: 4, W: 2, H: 4}, r.Translate(domain.Vec3{X: 5, Y: 5}))
}
