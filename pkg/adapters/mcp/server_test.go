package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/tableau"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/table"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(table.NewManager(func(id string) (*tableau.Table, error) {
		return tableau.New(id)
	}))
}

func TestInspect_CreatesTable(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	resp, err := s.handleInspect(ctx, mcp.CallToolRequest{}, TableArgs{TableID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "t1", resp.Snapshot.TableID)
	assert.Nil(t, resp.Result)
	assert.Equal(t, []string{"t1"}, s.tables.List())

	_, err = s.handleInspect(ctx, mcp.CallToolRequest{}, TableArgs{})
	assert.Error(t, err)
}

func TestMoveStack(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	resp, err := s.handleMove(ctx, mcp.CallToolRequest{}, MoveArgs{TableID: "t1", CardID: "Card52", SlotID: "receiver-2"})
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.Committed())
	assert.Equal(t, "receiver-2", resp.Result.TargetSlotID)

	_, err = s.handleMove(ctx, mcp.CallToolRequest{}, MoveArgs{TableID: "t1", CardID: "Card52", SlotID: "nowhere"})
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestPointer(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	_, err := s.handlePointer(ctx, mcp.CallToolRequest{}, PointerArgs{TableID: "t1", Phase: "hover"})
	assert.Error(t, err)

	// Default camera maps screen (60,70) to the deck at the world origin.
	resp, err := s.handlePointer(ctx, mcp.CallToolRequest{}, PointerArgs{TableID: "t1", Phase: "DOWN", X: 60, Y: 70})
	require.NoError(t, err)
	assert.Nil(t, resp.Result)

	resp, err = s.handleRevert(ctx, mcp.CallToolRequest{}, RevertArgs{TableID: "t1", CardID: "Card52"})
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.Equal(t, domain.ReasonRequested, resp.Result.Reason)
}
