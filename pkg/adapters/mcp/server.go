package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tableau"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/table"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const tablesURI = "tableau://tables"

// GestureResponse provides a unified structure across adapters.
type GestureResponse struct {
	Result   *domain.DropResult `json:"result,omitempty" jsonschema_description:"How the drag ended; absent when the gesture did not end a drag"`
	Snapshot domain.Snapshot    `json:"snapshot" jsonschema_description:"The table layout after the gesture"`
}

// TableArgs selects a table.
type TableArgs struct {
	TableID string `json:"table_id"`
}

// MoveArgs are the arguments of the move_stack tool.
type MoveArgs struct {
	TableID string `json:"table_id"`
	CardID  string `json:"card_id"`
	SlotID  string `json:"slot_id"`
}

// PointerArgs are the arguments of the pointer tool.
type PointerArgs struct {
	TableID   string  `json:"table_id"`
	Phase     string  `json:"phase"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	PointerID int     `json:"pointer_id"`
}

// RevertArgs are the arguments of the revert_drag tool.
type RevertArgs struct {
	TableID string `json:"table_id"`
	CardID  string `json:"card_id"`
}

// Server exposes a table.Manager as an MCP Server.
type Server struct {
	tables    *table.Manager
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
// Tools create tables on first use.
func NewServer(tables *table.Manager) *Server {
	s := &Server{
		tables:    tables,
		mcpServer: server.NewMCPServer("tableau-mcp", strings.TrimSpace(tableau.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: inspect_table
	s.mcpServer.AddTool(mcp.NewTool("inspect_table",
		mcp.WithDescription("Show every slot of a table with its cards, positions and draw order. Creates the table if it does not exist."),
		mcp.WithString("table_id", mcp.Required(), mcp.Description("The table to inspect")),
		mcp.WithOutputSchema[GestureResponse](),
	), mcp.NewStructuredToolHandler(s.handleInspect))

	// TOOL: move_stack
	s.mcpServer.AddTool(mcp.NewTool("move_stack",
		mcp.WithDescription("Drag a card, together with every card above it, and drop it on a slot. Decks reject drops; receivers accept single cards only."),
		mcp.WithString("table_id", mcp.Required(), mcp.Description("The table to play on")),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("The card to grab, e.g. Card52")),
		mcp.WithString("slot_id", mcp.Required(), mcp.Description("The slot to drop on, e.g. tableau-1")),
		mcp.WithOutputSchema[GestureResponse](),
	), mcp.NewStructuredToolHandler(s.handleMove))

	// TOOL: pointer
	s.mcpServer.AddTool(mcp.NewTool("pointer",
		mcp.WithDescription("Feed one raw pointer event (down, move or up) in screen coordinates."),
		mcp.WithString("table_id", mcp.Required(), mcp.Description("The table to play on")),
		mcp.WithString("phase", mcp.Required(), mcp.Enum("down", "move", "up"), mcp.Description("Pointer phase")),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Screen X")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Screen Y")),
		mcp.WithNumber("pointer_id", mcp.Description("Pointer identifier (default 0)")),
		mcp.WithOutputSchema[GestureResponse](),
	), mcp.NewStructuredToolHandler(s.handlePointer))

	// TOOL: revert_drag
	s.mcpServer.AddTool(mcp.NewTool("revert_drag",
		mcp.WithDescription("Send a stack that is being dragged back to where it came from."),
		mcp.WithString("table_id", mcp.Required(), mcp.Description("The table to play on")),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("The card that started the drag")),
		mcp.WithOutputSchema[GestureResponse](),
	), mcp.NewStructuredToolHandler(s.handleRevert))
}

// Handler methods for structured tools

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest, args TableArgs) (GestureResponse, error) {
	var resp GestureResponse
	err := s.withTable(ctx, args.TableID, func(_ context.Context, t *tableau.Table) error {
		resp.Snapshot = t.Snapshot()
		return nil
	})
	return resp, err
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest, args MoveArgs) (GestureResponse, error) {
	var resp GestureResponse
	err := s.withTable(ctx, args.TableID, func(ctx context.Context, t *tableau.Table) error {
		result, err := t.Move(ctx, args.CardID, args.SlotID)
		if err != nil {
			return fmt.Errorf("move failed: %w", err)
		}
		resp.Result = &result
		resp.Snapshot = t.Snapshot()
		return nil
	})
	return resp, err
}

func (s *Server) handlePointer(ctx context.Context, request mcp.CallToolRequest, args PointerArgs) (GestureResponse, error) {
	phase := domain.PointerPhase(strings.ToLower(args.Phase))
	switch phase {
	case domain.PointerDown, domain.PointerMove, domain.PointerUp:
	default:
		return GestureResponse{}, fmt.Errorf("invalid pointer phase %q", args.Phase)
	}
	ev := domain.PointerEvent{
		PointerID: args.PointerID,
		Phase:     phase,
		Screen:    domain.Vec2{X: args.X, Y: args.Y},
	}

	var resp GestureResponse
	err := s.withTable(ctx, args.TableID, func(ctx context.Context, t *tableau.Table) error {
		resp.Result = t.Pointer(ctx, ev)
		resp.Snapshot = t.Snapshot()
		return nil
	})
	return resp, err
}

func (s *Server) handleRevert(ctx context.Context, request mcp.CallToolRequest, args RevertArgs) (GestureResponse, error) {
	var resp GestureResponse
	err := s.withTable(ctx, args.TableID, func(ctx context.Context, t *tableau.Table) error {
		result, ok, err := t.Revert(ctx, args.CardID)
		if err != nil {
			return fmt.Errorf("revert failed: %w", err)
		}
		if ok {
			resp.Result = &result
		}
		resp.Snapshot = t.Snapshot()
		return nil
	})
	return resp, err
}

func (s *Server) withTable(ctx context.Context, id string, fn func(context.Context, *tableau.Table) error) error {
	if id == "" {
		return fmt.Errorf("table_id is required")
	}
	if _, err := s.tables.GetOrCreate(ctx, id); err != nil {
		return err
	}
	return s.tables.WithTable(ctx, id, fn)
}

func (s *Server) registerResources() {
	// EXPOSE: tableau://tables
	s.mcpServer.AddResource(mcp.NewResource(tablesURI, "Live Tables",
		mcp.WithResourceDescription("IDs of the tables currently held by the server"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(map[string][]string{"tables": s.tables.List()})
		if err != nil {
			return nil, fmt.Errorf("failed to encode tables: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      tablesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
