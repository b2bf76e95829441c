package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/tableau/pkg/domain"
	"golang.org/x/term"
)

// maxListed is how many cards, counted from the top, a slot row lists.
const maxListed = 5

// SnapshotMarkdown describes a table layout as a markdown document.
func SnapshotMarkdown(snap domain.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Table `%s`\n\n", snap.TableID)
	b.WriteString("| Slot | Type | Count | Cards (bottom to top) |\n")
	b.WriteString("|------|------|------:|-----------------------|\n")
	for _, s := range snap.Slots {
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", s.ID, s.Type, len(s.Cards), listCards(s.Cards))
	}

	if len(snap.Detached) > 0 {
		b.WriteString("\n## In flight\n\n")
		for _, c := range snap.Detached {
			fmt.Fprintf(&b, "- **%s** at (%.2f, %.2f), draw order %d\n", c.ID, c.World.X, c.World.Y, c.DrawOrder)
		}
	}
	return b.String()
}

func listCards(cards []domain.CardView) string {
	if len(cards) == 0 {
		return "-"
	}
	start := 0
	prefix := ""
	if len(cards) > maxListed {
		start = len(cards) - maxListed
		prefix = fmt.Sprintf("… %d more, ", start)
	}
	ids := make([]string, 0, len(cards)-start)
	for _, c := range cards[start:] {
		ids = append(ids, c.ID)
	}
	return prefix + strings.Join(ids, ", ")
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RenderSnapshot writes snap to w, styled with glamour when w is a terminal
// and as plain markdown otherwise.
func RenderSnapshot(w io.Writer, snap domain.Snapshot) error {
	md := SnapshotMarkdown(snap)
	if !IsTerminal(w) {
		_, err := io.WriteString(w, md)
		return err
	}

	render, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render snapshot: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
