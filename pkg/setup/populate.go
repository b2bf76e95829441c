// Package setup builds tables from configuration and deals the initial deck.
package setup

import (
	"fmt"

	"github.com/aretw0/tableau/pkg/config"
	"github.com/aretw0/tableau/pkg/domain"
)

// Populate creates n cards named Card1..CardN and appends them to deck, in
// order, registering each on table (when non-nil). Every card remembers the
// deck as its last placement.
func Populate(table *domain.Table, deck *domain.Slot, n int) ([]*domain.Card, error) {
	cards := make([]*domain.Card, 0, n)
	for i := 0; i < n; i++ {
		c := domain.NewCard(fmt.Sprintf("Card%d", i+1))
		if table != nil {
			if err := table.AddCard(c); err != nil {
				return nil, err
			}
		}
		deck.Append(c)
		c.Initialize(deck)
		cards = append(cards, c)
	}
	return cards, nil
}

// BuildTable creates the slots described by cfg and deals cfg.DeckSize cards
// into the deck slot. Cards are not laid out; the engine does that.
func BuildTable(id string, cfg *config.Config) (*domain.Table, error) {
	table := domain.NewTable(id)

	var deck *domain.Slot
	for _, sc := range cfg.Slots {
		typ, err := domain.ParseSlotType(sc.Type)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", sc.ID, err)
		}
		slot := domain.NewSlot(sc.ID, typ, domain.Vec3{X: sc.X, Y: sc.Y})
		slot.Bounds = domain.CenteredRect(domain.Vec3{}, cfg.Card.Width, cfg.Card.Height)
		if err := table.AddSlot(slot); err != nil {
			return nil, err
		}
		if deck == nil && typ == domain.SlotDeck && cfg.DeckSlot == "" {
			deck = slot
		}
	}

	if cfg.DeckSlot != "" {
		s, err := table.Slot(cfg.DeckSlot)
		if err != nil {
			return nil, fmt.Errorf("deck slot: %w", err)
		}
		deck = s
	}

	if cfg.DeckSize > 0 {
		if deck == nil {
			return nil, fmt.Errorf("deck_size is %d but no deck slot is configured", cfg.DeckSize)
		}
		if _, err := Populate(table, deck, cfg.DeckSize); err != nil {
			return nil, err
		}
	}
	return table, nil
}
