package runtime

import "github.com/aretw0/tableau/pkg/domain"

// Layout recomputes the local position and draw order of every card in s.
//
// Tableau slots fan their cards downwards by settings.TableauOffset; Deck and
// Receiver slots stack them on the origin. Draw order always equals the index,
// so later cards render on top. The result depends only on the slot type and
// its ordered children, so calling Layout again without a membership change
// produces the same output.
//
// With nil settings nothing is changed and Layout returns false.
func Layout(s *domain.Slot, settings *domain.Settings) bool {
	if settings == nil || s == nil {
		return false
	}
	for i, c := range s.Cards() {
		switch s.Type {
		case domain.SlotTableau:
			c.Position = domain.Vec3{X: 0, Y: -(settings.TableauOffset * float64(i)), Z: 0}
		default:
			c.Position = domain.Vec3{}
		}
		c.DrawOrder = i
	}
	return true
}
