package domain

// PointerPhase identifies the stage of a pointer gesture.
type PointerPhase string

const (
	PointerDown PointerPhase = "down"
	PointerMove PointerPhase = "move"
	PointerUp   PointerPhase = "up"
)

// PointerEvent is a single pointer sample delivered by the host.
type PointerEvent struct {
	PointerID int          `json:"pointer_id"`
	Phase     PointerPhase `json:"phase"`
	Screen    Vec2         `json:"screen"`
}

// Settings holds the layout parameters of a table.
// A nil *Settings means no configuration is available.
type Settings struct {
	TableauOffset float64 `json:"tableau_offset"`
}
