// Package ortho provides an orthographic camera that projects screen
// coordinates onto the play surface.
package ortho

import "github.com/aretw0/tableau/pkg/domain"

// Camera maps screen pixels (Y down) to surface units (Y up).
// Origin is the screen pixel where the surface origin is drawn and Scale is
// the number of pixels per surface unit.
type Camera struct {
	Origin domain.Vec2
	Scale  float64
}

// New creates a camera. A non-positive scale falls back to 1.
func New(origin domain.Vec2, scale float64) *Camera {
	if scale <= 0 {
		scale = 1
	}
	return &Camera{Origin: origin, Scale: scale}
}

// Project implements ports.Projector.
func (c *Camera) Project(screen domain.Vec2) domain.Vec3 {
	return domain.Vec3{
		X: (screen.X - c.Origin.X) / c.Scale,
		Y: (c.Origin.Y - screen.Y) / c.Scale,
	}
}

// Unproject maps a surface position back to a screen pixel.
func (c *Camera) Unproject(p domain.Vec3) domain.Vec2 {
	return domain.Vec2{
		X: c.Origin.X + p.X*c.Scale,
		Y: c.Origin.Y - p.Y*c.Scale,
	}
}
