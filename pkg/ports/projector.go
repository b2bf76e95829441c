package ports

import "github.com/aretw0/tableau/pkg/domain"

// Projector converts a pointer's screen coordinate to a position on the play surface.
// It is a pure function and cannot fail while a camera exists.
type Projector interface {
	Project(screen domain.Vec2) domain.Vec3
}

// ProjectorFunc adapts a plain function to the Projector interface.
type ProjectorFunc func(screen domain.Vec2) domain.Vec3

// Project implements Projector.
func (f ProjectorFunc) Project(screen domain.Vec2) domain.Vec3 {
	return f(screen)
}
