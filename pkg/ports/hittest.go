package ports

import "github.com/aretw0/tableau/pkg/domain"

// SceneObject is anything the host can report under a pointer.
// The engine only acts on *domain.Slot results and ignores the rest.
type SceneObject interface {
	SceneID() string
}

// HitTester returns the scene objects under the pointer, ordered front-to-back.
type HitTester interface {
	HitTest(ev domain.PointerEvent) []SceneObject
}

// HitTesterFunc adapts a plain function to the HitTester interface.
type HitTesterFunc func(ev domain.PointerEvent) []SceneObject

// HitTest implements HitTester.
func (f HitTesterFunc) HitTest(ev domain.PointerEvent) []SceneObject {
	return f(ev)
}
