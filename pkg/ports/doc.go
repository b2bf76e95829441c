/*
Package ports defines the driven ports (interfaces) for the Tableau engine.

These interfaces decouple the drag engine from the host environment that owns
the camera, the scene and the input event loop.

# Key Interfaces

  - Projector: Converts a screen coordinate to a position on the play surface.
  - HitTester: Lists the scene objects under a pointer, front-to-back.
  - DistributedLocker: Serializes events for a table across replicas.
*/
package ports
