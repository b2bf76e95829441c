/*
Package domain contains the core models of the Tableau drag engine.

It defines the entities that live on a play surface: Cards, the Slots that own
them and the transient DragSession created while a stack of cards follows the
pointer. This package is kept pure and free of I/O, rendering or input delivery,
following Hexagonal Architecture principles.

# Key Entities

  - Card: A single card with a local position, a draw order and a hit-test flag.
  - Slot: An ordered container of cards (index 0 = bottom) with a SlotType.
  - DragSession: The stack captured from a slot while a gesture is in progress.
  - Table: A named set of slots with a card index, used by adapters.
  - DropResult: The outcome (commit or revert) of a finished gesture.
*/
package domain
