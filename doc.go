/*
Package tableau is a drag-and-drop engine for solitaire-style card layouts.

Cards live in ordered slots. A pointer gesture lifts a card together with every
card stacked above it, carries the stack while keeping its geometry, and drops
it onto another slot. Slots decide what they accept: a Deck never accepts cards,
a Receiver accepts single cards only, a Tableau accepts any stack. Invalid drops
revert the stack to where it came from; every slot whose cards changed is laid
out again.

# Concept

The engine (internal runtime) is a pure, single-threaded state machine. The
host owns the camera and the scene and is reached through the ports package:
a Projector turns screen coordinates into surface positions and a HitTester
lists what lies under the pointer. This package wires the engine to reference
adapters (an orthographic camera and a rectangle scene) so a Table can be
driven end-to-end from raw pointer events, HTTP or MCP.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/tableau"
	)

	func main() {
		// Classic layout: deck, four receivers, seven tableau columns.
		table, err := tableau.New("demo")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		result, err := table.Move(ctx, "Card52", "tableau-1")
		if err != nil {
			log.Fatal(err)
		}
		log.Println(result.Outcome)
	}
*/
package tableau
