// Package viz provides the terminal harness for inspecting a field snapshot.
//
// The package draws a [scene.Snapshot] without doing any physics itself:
//
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - [Camera]: rotating perspective projection of world points
//   - [Wireframe]: depth-sorted segments built from lines, arrows and charges
//   - [Viewer]: Bubble Tea program with a summary panel
//
// # Key Bindings
//
//	Arrows - Rotate view
//	+/-    - Zoom
//	L      - Toggle field lines
//	G      - Toggle grid arrows
//	C      - Toggle charge markers
//	T      - Cycle color themes
//	R      - Recompute snapshot
//	Q      - Quit
//
// A refresh replaces the whole snapshot; the canvas is cleared and redrawn
// from it on every frame, so old output never lingers.
package viz
