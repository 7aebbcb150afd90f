// Package viz renders a sandbox world in the terminal.
//
//   - [Model]: Bubble Tea program driving a world at 60 Hz
//   - [Canvas]: braille dot matrix with per-cell colour
//   - [Viewport]: world to canvas mapping
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	S     - Single step while paused
//	R     - Reload the scene
//	Tab   - Select tunable, Up/Down to change it
//	:     - Open the console (see package command)
//	T     - Cycle color themes
//	?     - Show help overlay
//
// The left mouse button drags the body under the pointer, the right button
// spawns a circle. Mouse support needs the program to be started with
// tea.WithMouseCellMotion.
package viz
