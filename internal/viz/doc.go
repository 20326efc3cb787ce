// Package viz draws machines in the terminal.
//
//   - [Canvas]: braille pixel grid that implements gfx.Surface
//   - [Render]: frames a machine or system onto a canvas
//   - [Scrubber]: Bubble Tea model for seeking through frames
//
// # Key Bindings
//
//	←/→   - Step one frame
//	[/]   - Jump ten frames
//	Space - Play/Pause
//	R     - Back to frame 0
//	Tab   - Next machine
//	T     - Cycle color themes
//	Q     - Quit
package viz
