// Package viz replays a computed double-pendulum trajectory in the terminal.
//
// [Model] is a Bubble Tea program that advances one sample per tick, where
// the tick interval is the trajectory's time step. Both arms are drawn on a
// braille [Canvas] with a fading trail behind the outer bob, and a side panel
// shows the elapsed time as "Time = %.1f seconds", the angles and the energy
// history.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	[ ]   - Step one sample back/forward (pauses)
//	R     - Restart from sample 0
//	G     - Start/stop GIF recording
//	?     - Toggle help
//	Q     - Quit
package viz
