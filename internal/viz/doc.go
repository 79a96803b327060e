// Package viz replays stored trajectories as an animation.
//
// A [Buffer] holds the Cartesian points of several runs with equal step
// counts and rotates them together. A [Viewport] drives the rotation from a
// [Scene]'s frame loop: every Period of elapsed wall time the buffer
// advances by Step rows and the scene receives the new current points.
//
//	buf, err := viz.LoadBuffer("a/results.h5", "b/results.h5")
//	vp := viz.NewViewport(buf, scene, viz.Options{})
//	err = vp.Run()
//
// [TerminalScene] is a bubbletea scene drawn on a braille [Canvas]; the
// raylib window lives in package gui.
//
// # Key Bindings
//
//	←/→   - Orbit camera
//	↑/↓   - Tilt camera
//	+/-   - Zoom
//	q     - Quit
package viz
