// Package gui is the hardware-accelerated replay window built on raylib.
package gui
