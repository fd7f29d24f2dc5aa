//go:build !ebiten

package ui

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// Overlay is a no-op placeholder for headless builds.
type Overlay struct{}
