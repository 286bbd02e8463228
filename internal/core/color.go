package core

// Color represents a foreground color for a screen cell.
// The terminal adapter maps these to ANSI 256-color codes.
type Color uint8

// Palette used by the stage painter and the pause overlay.
const (
	ColorDefault Color = iota
	ColorBrick
	ColorSolid
	ColorLadder
	ColorRope
	ColorChest
	ColorHero
	ColorEnemy
	ColorHole
	ColorText
	ColorMessage
	ColorAccent
	ColorSoftKey
	ColorDone
	ColorDim
)
