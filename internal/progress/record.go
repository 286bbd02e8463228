// Package progress tracks level progression and lives, and persists them as a
// fixed-layout binary record in a named slot.
package progress

import "fmt"

const (
	// MaxLives is the number of lives a fresh game starts with.
	MaxLives = 5

	// LevelsPerChapter is the size of one chapter of the stage pack.
	LevelsPerChapter = 150

	// MaxLevels is the total number of levels.
	MaxLevels = 2 * LevelsPerChapter

	// DefaultSlot is the slot the record is stored under.
	DefaultSlot = "LodeRunner"

	// RecordSize is the encoded size of a GameSession.
	RecordSize = 8 + MaxLevels
)

// Pause messages.
const (
	MsgCongratulations = "Congratulations !"
	MsgGameOver        = "Game Over"
	MsgTryAgain        = "Try again..."
	MsgAllDone         = "All levels done!"
)

// MsgLevelBounds is shown when a typed level number is out of range.
var MsgLevelBounds = fmt.Sprintf("1 <= level <= %d", MaxLevels)

// Chapter names, indexed by Chapter().
var chapterNames = [...]string{"Lode Runner", "Championship"}

// Status is the completion flag of one level.
type Status byte

const (
	StatusNotDone Status = 0
	StatusDone    Status = 1
)

func (s Status) String() string {
	if s == StatusDone {
		return "Done"
	}
	return "NotDone"
}

// GameSession is the persisted progression state.
type GameSession struct {
	Level int // 0 <= Level < MaxLevels
	Lives int // 0 <= Lives <= MaxLives
	Flags [MaxLevels]Status
}

// NewGameSession returns the state of a fresh game.
func NewGameSession() GameSession {
	return GameSession{Level: 0, Lives: MaxLives}
}

// Valid reports whether the level and lives are in range and every flag is
// a known status.
func (g GameSession) Valid() bool {
	if g.Level < 0 || g.Level >= MaxLevels {
		return false
	}
	if g.Lives < 0 || g.Lives > MaxLives {
		return false
	}
	for _, f := range g.Flags {
		if f != StatusNotDone && f != StatusDone {
			return false
		}
	}
	return true
}

// Solved returns how many levels are marked Done.
func (g GameSession) Solved() int {
	n := 0
	for _, f := range g.Flags {
		if f == StatusDone {
			n++
		}
	}
	return n
}

// Chapter returns the chapter of the current level.
func (g GameSession) Chapter() int {
	return g.Level / LevelsPerChapter
}

// ChapterName returns the display name of a chapter.
func ChapterName(chapter int) string {
	if chapter < 0 || chapter >= len(chapterNames) {
		return chapterNames[0]
	}
	return chapterNames[chapter]
}
