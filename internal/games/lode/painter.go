package lode

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/progress"
)

// Glyphs.
const (
	glyphBrick  = '#'
	glyphSolid  = '='
	glyphLadder = 'H'
	glyphRope   = '-'
	glyphChest  = '$'
	glyphHero   = '&'
	glyphEnemy  = '0'
	glyphHole   = '.'
	glyphRefill = ':'
)

// refillWarnTicks is how many beats before refilling a hole is drawn as
// closing.
const refillWarnTicks = HoleTicks / 4

// Render draws the stage, plus the pause overlay when the session is paused
// or no stage is loaded.
func (g *Game) Render(dst *core.Screen) {
	// Controller before stage: the lock order is controller, then world.
	view := g.ctrl.Snapshot()
	paused := g.session == nil || g.session.Paused()

	if !paused && g.stage.Loaded() {
		g.renderPlaying(dst, view)
		return
	}
	g.renderPaused(dst, view)
}

func (g *Game) renderPlaying(dst *core.Screen, view progress.View) {
	w, h := dst.Width(), dst.Height()

	dst.DrawText(1, 0, "Level: "+format3(view.Level+1), core.ColorText)
	dst.DrawTextRight(w-1, 0, "0=Menu", core.ColorText)

	g.stage.draw(dst, 1, h-2)

	dst.DrawText(1, h-1, "<= Fire ", core.ColorSoftKey)
	dst.DrawTextRight(w-1, h-1, "Fire =>", core.ColorSoftKey)
}

func (g *Game) renderPaused(dst *core.Screen, view progress.View) {
	w, h := dst.Width(), dst.Height()
	info := g.stage.Info()

	// Dimmed stage behind the overlay
	bottom := g.stage.drawDim(dst, 1, h-5)

	mid := bottom / 2
	switch {
	case view.Message != "":
		banner(dst, mid, view.Message, core.ColorMessage)
	case view.Chapter == 0:
		banner(dst, mid, progress.ChapterName(0), core.ColorAccent)
	default:
		banner(dst, mid-1, progress.ChapterName(0), core.ColorAccent)
		banner(dst, mid+1, progress.ChapterName(view.Chapter), core.ColorAccent)
	}

	y := h - 4
	dst.DrawText(1, y, "Level "+format3(view.Level+1), core.ColorText)
	dst.DrawTextRight(w-1, y, fmt.Sprintf("%c x%d", glyphHero, view.Lives), core.ColorText)

	if info.Loaded {
		dst.DrawText(1, y+1, fmt.Sprintf("%c %d/%d", glyphChest, info.Collected, info.Chests), core.ColorChest)
		dst.DrawTextRight(w-1, y+1, fmt.Sprintf("%c x%d", glyphEnemy, info.Enemies), core.ColorEnemy)
		if view.Done {
			dst.DrawTextCentered(y+1, "Done!", core.ColorDone)
		}
	} else {
		dst.DrawTextCentered(mid+2, "Loading...", core.ColorMessage)
	}

	dst.DrawText(1, y+2, "Fire=Play", core.ColorText)
	dst.DrawTextRight(w-1, y+2, "#=Exit", core.ColorText)

	if w > 40 {
		dst.DrawText(1, h-1, "Next Level", core.ColorSoftKey)
		dst.DrawTextRight(w-1, h-1, "Suicide", core.ColorSoftKey)
	} else {
		dst.DrawText(1, h-1, "Next", core.ColorSoftKey)
		dst.DrawTextRight(w-1, h-1, "Suic.", core.ColorSoftKey)
	}
}

// banner draws centred text on a blank strip so the dimmed stage does not
// run into it.
func banner(dst *core.Screen, y int, text string, c core.Color) {
	n := utf8.RuneCountInString(text) + 2
	x := core.Clamp((dst.Width()-n)/2, 0, dst.Width())
	dst.DrawRect(core.NewRect(x, y, n, 1), ' ', core.ColorDefault)
	dst.DrawTextCentered(y, text, c)
}

// draw paints the stage centred horizontally in rows top..bottom.
func (s *Stage) draw(dst *core.Screen, top, bottom int) {
	s.paint(dst, top, bottom, false)
}

// drawDim paints the stage in the dim colour and returns the last row used.
func (s *Stage) drawDim(dst *core.Screen, top, bottom int) int {
	return s.paint(dst, top, bottom, true)
}

func (s *Stage) paint(dst *core.Screen, top, bottom int, dim bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return bottom
	}

	ox := core.Clamp((dst.Width()-s.w)/2, 0, dst.Width())
	rows := min(s.h, bottom-top+1)

	color := func(c core.Color) core.Color {
		if dim {
			return core.ColorDim
		}
		return c
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < s.w; x++ {
			var r rune
			var c core.Color
			switch s.tiles[y][x] {
			case TileBrick:
				r, c = glyphBrick, core.ColorBrick
			case TileSolid:
				r, c = glyphSolid, core.ColorSolid
			case TileLadder:
				r, c = glyphLadder, core.ColorLadder
			case TileRope:
				r, c = glyphRope, core.ColorRope
			default:
				continue
			}
			dst.Set(ox+x, top+y, r, color(c))
		}
	}

	for _, h := range s.holes {
		if h.pos.Y >= rows {
			continue
		}
		glyph := glyphHole
		if h.Remaining() <= refillWarnTicks {
			glyph = glyphRefill
		}
		dst.Set(ox+h.pos.X, top+h.pos.Y, glyph, color(core.ColorHole))
	}
	for p := range s.chests {
		if p.Y < rows {
			dst.Set(ox+p.X, top+p.Y, glyphChest, color(core.ColorChest))
		}
	}
	for _, e := range s.enemies {
		if e.pos.Y < rows {
			dst.Set(ox+e.pos.X, top+e.pos.Y, glyphEnemy, color(core.ColorEnemy))
		}
	}
	if s.hero != nil && s.hero.pos.Y < rows {
		dst.Set(ox+s.hero.pos.X, top+s.hero.pos.Y, glyphHero, color(core.ColorHero))
	}

	return top + rows - 1
}

// format3 zero-pads a level number to three digits.
func format3(n int) string {
	return fmt.Sprintf("%03d", n)
}
