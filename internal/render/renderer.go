package render

import (
	"fmt"

	"dreadmaze/internal/maze"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Tile and entity glyphs. All entity glyphs are double-width emoji; the
// renderer pads single-width tile glyphs so columns stay aligned.
const (
	glyphWall    = "🧱"
	glyphHole    = "⚫"
	glyphFloor   = "·"
	glyphPlayer  = "🧍"
	glyphHatch   = "🪜"
	glyphLantern = "🏮"
)

const hudRows = 3

// Frame is everything the renderer needs for one redraw.
type Frame struct {
	Maze               *maze.Maze
	PlayerX, PlayerZ   int
	HatchX, HatchZ     int
	LanternX, LanternZ int
	LanternTaken       bool
	HasLantern         bool
	SightRadius        int
	Depth, MaxDepth    int
	Falls              int
	Status             string
}

// Renderer draws the maze onto a tcell screen, keeping the player centered
// and hiding everything beyond the sight radius.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize re-reads the screen dimensions after a terminal resize event.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera = NewCamera(0, 0, w, max(h-hudRows, 1))
}

// DrawFrame renders tiles, entities, and the HUD, then flips the screen.
func (r *Renderer) DrawFrame(f Frame) {
	r.screen.Clear()
	r.camera.Center(f.PlayerX, f.PlayerZ)
	r.drawTiles(f)
	r.drawEntities(f)
	r.drawHUD(f)
	r.screen.Show()
}

// inSight is the Chebyshev lantern-light check.
func inSight(f Frame, x, z int) bool {
	return max(abs(x-f.PlayerX), abs(z-f.PlayerZ)) <= f.SightRadius
}

func (r *Renderer) drawTiles(f Frame) {
	floorStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	for t := range f.Maze.Grid().Tiles() {
		if !inSight(f, t.X, t.Z) {
			continue
		}
		sx, sy, visible := r.camera.WorldToScreen(t.X, t.Z)
		if !visible {
			continue
		}
		switch t.Kind {
		case maze.TileWall:
			r.putGlyph(sx, sy, glyphWall, style)
		case maze.TileHole:
			r.putGlyph(sx, sy, glyphHole, style)
		default:
			r.putGlyph(sx, sy, glyphFloor, floorStyle)
		}
	}
}

func (r *Renderer) drawEntities(f Frame) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	if !f.LanternTaken && inSight(f, f.LanternX, f.LanternZ) {
		if sx, sy, visible := r.camera.WorldToScreen(f.LanternX, f.LanternZ); visible {
			r.putGlyph(sx, sy, glyphLantern, style)
		}
	}
	if inSight(f, f.HatchX, f.HatchZ) {
		if sx, sy, visible := r.camera.WorldToScreen(f.HatchX, f.HatchZ); visible {
			r.putGlyph(sx, sy, glyphHatch, style)
		}
	}
	if sx, sy, visible := r.camera.WorldToScreen(f.PlayerX, f.PlayerZ); visible {
		r.putGlyph(sx, sy, glyphPlayer, style)
	}
}

func (r *Renderer) drawHUD(f Frame) {
	w, h := r.screen.Size()
	hudY := h - hudRows
	if hudY < 0 {
		return
	}
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, hudY, '─', nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	status := fmt.Sprintf("Depth %d/%d   Falls %d", f.Depth, f.MaxDepth, f.Falls)
	if f.HasLantern {
		status += "   " + glyphLantern
	}
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	line := f.Status
	if line == "" {
		line = "Arrows/wasd to move · find the ladder down · beware the dark pits · q quits"
	}
	r.drawText(0, hudY+2, line, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
}

// DrawBanner clears the screen and prints the lines centered, for victory
// and quit-confirmation overlays.
func (r *Renderer) DrawBanner(lines []string, style tcell.Style) {
	r.screen.Clear()
	w, h := r.screen.Size()
	top := h/2 - len(lines)/2
	for i, line := range lines {
		x := (w - runewidth.StringWidth(line)) / 2
		r.drawText(max(x, 0), top+i, line, style)
	}
	r.screen.Show()
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen
// position (x, y), padding the second column for double-width glyphs so no
// artifacts remain.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

// drawText renders a string advancing by display width per rune.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
