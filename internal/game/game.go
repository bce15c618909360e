package game

import (
	"fmt"
	"math/rand"
	"time"

	"dreadmaze/internal/maze"
	"dreadmaze/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Sight radii with and without the lantern.
const (
	sightDark    = 3
	sightLantern = 7
)

// stepResult reports what one player step landed on.
type stepResult uint8

const (
	stepBlocked stepResult = iota
	stepOK
	stepHatch
	stepHole
	stepLantern
)

// Game drives one explorer session: descend through generated mazes by
// finding each level's hatch, fall back to the first depth when a hole
// gives way, win by descending past the deepest level.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	rng      *rand.Rand

	maze       *maze.Maze
	place      placement
	px, pz     int
	depth      int
	falls      int
	hasLantern bool
	taken      bool // lantern already picked up on this level
	status     string

	startedAt time.Time
	runLog    RunLog
}

// New creates a Game on a fresh local terminal screen.
func New(seed int64) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen, seed), nil
}

// NewWithScreen creates a Game on an already initialized screen. The SSH
// server uses this with screens built over the session's TTY. A zero seed
// picks one from the clock.
func NewWithScreen(screen tcell.Screen, seed int64) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		screen:    screen,
		renderer:  render.NewRenderer(screen),
		rng:       rand.New(rand.NewSource(seed)),
		startedAt: time.Now(),
	}
}

// loadLevel generates the maze for depth and places the player and
// interactables. Each level gets its own recorded seed so a run can be
// regenerated from its log.
func (g *Game) loadLevel(depth int) {
	g.depth = depth
	if depth > g.runLog.DeepestDepth {
		g.runLog.DeepestDepth = depth
	}
	seed := g.rng.Int63()
	g.runLog.LevelSeeds = append(g.runLog.LevelSeeds, seed)
	rng := rand.New(rand.NewSource(seed))

	m, err := maze.Generate(levelConfig(depth, rng))
	if err != nil {
		// Level configs are fixed at compile time; only a bug gets here.
		panic(fmt.Sprintf("game: level %d config rejected: %v", depth, err))
	}
	g.maze = m
	g.place = placeLevel(m, rng)
	g.px, g.pz = g.place.SpawnX, g.place.SpawnZ
	g.taken = false
}

// Run is the main loop. It blocks until the player quits or wins.
func (g *Game) Run() {
	defer g.screen.Fini()

	g.loadLevel(1)
	g.status = "You wake on cold stone. Find the way down."

	for {
		g.draw()
		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventResize:
			g.screen.Sync()
			g.renderer.Resize()
		case *tcell.EventKey:
			action := keyToAction(ev)
			if action == ActionQuit {
				g.finish(false)
				return
			}
			dx, dz := actionToDelta(action)
			if dx == 0 && dz == 0 {
				continue
			}
			switch g.step(dx, dz) {
			case stepHatch:
				if g.depth >= MaxDepth {
					g.finish(true)
					g.showVictory()
					return
				}
				g.loadLevel(g.depth + 1)
				g.status = fmt.Sprintf("You climb down into depth %d.", g.depth)
			case stepHole:
				g.falls++
				g.runLog.Falls++
				g.hasLantern = false
				g.loadLevel(1)
				g.status = "The floor gives way. You fall all the way back to the start."
			case stepLantern:
				g.hasLantern = true
				g.taken = true
				g.status = "You pick up the lantern. The dark recedes."
			case stepOK:
				g.status = ""
			}
		}
	}
}

// step attempts to move the player by (dx, dz) and reports what the step
// landed on. Walls block and cost nothing.
func (g *Game) step(dx, dz int) stepResult {
	nx, nz := g.px+dx, g.pz+dz
	grid := g.maze.Grid()
	if !grid.InBounds(nx, nz) || grid.KindAt(nx, nz) == maze.TileWall {
		return stepBlocked
	}
	g.px, g.pz = nx, nz
	g.runLog.Steps++
	if grid.KindAt(nx, nz) == maze.TileHole {
		return stepHole
	}
	if nx == g.place.HatchX && nz == g.place.HatchZ {
		return stepHatch
	}
	if !g.taken && nx == g.place.LanternX && nz == g.place.LanternZ {
		return stepLantern
	}
	return stepOK
}

func (g *Game) sightRadius() int {
	if g.hasLantern {
		return sightLantern
	}
	return sightDark
}

func (g *Game) draw() {
	g.renderer.DrawFrame(render.Frame{
		Maze:     g.maze,
		PlayerX:  g.px,
		PlayerZ:  g.pz,
		HatchX:   g.place.HatchX,
		HatchZ:   g.place.HatchZ,
		LanternX: g.place.LanternX,
		LanternZ: g.place.LanternZ,

		LanternTaken: g.taken,
		HasLantern:   g.hasLantern,
		SightRadius:  g.sightRadius(),
		Depth:        g.depth,
		MaxDepth:     MaxDepth,
		Falls:        g.falls,
		Status:       g.status,
	})
}

// finish closes out the run log and persists it.
func (g *Game) finish(victory bool) {
	g.runLog.Victory = victory
	g.runLog.FinishedAt = time.Now()
	g.runLog.PlayedSeconds = int(time.Since(g.startedAt).Seconds())
	saveRunLog(g.runLog)
}

// showVictory displays the end screen until any key is pressed.
func (g *Game) showVictory() {
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	g.renderer.DrawBanner([]string{
		"You haul yourself out of the final depth.",
		fmt.Sprintf("Depth %d conquered with %d falls and %d steps.", MaxDepth, g.falls, g.runLog.Steps),
		"",
		"Press any key to leave.",
	}, style)
	for {
		if _, ok := g.screen.PollEvent().(*tcell.EventKey); ok {
			return
		}
	}
}
