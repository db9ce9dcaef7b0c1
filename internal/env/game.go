// Package env implements the Snake episode that controllers are scored on.
package env

import (
	"math/rand"
)

// Direction represents the snake's heading
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Action represents a relative action
type Action int

const (
	ActionStraight Action = iota
	ActionLeft
	ActionRight
)

// NumActions is the size of the relative action space.
const NumActions = 3

func (a Action) String() string {
	switch a {
	case ActionStraight:
		return "STRAIGHT"
	case ActionLeft:
		return "LEFT"
	case ActionRight:
		return "RIGHT"
	default:
		return "---"
	}
}

// Point represents a coordinate on the grid
type Point struct {
	X, Y int
}

// Params are the fixed rules of an episode.
type Params struct {
	Width        int  `json:"width"`
	Height       int  `json:"height"`
	StartLength  int  `json:"start_length"`
	TickCap      int  `json:"tick_cap"`
	StallWindow  int  `json:"stall_window"`
	FruitEnabled bool `json:"fruit_enabled"`
}

// Game represents the snake game environment
type Game struct {
	Params

	// State
	Snake         []Point // head is at index 0
	Dir           Direction
	Fruit         Point
	Tick          int
	TicksNoFruit  int
	FruitsEaten   int
	Alive         bool
	DeathReason   DeathReason
	ProgressSum   float64
	LastFruitDist float64

	seed uint32
	rng  *rand.Rand
}

// NewGame creates a game and resets it for the given seed.
func NewGame(p Params, seed uint32) *Game {
	g := &Game{Params: p}
	g.Reset(seed)
	return g
}

// Reset puts the snake back in the centre, facing right, and reseeds
// fruit placement.
func (g *Game) Reset(seed uint32) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(int64(seed)))
	g.Tick = 0
	g.TicksNoFruit = 0
	g.FruitsEaten = 0
	g.Alive = true
	g.DeathReason = DeathNone
	g.ProgressSum = 0
	g.LastFruitDist = 0

	centerX := g.Width / 2
	centerY := g.Height / 2
	g.Dir = DirRight

	g.Snake = make([]Point, g.StartLength)
	for i := range g.Snake {
		g.Snake[i] = Point{X: centerX - i, Y: centerY}
	}

	if g.FruitEnabled {
		g.spawnFruit()
		g.LastFruitDist = g.distanceToFruit()
	}
}

// Step advances the game by one tick with the given action
func (g *Game) Step(action Action) {
	if !g.Alive {
		return
	}

	g.Tick++
	g.TicksNoFruit++

	g.Dir = g.applyTurn(action)
	newHead := moveInDirection(g.Snake[0], g.Dir)

	if !g.inBounds(newHead) {
		g.die(DeathWall)
		return
	}
	// the tail moves away this tick, so it is not an obstacle
	if g.hitsBody(newHead) {
		g.die(DeathSelf)
		return
	}

	if g.FruitEnabled && newHead == g.Fruit {
		g.Snake = append([]Point{newHead}, g.Snake...)
		g.FruitsEaten++
		g.TicksNoFruit = 0
		g.spawnFruit()
		g.LastFruitDist = g.distanceToFruit()
	} else {
		copy(g.Snake[1:], g.Snake[:len(g.Snake)-1])
		g.Snake[0] = newHead

		if g.FruitEnabled {
			newDist := g.distanceToFruit()
			if improvement := g.LastFruitDist - newDist; improvement > 0 {
				g.ProgressSum += improvement
			}
			g.LastFruitDist = newDist
		}
	}

	if g.TicksNoFruit >= g.StallWindow {
		g.die(DeathStall)
		return
	}
	if g.Tick >= g.TickCap {
		g.die(DeathTimeout)
	}
}

func (g *Game) die(reason DeathReason) {
	g.Alive = false
	g.DeathReason = reason
}

// applyTurn returns new direction after applying relative action
func (g *Game) applyTurn(action Action) Direction {
	switch action {
	case ActionLeft:
		return (g.Dir + 3) % 4
	case ActionRight:
		return (g.Dir + 1) % 4
	default:
		return g.Dir
	}
}

func moveInDirection(p Point, dir Direction) Point {
	return moveBy(p, dir, 1)
}

func moveBy(p Point, dir Direction, n int) Point {
	switch dir {
	case DirUp:
		return Point{X: p.X, Y: p.Y - n}
	case DirRight:
		return Point{X: p.X + n, Y: p.Y}
	case DirDown:
		return Point{X: p.X, Y: p.Y + n}
	case DirLeft:
		return Point{X: p.X - n, Y: p.Y}
	}
	return p
}

func (g *Game) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// hitsBody checks every segment except the tail.
func (g *Game) hitsBody(p Point) bool {
	for _, s := range g.Snake[:len(g.Snake)-1] {
		if s == p {
			return true
		}
	}
	return false
}

// spawnFruit places fruit at a random empty cell
func (g *Game) spawnFruit() {
	occupied := make(map[Point]bool, len(g.Snake))
	for _, p := range g.Snake {
		occupied[p] = true
	}

	var empty []Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Point{X: x, Y: y}
			if !occupied[p] {
				empty = append(empty, p)
			}
		}
	}

	if len(empty) > 0 {
		g.Fruit = empty[g.rng.Intn(len(empty))]
	}
}

// distanceToFruit returns Manhattan distance from head to fruit
func (g *Game) distanceToFruit() float64 {
	head := g.Snake[0]
	return float64(abs(head.X-g.Fruit.X) + abs(head.Y-g.Fruit.Y))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Stats returns the episode statistics
func (g *Game) Stats() EpisodeStats {
	return EpisodeStats{
		Fruits:      g.FruitsEaten,
		Ticks:       g.Tick,
		ProgressSum: g.ProgressSum,
		Death:       g.DeathReason,
		Seed:        g.seed,
	}
}

// IsDangerWall checks if moving in direction would hit wall
func (g *Game) IsDangerWall(relDir Action) bool {
	return !g.inBounds(moveInDirection(g.Snake[0], g.applyTurn(relDir)))
}

// IsDangerBody checks if moving in direction would hit body
func (g *Game) IsDangerBody(relDir Action) bool {
	return g.hitsBody(moveInDirection(g.Snake[0], g.applyTurn(relDir)))
}

// IsDanger checks if moving in direction would cause any collision
func (g *Game) IsDanger(relDir Action) bool {
	return g.IsDangerWall(relDir) || g.IsDangerBody(relDir)
}

// BodyDistanceInDir returns the distance to the body along the relative
// direction, normalised to (0, 1], or 1 if the ray reaches the wall.
func (g *Game) BodyDistanceInDir(relDir Action) float32 {
	dir := g.applyTurn(relDir)
	head := g.Snake[0]
	maxDist := float32(g.Width + g.Height)

	for dist := 1; dist < g.Width+g.Height; dist++ {
		p := moveBy(head, dir, dist)
		if !g.inBounds(p) {
			return 1.0
		}
		for _, s := range g.Snake {
			if s == p {
				return float32(dist) / maxDist
			}
		}
	}
	return 1.0
}

// FruitDirection returns (dx, dy) normalized to [-1, 1] in heading-relative frame
// where positive Y is ahead and positive X is to the right.
func (g *Game) FruitDirection() (float32, float32) {
	if !g.FruitEnabled {
		return 0, 0
	}

	head := g.Snake[0]
	maxD := float32(g.Width + g.Height)
	dx := float32(g.Fruit.X-head.X) / maxD
	dy := float32(g.Fruit.Y-head.Y) / maxD

	switch g.Dir {
	case DirUp:
		return dx, -dy
	case DirRight:
		return -dy, dx
	case DirDown:
		return -dx, dy
	case DirLeft:
		return dy, -dx
	}
	return dx, dy
}

// FruitDistanceNorm returns normalized distance to fruit
func (g *Game) FruitDistanceNorm() float32 {
	if !g.FruitEnabled {
		return 1.0
	}
	return float32(g.distanceToFruit()) / float32(g.Width+g.Height)
}

// LengthNorm returns normalized snake length
func (g *Game) LengthNorm() float32 {
	return float32(len(g.Snake)) / float32(g.Width*g.Height)
}
