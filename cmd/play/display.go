package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"snakeevo/internal/env"
)

// Display renders the grid to a terminal, two columns per cell.
type Display struct {
	width  int
	height int
	out    io.Writer
}

// NewDisplay creates a display writing to stdout.
func NewDisplay(width, height int) *Display {
	return &Display{width: width, height: height, out: os.Stdout}
}

// Render clears the screen and draws the game and the last action.
func (d *Display) Render(game *env.Game, action env.Action) {
	clearScreen()
	io.WriteString(d.out, d.frame(game, action))
}

func (d *Display) frame(game *env.Game, action env.Action) string {
	cells := make([][]string, d.height)
	for y := range cells {
		cells[y] = make([]string, d.width)
		for x := range cells[y] {
			cells[y][x] = " ·"
		}
	}
	put := func(p env.Point, s string) {
		if p.X >= 0 && p.X < d.width && p.Y >= 0 && p.Y < d.height {
			cells[p.Y][p.X] = s
		}
	}

	if game.FruitEnabled {
		put(game.Fruit, "🍎")
	}
	for i := len(game.Snake) - 1; i > 0; i-- {
		put(game.Snake[i], " █")
	}
	put(game.Snake[0], " "+string(directionHead(game.Dir)))

	var b strings.Builder
	border := strings.Repeat("──", d.width)
	b.WriteString("┌" + border + "┐\n")
	for _, row := range cells {
		b.WriteString("│" + strings.Join(row, "") + "│\n")
	}
	b.WriteString("└" + border + "┘\n")

	fmt.Fprintf(&b, "  Tick: %3d | Fruits: %d | Length: %d | Action: %s\n",
		game.Tick, game.FruitsEaten, len(game.Snake), action)
	if !game.Alive {
		fmt.Fprintf(&b, "  💀 DEAD: %s\n", game.DeathReason)
	}
	return b.String()
}

func directionHead(dir env.Direction) rune {
	switch dir {
	case env.DirUp:
		return '▲'
	case env.DirRight:
		return '▶'
	case env.DirDown:
		return '▼'
	case env.DirLeft:
		return '◀'
	}
	return 'O'
}

func clearScreen() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	cmd.Run()
}
