// dreadmaze is a terminal dungeon explorer built on a procedural maze
// generator: descend by finding each level's ladder, don't trust the
// floor.
package main

import (
	"flag"
	"fmt"
	"os"

	"dreadmaze/internal/game"
)

func main() {
	seed := flag.Int64("seed", 0, "Run seed (0 picks one from the clock)")
	flag.Parse()

	g, err := game.New(*seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	g.Run()
}
