// Command autoplay runs unattended random games against the engine and
// prints per-game and aggregate statistics. It is the quickest way to sanity
// check a change to the merge rules: a healthy engine playing uniformly at
// random finishes most games with a 128 or 256 tile.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tilegrid/merge2048/game/engine"
)

// gameStats summarizes one finished game.
type gameStats struct {
	Moves   int
	Score   int
	MaxTile int
}

// playGame plays one game with uniformly random moves until the board is
// terminal or the move limit is hit.
func playGame(rng *rand.Rand, maxMoves int) gameStats {
	board := engine.NewBoard(rng)
	stats := gameStats{}

	for !board.IsTerminal() && stats.Moves < maxMoves {
		direction := engine.Directions[rng.Intn(len(engine.Directions))]

		outcome, err := board.Move(direction)
		if err != nil {
			continue
		}
		stats.Moves++

		if !outcome.Changed {
			continue
		}

		stats.Score += outcome.ScoreGained
		board = outcome.Board
		if next, err := engine.SpawnTile(board, rng); err == nil {
			board = next
		}
	}

	stats.MaxTile = board.MaxTile()
	return stats
}

func run(ctx context.Context, cmd *cli.Command) error {
	games := int(cmd.Int("games"))
	maxMoves := int(cmd.Int("max-moves"))
	seed := cmd.Int("seed")
	verbose := cmd.Bool("verbose")

	if games <= 0 {
		return fmt.Errorf("games must be positive, got %d", games)
	}
	if maxMoves <= 0 {
		return fmt.Errorf("max-moves must be positive, got %d", maxMoves)
	}

	rng := rand.New(rand.NewSource(int64(seed)))

	var totalScore, totalMoves, bestScore, bestTile int
	tileCounts := make(map[int]int)

	for i := 0; i < games; i++ {
		stats := playGame(rng, maxMoves)

		totalScore += stats.Score
		totalMoves += stats.Moves
		if stats.Score > bestScore {
			bestScore = stats.Score
		}
		if stats.MaxTile > bestTile {
			bestTile = stats.MaxTile
		}
		tileCounts[stats.MaxTile]++

		if verbose {
			fmt.Printf("game %3d: score %5d, max tile %4d, moves %4d\n",
				i+1, stats.Score, stats.MaxTile, stats.Moves)
		}
	}

	fmt.Printf("\nPlayed %d games (seed %d)\n", games, seed)
	fmt.Printf("Average score: %.1f\n", float64(totalScore)/float64(games))
	fmt.Printf("Average moves: %.1f\n", float64(totalMoves)/float64(games))
	fmt.Printf("Best score:    %d\n", bestScore)
	fmt.Printf("Best tile:     %d\n", bestTile)

	fmt.Println("\nMax tile distribution:")
	for tile := 2; tile <= bestTile; tile *= 2 {
		if count := tileCounts[tile]; count > 0 {
			fmt.Printf("  %4d: %d (%.0f%%)\n", tile, count, 100*float64(count)/float64(games))
		}
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "autoplay",
		Usage: "play random 2048 games and report engine statistics",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "games",
				Value: 100,
				Usage: "number of games to play",
			},
			&cli.IntFlag{
				Name:  "max-moves",
				Value: 10000,
				Usage: "per-game move limit",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "random seed, fixed so runs are comparable",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print a line per game",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
