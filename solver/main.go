// Command solver plays the 2048 server unattended through its REST API.
// It is a load and correctness probe for the whole HTTP path: it exercises
// /move, /restart, and /api/state the same way a human (or the joystick
// bridge) would, and prints score statistics at the end.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Snapshot mirrors the server's JSON state shape.
type Snapshot struct {
	Grid      [4][4]int `json:"grid"`
	Score     int       `json:"score"`
	HighScore int       `json:"high_score"`
	GameOver  bool      `json:"game_over"`
}

// MoveResponse mirrors the /move response.
type MoveResponse struct {
	Snapshot
	Moved       bool `json:"moved"`
	ScoreGained int  `json:"score_gained"`
}

// Client talks to the game server.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) GetState() (*Snapshot, error) {
	resp, err := c.client.Get(c.baseURL + "/api/state")
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return &snap, nil
}

func (c *Client) Move(direction string) (*MoveResponse, error) {
	body, err := json.Marshal(map[string]string{"direction": direction})
	if err != nil {
		return nil, fmt.Errorf("marshal move: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/move", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute move: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("move failed: %s - %s", resp.Status, string(respBody))
	}

	var moveResp MoveResponse
	if err := json.Unmarshal(respBody, &moveResp); err != nil {
		return nil, fmt.Errorf("parse move response: %w", err)
	}
	return &moveResp, nil
}

func (c *Client) Restart() (*Snapshot, error) {
	resp, err := c.client.Post(c.baseURL+"/restart", "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("restart: %w", err)
	}
	defer resp.Body.Close()

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("parse restart response: %w", err)
	}
	return &snap, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	games := flag.Int("games", 1, "Number of games to play")
	maxMoves := flag.Int("max-moves", 5000, "Maximum moves per game")
	delayMs := flag.Int("delay", 0, "Delay between moves in milliseconds (0 = no delay)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	if _, err := client.GetState(); err != nil {
		log.Fatalf("Server not reachable: %v", err)
	}

	var bestScore, totalScore int

	for game := 1; game <= *games; game++ {
		score, moves, err := playGame(client, *maxMoves, *delayMs, *verbose)
		if err != nil {
			log.Fatalf("Game %d failed: %v", game, err)
		}

		log.Printf("Game %d finished: score %d in %d moves", game, score, moves)
		totalScore += score
		if score > bestScore {
			bestScore = score
		}

		if game < *games {
			if _, err := client.Restart(); err != nil {
				log.Fatalf("Restart failed: %v", err)
			}
		}
	}

	fmt.Printf("\nPlayed %d games\n", *games)
	fmt.Printf("Best score:    %d\n", bestScore)
	fmt.Printf("Average score: %.1f\n", float64(totalScore)/float64(*games))
	os.Exit(0)
}

// playGame drives one game to completion and returns its final score and
// move count.
func playGame(client *Client, maxMoves, delayMs int, verbose bool) (int, int, error) {
	strategy := NewCornerStrategy()

	state, err := client.GetState()
	if err != nil {
		return 0, 0, err
	}
	if state.GameOver {
		if state, err = client.Restart(); err != nil {
			return 0, 0, err
		}
	}

	moves := 0
	for !state.GameOver && moves < maxMoves {
		direction := strategy.Next()
		if direction == "" {
			// Every direction was a no-op since the last change; the
			// server should be reporting game over, re-check.
			if state, err = client.GetState(); err != nil {
				return 0, 0, err
			}
			if state.GameOver {
				break
			}
			strategy.Reset()
			continue
		}

		result, err := client.Move(direction)
		if err != nil {
			return 0, 0, err
		}
		moves++

		if verbose {
			log.Printf("move %4d: %-5s moved=%-5v score=%d", moves, direction, result.Moved, result.Score)
		}

		strategy.Record(direction, result.Moved)
		state = &result.Snapshot

		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}
	}

	return state.Score, moves, nil
}
