// Command desktop is a native client for the 2048 server. It renders the
// shared board with ebiten, takes moves from the keyboard, and stays in sync
// through the server's WebSocket push, falling back to polling when the
// socket is unavailable. Because the board is shared, moves made from a
// browser, a joystick, or an MCP agent show up here live.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	gridSize     = 4
	cellSize     = 80
	cellGap      = 6
	headerHeight = 60
	screenWidth  = gridSize*cellSize + (gridSize+1)*cellGap
	screenHeight = headerHeight + gridSize*cellSize + (gridSize+1)*cellGap + 30
	pollInterval = 500 * time.Millisecond
)

// Snapshot mirrors the server's JSON state shape.
type Snapshot struct {
	Grid      [gridSize][gridSize]int `json:"grid"`
	Score     int                     `json:"score"`
	HighScore int                     `json:"high_score"`
	GameOver  bool                    `json:"game_over"`
}

// WSMessage is the server's WebSocket envelope.
type WSMessage struct {
	Event    string    `json:"event"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
}

// tileColors follows the classic 2048 palette; tiles past 2048 reuse the
// last entry.
var tileColors = map[int]color.RGBA{
	0:    {244, 244, 244, 255},
	2:    {238, 228, 218, 255},
	4:    {237, 224, 200, 255},
	8:    {242, 177, 121, 255},
	16:   {245, 149, 99, 255},
	32:   {246, 124, 95, 255},
	64:   {246, 94, 59, 255},
	128:  {237, 207, 114, 255},
	256:  {237, 204, 97, 255},
	512:  {237, 200, 80, 255},
	1024: {237, 197, 63, 255},
	2048: {237, 194, 46, 255},
}

func tileColor(value int) color.RGBA {
	if c, ok := tileColors[value]; ok {
		return c
	}
	return tileColors[2048]
}

// Game is the desktop client state.
type Game struct {
	baseURL string

	stateMutex sync.RWMutex
	state      *Snapshot
	lastUpdate time.Time

	wsConn *websocket.Conn
	errMsg string
}

// NewGame creates the client and makes the initial connection attempts.
func NewGame(baseURL string) *Game {
	g := &Game{baseURL: baseURL}

	if err := g.connectWebSocket(); err != nil {
		log.Printf("WebSocket unavailable, falling back to polling: %v", err)
	} else {
		go g.listenWebSocket()
	}

	if err := g.fetchState(); err != nil {
		g.errMsg = fmt.Sprintf("cannot reach server at %s", baseURL)
		log.Printf("Initial state fetch failed: %v", err)
	}

	return g
}

// connectWebSocket establishes the push connection.
func (g *Game) connectWebSocket() error {
	wsURL := "ws" + strings.TrimPrefix(g.baseURL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}

	g.wsConn = conn
	log.Printf("WebSocket connected to %s", wsURL)
	return nil
}

// listenWebSocket applies pushed snapshots until the connection drops, then
// leaves the client in polling mode.
func (g *Game) listenWebSocket() {
	defer func() {
		g.wsConn.Close()
		g.stateMutex.Lock()
		g.wsConn = nil
		g.stateMutex.Unlock()
	}()

	for {
		_, message, err := g.wsConn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error: %v", err)
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("WebSocket JSON parse error: %v", err)
			continue
		}
		if msg.Snapshot == nil {
			continue
		}

		g.stateMutex.Lock()
		g.state = msg.Snapshot
		g.lastUpdate = time.Now()
		g.stateMutex.Unlock()
	}
}

// fetchState pulls the current snapshot over REST.
func (g *Game) fetchState() error {
	resp, err := http.Get(g.baseURL + "/api/state")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return fmt.Errorf("failed to parse state: %v (body: %s)", err, string(body))
	}

	g.stateMutex.Lock()
	g.state = &snap
	g.lastUpdate = time.Now()
	g.errMsg = ""
	g.stateMutex.Unlock()
	return nil
}

// sendAction posts a move or restart and refreshes the local state.
func (g *Game) sendAction(action string) error {
	var url, payload string

	if action == "restart" {
		url = g.baseURL + "/restart"
		payload = "{}"
	} else {
		url = g.baseURL + "/move"
		payload = fmt.Sprintf(`{"direction":"%s"}`, action)
	}

	resp, err := http.Post(url, "application/json", strings.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return g.fetchState()
}

// Update handles input and keeps the state fresh when polling.
func (g *Game) Update() error {
	g.stateMutex.RLock()
	polling := g.wsConn == nil
	stale := time.Since(g.lastUpdate) > pollInterval
	gameOver := g.state != nil && g.state.GameOver
	g.stateMutex.RUnlock()

	if polling && stale {
		if err := g.fetchState(); err != nil {
			log.Printf("Error fetching state: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.sendAction("up")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.sendAction("down")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.sendAction("left")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.sendAction("right")
	}

	// Restart mirrors the web page: only once the game is over.
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && gameOver {
		g.sendAction("restart")
	}

	return nil
}

// Draw renders the header, grid, and footer.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{187, 173, 160, 255})

	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()

	if g.errMsg != "" {
		ebitenutil.DebugPrintAt(screen, g.errMsg, 10, 10)
		return
	}
	if g.state == nil {
		ebitenutil.DebugPrint(screen, "Loading...")
		return
	}

	connStatus := "POLL"
	if g.wsConn != nil {
		connStatus = "WS"
	}
	header := fmt.Sprintf("Score: %d   High Score: %d   [%s]",
		g.state.Score, g.state.HighScore, connStatus)
	ebitenutil.DebugPrintAt(screen, header, 10, 10)

	if g.state.GameOver {
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press Space to restart", 10, 30)
	}

	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			value := g.state.Grid[y][x]

			px := float64(x*cellSize + (x+1)*cellGap)
			py := float64(headerHeight + y*cellSize + (y+1)*cellGap)
			ebitenutil.DrawRect(screen, px, py, cellSize, cellSize, tileColor(value))

			if value != 0 {
				label := fmt.Sprintf("%d", value)
				// DebugPrint glyphs are 6px wide; nudge toward center.
				offsetX := (cellSize - len(label)*6) / 2
				ebitenutil.DebugPrintAt(screen,
					label,
					int(px)+offsetX,
					int(py)+cellSize/2-8)
			}
		}
	}

	ebitenutil.DebugPrintAt(screen,
		"Arrows/WASD: Move | Space: Restart (when over)",
		10, screenHeight-20)
}

// Layout returns the fixed window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Game server URL")
	flag.Parse()

	game := NewGame(*baseURL)

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("2048 Desktop Client")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
