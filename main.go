// Command merge2048 starts the 2048 game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing the game page, REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, the calibration file, debug logging, joystick
// input, version output, and optional ngrok tunneling for playing with
// friends outside the local network.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/tilegrid/merge2048/api"
	"github.com/tilegrid/merge2048/config"
	"github.com/tilegrid/merge2048/display"
	"github.com/tilegrid/merge2048/game/service"
	"github.com/tilegrid/merge2048/game/session"
	"github.com/tilegrid/merge2048/input/joystick"
	"github.com/tilegrid/merge2048/transport/mcp"
	"github.com/tilegrid/merge2048/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "2048 Game Server"
)

// Configuration flags control how the server starts and which services are enabled.
var (
	port            = flag.Int("port", 8080, "HTTP server port")
	host            = flag.String("host", "localhost", "HTTP server host")
	configPath      = flag.String("config", getConfigPathDefault(), "Path to the hardware calibration file")
	debug           = flag.Bool("debug", false, "Enable debug logging")
	version         = flag.Bool("version", false, "Show version information")
	joystickEnabled = flag.Bool("joystick", false, "Poll an attached joystick for moves")
	ngrokEnabled    = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth       = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain     = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

// getConfigPathDefault returns the default calibration file path. It honors
// the CALIBRATION_FILE environment variable, then falls back to
// "calibration.json" (which may not exist; defaults apply then).
func getConfigPathDefault() string {
	if path := os.Getenv("CALIBRATION_FILE"); path != "" {
		return path
	}
	return "calibration.json"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with game page, API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090         # Run HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -joystick          # Also poll an attached joystick\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp          # Run MCP stdio server\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	envLoaded := true
	if err := godotenv.Load(); err != nil {
		envLoaded = false
	}

	flag.Parse()

	// Show version if requested
	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	log := newLogger(*debug)
	if envLoaded {
		log.Info().Msg("loaded environment variables from .env file")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load calibration")
	}
	if cfg.Display.MaxScore != display.MaxScore {
		log.Warn().
			Int("configured", cfg.Display.MaxScore).
			Int("panel", display.MaxScore).
			Msg("calibration display limit differs from the panel's fixed cap")
	}

	// Determine mode from command
	args := flag.Args()
	mode := "server" // default
	if len(args) > 0 {
		mode = args[0]
	}

	log.Info().Str("mode", mode).Str("version", Version).Msg("starting " + AppName)

	gameService := initializeServices(log)

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCPWithInternalServer(gameService, log)

	case "server", "http":
		runHTTPServer(gameService, cfg, log)

	default:
		log.Fatal().Str("mode", mode).Msg("unknown mode, use 'server' (default) or 'stdio-mcp'")
	}
}

// newLogger builds the process logger. LOG_LEVEL overrides the -debug flag
// when set to a valid zerolog level.
func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// initializeServices wires the coordinator, score display, and game service.
func initializeServices(log zerolog.Logger) service.GameService {
	coord := session.NewCoordinator()
	panel := display.NewLogDisplay(log)
	return service.NewGameService(coord, panel, log)
}

// runHTTPServer starts the HTTP server with the game page, REST API,
// WebSocket hub, and an /mcp proxy endpoint. The joystick poller and an
// ngrok tunnel are started when enabled.
func runHTTPServer(gameService service.GameService, cfg *config.Config, log zerolog.Logger) {
	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create WebSocket hub
	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	// Create API server
	apiServer := api.NewServer(gameService, hub, log)

	addr := fmt.Sprintf("%s:%d", *host, *port)

	// Create MCP client for the /mcp endpoint
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	// Create main router that combines API and MCP
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHTTPHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start regular HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().Str("addr", addr).Msg("HTTP server listening")
		log.Info().Msgf("Game UI: http://%s/", addr)
		log.Info().Msgf("REST API: http://%s/api", addr)
		log.Info().Msgf("WebSocket: ws://%s/ws", addr)
		log.Info().Msgf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Start the joystick poller when requested. Missing hardware is not
	// fatal; the game stays playable from the browser.
	if *joystickEnabled {
		device, err := joystick.Detect()
		if err != nil {
			log.Warn().Err(err).Msg("joystick requested but unavailable, keyboard only")
		} else {
			opts := joystick.Options{
				AxisXChannel:  cfg.Joystick.AxisXChannel,
				AxisYChannel:  cfg.Joystick.AxisYChannel,
				ThresholdLow:  cfg.Joystick.ThresholdLow,
				ThresholdHigh: cfg.Joystick.ThresholdHigh,
				PollInterval:  cfg.PollInterval(),
			}
			poller := joystick.NewPoller(device, gameService, opts, log)

			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := poller.Run(ctx); err != nil && err != context.Canceled {
					log.Error().Err(err).Msg("joystick poller stopped")
				}
			}()
		}
	}

	// Check if ngrok should be enabled (from flag or environment)
	ngrokShouldRun := *ngrokEnabled
	if !ngrokShouldRun {
		if envEnabled := os.Getenv("NGROK_ENABLED"); envEnabled == "true" || envEnabled == "1" {
			ngrokShouldRun = true
		}
	}

	if ngrokShouldRun {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter, log)
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
}

// mcpHTTPHandler exposes the MCP server over plain HTTP POST.
func mcpHTTPHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// runNgrokTunnel provisions a public tunnel and serves the router through it
// until the context is canceled.
func runNgrokTunnel(ctx context.Context, handler http.Handler, log zerolog.Logger) {
	// Get auth token from flag or environment (support both naming conventions)
	authToken := *ngrokAuth
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
		if authToken == "" {
			authToken = os.Getenv("NGROK_AUTH_TOKEN")
		}
	}

	if authToken == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Info().Msg("starting ngrok tunnel")

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Info().Str("domain", domain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(authToken),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.Info().Str("url", ngrokURL).Msg("ngrok tunnel established")
	log.Info().Msgf("Game UI (ngrok): %s/", ngrokURL)
	log.Info().Msgf("MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// runStdioMCPWithInternalServer runs an MCP stdio server. It tries to reuse
// an external API at http://localhost:8080; if unavailable, it starts a
// minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(gameService service.GameService, log zerolog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var baseURL string

	// First, try to connect to an external API server at localhost:8080
	externalURL := "http://localhost:8080"
	log.Info().Str("url", externalURL).Msg("checking for external API server")

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Info().Str("url", externalURL).Msg("external API server found, using it for MCP")
		baseURL = externalURL
	} else {
		// No external server found, start an internal one on a random port
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get available port")
		}

		internalAddr := listener.Addr().String()
		log.Info().Str("addr", internalAddr).Msg("starting internal HTTP server for MCP stdio")

		hub := websocket.NewHub(log)
		go hub.Run(ctx)

		apiServer := api.NewServer(gameService, hub, log)
		httpServer := &http.Server{Handler: apiServer}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()

		// Give the listener a moment to come up before the first tool call.
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	log.Info().Str("base_url", baseURL).Msg("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatal().Err(err).Msg("MCP stdio server error")
	}
}
